package formdata

import "errors"

var (
	ErrMissingBoundary = errors.New("missing multipart boundary")
	ErrDecodeFailed    = errors.New("multipart decode failed")
	ErrNoFileFound     = errors.New("no file part found")
	ErrMalformedPart   = errors.New("malformed part")
)
