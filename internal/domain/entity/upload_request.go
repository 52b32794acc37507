package entity

import "io"

// UploadRequest is what the gateway layer hands to the uploader.
// ContentLength is -1 when the client did not declare one.
type UploadRequest struct {
	ContentType   string
	ContentLength int64
	Body          io.Reader
	Author        string
}
