package formdata

// Fallback is the hand-rolled decoder used when Primary gives up. It never
// fails on malformed but non-empty input: parts it cannot read are skipped.
type Fallback struct{}

func NewFallback() *Fallback {
	return &Fallback{}
}

func (f *Fallback) Name() string {
	return "fallback"
}

// Decode returns every readable part. It fails with ErrMissingBoundary when
// the content type has no boundary and with ErrNoFileFound when no part
// carries a filename.
func (f *Fallback) Decode(body RawBody, contentType string) ([]Part, error) {
	token, err := ResolveBoundary(contentType)
	if err != nil {
		return nil, err
	}

	raw := SplitParts(body.Bytes, Delimiter(token))
	parts := make([]Part, 0, len(raw))
	hasFile := false

	for _, r := range raw {
		p, err := ParsePart(r)
		if err != nil {
			continue
		}

		hasFile = hasFile || p.Headers.IsFile()
		parts = append(parts, p)
	}

	if !hasFile {
		return parts, ErrNoFileFound
	}

	return parts, nil
}

// ExtractFile returns the filename and bytes of the first file part, or
// empty values and an error when nothing could be recovered.
func (f *Fallback) ExtractFile(body RawBody, contentType string) (string, []byte, error) {
	parts, err := f.Decode(body, contentType)
	if err != nil {
		return "", nil, err
	}

	file, _ := FindFile(parts, "")

	return file.Headers.Filename, file.Content, nil
}
