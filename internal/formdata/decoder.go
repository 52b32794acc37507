package formdata

// RawBody is the request body as received, with the length the client
// declared for it. Declared is -1 when no length was sent.
type RawBody struct {
	Bytes    []byte
	Declared int64
}

// Decoder turns a raw multipart body into its parts.
type Decoder interface {
	Name() string
	Decode(body RawBody, contentType string) ([]Part, error)
}

// FindFile returns the first part carrying a non-empty filename. When field
// is set, a file part under that field name is preferred.
func FindFile(parts []Part, field string) (Part, bool) {
	if field != "" {
		for _, p := range parts {
			if p.Headers.IsFile() && p.Headers.FieldName == field {
				return p, true
			}
		}
	}

	for _, p := range parts {
		if p.Headers.IsFile() {
			return p, true
		}
	}

	return Part{}, false
}
