package formdata

import (
	"strings"
)

const (
	formDataType = "multipart/form-data"
	boundaryKey  = "boundary"
)

// ResolveBoundary returns the boundary token declared by a
// multipart/form-data content type. The attribute key is matched
// case-sensitively and one pair of surrounding quotes is stripped.
func ResolveBoundary(contentType string) ([]byte, error) {
	ct := strings.TrimSpace(contentType)
	if len(ct) < len(formDataType) || !strings.EqualFold(ct[:len(formDataType)], formDataType) {
		return nil, ErrMissingBoundary
	}

	value, ok := boundaryParam(ct[len(formDataType):])
	if !ok {
		return nil, ErrMissingBoundary
	}

	value = unquote(strings.TrimSpace(value))
	if value == "" {
		return nil, ErrMissingBoundary
	}

	return []byte(value), nil
}

// boundaryParam finds the parameter whose key is exactly boundaryKey in what
// follows the media type. Semicolons inside double quotes do not end a
// parameter.
func boundaryParam(rest string) (string, bool) {
	for _, p := range splitBoundaryParams(rest)[1:] {
		key, value, found := strings.Cut(p, "=")
		if found && strings.TrimSpace(key) == boundaryKey {
			return value, true
		}
	}

	return "", false
}

func splitBoundaryParams(s string) []string {
	var out []string
	quoted := false
	start := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			quoted = !quoted
		case ';':
			if !quoted {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}

	return append(out, s[start:])
}

// Delimiter is the marker separating parts in the body: "--" + token.
func Delimiter(token []byte) []byte {
	d := make([]byte, 0, len(token)+2)
	d = append(d, '-', '-')

	return append(d, token...)
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return s[1 : len(s)-1]
		}
	}

	return s
}
