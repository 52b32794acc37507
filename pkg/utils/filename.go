package utils

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

var ErrInvalidFilename = errors.New("invalid file name")

// SanitizeFilename reduces a client supplied filename to a bare base name
// that is safe to join with a directory. Both slash styles count as
// separators and NUL bytes are dropped.
func SanitizeFilename(name string) (string, error) {
	cleaned := strings.ReplaceAll(name, "\\", "/")
	cleaned = strings.ReplaceAll(cleaned, "\x00", "")
	cleaned = strings.TrimRight(cleaned, "/")

	if cleaned == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}

	base := path.Base(cleaned)
	switch base {
	case "", ".", "..", "/":
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}

	return base, nil
}

// Extension returns the lower-cased extension of name, dot included.
func Extension(name string) string {
	return strings.ToLower(path.Ext(name))
}
