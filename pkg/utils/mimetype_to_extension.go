package utils

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const fallbackExtension = ".bin"

// GetExtensionFromMimeType returns the usual extension of a MIME type, as
// registered in the mimetype detection tree. Parameters such as charset are
// ignored. Types without an extension map to ".bin".
func GetExtensionFromMimeType(mimeType string) string {
	name, _, _ := strings.Cut(mimeType, ";")

	m := mimetype.Lookup(strings.ToLower(strings.TrimSpace(name)))
	if m == nil || m.Extension() == "" {
		return fallbackExtension
	}

	return m.Extension()
}
