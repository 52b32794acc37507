// Package signature checks that file content matches the magic bytes of the
// format its extension claims. Only the formats in the rule table are
// checked; any other extension is accepted as is.
package signature

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"uploadgate/internal/domain/entity"
	"uploadgate/pkg/utils"
)

var (
	ErrTooSmallToValidate = errors.New("file too small to validate")
	ErrSignatureMismatch  = errors.New("signature mismatch")
)

// MinValidateSize is the smallest content length accepted for any extension
// listed in the rule table.
const MinValidateSize = 8

type rule struct {
	kind       entity.Kind
	extensions []string
	signatures [][]byte
	minLen     int
}

var rules = []rule{
	{
		kind:       entity.KindPNG,
		extensions: []string{".png"},
		signatures: [][]byte{{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
		minLen:     8,
	},
	{
		kind:       entity.KindJPEG,
		extensions: []string{".jpg", ".jpeg"},
		signatures: [][]byte{{0xFF, 0xD8}},
		minLen:     5,
	},
	{
		kind:       entity.KindGIF,
		extensions: []string{".gif"},
		signatures: [][]byte{[]byte("GIF87a"), []byte("GIF89a")},
		minLen:     6,
	},
}

// Validate returns the verdict for content declared with ext.
func Validate(content []byte, ext string) entity.ValidationVerdict {
	v, _ := Check(content, ext)

	return v
}

// Check is Validate plus the typed reason for a rejection:
// ErrTooSmallToValidate or ErrSignatureMismatch.
func Check(content []byte, ext string) (entity.ValidationVerdict, error) {
	verdict := entity.ValidationVerdict{
		DetectedKind: DetectKind(content),
		DetectedMIME: mimetype.Detect(content).String(),
	}

	r, ok := ruleFor(strings.ToLower(ext))
	if !ok {
		verdict.Accepted = true

		return verdict, nil
	}

	if len(content) < MinValidateSize {
		verdict.Reason = fmt.Sprintf("%s: %d bytes, need at least %d to check a %s file",
			ErrTooSmallToValidate, len(content), MinValidateSize, r.kind)

		return verdict, ErrTooSmallToValidate
	}

	if r.matches(content) {
		verdict.Accepted = true

		return verdict, nil
	}

	verdict.Reason = fmt.Sprintf("%s: %s file should start with %s, got %s (content looks like %s, %s)",
		ErrSignatureMismatch, r.kind, r.expected(), leadingHex(content, r.longest()),
		verdict.DetectedMIME, utils.GetExtensionFromMimeType(verdict.DetectedMIME))

	return verdict, ErrSignatureMismatch
}

// DetectKind identifies content by the signatures of the rule table.
func DetectKind(content []byte) entity.Kind {
	for _, r := range rules {
		if r.matches(content) {
			return r.kind
		}
	}

	return entity.KindUnknown
}

// Recognized reports whether ext is subject to signature validation.
func Recognized(ext string) bool {
	_, ok := ruleFor(strings.ToLower(ext))

	return ok
}

func ruleFor(ext string) (rule, bool) {
	for _, r := range rules {
		for _, e := range r.extensions {
			if e == ext {
				return r, true
			}
		}
	}

	return rule{}, false
}

func (r rule) matches(content []byte) bool {
	if len(content) < r.minLen {
		return false
	}

	for _, sig := range r.signatures {
		if bytes.HasPrefix(content, sig) {
			return true
		}
	}

	return false
}

func (r rule) expected() string {
	hexes := make([]string, 0, len(r.signatures))
	for _, sig := range r.signatures {
		hexes = append(hexes, fmt.Sprintf("% X", sig))
	}

	return strings.Join(hexes, " or ")
}

func (r rule) longest() int {
	n := 0
	for _, sig := range r.signatures {
		n = max(n, len(sig))
	}

	return n
}

func leadingHex(content []byte, n int) string {
	if len(content) < n {
		n = len(content)
	}

	return fmt.Sprintf("% X", content[:n])
}
