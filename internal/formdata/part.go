package formdata

import (
	"bytes"
	"net/textproto"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	headerDisposition = "Content-Disposition"
	headerContentType = "Content-Type"
	paramName         = "name"
	paramFilename     = "filename"
	paramFilenameExt  = "filename*"
	tspecials         = `()<>@,;:\"/[]?=`
)

// PartHeaders is the decoded header block of one part.
type PartHeaders struct {
	FieldName   string
	Filename    string
	ContentType string
	Header      textproto.MIMEHeader
}

// IsFile reports whether the part carries an uploaded file rather than a
// plain form field.
func (h PartHeaders) IsFile() bool {
	return h.Filename != ""
}

// Part is a decoded part. Content is never modified after decoding.
type Part struct {
	Headers PartHeaders
	Content []byte
}

// ParsePart splits a raw part at its first blank line and decodes the header
// block. Content aliases raw.
func ParsePart(raw []byte) (Part, error) {
	var headerBlock, content []byte

	switch {
	case bytes.HasPrefix(raw, []byte("\r\n")):
		content = raw[2:]
	case bytes.HasPrefix(raw, []byte("\n")):
		content = raw[1:]
	default:
		sep := []byte("\r\n\r\n")
		i := bytes.Index(raw, sep)
		if i < 0 {
			sep = []byte("\n\n")
			i = bytes.Index(raw, sep)
		}
		if i < 0 {
			return Part{}, ErrMalformedPart
		}
		headerBlock, content = raw[:i], raw[i+len(sep):]
	}

	return Part{
		Headers: newPartHeaders(parseHeaderBlock(headerBlock)),
		Content: content,
	}, nil
}

func newPartHeaders(h textproto.MIMEHeader) PartHeaders {
	params := dispositionParams(h.Get(headerDisposition))

	return PartHeaders{
		FieldName:   params[paramName],
		Filename:    params[paramFilename],
		ContentType: h.Get(headerContentType),
		Header:      h,
	}
}

func parseHeaderBlock(block []byte) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	lastKey := ""

	for _, line := range strings.Split(string(block), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}

		if (line[0] == ' ' || line[0] == '\t') && lastKey != "" {
			values := h[lastKey]
			if n := len(values); n > 0 && values[n-1] != "" {
				values[n-1] += " " + strings.TrimSpace(line)
			}

			continue
		}

		colon := strings.IndexByte(line, ':')
		if colon <= 0 {
			continue
		}

		key := textproto.CanonicalMIMEHeaderKey(strings.TrimSpace(line[:colon]))
		value := strings.TrimSpace(line[colon+1:])
		if !utf8.ValidString(value) {
			value = ""
		}

		h.Add(key, value)
		lastKey = key
	}

	return h
}

// dispositionParams extracts the attributes of a Content-Disposition value.
// It accepts unquoted values, a missing closing quote and ';' inside quotes.
// An RFC 2231 filename* takes precedence over filename.
func dispositionParams(v string) map[string]string {
	params := make(map[string]string)
	extended := ""

	for _, seg := range splitParams(v) {
		eq := strings.IndexByte(seg, '=')
		if eq < 0 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(seg[:eq]))
		value := strings.TrimSpace(seg[eq+1:])
		if strings.HasPrefix(value, `"`) {
			value = unquoteParam(value[1:])
		}

		if key == paramFilenameExt {
			if decoded, ok := decodeExtValue(value); ok {
				extended = decoded
			}

			continue
		}

		if _, seen := params[key]; !seen {
			params[key] = value
		}
	}

	if extended != "" {
		params[paramFilename] = extended
	}

	return params
}

func splitParams(v string) []string {
	var segs []string
	inQuotes := false
	start := 0

	for i := 0; i < len(v); i++ {
		switch v[i] {
		case '\\':
			if inQuotes && i+1 < len(v) && strings.IndexByte(tspecials, v[i+1]) >= 0 {
				i++
			}
		case '"':
			inQuotes = !inQuotes
		case ';':
			if !inQuotes {
				segs = append(segs, v[start:i])
				start = i + 1
			}
		}
	}

	return append(segs, v[start:])
}

// unquoteParam reads a quoted-string body (opening quote already consumed).
// A backslash escapes only tspecials, so Windows paths survive intact.
func unquoteParam(s string) string {
	var b strings.Builder

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			return b.String()
		case c == '\\' && i+1 < len(s) && strings.IndexByte(tspecials, s[i+1]) >= 0:
			i++
			b.WriteByte(s[i])
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// decodeExtValue decodes charset'lang'pct-encoded. Only UTF-8 and US-ASCII
// are understood.
func decodeExtValue(v string) (string, bool) {
	parts := strings.SplitN(v, "'", 3)
	if len(parts) != 3 {
		return "", false
	}

	charset := strings.ToLower(parts[0])
	if charset != "utf-8" && charset != "us-ascii" {
		return "", false
	}

	decoded, err := url.PathUnescape(parts[2])
	if err != nil || !utf8.ValidString(decoded) {
		return "", false
	}

	return decoded, true
}
