package formdata

import "bytes"

// SplitParts cuts body into raw parts delimited by delimiter ("--" + token).
//
// Only boundary-aligned occurrences count as markers: the delimiter must start
// the body or a line, and be followed by a line break, "--", padding or the end
// of input. The first marker line fixes the line break style: once it ends in
// CRLF, later markers must follow a CRLF, and a delimiter after a bare LF is
// content. Anything else is content and is stepped over in the same forward
// pass. The returned slices alias body.
func SplitParts(body, delimiter []byte) [][]byte {
	if len(delimiter) == 0 {
		return nil
	}

	var parts [][]byte
	start := -1
	offset := 0
	crlf := false

	for {
		i := indexMarker(body, delimiter, offset, crlf)
		if i < 0 {
			break
		}

		end := i + len(delimiter)
		if start < 0 {
			crlf = endsInCRLF(body[end:])
		} else if part := trimPart(body[start:i]); len(part) > 0 {
			parts = append(parts, part)
		}

		if bytes.HasPrefix(body[end:], []byte("--")) {
			return parts
		}

		start = end
		offset = end
	}

	// no closing marker: keep what followed the last one
	if start >= 0 && start < len(body) {
		if part := trimPart(body[start:]); len(part) > 0 {
			parts = append(parts, part)
		}
	}

	return parts
}

func indexMarker(body, delimiter []byte, offset int, crlf bool) int {
	for offset < len(body) {
		j := bytes.Index(body[offset:], delimiter)
		if j < 0 {
			return -1
		}

		p := offset + j
		if isAligned(body, p, p+len(delimiter), crlf) {
			return p
		}

		offset = p + 1
	}

	return -1
}

func isAligned(body []byte, start, end int, crlf bool) bool {
	if start > 0 && body[start-1] != '\n' {
		return false
	}
	if crlf && (start < 2 || body[start-2] != '\r') {
		return false
	}
	if end == len(body) {
		return true
	}

	switch body[end] {
	case '\r', '\n', ' ', '\t':
		return true
	}

	return bytes.HasPrefix(body[end:], []byte("--"))
}

// endsInCRLF reports whether the rest of a marker line, after optional
// padding, ends in CRLF.
func endsInCRLF(rest []byte) bool {
	rest = bytes.TrimLeft(rest, " \t")

	return bytes.HasPrefix(rest, []byte("\r\n"))
}

// trimPart drops the remainder of the delimiter line and the single line
// break that precedes the next marker.
func trimPart(seg []byte) []byte {
	if nl := bytes.IndexByte(seg, '\n'); nl >= 0 && len(bytes.TrimSpace(seg[:nl])) == 0 {
		seg = seg[nl+1:]
	} else if len(bytes.TrimSpace(seg)) == 0 {
		return nil
	}

	if bytes.HasSuffix(seg, []byte("\r\n")) {
		return seg[:len(seg)-2]
	}

	return bytes.TrimSuffix(seg, []byte("\n"))
}
