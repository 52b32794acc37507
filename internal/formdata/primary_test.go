package formdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimaryDecode(t *testing.T) {
	content := append(append([]byte{}, pngSignature...), []byte("\r\n--XYZnot a marker\r\n")...)
	body, ct := buildBody(t, "XYZ",
		[]formField{{name: "foo", value: "bar"}},
		formFile{field: "file", filename: "test.png", content: content},
	)

	parts, err := NewPrimary().Decode(rawBody(body), ct)
	require.NoError(t, err)
	require.Len(t, parts, 2)

	assert.Equal(t, "foo", parts[0].Headers.FieldName)
	assert.False(t, parts[0].Headers.IsFile())
	assert.Equal(t, "bar", string(parts[0].Content))

	assert.Equal(t, "file", parts[1].Headers.FieldName)
	assert.Equal(t, "test.png", parts[1].Headers.Filename)
	assert.Equal(t, "application/octet-stream", parts[1].Headers.ContentType)
	assert.Equal(t, content, parts[1].Content)
}

func TestPrimaryKeepsRawFilename(t *testing.T) {
	body, ct := buildBody(t, "XYZ", nil,
		formFile{field: "file", filename: "../../etc/passwd", content: []byte("root")})

	parts, err := NewPrimary().Decode(rawBody(body), ct)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "../../etc/passwd", parts[0].Headers.Filename)
}

func TestPrimaryDoesNotTranslateTransferEncoding(t *testing.T) {
	body := "--XYZ\r\n" +
		"Content-Disposition: form-data; name=\"file\"; filename=\"q.txt\"\r\n" +
		"Content-Transfer-Encoding: quoted-printable\r\n\r\n" +
		"a=3Db\r\n" +
		"--XYZ--\r\n"

	parts, err := NewPrimary().Decode(rawBody([]byte(body)), "multipart/form-data; boundary=XYZ")
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "a=3Db", string(parts[0].Content))
}

func TestPrimaryDecodeFailures(t *testing.T) {
	valid, ct := buildBody(t, "XYZ", nil, formFile{field: "file", filename: "a.txt", content: []byte("hello")})

	tests := []struct {
		name        string
		body        RawBody
		contentType string
		missing     bool
	}{
		{
			name:        "not multipart",
			body:               rawBody(valid),
			contentType: "application/octet-stream",
			missing:     true,
		},
		{
			name:        "unparsable content type",
			body:               rawBody(valid),
			contentType: "multipart/form-data; boundary",
		},
		{
			name:        "truncated body",
			body:               RawBody{Bytes: valid[:len(valid)-10], Declared: int64(len(valid))},
			contentType: ct,
		},
		{
			name:        "missing closing boundary",
			body:        rawBody([]byte("--XYZ\r\nContent-Disposition: form-data; name=\"file\"; " +
				"filename=\"a.txt\"\r\n\r\nhello")),
			contentType: "multipart/form-data; boundary=XYZ",
		},
		{
			name:        "no parts",
			body:               rawBody([]byte("--XYZ--\r\n")),
			contentType: "multipart/form-data; boundary=XYZ",
		},
		{
			name:        "boundary never appears",
			body:               rawBody([]byte("random payload without markers")),
			contentType: "multipart/form-data; boundary=XYZ",
		},
		{
			name:        "duplicate disposition parameter",
			body:        rawBody([]byte("--XYZ\r\nContent-Disposition: form-data; name=\"a\"; name=\"b\"\r\n\r\n" +
				"x\r\n--XYZ--\r\n")),
			contentType: "multipart/form-data; boundary=XYZ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, err := NewPrimary().Decode(tt.body, tt.contentType)
			require.ErrorIs(t, err, ErrDecodeFailed)
			assert.Nil(t, parts)
			if tt.missing {
				assert.ErrorIs(t, err, ErrMissingBoundary)
			}
		})
	}
}

func TestPrimaryUnknownLength(t *testing.T) {
	body, ct := buildBody(t, "XYZ", nil, formFile{field: "file", filename: "a.txt", content: []byte("hello")})

	parts, err := NewPrimary().Decode(RawBody{Bytes: body, Declared: -1}, ct)
	require.NoError(t, err)
	require.Len(t, parts, 1)
}
