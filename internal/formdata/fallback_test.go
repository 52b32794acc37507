package formdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackIsPermissive(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		filename    string
		content     string
	}{
		{
			name:        "missing closing boundary",
			body:        "--XYZ\r\nContent-Disposition: form-data; name=\"file\"; filename=\"a.txt\"\r\n\r\nhello",
			contentType: "multipart/form-data; boundary=XYZ",
			filename:    "a.txt",
			content:     "hello",
		},
		{
			name:        "single quoted boundary",
			body:        "--XYZ\r\nContent-Disposition: form-data; name=\"file\"; filename=\"a.txt\"\r\n\r\nhello\r\n--XYZ--\r\n",
			contentType: "multipart/form-data; boundary='XYZ'",
			filename:    "a.txt",
			content:     "hello",
		},
		{
			name:        "bare line feeds and unquoted attributes",
			body:        "--XYZ\nContent-Disposition: form-data; name=file; filename=b.txt\n\nhi there\n--XYZ--\n",
			contentType: "multipart/form-data; boundary=XYZ",
			filename:    "b.txt",
			content:     "hi there",
		},
		{
			name:        "malformed part before the file is skipped",
			body:        "--XYZ\r\ngarbage without separator\r\n" +
				"--XYZ\r\nContent-Disposition: form-data; name=\"file\"; filename=\"c.txt\"\r\n\r\nok\r\n--XYZ--",
			contentType: "multipart/form-data; boundary=XYZ",
			filename:    "c.txt",
			content:     "ok",
		},
		{
			name:        "duplicate parameters keep the first",
			body:        "--XYZ\r\nContent-Disposition: form-data; name=\"file\"; filename=\"first.txt\"; " +
				"filename=\"second.txt\"\r\n\r\nx\r\n--XYZ--\r\n",
			contentType: "multipart/form-data; boundary=XYZ",
			filename:    "first.txt",
			content:     "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filename, content, err := NewFallback().ExtractFile(rawBody([]byte(tt.body)), tt.contentType)
			require.NoError(t, err)
			assert.Equal(t, tt.filename, filename)
			assert.Equal(t, tt.content, string(content))
		})
	}
}

func TestFallbackFailures(t *testing.T) {
	t.Run("no boundary", func(t *testing.T) {
		filename, content, err := NewFallback().ExtractFile(rawBody([]byte("--XYZ\r\n")), "text/plain")
		require.ErrorIs(t, err, ErrMissingBoundary)
		assert.Empty(t, filename)
		assert.Nil(t, content)
	})

	t.Run("only form fields", func(t *testing.T) {
		body, ct := buildBody(t, "XYZ", []formField{{name: "foo", value: "bar"}})

		parts, err := NewFallback().Decode(rawBody(body), ct)
		require.ErrorIs(t, err, ErrNoFileFound)
		require.Len(t, parts, 1)
		assert.Equal(t, "bar", string(parts[0].Content))
	})

	t.Run("no delimiter in body", func(t *testing.T) {
		_, _, err := NewFallback().ExtractFile(rawBody([]byte("garbage")), "multipart/form-data; boundary=XYZ")
		require.ErrorIs(t, err, ErrNoFileFound)
	})

	t.Run("empty filename is a field", func(t *testing.T) {
		body := "--XYZ\r\nContent-Disposition: form-data; name=\"file\"; filename=\"\"\r\n\r\nx\r\n--XYZ--"
		_, _, err := NewFallback().ExtractFile(rawBody([]byte(body)), "multipart/form-data; boundary=XYZ")
		require.ErrorIs(t, err, ErrNoFileFound)
	})
}

func TestFindFilePrefersField(t *testing.T) {
	parts := []Part{
		{Headers: PartHeaders{FieldName: "avatar", Filename: "a.png"}},
		{Headers: PartHeaders{FieldName: "file", Filename: "b.png"}},
	}

	p, ok := FindFile(parts, "file")
	require.True(t, ok)
	assert.Equal(t, "b.png", p.Headers.Filename)

	p, ok = FindFile(parts, "missing")
	require.True(t, ok)
	assert.Equal(t, "a.png", p.Headers.Filename)

	_, ok = FindFile(nil, "")
	assert.False(t, ok)
}
