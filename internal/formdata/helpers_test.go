package formdata

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
)

type formField struct {
	name  string
	value string
}

type formFile struct {
	field    string
	filename string
	content  []byte
}

// buildBody writes a well-formed multipart body with the standard library
// writer and returns it with its content type.
func buildBody(t *testing.T, boundary string, fields []formField, files ...formFile) ([]byte, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.SetBoundary(boundary))

	for _, f := range fields {
		require.NoError(t, w.WriteField(f.name, f.value))
	}

	for _, f := range files {
		fw, err := w.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = fw.Write(f.content)
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())

	return buf.Bytes(), w.FormDataContentType()
}

func rawBody(b []byte) RawBody {
	return RawBody{Bytes: b, Declared: int64(len(b))}
}

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
