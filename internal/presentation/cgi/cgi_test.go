package cgi

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uploadgate/internal/application/usecase"
	"uploadgate/internal/infrastructure/disk"
	"uploadgate/internal/presentation/handler"
)

func newHandler(t *testing.T) (http.Handler, string) {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "www", "uploads")
	uploader := usecase.NewUploader(&usecase.UploaderConfig{}, nil, disk.New(&disk.Config{Dir: dir}), nil,
		usecase.Archive{})

	return Handler(handler.NewUploadHandler(uploader, http.MethodPost)), dir
}

func TestCGIUpload(t *testing.T) {
	h, dir := newHandler(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.SetBoundary("XYZ"))
	part, err := w.CreateFormFile("file", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/cgi-bin/upload.py", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, `{
  "status": "success",
  "files": [
    {
      "name": "notes.txt",
      "size": 5,
      "path": "`+filepath.Join(dir, "notes.txt")+`"
    }
  ]
}
`, rec.Body.String())

	stored, err := os.ReadFile(filepath.Join(dir, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(stored))
}

func TestCGIMethodNotAllowed(t *testing.T) {
	h, _ := newHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cgi-bin/upload.py", http.NoBody))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "{\n  \"status\": \"error\""))
	assert.Contains(t, rec.Body.String(), handler.MsgMethodNotAllowed)
}

func TestCGINoFile(t *testing.T) {
	h, _ := newHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/cgi-bin/upload.py", strings.NewReader("plain body"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), usecase.MsgNoFile)
}
