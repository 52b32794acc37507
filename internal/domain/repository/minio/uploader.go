package minio

import (
	"context"
	"io"

	"uploadgate/internal/domain/entity"
)

// Uploader mirrors a stored file into object storage.
type Uploader interface {
	UploadFile(ctx context.Context, body io.Reader, size int64, name, contentType string) (entity.MirrorResult, error)
}
