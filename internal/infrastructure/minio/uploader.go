package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"uploadgate/internal/domain/entity"
	"uploadgate/pkg/logger"
	"uploadgate/pkg/utils"
)

type Uploader struct {
	minioClient *minio.Client
	cfg         *UploaderConfig
}

func NewUploader(minioClient *minio.Client, config *UploaderConfig) *Uploader {
	return &Uploader{
		minioClient: minioClient,
		cfg:         config,
	}
}

// UploadFile puts a copy of a stored file into the mirror bucket under a
// fresh object key. An empty contentType is sniffed from the first bytes.
func (u *Uploader) UploadFile(ctx context.Context, body io.Reader, size int64, name, contentType string,
) (entity.MirrorResult, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(u.cfg.Timeout)*time.Millisecond)
	defer cancel()

	if contentType == "" {
		detected, reader, err := sniff(body)
		if err != nil {
			return entity.MirrorResult{}, fmt.Errorf("read error: %w", err)
		}

		contentType, body = detected, reader
	}

	key := objectKey(name, contentType)

	info, err := u.minioClient.PutObject(ctx, u.cfg.Bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"original-name": name,
		},
	})
	if err != nil {
		logger.Error("failed to upload object", "bucket", u.cfg.Bucket, "key", key, "err", err)

		return entity.MirrorResult{}, fmt.Errorf("object upload failed: %w", err)
	}

	if size >= 0 && info.Size != size {
		return entity.MirrorResult{}, fmt.Errorf("file size mismatch: wrote %d bytes, expected %d", info.Size, size)
	}

	return entity.MirrorResult{
		Size:     info.Size,
		Type:     contentType,
		Location: fmt.Sprintf("%s/%s/%s", u.address(), u.cfg.Bucket, key),
		Bucket:   u.cfg.Bucket,
		Key:      key,
	}, nil
}

func (u *Uploader) address() string {
	if u.cfg.Address != "" {
		return strings.TrimRight(u.cfg.Address, "/")
	}

	return strings.TrimRight(u.minioClient.EndpointURL().String(), "/")
}

// objectKey keeps the stored extension when there is one and falls back to
// the extension of the detected type.
func objectKey(name, contentType string) string {
	ext := utils.Extension(name)
	if ext == "" || ext == "." {
		ext = utils.GetExtensionFromMimeType(contentType)
	}

	return uuid.NewString() + ext
}

func sniff(body io.Reader) (string, io.Reader, error) {
	header := make([]byte, 3072)

	n, err := io.ReadFull(body, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, err
	}

	header = header[:n]

	return mimetype.Detect(header).String(), io.MultiReader(bytes.NewReader(header), body), nil
}
