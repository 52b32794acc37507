package usecase

import (
	"context"
	"errors"
	"net/http"

	"uploadgate/internal/domain/repository/database"
	"uploadgate/internal/domain/repository/minio"
	"uploadgate/internal/domain/repository/storage"
	"uploadgate/pkg/logger"
)

// Deleter implements the Deleter abstraction for removing an upload.
type Deleter struct {
	dbRetriever  database.Retriever
	dbRemover    database.Remover
	files        storage.Files
	minioRemover minio.Remover
}

// NewDeleter creates a new Deleter usecase. minioRemover may be nil when
// mirroring is disabled.
func NewDeleter(dbRetriever database.Retriever, dbRemover database.Remover, files storage.Files,
	minioRemover minio.Remover,
) *Deleter {
	return &Deleter{
		dbRetriever:  dbRetriever,
		dbRemover:    dbRemover,
		files:        files,
		minioRemover: minioRemover,
	}
}

// DeleteUpload removes the stored file, its mirror and its record. The
// caller must be the author of the upload when the record names one. The
// stored file is only removed while it still holds the recorded content: a
// later upload under the same name keeps its file.
func (d *Deleter) DeleteUpload(ctx context.Context, id, author string) (int, error) {
	upload, err := d.dbRetriever.GetByID(ctx, id)
	if err != nil {
		return http.StatusNotFound, ErrRecordNotFound
	}

	if upload.Author != "" && upload.Author != author {
		return http.StatusForbidden, errors.New("upload belongs to another author")
	}

	d.removeFile(ctx, upload.ID, upload.Name, upload.Sha256)

	if upload.MirrorKey != "" && d.minioRemover != nil {
		if err := d.minioRemover.Remove(ctx, upload.MirrorBucket, upload.MirrorKey); err != nil {
			return http.StatusInternalServerError, errors.New("failed to remove mirrored object")
		}
	}

	if err := d.dbRemover.RemoveByID(ctx, id); err != nil {
		return http.StatusInternalServerError, errors.New("failed to remove upload record")
	}

	return http.StatusOK, nil
}

func (d *Deleter) removeFile(ctx context.Context, id, name, sha256 string) {
	digest, err := d.files.Digest(ctx, name)
	if err != nil {
		logger.Warn("stored file already gone", "id", id, "name", name, "err", err)

		return
	}

	if digest != sha256 {
		logger.Info("stored file was replaced by a later upload, keeping it", "id", id, "name", name)

		return
	}

	if err := d.files.Remove(ctx, name); err != nil {
		logger.Warn("can't remove stored file", "id", id, "name", name, "err", err)
	}
}
