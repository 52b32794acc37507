package database

import (
	"context"

	"uploadgate/internal/domain/model"
)

type UploadWriter struct {
	db *Database
}

func NewUploadWriter(db *Database) *UploadWriter {
	return &UploadWriter{db: db}
}

func (w *UploadWriter) Write(ctx context.Context, upload *model.Upload) error {
	ctx, cancel := context.WithTimeout(ctx, w.db.QueryTimeout)
	defer cancel()

	_, err := w.db.collection().InsertOne(ctx, upload)

	return err
}
