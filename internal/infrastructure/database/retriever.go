package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"uploadgate/internal/domain/model"
	"uploadgate/pkg/logger"
)

type UploadRetriever struct {
	db *Database
}

func NewUploadRetriever(db *Database) *UploadRetriever {
	return &UploadRetriever{
		db: db,
	}
}

func (r *UploadRetriever) GetByID(ctx context.Context, id string) (*model.Upload, error) {
	ctx, cancel := context.WithTimeout(ctx, r.db.QueryTimeout)
	defer cancel()

	var upload model.Upload
	err := r.db.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&upload)
	if err != nil {
		logger.Debug("failed to retrieve upload by id", "id", id, "err", err)

		return nil, err
	}

	return &upload, nil
}
