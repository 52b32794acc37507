package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"uploadgate/internal/domain/model"
	"uploadgate/pkg/logger"
)

type UploadLister struct {
	db *Database
}

func NewUploadLister(db *Database) *UploadLister {
	return &UploadLister{
		db: db,
	}
}

// List returns upload records newest first. A nil since means no lower
// bound; a limit of zero or less means no limit.
func (l *UploadLister) List(ctx context.Context, since *time.Time, limit int64) ([]model.Upload, error) {
	ctx, cancel := context.WithTimeout(ctx, l.db.QueryTimeout)
	defer cancel()

	filter := bson.M{}
	if since != nil {
		filter["upload_time"] = bson.M{"$gte": *since}
	}

	opts := options.Find().SetSort(bson.D{{Key: "upload_time", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := l.db.collection().Find(ctx, filter, opts)
	if err != nil {
		logger.Error("failed to list uploads", "err", err)

		return nil, err
	}
	defer cursor.Close(ctx)

	uploads := []model.Upload{}
	if err = cursor.All(ctx, &uploads); err != nil {
		logger.Error("failed to decode uploads", "err", err)

		return nil, err
	}

	return uploads, nil
}
