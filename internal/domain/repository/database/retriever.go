package database

import (
	"context"

	"uploadgate/internal/domain/model"
)

type Retriever interface {
	GetByID(ctx context.Context, id string) (*model.Upload, error)
}
