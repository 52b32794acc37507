package database

import (
	"context"

	"uploadgate/internal/domain/model"
)

type Writer interface {
	Write(ctx context.Context, upload *model.Upload) error
}
