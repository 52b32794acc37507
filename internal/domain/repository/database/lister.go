package database

import (
	"context"
	"time"

	"uploadgate/internal/domain/model"
)

// Lister defines the interface for listing upload records from the database.
type Lister interface {
	List(ctx context.Context, since *time.Time, limit int64) ([]model.Upload, error)
}
