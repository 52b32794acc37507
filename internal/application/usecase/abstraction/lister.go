package abstraction

import (
	"context"
	"time"

	"uploadgate/internal/domain/dto"
)

type Lister interface {
	ListRecords(ctx context.Context, since *time.Time, limit int64) ([]dto.UploadRecord, int, error)
}
