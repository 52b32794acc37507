package abstraction

import (
	"context"

	"uploadgate/internal/domain/dto"
)

// Getter defines the interface for retrieving an upload record.
type Getter interface {
	GetRecord(ctx context.Context, id string) (*dto.UploadRecord, error)
}
