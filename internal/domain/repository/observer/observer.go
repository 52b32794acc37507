package observer

import (
	"context"

	"uploadgate/internal/domain/entity"
)

// Observer receives checkpoints from the upload pipeline. Implementations
// must not block for long and must not fail the upload.
type Observer interface {
	Checkpoint(ctx context.Context, cp entity.Checkpoint)
}
