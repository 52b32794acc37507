package abstraction

import (
	"context"

	"uploadgate/internal/domain/dto"
	"uploadgate/internal/domain/entity"
)

type Uploader interface {
	Upload(ctx context.Context, req entity.UploadRequest) dto.UploadResult
	List(ctx context.Context) ([]string, error)
}
