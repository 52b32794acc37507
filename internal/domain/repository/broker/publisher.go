package broker

import (
	"context"

	"uploadgate/internal/domain/dto"
)

// Publisher announces stored uploads on the event stream.
type Publisher interface {
	PublishUpload(ctx context.Context, record dto.UploadRecord) error
}
