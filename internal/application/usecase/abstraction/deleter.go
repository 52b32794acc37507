package abstraction

import "context"

// Deleter defines the interface for deleting an upload.
type Deleter interface {
	DeleteUpload(ctx context.Context, id, author string) (int, error)
}
