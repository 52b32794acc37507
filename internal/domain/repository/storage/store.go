package storage

import (
	"context"

	"uploadgate/internal/domain/entity"
)

// Writer persists file content under a sanitized name. Implementations must
// never expose a partially written file under that name.
type Writer interface {
	Save(ctx context.Context, name string, content []byte) (entity.StoredFile, error)
}

type Lister interface {
	List(ctx context.Context) ([]string, error)
}

type Remover interface {
	Remove(ctx context.Context, name string) error
}

// Digester returns the hex sha256 of a stored file's current content.
type Digester interface {
	Digest(ctx context.Context, name string) (string, error)
}

// Files is what deleting an upload needs from the store.
type Files interface {
	Remover
	Digester
}
