package database

import "context"

type Remover interface {
	RemoveByID(ctx context.Context, id string) error
}
