package usecase

import (
	"context"
	"errors"

	"uploadgate/internal/domain/dto"
	"uploadgate/internal/domain/repository/database"
)

var ErrRecordNotFound = errors.New("upload record not found")

// Getter implements the Getter abstraction for a single upload record.
type Getter struct {
	retriever database.Retriever
}

// NewGetter creates a new Getter usecase.
func NewGetter(retriever database.Retriever) *Getter {
	return &Getter{
		retriever: retriever,
	}
}

// GetRecord retrieves an upload record by its id.
func (g *Getter) GetRecord(ctx context.Context, id string) (*dto.UploadRecord, error) {
	upload, err := g.retriever.GetByID(ctx, id)
	if err != nil {
		return nil, ErrRecordNotFound
	}

	record := recordToDTO(upload)

	return &record, nil
}
