package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"uploadgate/internal/domain/dto"
	"uploadgate/internal/domain/repository/database"
)

// Lister implements the Lister abstraction for upload records.
type Lister struct {
	lister database.Lister
}

// NewLister creates a new Lister usecase.
func NewLister(lister database.Lister) *Lister {
	return &Lister{
		lister: lister,
	}
}

// ListRecords returns the most recent upload records, newest first,
// optionally limited to those uploaded at or after since.
func (l *Lister) ListRecords(ctx context.Context, since *time.Time, limit int64) ([]dto.UploadRecord, int, error) {
	uploads, err := l.lister.List(ctx, since, limit)
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("failed to retrieve upload records")
	}

	records := make([]dto.UploadRecord, 0, len(uploads))
	for i := range uploads {
		records = append(records, recordToDTO(&uploads[i]))
	}

	return records, http.StatusOK, nil
}
