package repository

import (
	"context"
	"timeslots-service/internal/domain/entity"

	"github.com/google/uuid"
)

// EntryRepository defines the interface for per-date entry persistence.
// Entries are one document per (user, date): saves overwrite the whole
// record, there is no partial patching.
type EntryRepository interface {
	// Save writes the complete entry for its date, replacing any prior state.
	Save(ctx context.Context, entry *entity.Entry) error

	// GetByDate retrieves the entry for one date. Wraps ErrNotFound when the
	// date has no entry.
	GetByDate(ctx context.Context, userID uuid.UUID, date string) (*entity.Entry, error)

	// GetByDateRange retrieves all entries with startDate <= date <= endDate,
	// in chronological order. Dates without entries are simply absent.
	GetByDateRange(ctx context.Context, userID uuid.UUID, startDate, endDate string) ([]*entity.Entry, error)
}
