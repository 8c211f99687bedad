package repository

import (
	"context"
	"time"

	"timeslots-service/internal/domain/entity"

	"github.com/google/uuid"
)

// ReminderRepository defines the interface for reminder preference
// persistence.
type ReminderRepository interface {
	// Upsert writes the user's settings, replacing any prior values.
	Upsert(ctx context.Context, settings *entity.ReminderSettings) error

	// GetByUserID retrieves one user's settings. Wraps ErrNotFound when the
	// user never saved any.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.ReminderSettings, error)

	// GetEnabled retrieves settings for every user with reminders enabled.
	GetEnabled(ctx context.Context) ([]*entity.ReminderSettings, error)
}

// ReminderStateRepository tracks when each user's reminder last fired.
type ReminderStateRepository interface {
	// LastFired returns the time the user's reminder last fired, or the zero
	// time when it never has.
	LastFired(ctx context.Context, userID uuid.UUID) (time.Time, error)

	// SetLastFired records a fired reminder.
	SetLastFired(ctx context.Context, userID uuid.UUID, firedAt time.Time) error
}
