package service

import (
	"context"

	"timeslots-service/internal/domain/entity"

	"github.com/google/uuid"
)

// ReminderService defines the business logic for tracking reminders.
type ReminderService interface {
	// GetSettings retrieves the user's reminder preferences, falling back to
	// disabled defaults when none were ever saved.
	GetSettings(ctx context.Context, userID uuid.UUID) (*entity.ReminderSettings, error)

	// UpdateSettings replaces the user's reminder preferences.
	UpdateSettings(ctx context.Context, settings *entity.ReminderSettings) (*entity.ReminderSettings, error)

	// ProcessDueReminders fires a reminder for every enabled user whose last
	// reminder is older than their configured interval, recording the fire
	// time on success.
	ProcessDueReminders(ctx context.Context) error
}
