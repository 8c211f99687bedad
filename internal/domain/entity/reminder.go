package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultReminderIntervalHours applies when a user has never saved
// reminder settings.
const DefaultReminderIntervalHours = 2

// ReminderSettings are a user's tracking-reminder preferences.
type ReminderSettings struct {
	UserID        uuid.UUID
	Email         string
	Enabled       bool
	IntervalHours int
	UpdatedAt     time.Time
}

// Interval returns the reminder interval as a duration.
func (s *ReminderSettings) Interval() time.Duration {
	return time.Duration(s.IntervalHours) * time.Hour
}
