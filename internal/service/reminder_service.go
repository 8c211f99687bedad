package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"timeslots-service/internal/domain/entity"
	"timeslots-service/internal/domain/repository"
	"timeslots-service/internal/domain/service"
	"timeslots-service/pkg/validation"

	"github.com/google/uuid"
)

// ReminderDue reports whether a reminder should fire: the last one is at
// least one interval old. A zero lastFired means the reminder never fired
// and is due immediately.
func ReminderDue(lastFired time.Time, interval time.Duration, now time.Time) bool {
	return now.Sub(lastFired) >= interval
}

type reminderService struct {
	settingsRepo repository.ReminderRepository
	stateRepo    repository.ReminderStateRepository
	email        EmailSender
	now          func() time.Time
}

// NewReminderService creates a new reminder service.
func NewReminderService(
	settingsRepo repository.ReminderRepository,
	stateRepo repository.ReminderStateRepository,
	email EmailSender,
) service.ReminderService {
	return &reminderService{
		settingsRepo: settingsRepo,
		stateRepo:    stateRepo,
		email:        email,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *reminderService) GetSettings(ctx context.Context, userID uuid.UUID) (*entity.ReminderSettings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &entity.ReminderSettings{
				UserID:        userID,
				Enabled:       false,
				IntervalHours: entity.DefaultReminderIntervalHours,
			}, nil
		}
		return nil, err
	}

	return settings, nil
}

func (s *reminderService) UpdateSettings(ctx context.Context, settings *entity.ReminderSettings) (*entity.ReminderSettings, error) {
	if err := validation.ValidateIntervalHours(settings.IntervalHours); err != nil {
		return nil, err
	}

	if settings.Enabled && settings.Email == "" {
		return nil, validation.Errorf("email is required when reminders are enabled")
	}

	settings.UpdatedAt = s.now()

	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save reminder settings: %w", err)
	}

	return settings, nil
}

func (s *reminderService) ProcessDueReminders(ctx context.Context) error {
	enabled, err := s.settingsRepo.GetEnabled(ctx)
	if err != nil {
		return fmt.Errorf("failed to list enabled reminders: %w", err)
	}

	now := s.now()

	for _, settings := range enabled {
		lastFired, err := s.stateRepo.LastFired(ctx, settings.UserID)
		if err != nil {
			log.Printf("Failed to read last reminder time for %s: %v", settings.UserID, err)
			continue
		}

		if !ReminderDue(lastFired, settings.Interval(), now) {
			continue
		}

		if err := s.email.SendReminder(ctx, settings.Email); err != nil {
			log.Printf("Failed to send reminder to %s: %v", settings.Email, err)
			continue
		}

		if err := s.stateRepo.SetLastFired(ctx, settings.UserID, now); err != nil {
			log.Printf("Failed to record reminder time for %s: %v", settings.UserID, err)
			continue
		}

		log.Printf("Sent reminder for user %s", settings.UserID)
	}

	return nil
}
