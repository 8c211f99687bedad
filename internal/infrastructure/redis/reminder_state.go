package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"timeslots-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lastFiredPrefix = "reminder:last:"

// ReminderStateStorage tracks last-fired reminder timestamps in Redis.
// Losing the key is harmless; the user just gets the next reminder a little
// early.
type ReminderStateStorage struct {
	client *redis.Client
}

// NewReminderStateStorage creates a new reminder state storage
func NewReminderStateStorage(client *redis.Client) repository.ReminderStateRepository {
	return &ReminderStateStorage{
		client: client,
	}
}

func (s *ReminderStateStorage) lastFiredKey(userID uuid.UUID) string {
	return lastFiredPrefix + userID.String()
}

// LastFired returns when the user's reminder last fired. A missing key
// reads as the zero time, which makes the reminder immediately due.
func (s *ReminderStateStorage) LastFired(ctx context.Context, userID uuid.UUID) (time.Time, error) {
	value, err := s.client.Get(ctx, s.lastFiredKey(userID)).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get last reminder time: %w", err)
	}

	seconds, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid last reminder time %q: %w", value, err)
	}

	return time.Unix(seconds, 0).UTC(), nil
}

// SetLastFired records a fired reminder as unix seconds.
func (s *ReminderStateStorage) SetLastFired(ctx context.Context, userID uuid.UUID, firedAt time.Time) error {
	err := s.client.Set(ctx, s.lastFiredKey(userID), strconv.FormatInt(firedAt.Unix(), 10), 0).Err()
	if err != nil {
		return fmt.Errorf("failed to store last reminder time: %w", err)
	}
	return nil
}
