package postgres

import (
	"context"
	"errors"
	"fmt"

	"timeslots-service/internal/domain/entity"
	"timeslots-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type reminderRepository struct {
	pool *pgxpool.Pool
}

// NewReminderRepository creates a new PostgreSQL reminder settings repository
func NewReminderRepository(pool *pgxpool.Pool) repository.ReminderRepository {
	return &reminderRepository{pool: pool}
}

func (r *reminderRepository) Upsert(ctx context.Context, settings *entity.ReminderSettings) error {
	query := `
		INSERT INTO reminder_settings (user_id, email, enabled, interval_hours, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			email = EXCLUDED.email,
			enabled = EXCLUDED.enabled,
			interval_hours = EXCLUDED.interval_hours,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		settings.UserID,
		settings.Email,
		settings.Enabled,
		settings.IntervalHours,
		settings.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save reminder settings: %w", err)
	}

	return nil
}

func (r *reminderRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.ReminderSettings, error) {
	query := `
		SELECT user_id, email, enabled, interval_hours, updated_at
		FROM reminder_settings
		WHERE user_id = $1
	`

	settings := &entity.ReminderSettings{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&settings.UserID,
		&settings.Email,
		&settings.Enabled,
		&settings.IntervalHours,
		&settings.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("reminder settings %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get reminder settings: %w", err)
	}

	return settings, nil
}

func (r *reminderRepository) GetEnabled(ctx context.Context) ([]*entity.ReminderSettings, error) {
	query := `
		SELECT user_id, email, enabled, interval_hours, updated_at
		FROM reminder_settings
		WHERE enabled = TRUE
		ORDER BY user_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get enabled reminders: %w", err)
	}
	defer rows.Close()

	var enabled []*entity.ReminderSettings
	for rows.Next() {
		settings := &entity.ReminderSettings{}
		err := rows.Scan(
			&settings.UserID,
			&settings.Email,
			&settings.Enabled,
			&settings.IntervalHours,
			&settings.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder settings: %w", err)
		}
		enabled = append(enabled, settings)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminder settings: %w", err)
	}

	return enabled, nil
}
