package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"timeslots-service/internal/domain/entity"
	"timeslots-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type entryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new PostgreSQL entry repository
func NewEntryRepository(pool *pgxpool.Pool) repository.EntryRepository {
	return &entryRepository{pool: pool}
}

func (r *entryRepository) Save(ctx context.Context, entry *entity.Entry) error {
	segments, err := json.Marshal(entry.Segments)
	if err != nil {
		return fmt.Errorf("failed to encode segments: %w", err)
	}

	query := `
		INSERT INTO entries (user_id, date, hours, segments, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, date) DO UPDATE SET
			hours = EXCLUDED.hours,
			segments = EXCLUDED.segments,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.pool.Exec(ctx, query,
		entry.UserID,
		entry.Date,
		entry.Hours,
		segments,
		entry.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}

	return nil
}

func (r *entryRepository) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*entity.Entry, error) {
	query := `
		SELECT user_id, date, hours, segments, updated_at
		FROM entries
		WHERE user_id = $1 AND date = $2
	`

	entry := &entity.Entry{}
	var segments []byte
	err := r.pool.QueryRow(ctx, query, userID, date).Scan(
		&entry.UserID,
		&entry.Date,
		&entry.Hours,
		&segments,
		&entry.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("entry for %s %w", date, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	if err := json.Unmarshal(segments, &entry.Segments); err != nil {
		return nil, fmt.Errorf("failed to decode segments: %w", err)
	}

	return entry, nil
}

func (r *entryRepository) GetByDateRange(ctx context.Context, userID uuid.UUID, startDate, endDate string) ([]*entity.Entry, error) {
	query := `
		SELECT user_id, date, hours, segments, updated_at
		FROM entries
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC
	`

	rows, err := r.pool.Query(ctx, query, userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries: %w", err)
	}
	defer rows.Close()

	var entries []*entity.Entry
	for rows.Next() {
		entry := &entity.Entry{}
		var segments []byte
		err := rows.Scan(
			&entry.UserID,
			&entry.Date,
			&entry.Hours,
			&segments,
			&entry.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if err := json.Unmarshal(segments, &entry.Segments); err != nil {
			return nil, fmt.Errorf("failed to decode segments: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}
