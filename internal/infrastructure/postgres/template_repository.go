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

type templateRepository struct {
	pool *pgxpool.Pool
}

// NewTemplateRepository creates a new PostgreSQL template repository
func NewTemplateRepository(pool *pgxpool.Pool) repository.TemplateRepository {
	return &templateRepository{pool: pool}
}

func (r *templateRepository) Create(ctx context.Context, template *entity.Template) error {
	segments, err := json.Marshal(template.Segments)
	if err != nil {
		return fmt.Errorf("failed to encode segments: %w", err)
	}

	query := `
		INSERT INTO templates (id, user_id, name, hours, segments, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.pool.Exec(ctx, query,
		template.ID,
		template.UserID,
		template.Name,
		template.Hours,
		segments,
		template.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}

	return nil
}

func (r *templateRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Template, error) {
	query := `
		SELECT id, user_id, name, hours, segments, created_at
		FROM templates
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get templates: %w", err)
	}
	defer rows.Close()

	var templates []*entity.Template
	for rows.Next() {
		template := &entity.Template{}
		var segments []byte
		err := rows.Scan(
			&template.ID,
			&template.UserID,
			&template.Name,
			&template.Hours,
			&segments,
			&template.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		if err := json.Unmarshal(segments, &template.Segments); err != nil {
			return nil, fmt.Errorf("failed to decode segments: %w", err)
		}
		templates = append(templates, template)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate templates: %w", err)
	}

	return templates, nil
}

func (r *templateRepository) GetByID(ctx context.Context, userID uuid.UUID, templateID string) (*entity.Template, error) {
	query := `
		SELECT id, user_id, name, hours, segments, created_at
		FROM templates
		WHERE id = $1 AND user_id = $2
	`

	template := &entity.Template{}
	var segments []byte
	err := r.pool.QueryRow(ctx, query, templateID, userID).Scan(
		&template.ID,
		&template.UserID,
		&template.Name,
		&template.Hours,
		&segments,
		&template.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("template %s %w", templateID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	if err := json.Unmarshal(segments, &template.Segments); err != nil {
		return nil, fmt.Errorf("failed to decode segments: %w", err)
	}

	return template, nil
}

func (r *templateRepository) Delete(ctx context.Context, userID uuid.UUID, templateID string) error {
	query := `DELETE FROM templates WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, templateID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("template %s %w", templateID, repository.ErrNotFound)
	}

	return nil
}
