package postgres

import (
	"context"
	"fmt"

	"timeslots-service/internal/domain/entity"
	"timeslots-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type goalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new PostgreSQL goal repository
func NewGoalRepository(pool *pgxpool.Pool) repository.GoalRepository {
	return &goalRepository{pool: pool}
}

func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	// New goals go to the end of the user's catalog; position fixes the
	// order analytics uses for ties.
	query := `
		INSERT INTO goals (id, user_id, name, position, created_at)
		VALUES ($1, $2, $3,
			(SELECT COALESCE(MAX(position) + 1, 0) FROM goals WHERE user_id = $2),
			$4)
		RETURNING position
	`

	err := r.pool.QueryRow(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Name,
		goal.CreatedAt,
	).Scan(&goal.Position)

	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}

	return nil
}

func (r *goalRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	query := `
		SELECT id, user_id, name, position, created_at
		FROM goals
		WHERE user_id = $1
		ORDER BY position ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get goals: %w", err)
	}
	defer rows.Close()

	var goals []*entity.Goal
	for rows.Next() {
		goal := &entity.Goal{}
		err := rows.Scan(
			&goal.ID,
			&goal.UserID,
			&goal.Name,
			&goal.Position,
			&goal.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate goals: %w", err)
	}

	return goals, nil
}

func (r *goalRepository) Delete(ctx context.Context, userID uuid.UUID, goalID string) error {
	query := `DELETE FROM goals WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, goalID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("goal %s %w", goalID, repository.ErrNotFound)
	}

	return nil
}
