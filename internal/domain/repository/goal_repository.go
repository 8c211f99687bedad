package repository

import (
	"context"
	"timeslots-service/internal/domain/entity"

	"github.com/google/uuid"
)

// GoalRepository defines the interface for goal catalog persistence.
type GoalRepository interface {
	// Create appends a goal to the user's catalog, assigning the next
	// insertion-order position.
	Create(ctx context.Context, goal *entity.Goal) error

	// GetByUserID retrieves the user's catalog in insertion order.
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error)

	// Delete removes a goal from the catalog. Historical entries referencing
	// it are left untouched.
	Delete(ctx context.Context, userID uuid.UUID, goalID string) error
}
