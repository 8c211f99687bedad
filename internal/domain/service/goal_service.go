package service

import (
	"context"

	"timeslots-service/internal/domain/entity"

	"github.com/google/uuid"
)

// GoalService defines the business logic for the goal catalog.
type GoalService interface {
	// CreateGoal appends a goal to the user's catalog.
	CreateGoal(ctx context.Context, userID uuid.UUID, name string) (*entity.Goal, error)

	// ListGoals retrieves the catalog in insertion order.
	ListGoals(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error)

	// DeleteGoal removes a goal. Segments referencing it are not touched;
	// analytics folds them into the unassigned bucket.
	DeleteGoal(ctx context.Context, userID uuid.UUID, goalID string) error
}
