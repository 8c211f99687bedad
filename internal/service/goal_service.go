package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"timeslots-service/internal/domain/entity"
	"timeslots-service/internal/domain/repository"
	"timeslots-service/internal/domain/service"
	"timeslots-service/pkg/validation"

	"github.com/google/uuid"
)

type goalService struct {
	goalRepo repository.GoalRepository
	events   EventPublisher
}

// NewGoalService creates a new goal service.
func NewGoalService(goalRepo repository.GoalRepository, events EventPublisher) service.GoalService {
	return &goalService{
		goalRepo: goalRepo,
		events:   events,
	}
}

func (s *goalService) CreateGoal(ctx context.Context, userID uuid.UUID, name string) (*entity.Goal, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	goal := &entity.Goal{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishGoalCreated(ctx, userID, goal.ID, goal.Name); err != nil {
			log.Printf("Failed to publish goal created event: %v", err)
		}
	}

	return goal, nil
}

func (s *goalService) ListGoals(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	return s.goalRepo.GetByUserID(ctx, userID)
}

func (s *goalService) DeleteGoal(ctx context.Context, userID uuid.UUID, goalID string) error {
	// No cascade: entries keep their goalId and analytics folds the orphaned
	// references into the unassigned bucket.
	return s.goalRepo.Delete(ctx, userID, goalID)
}
