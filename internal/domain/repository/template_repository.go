package repository

import (
	"context"
	"timeslots-service/internal/domain/entity"

	"github.com/google/uuid"
)

// TemplateRepository defines the interface for the append-only template
// catalog.
type TemplateRepository interface {
	// Create appends a template to the user's catalog.
	Create(ctx context.Context, template *entity.Template) error

	// GetByUserID retrieves the user's templates in creation order.
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Template, error)

	// GetByID retrieves one template, scoped to its owner.
	GetByID(ctx context.Context, userID uuid.UUID, templateID string) (*entity.Template, error)

	// Delete removes a template. Days previously created from it keep no
	// back-reference and are unaffected.
	Delete(ctx context.Context, userID uuid.UUID, templateID string) error
}
