package service

import (
	"context"

	"timeslots-service/internal/domain/entity"

	"github.com/google/uuid"
)

// TemplateService defines the business logic for day templates.
type TemplateService interface {
	// CaptureTemplate snapshots the named date's layout as a reusable
	// template, stripping day-specific segment ids.
	CaptureTemplate(ctx context.Context, userID uuid.UUID, name, date string) (*entity.Template, error)

	// ListTemplates retrieves the user's templates in creation order.
	ListTemplates(ctx context.Context, userID uuid.UUID) ([]*entity.Template, error)

	// ApplyTemplate overwrites the target date with the template's layout,
	// assigning fresh sequential segment ids. When the existing day carries
	// user data the overwrite must be confirmed.
	ApplyTemplate(ctx context.Context, userID uuid.UUID, templateID, date string, confirm bool) (*entity.Entry, error)

	// DeleteTemplate removes a template from the catalog.
	DeleteTemplate(ctx context.Context, userID uuid.UUID, templateID string) error
}
