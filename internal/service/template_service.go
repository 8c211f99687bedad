package service

import (
	"context"
	"errors"
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

// CaptureSegments strips day-specific ids from a segment list, producing
// the records stored in a template.
func CaptureSegments(segments []entity.Segment) []entity.TemplateSegment {
	captured := make([]entity.TemplateSegment, len(segments))
	for i, seg := range segments {
		captured[i] = entity.TemplateSegment{
			Start:     seg.Start,
			End:       seg.End,
			Duration:  seg.Duration,
			IsPartial: seg.IsPartial,
			Activity:  seg.Activity,
			GoalID:    seg.GoalID,
		}
	}
	return captured
}

// MaterializeSegments turns a template's records back into day segments,
// assigning fresh sequential ids 1..N in the stored order.
func MaterializeSegments(captured []entity.TemplateSegment) []entity.Segment {
	segments := make([]entity.Segment, len(captured))
	for i, seg := range captured {
		segments[i] = entity.Segment{
			ID:        i + 1,
			Start:     seg.Start,
			End:       seg.End,
			Duration:  seg.Duration,
			IsPartial: seg.IsPartial,
			Activity:  seg.Activity,
			GoalID:    seg.GoalID,
		}
	}
	return segments
}

type templateService struct {
	templateRepo repository.TemplateRepository
	tracker      service.TrackerService
	events       EventPublisher
}

// NewTemplateService creates a new template service.
func NewTemplateService(
	templateRepo repository.TemplateRepository,
	tracker service.TrackerService,
	events EventPublisher,
) service.TemplateService {
	return &templateService{
		templateRepo: templateRepo,
		tracker:      tracker,
		events:       events,
	}
}

func (s *templateService) CaptureTemplate(ctx context.Context, userID uuid.UUID, name, date string) (*entity.Template, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	entry, err := s.tracker.GetEntry(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	if len(entry.Segments) == 0 {
		return nil, validation.Errorf("nothing to capture: %s has no segments", date)
	}

	template := &entity.Template{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		Hours:     entry.Hours,
		Segments:  CaptureSegments(entry.Segments),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.templateRepo.Create(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	return template, nil
}

func (s *templateService) ListTemplates(ctx context.Context, userID uuid.UUID) ([]*entity.Template, error) {
	return s.templateRepo.GetByUserID(ctx, userID)
}

func (s *templateService) ApplyTemplate(ctx context.Context, userID uuid.UUID, templateID, date string, confirm bool) (*entity.Entry, error) {
	if err := validation.ValidateDate(date); err != nil {
		return nil, err
	}

	template, err := s.templateRepo.GetByID(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}

	if !confirm {
		existing, err := s.tracker.GetEntry(ctx, userID, date)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to check existing entry: %w", err)
		}
		if existing != nil && existing.HasUserData() {
			return nil, service.ErrExistingData
		}
	}

	entry, err := s.tracker.SaveEntry(ctx, userID, date, template.Hours, MaterializeSegments(template.Segments))
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		if err := s.events.PublishTemplateApplied(ctx, userID, template.ID, date); err != nil {
			log.Printf("Failed to publish template applied event: %v", err)
		}
	}

	return entry, nil
}

func (s *templateService) DeleteTemplate(ctx context.Context, userID uuid.UUID, templateID string) error {
	// Days created from the template keep no back-reference; deleting it
	// only removes the catalog record.
	return s.templateRepo.Delete(ctx, userID, templateID)
}
