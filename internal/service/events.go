package service

import (
	"context"

	"github.com/google/uuid"
)

// EventPublisher publishes activity events for downstream consumers.
// A nil publisher disables publishing; failures are logged at the call
// site and never surfaced to the user.
type EventPublisher interface {
	PublishEntrySaved(ctx context.Context, userID uuid.UUID, date string, hours, segmentCount int) error
	PublishGoalCreated(ctx context.Context, userID uuid.UUID, goalID, name string) error
	PublishTemplateApplied(ctx context.Context, userID uuid.UUID, templateID, date string) error
}

// EmailSender delivers reminder notifications.
type EmailSender interface {
	SendReminder(ctx context.Context, to string) error
}
