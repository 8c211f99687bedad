package service

import (
	"context"
	"errors"

	"timeslots-service/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrInvalidSegmentSize is returned for a per-segment size outside [1, 24].
var ErrInvalidSegmentSize = errors.New("segment size must be between 1 and 24 hours")

// ErrExistingData is returned when a destructive overwrite would discard
// segments carrying user edits and the caller did not confirm.
var ErrExistingData = errors.New("existing entries would be overwritten")

// TrackerService defines the business logic for the day-tracking surface.
type TrackerService interface {
	// SplitDay partitions the date into segments of hoursPerSegment and saves
	// the result, discarding any prior layout for that date. When the
	// existing day carries user data the overwrite must be confirmed.
	SplitDay(ctx context.Context, userID uuid.UUID, date string, hoursPerSegment int, confirm bool) (*entity.Entry, error)

	// SaveEntry persists the complete segment list for a date, replacing any
	// prior state wholesale.
	SaveEntry(ctx context.Context, userID uuid.UUID, date string, hours int, segments []entity.Segment) (*entity.Entry, error)

	// GetEntry retrieves the entry for a date, preferring unflushed in-memory
	// edits over the stored document.
	GetEntry(ctx context.Context, userID uuid.UUID, date string) (*entity.Entry, error)

	// UpdateSegment edits one segment's activity and/or goal tag in place.
	// The write is coalesced through the debounced autosaver.
	UpdateSegment(ctx context.Context, userID uuid.UUID, date string, segmentID int, activity, goalID *string) (*entity.Entry, error)

	// CancelPending drops any unflushed edits for a date, so stale data is
	// never written after the day is replaced or the view torn down.
	CancelPending(userID uuid.UUID, date string)

	// Shutdown flushes all pending edits.
	Shutdown()
}
