package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"timeslots-service/internal/domain/entity"
	"timeslots-service/internal/domain/repository"
	"timeslots-service/internal/domain/service"
	"timeslots-service/pkg/validation"

	"github.com/google/uuid"
)

const dayMinutes = 24 * 60

const flushTimeout = 10 * time.Second

// SplitDay partitions the 24-hour day into segments of hoursPerSegment
// hours each, starting at 00:00. When the size does not evenly divide 24
// the final segment holds the remainder and is flagged partial. Segment ids
// are sequential from 1; activity and goal tags start empty.
func SplitDay(hoursPerSegment int) []entity.Segment {
	minutesPerSegment := hoursPerSegment * 60
	var segments []entity.Segment

	currentMinute := 0
	segmentID := 1

	for currentMinute < dayMinutes {
		remaining := dayMinutes - currentMinute
		duration := minutesPerSegment
		if remaining < duration {
			duration = remaining
		}
		endMinute := currentMinute + duration

		segments = append(segments, entity.Segment{
			ID:        segmentID,
			Start:     formatClock(currentMinute, false),
			End:       formatClock(endMinute, true),
			Duration:  entity.FormatMinutes(duration),
			IsPartial: duration < minutesPerSegment,
		})

		currentMinute = endMinute
		segmentID++
	}

	return segments
}

// formatClock renders a minute offset as zero-padded HH:MM. Hour wraps
// modulo 24 except at the end-of-day boundary, which renders as 24:00.
func formatClock(totalMinutes int, isEnd bool) string {
	hours := totalMinutes / 60
	mins := totalMinutes % 60

	if !(isEnd && hours == 24) {
		hours = hours % 24
	}

	return fmt.Sprintf("%02d:%02d", hours, mins)
}

type trackerService struct {
	entryRepo repository.EntryRepository
	events    EventPublisher
	autosave  *Autosave
}

// NewTrackerService creates a new tracker service. Segment-level edits are
// coalesced into one write per (user, date) after autosaveDelay of quiet.
func NewTrackerService(entryRepo repository.EntryRepository, events EventPublisher, autosaveDelay time.Duration) service.TrackerService {
	s := &trackerService{
		entryRepo: entryRepo,
		events:    events,
	}
	s.autosave = NewAutosave(autosaveDelay, s.flushEntry)
	return s
}

func autosaveKey(userID uuid.UUID, date string) string {
	return fmt.Sprintf("%s:%s", userID, date)
}

// flushEntry persists a debounced snapshot. Runs on a timer goroutine, so
// it carries its own deadline and reports failures to the log only; the
// in-memory state the user sees was already returned.
func (s *trackerService) flushEntry(entry *entity.Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	if err := s.entryRepo.Save(ctx, entry); err != nil {
		log.Printf("Autosave failed for %s on %s: %v", entry.UserID, entry.Date, err)
	}
}

func (s *trackerService) SplitDay(ctx context.Context, userID uuid.UUID, date string, hoursPerSegment int, confirm bool) (*entity.Entry, error) {
	if err := validation.ValidateDate(date); err != nil {
		return nil, err
	}

	if hoursPerSegment < validation.MinSegmentSizeHours || hoursPerSegment > validation.MaxSegmentSizeHours {
		return nil, service.ErrInvalidSegmentSize
	}

	if err := s.checkOverwrite(ctx, userID, date, confirm); err != nil {
		return nil, err
	}

	// Any unflushed edits belong to the layout being discarded.
	s.autosave.Cancel(autosaveKey(userID, date))

	entry := &entity.Entry{
		UserID:    userID,
		Date:      date,
		Hours:     hoursPerSegment,
		Segments:  SplitDay(hoursPerSegment),
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	s.publishEntrySaved(ctx, entry)

	return entry, nil
}

func (s *trackerService) SaveEntry(ctx context.Context, userID uuid.UUID, date string, hours int, segments []entity.Segment) (*entity.Entry, error) {
	if err := validation.ValidateDate(date); err != nil {
		return nil, err
	}

	if len(segments) == 0 {
		return nil, validation.Errorf("segments are required")
	}

	// The wholesale save supersedes any pending debounced write.
	s.autosave.Cancel(autosaveKey(userID, date))

	entry := &entity.Entry{
		UserID:    userID,
		Date:      date,
		Hours:     hours,
		Segments:  segments,
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	s.publishEntrySaved(ctx, entry)

	return entry, nil
}

func (s *trackerService) GetEntry(ctx context.Context, userID uuid.UUID, date string) (*entity.Entry, error) {
	if err := validation.ValidateDate(date); err != nil {
		return nil, err
	}

	// Unflushed edits are the source of truth until the next save.
	if pending := s.autosave.Pending(autosaveKey(userID, date)); pending != nil {
		return pending, nil
	}

	return s.entryRepo.GetByDate(ctx, userID, date)
}

func (s *trackerService) UpdateSegment(ctx context.Context, userID uuid.UUID, date string, segmentID int, activity, goalID *string) (*entity.Entry, error) {
	if err := validation.ValidateDate(date); err != nil {
		return nil, err
	}

	key := autosaveKey(userID, date)

	entry := s.autosave.Pending(key)
	if entry == nil {
		var err error
		entry, err = s.entryRepo.GetByDate(ctx, userID, date)
		if err != nil {
			return nil, err
		}
	}

	found := false
	for i := range entry.Segments {
		if entry.Segments[i].ID != segmentID {
			continue
		}
		if activity != nil {
			entry.Segments[i].Activity = *activity
		}
		if goalID != nil {
			entry.Segments[i].GoalID = *goalID
		}
		found = true
		break
	}

	if !found {
		return nil, fmt.Errorf("segment %d %w", segmentID, repository.ErrNotFound)
	}

	entry.UpdatedAt = time.Now().UTC()
	s.autosave.Schedule(key, entry)

	return entry, nil
}

func (s *trackerService) CancelPending(userID uuid.UUID, date string) {
	s.autosave.Cancel(autosaveKey(userID, date))
}

func (s *trackerService) Shutdown() {
	s.autosave.FlushAll()
}

// checkOverwrite enforces the destructive-overwrite policy: replacing a day
// whose segments carry user data requires explicit confirmation.
func (s *trackerService) checkOverwrite(ctx context.Context, userID uuid.UUID, date string, confirm bool) error {
	if confirm {
		return nil
	}

	existing := s.autosave.Pending(autosaveKey(userID, date))
	if existing == nil {
		var err error
		existing, err = s.entryRepo.GetByDate(ctx, userID, date)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("failed to check existing entry: %w", err)
		}
	}

	if existing.HasUserData() {
		return service.ErrExistingData
	}

	return nil
}

func (s *trackerService) publishEntrySaved(ctx context.Context, entry *entity.Entry) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEntrySaved(ctx, entry.UserID, entry.Date, entry.Hours, len(entry.Segments)); err != nil {
		log.Printf("Failed to publish entry saved event: %v", err)
	}
}
