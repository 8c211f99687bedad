package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"timeslots-service/internal/domain/entity"
	"timeslots-service/internal/domain/repository"

	"github.com/google/uuid"
)

type fakeEntryRepo struct {
	mu      sync.Mutex
	entries map[string]*entity.Entry // keyed by userID:date
	saves   int
	saveErr error
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: make(map[string]*entity.Entry)}
}

func entryKey(userID uuid.UUID, date string) string {
	return fmt.Sprintf("%s:%s", userID, date)
}

func (r *fakeEntryRepo) Save(ctx context.Context, entry *entity.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	clone := *entry
	clone.Segments = append([]entity.Segment(nil), entry.Segments...)
	r.entries[entryKey(entry.UserID, entry.Date)] = &clone
	r.saves++
	return nil
}

func (r *fakeEntryRepo) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*entity.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[entryKey(userID, date)]
	if !ok {
		return nil, fmt.Errorf("entry %w", repository.ErrNotFound)
	}
	clone := *entry
	clone.Segments = append([]entity.Segment(nil), entry.Segments...)
	return &clone, nil
}

func (r *fakeEntryRepo) GetByDateRange(ctx context.Context, userID uuid.UUID, startDate, endDate string) ([]*entity.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Entry
	for _, entry := range r.entries {
		if entry.UserID == userID && entry.Date >= startDate && entry.Date <= endDate {
			result = append(result, entry)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

func (r *fakeEntryRepo) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

type fakeGoalRepo struct {
	goals []*entity.Goal
}

func (r *fakeGoalRepo) Create(ctx context.Context, goal *entity.Goal) error {
	goal.Position = len(r.goals)
	r.goals = append(r.goals, goal)
	return nil
}

func (r *fakeGoalRepo) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	return r.goals, nil
}

func (r *fakeGoalRepo) Delete(ctx context.Context, userID uuid.UUID, goalID string) error {
	for i, goal := range r.goals {
		if goal.ID == goalID {
			r.goals = append(r.goals[:i], r.goals[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("goal %w", repository.ErrNotFound)
}

type fakeTemplateRepo struct {
	templates []*entity.Template
}

func (r *fakeTemplateRepo) Create(ctx context.Context, template *entity.Template) error {
	r.templates = append(r.templates, template)
	return nil
}

func (r *fakeTemplateRepo) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Template, error) {
	return r.templates, nil
}

func (r *fakeTemplateRepo) GetByID(ctx context.Context, userID uuid.UUID, templateID string) (*entity.Template, error) {
	for _, template := range r.templates {
		if template.ID == templateID {
			return template, nil
		}
	}
	return nil, fmt.Errorf("template %w", repository.ErrNotFound)
}

func (r *fakeTemplateRepo) Delete(ctx context.Context, userID uuid.UUID, templateID string) error {
	for i, template := range r.templates {
		if template.ID == templateID {
			r.templates = append(r.templates[:i], r.templates[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("template %w", repository.ErrNotFound)
}

type fakeReminderRepo struct {
	settings map[uuid.UUID]*entity.ReminderSettings
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{settings: make(map[uuid.UUID]*entity.ReminderSettings)}
}

func (r *fakeReminderRepo) Upsert(ctx context.Context, settings *entity.ReminderSettings) error {
	r.settings[settings.UserID] = settings
	return nil
}

func (r *fakeReminderRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.ReminderSettings, error) {
	settings, ok := r.settings[userID]
	if !ok {
		return nil, fmt.Errorf("reminder settings %w", repository.ErrNotFound)
	}
	return settings, nil
}

func (r *fakeReminderRepo) GetEnabled(ctx context.Context) ([]*entity.ReminderSettings, error) {
	var enabled []*entity.ReminderSettings
	for _, settings := range r.settings {
		if settings.Enabled {
			enabled = append(enabled, settings)
		}
	}
	return enabled, nil
}

type fakeReminderState struct {
	fired map[uuid.UUID]time.Time
}

func newFakeReminderState() *fakeReminderState {
	return &fakeReminderState{fired: make(map[uuid.UUID]time.Time)}
}

func (r *fakeReminderState) LastFired(ctx context.Context, userID uuid.UUID) (time.Time, error) {
	return r.fired[userID], nil
}

func (r *fakeReminderState) SetLastFired(ctx context.Context, userID uuid.UUID, firedAt time.Time) error {
	r.fired[userID] = firedAt
	return nil
}

type fakeEmailSender struct {
	sent    []string
	sendErr error
}

func (s *fakeEmailSender) SendReminder(ctx context.Context, to string) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, to)
	return nil
}

type fakePublisher struct {
	entriesSaved     int
	goalsCreated     int
	templatesApplied int
}

func (p *fakePublisher) PublishEntrySaved(ctx context.Context, userID uuid.UUID, date string, hours, segmentCount int) error {
	p.entriesSaved++
	return nil
}

func (p *fakePublisher) PublishGoalCreated(ctx context.Context, userID uuid.UUID, goalID, name string) error {
	p.goalsCreated++
	return nil
}

func (p *fakePublisher) PublishTemplateApplied(ctx context.Context, userID uuid.UUID, templateID, date string) error {
	p.templatesApplied++
	return nil
}
