package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"timeslots-service/internal/config"
	"timeslots-service/internal/domain/entity"
	"timeslots-service/internal/domain/repository"
	"timeslots-service/internal/service"
	"timeslots-service/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memEntryRepo struct {
	mu      sync.Mutex
	entries map[string]*entity.Entry
}

func newMemEntryRepo() *memEntryRepo {
	return &memEntryRepo{entries: make(map[string]*entity.Entry)}
}

func (r *memEntryRepo) key(userID uuid.UUID, date string) string {
	return userID.String() + ":" + date
}

func (r *memEntryRepo) Save(ctx context.Context, entry *entity.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *entry
	clone.Segments = append([]entity.Segment(nil), entry.Segments...)
	r.entries[r.key(entry.UserID, entry.Date)] = &clone
	return nil
}

func (r *memEntryRepo) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*entity.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[r.key(userID, date)]
	if !ok {
		return nil, fmt.Errorf("entry %w", repository.ErrNotFound)
	}
	clone := *entry
	clone.Segments = append([]entity.Segment(nil), entry.Segments...)
	return &clone, nil
}

func (r *memEntryRepo) GetByDateRange(ctx context.Context, userID uuid.UUID, startDate, endDate string) ([]*entity.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Entry
	for _, entry := range r.entries {
		if entry.UserID == userID && entry.Date >= startDate && entry.Date <= endDate {
			out = append(out, entry)
		}
	}
	return out, nil
}

type memGoalRepo struct {
	goals []*entity.Goal
}

func (r *memGoalRepo) Create(ctx context.Context, goal *entity.Goal) error {
	goal.Position = len(r.goals)
	r.goals = append(r.goals, goal)
	return nil
}

func (r *memGoalRepo) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	return r.goals, nil
}

func (r *memGoalRepo) Delete(ctx context.Context, userID uuid.UUID, goalID string) error {
	for i, goal := range r.goals {
		if goal.ID == goalID {
			r.goals = append(r.goals[:i], r.goals[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("goal %w", repository.ErrNotFound)
}

type memTemplateRepo struct {
	templates []*entity.Template
}

func (r *memTemplateRepo) Create(ctx context.Context, template *entity.Template) error {
	r.templates = append(r.templates, template)
	return nil
}

func (r *memTemplateRepo) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Template, error) {
	return r.templates, nil
}

func (r *memTemplateRepo) GetByID(ctx context.Context, userID uuid.UUID, templateID string) (*entity.Template, error) {
	for _, template := range r.templates {
		if template.ID == templateID {
			return template, nil
		}
	}
	return nil, fmt.Errorf("template %w", repository.ErrNotFound)
}

func (r *memTemplateRepo) Delete(ctx context.Context, userID uuid.UUID, templateID string) error {
	for i, template := range r.templates {
		if template.ID == templateID {
			r.templates = append(r.templates[:i], r.templates[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("template %w", repository.ErrNotFound)
}

type memReminderRepo struct {
	settings map[uuid.UUID]*entity.ReminderSettings
}

func (r *memReminderRepo) Upsert(ctx context.Context, settings *entity.ReminderSettings) error {
	r.settings[settings.UserID] = settings
	return nil
}

func (r *memReminderRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.ReminderSettings, error) {
	settings, ok := r.settings[userID]
	if !ok {
		return nil, fmt.Errorf("reminder settings %w", repository.ErrNotFound)
	}
	return settings, nil
}

func (r *memReminderRepo) GetEnabled(ctx context.Context) ([]*entity.ReminderSettings, error) {
	return nil, nil
}

type memReminderState struct{}

func (memReminderState) LastFired(ctx context.Context, userID uuid.UUID) (time.Time, error) {
	return time.Time{}, nil
}

func (memReminderState) SetLastFired(ctx context.Context, userID uuid.UUID, firedAt time.Time) error {
	return nil
}

type noopEmail struct{}

func (noopEmail) SendReminder(ctx context.Context, to string) error { return nil }

type testEnv struct {
	server *httptest.Server
	token  string
	userID uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	entryRepo := newMemEntryRepo()
	goalRepo := &memGoalRepo{}
	templateRepo := &memTemplateRepo{}
	reminderRepo := &memReminderRepo{settings: make(map[uuid.UUID]*entity.ReminderSettings)}

	tracker := service.NewTrackerService(entryRepo, nil, time.Minute)
	goals := service.NewGoalService(goalRepo, nil)
	templates := service.NewTemplateService(templateRepo, tracker, nil)
	analytics := service.NewAnalyticsService(entryRepo, goalRepo)
	reminders := service.NewReminderService(reminderRepo, memReminderState{}, noopEmail{})

	tokenManager := jwt.NewTokenManager("test-secret", time.Hour, "timeslots-test")
	handler := NewHandler(tracker, goals, templates, analytics, reminders)
	server := NewServer(handler, NewAuthMiddleware(tokenManager), &config.HTTPConfig{Port: 0})

	userID := uuid.New()
	token, _, err := tokenManager.GenerateToken(userID, "Test User", "test@example.com")
	require.NoError(t, err)

	ts := httptest.NewServer(server.httpServer.Handler)
	t.Cleanup(ts.Close)
	t.Cleanup(tracker.Shutdown)

	return &testEnv{server: ts, token: token, userID: userID}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+e.token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.server.URL + "/api/v1/goals")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/api/v1/goals", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHealthNeedsNoAuth(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSplitDayEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/v1/entries/2026-03-02/split", map[string]interface{}{"hours": 8})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	entry := decode[entryResponse](t, resp)
	assert.Equal(t, "2026-03-02", entry.Date)
	assert.Equal(t, 8, entry.Hours)
	require.Len(t, entry.Segments, 3)
	assert.Equal(t, "00:00", entry.Segments[0].Start)
	assert.Equal(t, "24:00", entry.Segments[2].End)
}

func TestSplitDayRejectsBadSize(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/v1/entries/2026-03-02/split", map[string]interface{}{"hours": 0})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/v1/entries/not-a-date/split", map[string]interface{}{"hours": 8})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSplitDayConflictOnEditedDay(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/v1/entries/2026-03-02/split", map[string]interface{}{"hours": 8})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/v1/entries/2026-03-02/segments/1", map[string]interface{}{"activity": "writing"})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/v1/entries/2026-03-02/split", map[string]interface{}{"hours": 4})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/v1/entries/2026-03-02/split", map[string]interface{}{"hours": 4, "confirm": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	entry := decode[entryResponse](t, resp)
	assert.Len(t, entry.Segments, 6)
}

func TestGetEntryNotFound(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/v1/entries/2026-03-02", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateSegmentRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/v1/entries/2026-03-02/split", map[string]interface{}{"hours": 6})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/v1/entries/2026-03-02/segments/2", map[string]interface{}{"activity": "deep work", "goalId": "g1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	entry := decode[entryResponse](t, resp)
	assert.Equal(t, "deep work", entry.Segments[1].Activity)
	assert.Equal(t, "g1", entry.Segments[1].GoalID)

	// The edit is visible on the next read even before the autosave fires.
	resp = env.do(t, http.MethodGet, "/api/v1/entries/2026-03-02", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	entry = decode[entryResponse](t, resp)
	assert.Equal(t, "deep work", entry.Segments[1].Activity)
}

func TestUpdateSegmentUnknownID(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/v1/entries/2026-03-02/split", map[string]interface{}{"hours": 8})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/v1/entries/2026-03-02/segments/99", map[string]interface{}{"activity": "x"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGoalEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/v1/goals", map[string]string{"name": "Learn Spanish"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	goal := decode[goalResponse](t, resp)
	assert.NotEmpty(t, goal.ID)
	assert.Equal(t, "Learn Spanish", goal.Name)

	resp = env.do(t, http.MethodGet, "/api/v1/goals", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	goals := decode[[]goalResponse](t, resp)
	assert.Len(t, goals, 1)

	resp = env.do(t, http.MethodDelete, "/api/v1/goals/"+goal.ID, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, "/api/v1/goals/"+goal.ID, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGoalNameValidation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/v1/goals", map[string]string{"name": "   "})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTemplateEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/v1/entries/2026-03-02/split", map[string]interface{}{"hours": 8})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/v1/templates", map[string]string{"name": "Workday", "date": "2026-03-02"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	template := decode[templateResponse](t, resp)
	assert.Equal(t, "Workday", template.Name)
	require.Len(t, template.Segments, 3)

	resp = env.do(t, http.MethodPost, "/api/v1/templates/"+template.ID+"/apply", map[string]interface{}{"date": "2026-03-09"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	entry := decode[entryResponse](t, resp)
	assert.Equal(t, "2026-03-09", entry.Date)
	assert.Equal(t, 1, entry.Segments[0].ID)

	resp = env.do(t, http.MethodDelete, "/api/v1/templates/"+template.ID, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestCaptureTemplateEmptyDay(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/v1/templates", map[string]string{"name": "Empty", "date": "2026-03-02"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAnalyticsEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/v1/entries/2026-03-02/split", map[string]interface{}{"hours": 12})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.do(t, http.MethodPatch, "/api/v1/entries/2026-03-02/segments/1", map[string]interface{}{"activity": "work"})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/v1/analytics?start=2026-03-01&end=2026-03-07", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	analytics := decode[analyticsResponse](t, resp)
	assert.Equal(t, 1, analytics.DaysWithData)

	resp = env.do(t, http.MethodGet, "/api/v1/analytics/daily?start=2026-03-01&end=2026-03-03", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	totals := decode[[]dailyTotalResponse](t, resp)
	require.Len(t, totals, 3)
	assert.Equal(t, 0, totals[0].TotalMinutes)

	resp = env.do(t, http.MethodGet, "/api/v1/analytics?start=2026-03-07&end=2026-03-01", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/v1/analytics/presets", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	presets := decode[[]presetResponse](t, resp)
	assert.Len(t, presets, 4)
}

func TestReminderEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/v1/reminders", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	settings := decode[reminderSettingsResponse](t, resp)
	assert.False(t, settings.Enabled)
	assert.Equal(t, entity.DefaultReminderIntervalHours, settings.IntervalHours)

	resp = env.do(t, http.MethodPut, "/api/v1/reminders", map[string]interface{}{"email": "me@example.com", "enabled": true, "intervalHours": 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	settings = decode[reminderSettingsResponse](t, resp)
	assert.True(t, settings.Enabled)
	assert.Equal(t, 3, settings.IntervalHours)

	resp = env.do(t, http.MethodPut, "/api/v1/reminders", map[string]interface{}{"email": "me@example.com", "enabled": true, "intervalHours": 48})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
