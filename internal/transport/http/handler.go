package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"timeslots-service/internal/domain/entity"
	"timeslots-service/internal/domain/repository"
	"timeslots-service/internal/domain/service"
	"timeslots-service/pkg/validation"
)

// Handler handles tracking-related HTTP requests
type Handler struct {
	tracker   service.TrackerService
	goals     service.GoalService
	templates service.TemplateService
	analytics service.AnalyticsService
	reminders service.ReminderService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	tracker service.TrackerService,
	goals service.GoalService,
	templates service.TemplateService,
	analytics service.AnalyticsService,
	reminders service.ReminderService,
) *Handler {
	return &Handler{
		tracker:   tracker,
		goals:     goals,
		templates: templates,
		analytics: analytics,
		reminders: reminders,
	}
}

// GetEntry returns the entry for one date
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r)
	date := r.PathValue("date")

	entry, err := h.tracker.GetEntry(r.Context(), userID, date)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// SaveEntry replaces the entry for one date wholesale
func (h *Handler) SaveEntry(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r)
	date := r.PathValue("date")

	var req struct {
		Hours    int              `json:"hours"`
		Segments []entity.Segment `json:"segments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.tracker.SaveEntry(r.Context(), userID, date, req.Hours, req.Segments)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// SplitDay partitions one date into equal segments
func (h *Handler) SplitDay(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r)
	date := r.PathValue("date")

	var req struct {
		Hours   int  `json:"hours"`
		Confirm bool `json:"confirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.tracker.SplitDay(r.Context(), userID, date, req.Hours, req.Confirm)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// UpdateSegment edits one segment's activity and/or goal tag
func (h *Handler) UpdateSegment(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r)
	date := r.PathValue("date")

	segmentID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid segment ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Activity *string `json:"activity"`
		GoalID   *string `json:"goalId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.tracker.UpdateSegment(r.Context(), userID, date, segmentID, req.Activity, req.GoalID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// CreateGoal appends a goal to the user's catalog
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r)

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	goal, err := h.goals.CreateGoal(r.Context(), userID, req.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, toGoalResponse(goal))
}

// ListGoals returns the goal catalog in insertion order
func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r)

	goals, err := h.goals.ListGoals(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]goalResponse, len(goals))
	for i, goal := range goals {
		out[i] = toGoalResponse(goal)
	}
	h.writeJSON(w, http.StatusOK, out)
}

// DeleteGoal removes a goal from the catalog
func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r)
	goalID := r.PathValue("id")

	if err := h.goals.DeleteGoal(r.Context(), userID, goalID); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CaptureTemplate snapshots one date's layout as a named template
func (h *Handler) CaptureTemplate(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r)

	var req struct {
		Name string `json:"name"`
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	template, err := h.templates.CaptureTemplate(r.Context(), userID, req.Name, req.Date)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, toTemplateResponse(template))
}

// ListTemplates returns the user's templates in creation order
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r)

	templates, err := h.templates.ListTemplates(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]templateResponse, len(templates))
	for i, template := range templates {
		out[i] = toTemplateResponse(template)
	}
	h.writeJSON(w, http.StatusOK, out)
}

// ApplyTemplate overwrites a date with a template's layout
func (h *Handler) ApplyTemplate(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r)
	templateID := r.PathValue("id")

	var req struct {
		Date    string `json:"date"`
		Confirm bool   `json:"confirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.templates.ApplyTemplate(r.Context(), userID, templateID, req.Date, req.Confirm)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// DeleteTemplate removes a template from the catalog
func (h *Handler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r)
	templateID := r.PathValue("id")

	if err := h.templates.DeleteTemplate(r.Context(), userID, templateID); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetAnalytics returns the aggregated view over a date range
func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r)
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	analytics, err := h.analytics.GetAnalytics(r.Context(), userID, start, end)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toAnalyticsResponse(analytics))
}

// GetDailyTotals returns one record per calendar date in a range
func (h *Handler) GetDailyTotals(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r)
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	totals, err := h.analytics.GetDailyTotals(r.Context(), userID, start, end)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toDailyTotalResponses(totals))
}

// GetPresets returns the named date windows relative to today
func (h *Handler) GetPresets(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, toPresetResponses(h.analytics.GetPresets()))
}

// GetReminderSettings returns the user's reminder preferences
func (h *Handler) GetReminderSettings(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r)

	settings, err := h.reminders.GetSettings(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toReminderSettingsResponse(settings))
}

// UpdateReminderSettings replaces the user's reminder preferences
func (h *Handler) UpdateReminderSettings(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r)

	var req struct {
		Email         string `json:"email"`
		Enabled       bool   `json:"enabled"`
		IntervalHours int    `json:"intervalHours"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	settings, err := h.reminders.UpdateSettings(r.Context(), &entity.ReminderSettings{
		UserID:        userID,
		Email:         req.Email,
		Enabled:       req.Enabled,
		IntervalHours: req.IntervalHours,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toReminderSettingsResponse(settings))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps domain errors onto HTTP status codes
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrExistingData):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidSegmentSize):
		status = http.StatusBadRequest
	case validation.IsError(err):
		status = http.StatusBadRequest
	}

	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}
