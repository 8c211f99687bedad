package http

import (
	"timeslots-service/internal/domain/entity"
)

type segmentResponse struct {
	ID        int    `json:"id"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Duration  string `json:"duration"`
	IsPartial bool   `json:"isPartial"`
	Activity  string `json:"activity"`
	GoalID    string `json:"goalId"`
}

type entryResponse struct {
	Date      string            `json:"date"`
	Hours     int               `json:"hours"`
	Segments  []segmentResponse `json:"segments"`
	UpdatedAt string            `json:"updatedAt"`
}

type goalResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Position  int    `json:"position"`
	CreatedAt string `json:"createdAt"`
}

type templateSegmentResponse struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Duration  string `json:"duration"`
	IsPartial bool   `json:"isPartial"`
	Activity  string `json:"activity"`
	GoalID    string `json:"goalId"`
}

type templateResponse struct {
	ID        string                    `json:"id"`
	Name      string                    `json:"name"`
	Hours     int                       `json:"hours"`
	Segments  []templateSegmentResponse `json:"segments"`
	CreatedAt string                    `json:"createdAt"`
}

type goalBucketResponse struct {
	GoalID     string `json:"goalId"`
	Name       string `json:"name"`
	Minutes    int    `json:"minutes"`
	Percentage int    `json:"percentage"`
	Formatted  string `json:"formatted"`
}

type analyticsResponse struct {
	TotalTrackedMinutes   int                  `json:"totalTrackedMinutes"`
	TotalTrackedFormatted string               `json:"totalTrackedFormatted"`
	TotalSegments         int                  `json:"totalSegments"`
	DaysWithData          int                  `json:"daysWithData"`
	AverageMinutesPerDay  int                  `json:"averageMinutesPerDay"`
	GoalBreakdown         []goalBucketResponse `json:"goalBreakdown"`
}

type dailyTotalResponse struct {
	Date         string  `json:"date"`
	TotalMinutes int     `json:"totalMinutes"`
	TotalHours   float64 `json:"totalHours"`
	Formatted    string  `json:"formatted"`
}

type presetResponse struct {
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type reminderSettingsResponse struct {
	Email         string `json:"email"`
	Enabled       bool   `json:"enabled"`
	IntervalHours int    `json:"intervalHours"`
}

func toSegmentResponses(segments []entity.Segment) []segmentResponse {
	out := make([]segmentResponse, len(segments))
	for i, s := range segments {
		out[i] = segmentResponse{
			ID:        s.ID,
			Start:     s.Start,
			End:       s.End,
			Duration:  s.Duration,
			IsPartial: s.IsPartial,
			Activity:  s.Activity,
			GoalID:    s.GoalID,
		}
	}
	return out
}

func toEntryResponse(entry *entity.Entry) entryResponse {
	return entryResponse{
		Date:      entry.Date,
		Hours:     entry.Hours,
		Segments:  toSegmentResponses(entry.Segments),
		UpdatedAt: entry.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toGoalResponse(goal *entity.Goal) goalResponse {
	return goalResponse{
		ID:        goal.ID,
		Name:      goal.Name,
		Position:  goal.Position,
		CreatedAt: goal.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toTemplateResponse(template *entity.Template) templateResponse {
	segments := make([]templateSegmentResponse, len(template.Segments))
	for i, s := range template.Segments {
		segments[i] = templateSegmentResponse{
			Start:     s.Start,
			End:       s.End,
			Duration:  s.Duration,
			IsPartial: s.IsPartial,
			Activity:  s.Activity,
			GoalID:    s.GoalID,
		}
	}
	return templateResponse{
		ID:        template.ID,
		Name:      template.Name,
		Hours:     template.Hours,
		Segments:  segments,
		CreatedAt: template.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toAnalyticsResponse(analytics *entity.Analytics) analyticsResponse {
	breakdown := make([]goalBucketResponse, len(analytics.GoalBreakdown))
	for i, b := range analytics.GoalBreakdown {
		breakdown[i] = goalBucketResponse{
			GoalID:     b.GoalID,
			Name:       b.Name,
			Minutes:    b.Minutes,
			Percentage: b.Percentage,
			Formatted:  b.Formatted,
		}
	}
	return analyticsResponse{
		TotalTrackedMinutes:   analytics.TotalTrackedMinutes,
		TotalTrackedFormatted: analytics.TotalTrackedFormatted,
		TotalSegments:         analytics.TotalSegments,
		DaysWithData:          analytics.DaysWithData,
		AverageMinutesPerDay:  analytics.AverageMinutesPerDay,
		GoalBreakdown:         breakdown,
	}
}

func toDailyTotalResponses(totals []entity.DailyTotal) []dailyTotalResponse {
	out := make([]dailyTotalResponse, len(totals))
	for i, t := range totals {
		out[i] = dailyTotalResponse{
			Date:         t.Date,
			TotalMinutes: t.TotalMinutes,
			TotalHours:   t.TotalHours,
			Formatted:    t.Formatted,
		}
	}
	return out
}

func toPresetResponses(presets []entity.DateRangePreset) []presetResponse {
	out := make([]presetResponse, len(presets))
	for i, p := range presets {
		out[i] = presetResponse{
			Label: p.Label,
			Start: p.Start,
			End:   p.End,
		}
	}
	return out
}

func toReminderSettingsResponse(settings *entity.ReminderSettings) reminderSettingsResponse {
	return reminderSettingsResponse{
		Email:         settings.Email,
		Enabled:       settings.Enabled,
		IntervalHours: settings.IntervalHours,
	}
}
