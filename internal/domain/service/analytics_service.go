package service

import (
	"context"

	"timeslots-service/internal/domain/entity"

	"github.com/google/uuid"
)

// AnalyticsService defines the aggregation views over a date range.
type AnalyticsService interface {
	// GetAnalytics aggregates the range's entries against the current goal
	// catalog: totals, per-goal breakdown with percentages, derived stats.
	GetAnalytics(ctx context.Context, userID uuid.UUID, startDate, endDate string) (*entity.Analytics, error)

	// GetDailyTotals produces one record per calendar date in the inclusive
	// range, chronological, with zero minutes for dates without data.
	GetDailyTotals(ctx context.Context, userID uuid.UUID, startDate, endDate string) ([]entity.DailyTotal, error)

	// GetPresets returns the named date windows relative to today.
	GetPresets() []entity.DateRangePreset
}
