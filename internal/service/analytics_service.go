package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"timeslots-service/internal/domain/entity"
	"timeslots-service/internal/domain/repository"
	"timeslots-service/internal/domain/service"
	"timeslots-service/pkg/validation"

	"github.com/google/uuid"
)

// CalculateAnalytics aggregates entries against the current goal catalog.
// Buckets are seeded from the catalog in insertion order plus the sentinel
// unassigned bucket; segments with an empty or unresolvable goalId land in
// unassigned. The breakdown keeps only non-empty buckets, sorted descending
// by minutes with catalog order preserved on ties.
func CalculateAnalytics(entries []*entity.Entry, goals []*entity.Goal) *entity.Analytics {
	buckets := make([]*entity.GoalBucket, 0, len(goals)+1)
	index := make(map[string]*entity.GoalBucket, len(goals)+1)

	for _, goal := range goals {
		bucket := &entity.GoalBucket{GoalID: goal.ID, Name: goal.Name}
		buckets = append(buckets, bucket)
		index[goal.ID] = bucket
	}

	unassigned := &entity.GoalBucket{GoalID: entity.UnassignedGoalID, Name: "Unassigned"}
	buckets = append(buckets, unassigned)
	index[entity.UnassignedGoalID] = unassigned

	totalMinutes := 0
	totalSegments := 0
	daysWithData := 0

	for _, entry := range entries {
		if entry == nil || len(entry.Segments) == 0 {
			continue
		}
		daysWithData++

		for i := range entry.Segments {
			minutes := entry.Segments[i].Minutes()
			totalMinutes += minutes
			totalSegments++

			bucket, ok := index[entry.Segments[i].GoalID]
			if !ok {
				// Empty tags and references to deleted goals both land here.
				bucket = unassigned
			}
			bucket.Minutes += minutes
		}
	}

	breakdown := make([]entity.GoalBucket, 0, len(buckets))
	for _, bucket := range buckets {
		if bucket.Minutes == 0 {
			continue
		}
		if totalMinutes > 0 {
			bucket.Percentage = int(math.Round(float64(bucket.Minutes) / float64(totalMinutes) * 100))
		}
		bucket.Formatted = entity.FormatMinutes(bucket.Minutes)
		breakdown = append(breakdown, *bucket)
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Minutes > breakdown[j].Minutes
	})

	average := 0
	if daysWithData > 0 {
		average = int(math.Round(float64(totalMinutes) / float64(daysWithData)))
	}

	return &entity.Analytics{
		TotalTrackedMinutes:   totalMinutes,
		TotalTrackedFormatted: entity.FormatMinutes(totalMinutes),
		TotalSegments:         totalSegments,
		DaysWithData:          daysWithData,
		AverageMinutesPerDay:  average,
		GoalBreakdown:         breakdown,
	}
}

// CalculateDailyTotals walks every calendar date from startDate to endDate
// inclusive and emits one record per date in chronological order, zero for
// dates without an entry. The series cardinality always equals the number
// of days in the range.
func CalculateDailyTotals(entries []*entity.Entry, startDate, endDate string) ([]entity.DailyTotal, error) {
	start, err := time.Parse(entity.DateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}

	end, err := time.Parse(entity.DateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}

	if end.Before(start) {
		return nil, fmt.Errorf("end date %s is before start date %s", endDate, startDate)
	}

	byDate := make(map[string]*entity.Entry, len(entries))
	for _, entry := range entries {
		if entry != nil {
			byDate[entry.Date] = entry
		}
	}

	var totals []entity.DailyTotal
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(entity.DateLayout)

		minutes := 0
		if entry, ok := byDate[date]; ok {
			minutes = entry.TotalMinutes()
		}

		totals = append(totals, entity.DailyTotal{
			Date:         date,
			TotalMinutes: minutes,
			TotalHours:   math.Round(float64(minutes)/60*10) / 10,
			Formatted:    entity.FormatMinutes(minutes),
		})
	}

	return totals, nil
}

// DateRangePresets returns the four named windows relative to today, each
// inclusive and ending today. The week preset starts on the most recent
// Sunday.
func DateRangePresets(today time.Time) []entity.DateRangePreset {
	end := today.Format(entity.DateLayout)

	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())

	return []entity.DateRangePreset{
		{Label: "Last 7 Days", Start: today.AddDate(0, 0, -6).Format(entity.DateLayout), End: end},
		{Label: "Last 30 Days", Start: today.AddDate(0, 0, -29).Format(entity.DateLayout), End: end},
		{Label: "This Week", Start: weekStart.Format(entity.DateLayout), End: end},
		{Label: "This Month", Start: monthStart.Format(entity.DateLayout), End: end},
	}
}

type analyticsService struct {
	entryRepo repository.EntryRepository
	goalRepo  repository.GoalRepository
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(entryRepo repository.EntryRepository, goalRepo repository.GoalRepository) service.AnalyticsService {
	return &analyticsService{
		entryRepo: entryRepo,
		goalRepo:  goalRepo,
	}
}

func (s *analyticsService) GetAnalytics(ctx context.Context, userID uuid.UUID, startDate, endDate string) (*entity.Analytics, error) {
	if err := validation.ValidateDateRange(startDate, endDate); err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.GetByDateRange(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries: %w", err)
	}

	goals, err := s.goalRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals: %w", err)
	}

	return CalculateAnalytics(entries, goals), nil
}

func (s *analyticsService) GetDailyTotals(ctx context.Context, userID uuid.UUID, startDate, endDate string) ([]entity.DailyTotal, error) {
	if err := validation.ValidateDateRange(startDate, endDate); err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.GetByDateRange(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries: %w", err)
	}

	return CalculateDailyTotals(entries, startDate, endDate)
}

func (s *analyticsService) GetPresets() []entity.DateRangePreset {
	return DateRangePresets(time.Now())
}
