package entity

// GoalBucket is one goal's aggregated share of tracked time.
type GoalBucket struct {
	GoalID     string
	Name       string
	Minutes    int
	Percentage int // rounded share of total tracked minutes
	Formatted  string
}

// Analytics is the aggregated view over a set of entries.
type Analytics struct {
	TotalTrackedMinutes   int
	TotalTrackedFormatted string
	TotalSegments         int
	DaysWithData          int
	AverageMinutesPerDay  int
	GoalBreakdown         []GoalBucket // descending by minutes, catalog order on ties
}

// DailyTotal is one calendar date's tracked time, for timeline charts.
// A series over a range contains one record per date, missing days at zero.
type DailyTotal struct {
	Date         string
	TotalMinutes int
	TotalHours   float64 // rounded to one decimal
	Formatted    string
}

// DateRangePreset is a named inclusive date window relative to today.
type DateRangePreset struct {
	Label string
	Start string
	End   string
}
