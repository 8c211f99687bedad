package entity

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-date format used throughout the service.
const DateLayout = "2006-01-02"

// Segment is one contiguous time slice of a calendar day, carrying an
// optional activity label and goal tag. IDs are 1-based and unique only
// within one day's segment list; re-splitting a day regenerates them.
type Segment struct {
	ID        int    `json:"id"`
	Start     string `json:"start"` // "HH:MM"
	End       string `json:"end"`   // "HH:MM", "24:00" for the final segment
	Duration  string `json:"duration"`
	IsPartial bool   `json:"isPartial"`
	Activity  string `json:"activity"`
	GoalID    string `json:"goalId"`
}

// Minutes returns the segment's duration in minutes.
func (s *Segment) Minutes() int {
	return ParseDuration(s.Duration)
}

// HasUserData reports whether the segment carries an activity or goal tag.
func (s *Segment) HasUserData() bool {
	return s.Activity != "" || s.GoalID != ""
}

// Entry is the full set of segments recorded for one calendar date.
// Entries are saved wholesale; a save always writes the complete segment
// list for the date.
type Entry struct {
	UserID    uuid.UUID
	Date      string // "YYYY-MM-DD"
	Hours     int    // per-segment size the day was split with
	Segments  []Segment
	UpdatedAt time.Time
}

// HasUserData reports whether any segment carries user edits. Callers must
// require confirmation before destructively overwriting such a day.
func (e *Entry) HasUserData() bool {
	for i := range e.Segments {
		if e.Segments[i].HasUserData() {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the entry. The segment list is copied, so
// mutating the clone never touches the original.
func (e *Entry) Clone() *Entry {
	clone := *e
	clone.Segments = make([]Segment, len(e.Segments))
	copy(clone.Segments, e.Segments)
	return &clone
}

// TotalMinutes sums the parsed durations of all segments.
func (e *Entry) TotalMinutes() int {
	total := 0
	for i := range e.Segments {
		total += e.Segments[i].Minutes()
	}
	return total
}
