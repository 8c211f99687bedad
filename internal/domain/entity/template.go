package entity

import (
	"time"

	"github.com/google/uuid"
)

// TemplateSegment is a Segment captured without its day-specific identity.
type TemplateSegment struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Duration  string `json:"duration"`
	IsPartial bool   `json:"isPartial"`
	Activity  string `json:"activity"`
	GoalID    string `json:"goalId"`
}

// Template is a reusable, named capture of a day's segment layout.
// The catalog is append-only; templates are never edited in place. A day
// created from a template keeps no back-reference to it.
type Template struct {
	ID        string
	UserID    uuid.UUID
	Name      string
	Hours     int
	Segments  []TemplateSegment
	CreatedAt time.Time
}
