package entity

import (
	"time"

	"github.com/google/uuid"
)

// UnassignedGoalID is the sentinel bucket absorbing segments with no goal
// tag or with a tag referencing a since-deleted goal.
const UnassignedGoalID = "unassigned"

// Goal is a user-defined label that segments can be attributed to.
// Deleting a goal has no cascading effect on historical entries; orphaned
// references are folded into the unassigned bucket by the aggregator.
type Goal struct {
	ID        string
	UserID    uuid.UUID
	Name      string
	Position  int // catalog insertion order
	CreatedAt time.Time
}
