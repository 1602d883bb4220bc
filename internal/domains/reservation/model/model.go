package model

import (
	"time"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID             = "id"
	FieldUserID         = "user_id"
	FieldSpaceID        = "space_id"
	FieldStartTimestamp = "start_timestamp"
	FieldEndTimestamp   = "end_timestamp"
	FieldStatus         = "status"
	FieldCreatedAt      = "created_at"
)

// StatusActive is the only status a stored reservation ever has. Deleting a
// reservation removes the row.
const StatusActive = "active"

// SortableFields are the columns a reservation listing may be ordered by.
var SortableFields = []string{
	FieldSpaceID,
	FieldStartTimestamp,
	FieldEndTimestamp,
	FieldCreatedAt,
}

type Reservation struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	SpaceID        string    `db:"space_id"`
	StartTimestamp time.Time `db:"start_timestamp"`
	EndTimestamp   time.Time `db:"end_timestamp"`
	Status         string    `db:"status"`
	CreatedAt      time.Time `db:"created_at"`
}

func (r Reservation) Interval() Interval {
	return Interval{Start: r.StartTimestamp, End: r.EndTimestamp}
}

// Interval is the half-open range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the two intervals share any instant. Intervals
// that only touch at an endpoint do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}
