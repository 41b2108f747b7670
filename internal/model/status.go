package model

import "fmt"

type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on-hold"
)

// Statuses lists the lifecycle in rotation order.
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted, StatusOnHold}

// Rank returns the position of s in Statuses, or -1 for an unknown value.
func (s Status) Rank() int {
	for i, v := range Statuses {
		if v == s {
			return i
		}
	}
	return -1
}

func (s Status) Valid() bool {
	return s.Rank() >= 0
}

// Next wraps from the last status back to the first. An unknown status
// rotates to the first one.
func (s Status) Next() Status {
	return Statuses[(s.Rank()+1)%len(Statuses)]
}

type Direction string

const (
	DirectionNone Direction = ""
	Ascending     Direction = "asc"
	Descending    Direction = "desc"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionNone, Ascending, Descending:
		return Direction(s), nil
	case "none", "off":
		return DirectionNone, nil
	}
	return DirectionNone, fmt.Errorf("unknown sort direction %q", s)
}
