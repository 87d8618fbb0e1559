package booking

import (
	"time"

	"lab-reservations/schedule"
)

// Booking is an already-committed reservation read from the external
// calendar. The engine only looks at its interval; summary and source ID
// are carried for display and correlation.
type Booking struct {
	Start    time.Time `json:"start_time"`
	End      time.Time `json:"end_time"`
	Summary  string    `json:"summary"`
	SourceID string    `json:"source_id"`
}

type Status string

const (
	StatusFree     Status = "free"
	StatusOccupied Status = "occupied"
)

// AvailabilityEntry pairs a catalog block with its computed status. It is
// derived, never persisted; recomputed on every query.
type AvailabilityEntry struct {
	Slot   schedule.TimeBlock `json:"slot"`
	Status Status             `json:"status"`
}

func (e AvailabilityEntry) Occupied() bool {
	return e.Status == StatusOccupied
}
