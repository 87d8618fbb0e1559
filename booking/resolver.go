package booking

import (
	"time"

	"lab-reservations/schedule"
)

// Resolver reconciles a day's catalog blocks against the calendar's
// committed bookings. It holds only the facility timezone; Resolve is a
// pure function of its inputs.
type Resolver struct {
	loc *time.Location
}

func NewResolver(loc *time.Location) *Resolver {
	return &Resolver{loc: loc}
}

// Resolve marks each block occupied when a booking that starts on the
// target day, normalized to the facility timezone, shares the block's
// start hour and minute. Comparison is by start minute, not interval
// overlap, matching how the fixed catalog is keyed.
func (r *Resolver) Resolve(blocks []schedule.TimeBlock, bookings []Booking, day time.Time) []AvailabilityEntry {
	y, m, d := day.In(r.loc).Date()

	taken := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		start := b.Start.In(r.loc)
		by, bm, bd := start.Date()
		if by != y || bm != m || bd != d {
			continue
		}
		taken[start.Format("15:04")] = struct{}{}
	}

	entries := make([]AvailabilityEntry, len(blocks))
	for i, blk := range blocks {
		status := StatusFree
		if _, ok := taken[blk.Start.In(r.loc).Format("15:04")]; ok {
			status = StatusOccupied
		}
		entries[i] = AvailabilityEntry{Slot: blk, Status: status}
	}
	return entries
}
