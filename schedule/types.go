package schedule

import (
	"errors"
	"time"
)

// TimeBlock is a bookable half-open interval [Start, End) in the facility's
// local timezone. Two blocks are the same slot when their start times match
// to the minute; the label is informational only.
type TimeBlock struct {
	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`
	Label string    `json:"label"`
}

func (b TimeBlock) Validate() error {
	if b.Start.IsZero() {
		return errors.New("start time is required")
	}
	if b.End.IsZero() {
		return errors.New("end time is required")
	}
	if !b.Start.Before(b.End) {
		return errors.New("start time must be before end time")
	}
	return nil
}

// StartKey is the block's identity: its start truncated to the minute,
// as a Unix timestamp. Comparable across timezone representations.
func (b TimeBlock) StartKey() int64 {
	return b.Start.Truncate(time.Minute).Unix()
}

func (b TimeBlock) Duration() time.Duration {
	return b.End.Sub(b.Start)
}
