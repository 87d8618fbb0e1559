package reservation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"lab-reservations/schedule"
)

// Request is one batch reservation submission. It is consumed once; the
// coordinator keeps no state between calls.
type Request struct {
	RequesterName    string
	RequesterEmail   string
	ResponsibleName  string
	ResponsibleEmail string
	Purpose          string
	Measurements     []string
	Day              time.Time
	Slots            []schedule.TimeBlock
	DocumentRef      string
}

func (r *Request) Validate() error {
	if r.RequesterName == "" {
		return fmt.Errorf("%w: requester name is required", ErrValidation)
	}
	if r.RequesterEmail == "" {
		return fmt.Errorf("%w: requester email is required", ErrValidation)
	}
	if r.Purpose == "" {
		return fmt.Errorf("%w: purpose is required", ErrValidation)
	}
	if r.Day.IsZero() {
		return fmt.Errorf("%w: day is required", ErrValidation)
	}
	for _, s := range r.Slots {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%w: slot %q: %v", ErrValidation, s.Label, err)
		}
	}
	return nil
}

const (
	OutcomeCommitted = "committed"
	OutcomeRejected  = "rejected"
)

// Rejection reasons produced by the coordinator itself. Gateway rejections
// carry the backend's own reason instead.
const (
	ReasonAlreadyBooked       = "slot already booked"
	ReasonNotInCatalog        = "slot not in catalog"
	ReasonPast                = "slot is in the past"
	ReasonCalendarUnavailable = "calendar unavailable"
)

// Outcome is the terminal result for one requested slot. A batch returns
// one outcome per slot, in request order.
type Outcome struct {
	Slot   schedule.TimeBlock `json:"slot"`
	Result string             `json:"result"`
	Link   string             `json:"link,omitempty"`
	Reason string             `json:"reason,omitempty"`
}

// EventInput is the payload handed to the calendar gateway.
type EventInput struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

// LedgerEntry is one audit row for a committed slot.
type LedgerEntry struct {
	SubmittedAt      time.Time
	RequesterName    string
	RequesterEmail   string
	ResponsibleName  string
	ResponsibleEmail string
	Measurements     []string
	Purpose          string
	Day              time.Time
	SlotStart        time.Time
	DurationMinutes  int
	DocumentRef      string
	EventLink        string
}

// Values returns the fixed column order every ledger backend persists.
// An absent document reference is written as "-".
func (e LedgerEntry) Values() []string {
	doc := e.DocumentRef
	if doc == "" {
		doc = "-"
	}
	return []string{
		e.SubmittedAt.Format(time.RFC3339),
		e.RequesterName,
		e.RequesterEmail,
		e.ResponsibleName,
		e.ResponsibleEmail,
		strings.Join(e.Measurements, ", "),
		e.Purpose,
		e.Day.Format("2006-01-02"),
		e.SlotStart.Format("15:04"),
		strconv.Itoa(e.DurationMinutes),
		doc,
		e.EventLink,
	}
}
