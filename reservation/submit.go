package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lab-reservations/schedule"
)

// Submit processes one batch reservation request against the current
// calendar state. Every requested slot gets exactly one outcome, in
// request order; a partially failed batch is not an error. Only a request
// that fails validation or a calendar that cannot be read fail the call
// as a whole, and neither leaves side effects behind.
func (c *Coordinator) Submit(ctx context.Context, req Request, now time.Time) ([]Outcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	log := c.logger.With(
		zap.String("submission_id", uuid.New().String()),
		zap.String("requester", req.RequesterEmail),
		zap.String("day", req.Day.Format("2006-01-02")),
	)

	blocks, err := c.catalog.Generate(req.Day)
	if err != nil {
		return nil, fmt.Errorf("generate catalog: %w", err)
	}

	// Re-read the calendar so the decision is made against current state,
	// not the availability view the user saw.
	listCtx, cancel := c.callContext(ctx)
	bookings, err := c.calendar.ListBookings(listCtx, req.Day)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	// Presence in the map means the slot exists in the catalog; the value
	// tracks whether it is taken, including by earlier slots of this batch.
	occupied := make(map[int64]bool, len(blocks))
	for _, e := range c.resolver.Resolve(blocks, bookings, req.Day) {
		occupied[e.Slot.StartKey()] = e.Occupied()
	}

	outcomes := make([]Outcome, 0, len(req.Slots))
	for _, slot := range req.Slots {
		outcomes = append(outcomes, c.submitSlot(ctx, log, req, slot, occupied, now))
	}

	log.Info("batch processed",
		zap.Int("requested", len(outcomes)),
		zap.Int("committed", countCommitted(outcomes)),
	)
	return outcomes, nil
}

func (c *Coordinator) submitSlot(
	ctx context.Context,
	log *zap.Logger,
	req Request,
	slot schedule.TimeBlock,
	occupied map[int64]bool,
	now time.Time,
) Outcome {
	key := slot.StartKey()
	taken, known := occupied[key]
	if !known {
		return rejected(slot, ReasonNotInCatalog)
	}
	if taken {
		return rejected(slot, ReasonAlreadyBooked)
	}
	if slot.Start.Before(now) {
		return rejected(slot, ReasonPast)
	}

	createCtx, cancel := c.callContext(ctx)
	link, err := c.calendar.CreateEvent(createCtx, buildEvent(req, slot))
	cancel()
	if err != nil {
		// The calendar is authoritative: a refused create means the slot
		// is not ours, whatever the recheck said.
		var rej *RejectedError
		if errors.As(err, &rej) {
			return rejected(slot, rej.Reason)
		}
		// Transport failures keep their detail in the log; the outcome
		// carries a stable reason.
		log.Warn("calendar create failed",
			zap.String("slot", slot.Label),
			zap.Error(err),
		)
		return rejected(slot, ReasonCalendarUnavailable)
	}

	// A later duplicate of this slot in the same batch must not commit.
	occupied[key] = true

	entry := LedgerEntry{
		SubmittedAt:      now,
		RequesterName:    req.RequesterName,
		RequesterEmail:   req.RequesterEmail,
		ResponsibleName:  req.ResponsibleName,
		ResponsibleEmail: req.ResponsibleEmail,
		Measurements:     req.Measurements,
		Purpose:          req.Purpose,
		Day:              req.Day,
		SlotStart:        slot.Start,
		DurationMinutes:  int(slot.Duration().Minutes()),
		DocumentRef:      req.DocumentRef,
		EventLink:        link,
	}

	appendCtx, cancel := c.callContext(ctx)
	err = c.ledger.Append(appendCtx, entry)
	cancel()
	if err != nil {
		// The event already exists; losing an audit row is recoverable,
		// losing a calendar booking silently is not.
		log.Warn("ledger append failed for committed slot",
			zap.String("slot", slot.Label),
			zap.String("link", link),
			zap.Error(err),
		)
	}

	return Outcome{Slot: slot, Result: OutcomeCommitted, Link: link}
}

func buildEvent(req Request, slot schedule.TimeBlock) EventInput {
	summary := fmt.Sprintf("%s - %s", req.RequesterName, req.Purpose)
	if len(req.Measurements) > 0 {
		summary += " | Equipos: " + strings.Join(req.Measurements, ", ")
	}

	var desc strings.Builder
	fmt.Fprintf(&desc, "Reservado por: %s <%s>", req.RequesterName, req.RequesterEmail)
	if req.ResponsibleName != "" || req.ResponsibleEmail != "" {
		fmt.Fprintf(&desc, "\nResponsable: %s <%s>", req.ResponsibleName, req.ResponsibleEmail)
	}

	return EventInput{
		Summary:     summary,
		Description: desc.String(),
		Start:       slot.Start,
		End:         slot.End,
	}
}

func rejected(slot schedule.TimeBlock, reason string) Outcome {
	return Outcome{Slot: slot, Result: OutcomeRejected, Reason: reason}
}

func countCommitted(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Result == OutcomeCommitted {
			n++
		}
	}
	return n
}
