package reservation

import (
	"context"
	"time"

	"go.uber.org/zap"

	"lab-reservations/booking"
	"lab-reservations/schedule"
)

// CalendarGateway is the external calendar holding the committed bookings.
// ListBookings returns an empty list, not an error, for a day with no
// bookings.
type CalendarGateway interface {
	ListBookings(ctx context.Context, day time.Time) ([]booking.Booking, error)
	CreateEvent(ctx context.Context, event EventInput) (string, error)
}

// LedgerGateway appends audit rows. The ledger is append-only; rows are
// never edited in place.
type LedgerGateway interface {
	Append(ctx context.Context, entry LedgerEntry) error
}

// AvailabilityResolver marks catalog blocks free or occupied against a
// booking list.
type AvailabilityResolver interface {
	Resolve(blocks []schedule.TimeBlock, bookings []booking.Booking, day time.Time) []booking.AvailabilityEntry
}

// Coordinator processes batch reservation requests. Each Submit call
// starts from a fresh calendar snapshot; nothing is cached across calls.
type Coordinator struct {
	catalog  *schedule.Catalog
	resolver AvailabilityResolver
	calendar CalendarGateway
	ledger   LedgerGateway
	timeout  time.Duration
	logger   *zap.Logger
}

// NewCoordinator wires the engine. timeout bounds every external call;
// zero disables the bound.
func NewCoordinator(
	catalog *schedule.Catalog,
	resolver AvailabilityResolver,
	calendar CalendarGateway,
	ledger LedgerGateway,
	timeout time.Duration,
	logger *zap.Logger,
) *Coordinator {
	return &Coordinator{
		catalog:  catalog,
		resolver: resolver,
		calendar: calendar,
		ledger:   ledger,
		timeout:  timeout,
		logger:   logger,
	}
}

func (c *Coordinator) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}
