package api_test

import (
	"context"
	"testing"
	"time"

	testifymock "github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"lab-reservations/api"
	"lab-reservations/booking"
	"lab-reservations/reservation"
	"lab-reservations/schedule"
)

var santiago = time.FixedZone("-03", -3*60*60)

// MockCalendarGateway is a mock implementation of the CalendarGateway interface
type MockCalendarGateway struct {
	testifymock.Mock
}

func (m *MockCalendarGateway) ListBookings(ctx context.Context, day time.Time) ([]booking.Booking, error) {
	args := m.Called(ctx, day)
	return args.Get(0).([]booking.Booking), args.Error(1)
}

func (m *MockCalendarGateway) CreateEvent(ctx context.Context, event reservation.EventInput) (string, error) {
	args := m.Called(ctx, event)
	return args.String(0), args.Error(1)
}

// MockLedgerGateway is a mock implementation of the LedgerGateway interface
type MockLedgerGateway struct {
	testifymock.Mock
}

func (m *MockLedgerGateway) Append(ctx context.Context, entry reservation.LedgerEntry) error {
	return m.Called(ctx, entry).Error(0)
}

// MockDocumentStore is a mock implementation of the DocumentStore interface
type MockDocumentStore struct {
	testifymock.Mock
}

func (m *MockDocumentStore) Store(ctx context.Context, data []byte, filename string) (string, error) {
	args := m.Called(ctx, data, filename)
	return args.String(0), args.Error(1)
}

func labCatalog() *schedule.Catalog {
	offsets := []time.Duration{
		8*time.Hour + 30*time.Minute,
		9*time.Hour + 40*time.Minute,
		10*time.Hour + 50*time.Minute,
		12 * time.Hour,
		14*time.Hour + 10*time.Minute,
		15*time.Hour + 20*time.Minute,
		16*time.Hour + 30*time.Minute,
		17*time.Hour + 40*time.Minute,
	}
	blocks := make([]schedule.FixedBlock, len(offsets))
	for i, off := range offsets {
		blocks[i] = schedule.FixedBlock{Offset: off, Duration: time.Hour}
	}
	return &schedule.Catalog{Mode: schedule.ModeFixed, Loc: santiago, Blocks: blocks}
}

func newTestAPI(t *testing.T, cal *MockCalendarGateway, led *MockLedgerGateway, docs api.DocumentStore) *api.API {
	t.Helper()
	catalog := labCatalog()
	resolver := booking.NewResolver(santiago)
	coordinator := reservation.NewCoordinator(catalog, resolver, cal, led, time.Second, zap.NewNop())
	service := api.NewAPI(catalog, resolver, cal, coordinator, docs, santiago, zap.NewNop())
	service.RegisterRoutes()
	return service
}
