package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	testifymock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lab-reservations/booking"
	"lab-reservations/reservation"
)

func TestGetAvailability(t *testing.T) {
	day := time.Date(2030, 1, 15, 0, 0, 0, 0, santiago)

	t.Run("day with one booking", func(t *testing.T) {
		cal := new(MockCalendarGateway)
		led := new(MockLedgerGateway)
		service := newTestAPI(t, cal, led, nil)

		cal.On("ListBookings", testifymock.Anything, day).Return([]booking.Booking{
			{Start: time.Date(2030, 1, 15, 10, 50, 0, 0, santiago), End: time.Date(2030, 1, 15, 11, 50, 0, 0, santiago)},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/availability?day=2030-01-15", nil)
		rec := httptest.NewRecorder()
		service.Handler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Response struct {
				Day     string `json:"day"`
				Entries []struct {
					StartTime string `json:"start_time"`
					Status    string `json:"status"`
				} `json:"entries"`
			} `json:"response"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

		assert.Equal(t, "2030-01-15", body.Response.Day)
		require.Len(t, body.Response.Entries, 8)
		for _, e := range body.Response.Entries {
			if e.StartTime == "10:50" {
				assert.Equal(t, "occupied", e.Status)
			} else {
				assert.Equal(t, "free", e.Status)
			}
		}
	})

	t.Run("missing day parameter", func(t *testing.T) {
		service := newTestAPI(t, new(MockCalendarGateway), new(MockLedgerGateway), nil)

		req := httptest.NewRequest(http.MethodGet, "/api/availability", nil)
		rec := httptest.NewRecorder()
		service.Handler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed day parameter", func(t *testing.T) {
		service := newTestAPI(t, new(MockCalendarGateway), new(MockLedgerGateway), nil)

		req := httptest.NewRequest(http.MethodGet, "/api/availability?day=15-01-2030", nil)
		rec := httptest.NewRecorder()
		service.Handler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("calendar unavailable is never reported as free", func(t *testing.T) {
		cal := new(MockCalendarGateway)
		service := newTestAPI(t, cal, new(MockLedgerGateway), nil)

		cal.On("ListBookings", testifymock.Anything, day).
			Return([]booking.Booking{}, fmt.Errorf("%w: timeout", reservation.ErrGatewayUnavailable))

		req := httptest.NewRequest(http.MethodGet, "/api/availability?day=2030-01-15", nil)
		rec := httptest.NewRecorder()
		service.Handler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
