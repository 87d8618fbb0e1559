package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	testifymock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lab-reservations/booking"
)

func postJSON(t *testing.T, service http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	service.ServeHTTP(rec, req)
	return rec
}

func reservationPayload(slots ...string) map[string]any {
	return map[string]any{
		"requester_name":  "Camila Rojas",
		"requester_email": "camila@example.com",
		"purpose":         "Eye-tracking pilot",
		"measurements":    []string{"Tobii Glasses 3"},
		"day":             "2030-01-15",
		"slots":           slots,
	}
}

func TestCreateReservations(t *testing.T) {
	day := time.Date(2030, 1, 15, 0, 0, 0, 0, santiago)

	t.Run("batch with one free and one occupied slot", func(t *testing.T) {
		cal := new(MockCalendarGateway)
		led := new(MockLedgerGateway)
		service := newTestAPI(t, cal, led, nil)

		cal.On("ListBookings", testifymock.Anything, day).Return([]booking.Booking{
			{Start: time.Date(2030, 1, 15, 10, 50, 0, 0, santiago), End: time.Date(2030, 1, 15, 11, 50, 0, 0, santiago)},
		}, nil)
		cal.On("CreateEvent", testifymock.Anything, testifymock.Anything).
			Return("https://calendar.example.com/evt-1", nil)
		led.On("Append", testifymock.Anything, testifymock.Anything).Return(nil)

		rec := postJSON(t, service.Handler(), "/api/reservations", reservationPayload("08:30", "10:50"))
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Response struct {
				Requested int `json:"requested"`
				Committed int `json:"committed"`
				Outcomes  []struct {
					Result string `json:"result"`
					Link   string `json:"link"`
					Reason string `json:"reason"`
				} `json:"outcomes"`
			} `json:"response"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

		assert.Equal(t, 2, body.Response.Requested)
		assert.Equal(t, 1, body.Response.Committed)
		require.Len(t, body.Response.Outcomes, 2)
		assert.Equal(t, "committed", body.Response.Outcomes[0].Result)
		assert.Equal(t, "https://calendar.example.com/evt-1", body.Response.Outcomes[0].Link)
		assert.Equal(t, "rejected", body.Response.Outcomes[1].Result)
		assert.Equal(t, "slot already booked", body.Response.Outcomes[1].Reason)

		led.AssertNumberOfCalls(t, "Append", 1)
	})

	t.Run("invalid body", func(t *testing.T) {
		service := newTestAPI(t, new(MockCalendarGateway), new(MockLedgerGateway), nil)

		req := httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		service.Handler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing requester name", func(t *testing.T) {
		cal := new(MockCalendarGateway)
		service := newTestAPI(t, cal, new(MockLedgerGateway), nil)

		payload := reservationPayload("08:30")
		payload["requester_name"] = ""

		rec := postJSON(t, service.Handler(), "/api/reservations", payload)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		cal.AssertNotCalled(t, "ListBookings")
		cal.AssertNotCalled(t, "CreateEvent")
	})

	t.Run("unknown slot start", func(t *testing.T) {
		cal := new(MockCalendarGateway)
		service := newTestAPI(t, cal, new(MockLedgerGateway), nil)

		rec := postJSON(t, service.Handler(), "/api/reservations", reservationPayload("09:00"))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		cal.AssertNotCalled(t, "ListBookings")
	})

	t.Run("empty slot list", func(t *testing.T) {
		service := newTestAPI(t, new(MockCalendarGateway), new(MockLedgerGateway), nil)

		rec := postJSON(t, service.Handler(), "/api/reservations", reservationPayload())
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed day", func(t *testing.T) {
		service := newTestAPI(t, new(MockCalendarGateway), new(MockLedgerGateway), nil)

		payload := reservationPayload("08:30")
		payload["day"] = "someday"

		rec := postJSON(t, service.Handler(), "/api/reservations", payload)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUploadDocument(t *testing.T) {
	t.Run("stores the file and returns its reference", func(t *testing.T) {
		docs := new(MockDocumentStore)
		service := newTestAPI(t, new(MockCalendarGateway), new(MockLedgerGateway), docs)

		docs.On("Store", testifymock.Anything, []byte("protocol contents"), "protocol.pdf").
			Return("https://docs.example.com/protocol.pdf", nil)

		var buf bytes.Buffer
		form := multipart.NewWriter(&buf)
		part, err := form.CreateFormFile("document", "protocol.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("protocol contents"))
		require.NoError(t, err)
		require.NoError(t, form.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/documents", &buf)
		req.Header.Set("Content-Type", form.FormDataContentType())
		rec := httptest.NewRecorder()
		service.Handler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var body struct {
			Response struct {
				Reference string `json:"reference"`
			} `json:"response"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "https://docs.example.com/protocol.pdf", body.Response.Reference)
	})

	t.Run("storage not configured", func(t *testing.T) {
		service := newTestAPI(t, new(MockCalendarGateway), new(MockLedgerGateway), nil)

		req := httptest.NewRequest(http.MethodPost, "/api/documents", nil)
		rec := httptest.NewRecorder()
		service.Handler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
