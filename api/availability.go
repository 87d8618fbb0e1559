package api

import (
	"net/http"
	"time"
)

type availabilityEntry struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Label     string `json:"label"`
	Status    string `json:"status"`
}

type getAvailabilityResponse struct {
	Day     string              `json:"day"`
	Entries []availabilityEntry `json:"entries"`
}

func (a *API) getAvailability(w http.ResponseWriter, r *http.Request) {
	dayParam := r.URL.Query().Get("day")
	if dayParam == "" {
		a.Response(w, http.StatusBadRequest, "day is required")
		return
	}

	day, err := time.ParseInLocation("2006-01-02", dayParam, a.loc)
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid day, expected YYYY-MM-DD")
		return
	}

	blocks, err := a.catalog.Generate(day)
	if err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}

	bookings, err := a.calendar.ListBookings(r.Context(), day)
	if err != nil {
		// Never report a day as free when the calendar cannot be read.
		a.Response(w, http.StatusServiceUnavailable, "calendar unavailable, availability unknown")
		return
	}

	entries := a.resolver.Resolve(blocks, bookings, day)

	response := getAvailabilityResponse{Day: dayParam}
	for _, e := range entries {
		response.Entries = append(response.Entries, availabilityEntry{
			StartTime: e.Slot.Start.Format("15:04"),
			EndTime:   e.Slot.End.Format("15:04"),
			Label:     e.Slot.Label,
			Status:    string(e.Status),
		})
	}
	a.Response(w, http.StatusOK, response)
}
