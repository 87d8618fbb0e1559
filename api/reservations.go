package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"lab-reservations/reservation"
	"lab-reservations/schedule"
)

// createReservationsRequest is the API DTO. Times arrive as strings and
// are parsed into structured times here; nothing string-typed reaches the
// engine.
type createReservationsRequest struct {
	RequesterName    string   `json:"requester_name"`
	RequesterEmail   string   `json:"requester_email"`
	ResponsibleName  string   `json:"responsible_name,omitempty"`
	ResponsibleEmail string   `json:"responsible_email,omitempty"`
	Purpose          string   `json:"purpose"`
	Measurements     []string `json:"measurements,omitempty"`
	Day              string   `json:"day"`
	Slots            []string `json:"slots"` // catalog block start times, "15:04"
	DocumentRef      string   `json:"document_ref,omitempty"`
}

type createReservationsResponse struct {
	Day       string                `json:"day"`
	Requested int                   `json:"requested"`
	Committed int                   `json:"committed"`
	Outcomes  []reservation.Outcome `json:"outcomes"`
}

func (a *API) createReservations(w http.ResponseWriter, r *http.Request) {
	var req createReservationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}

	day, err := time.ParseInLocation("2006-01-02", req.Day, a.loc)
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid day, expected YYYY-MM-DD")
		return
	}

	if len(req.Slots) == 0 {
		a.Response(w, http.StatusBadRequest, "at least one slot is required")
		return
	}

	blocks, err := a.catalog.Generate(day)
	if err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}

	byStart := make(map[string]schedule.TimeBlock, len(blocks))
	for _, b := range blocks {
		byStart[b.Start.Format("15:04")] = b
	}

	slots := make([]schedule.TimeBlock, 0, len(req.Slots))
	for _, s := range req.Slots {
		block, ok := byStart[s]
		if !ok {
			a.Response(w, http.StatusBadRequest, fmt.Sprintf("unknown slot %q for day %s", s, req.Day))
			return
		}
		slots = append(slots, block)
	}

	payload := reservation.Request{
		RequesterName:    req.RequesterName,
		RequesterEmail:   req.RequesterEmail,
		ResponsibleName:  req.ResponsibleName,
		ResponsibleEmail: req.ResponsibleEmail,
		Purpose:          req.Purpose,
		Measurements:     req.Measurements,
		Day:              day,
		Slots:            slots,
		DocumentRef:      req.DocumentRef,
	}

	outcomes, err := a.coordinator.Submit(r.Context(), payload, a.now())
	if err != nil {
		switch {
		case errors.Is(err, reservation.ErrValidation):
			a.Response(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, reservation.ErrGatewayUnavailable):
			a.Response(w, http.StatusServiceUnavailable, err.Error())
		default:
			a.Response(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	committed := 0
	for _, o := range outcomes {
		if o.Result == reservation.OutcomeCommitted {
			committed++
		}
	}

	a.Response(w, http.StatusOK, createReservationsResponse{
		Day:       req.Day,
		Requested: len(outcomes),
		Committed: committed,
		Outcomes:  outcomes,
	})
}
