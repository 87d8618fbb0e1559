package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"lab-reservations/booking"
	"lab-reservations/reservation"
)

// Gateway talks to the shared lab calendar on Google Calendar. It is the
// authoritative record of committed bookings.
type Gateway struct {
	svc        *gcal.Service
	calendarID string
	loc        *time.Location
}

func NewGateway(ctx context.Context, credentialsFile, calendarID string, loc *time.Location) (*Gateway, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("new calendar service: %w", err)
	}
	return &Gateway{svc: svc, calendarID: calendarID, loc: loc}, nil
}

// ListBookings returns the day's committed reservations. A day with no
// events is an empty list, not an error.
func (g *Gateway) ListBookings(ctx context.Context, day time.Time) ([]booking.Booking, error) {
	local := day.In(g.loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, g.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	events, err := g.svc.Events.List(g.calendarID).
		TimeMin(dayStart.Format(time.RFC3339)).
		TimeMax(dayEnd.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: list events: %v", reservation.ErrGatewayUnavailable, err)
	}

	bookings := make([]booking.Booking, 0, len(events.Items))
	for _, item := range events.Items {
		start, err := parseEventTime(item.Start, g.loc)
		if err != nil {
			return nil, fmt.Errorf("parse event %s start: %w", item.Id, err)
		}
		end, err := parseEventTime(item.End, g.loc)
		if err != nil {
			return nil, fmt.Errorf("parse event %s end: %w", item.Id, err)
		}
		bookings = append(bookings, booking.Booking{
			Start:    start,
			End:      end,
			Summary:  item.Summary,
			SourceID: item.Id,
		})
	}
	return bookings, nil
}

// CreateEvent inserts the reservation into the shared calendar and returns
// its browser link.
func (g *Gateway) CreateEvent(ctx context.Context, ev reservation.EventInput) (string, error) {
	event := &gcal.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start: &gcal.EventDateTime{
			DateTime: ev.Start.In(g.loc).Format(time.RFC3339),
			TimeZone: g.loc.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: ev.End.In(g.loc).Format(time.RFC3339),
			TimeZone: g.loc.String(),
		},
	}

	created, err := g.svc.Events.Insert(g.calendarID, event).Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code >= http.StatusBadRequest && gerr.Code < http.StatusInternalServerError {
			return "", &reservation.RejectedError{Reason: gerr.Message}
		}
		return "", fmt.Errorf("%w: insert event: %v", reservation.ErrGatewayUnavailable, err)
	}
	return created.HtmlLink, nil
}

func parseEventTime(edt *gcal.EventDateTime, loc *time.Location) (time.Time, error) {
	if edt == nil {
		return time.Time{}, errors.New("missing event time")
	}
	if edt.DateTime != "" {
		return time.Parse(time.RFC3339, edt.DateTime)
	}
	// All-day events carry a date only; anchor it at facility midnight.
	return time.ParseInLocation("2006-01-02", edt.Date, loc)
}
