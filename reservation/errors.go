package reservation

import "errors"

// ErrValidation marks a request refused before any side effect.
var ErrValidation = errors.New("invalid reservation request")

// ErrGatewayUnavailable marks a transport or auth failure against an
// external system. Callers should render affected slots as unconfirmed,
// never as free.
var ErrGatewayUnavailable = errors.New("gateway unavailable")

// RejectedError carries the backend's reason for refusing an event create.
// The calendar is the authoritative conflict detector, so a rejection
// becomes the slot's outcome even when the local recheck reported it free.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return "gateway rejected: " + e.Reason
}
