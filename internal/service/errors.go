// Package service implements the coworking business logic on top of the
// repository layer. Handlers call services; services consult policy,
// permissions and storage, and return domain errors that handlers map to
// HTTP status codes.
package service

import (
	"errors"
	"fmt"
)

// ReservationError signals an expected, recoverable business-rule
// violation: conflicting time ranges, an exceeded weekly limit, no
// available seats, an invalid state for check-in. Handlers translate it
// into an HTTP 422 response with the message intact.
type ReservationError struct {
	Message string
}

func (e *ReservationError) Error() string { return e.Message }

// reservationErrorf builds a ReservationError with a formatted message.
func reservationErrorf(format string, args ...interface{}) error {
	return &ReservationError{Message: fmt.Sprintf(format, args...)}
}

// ErrNotImplemented is returned for features that are deliberately not
// supported yet: multi-user reservations and seat/party/time edits.
// Callers must not treat it as success; handlers map it to HTTP 501.
var ErrNotImplemented = errors.New("not implemented")
