// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// services and handlers to distinguish between different failure
// scenarios. For example, ErrForbidden indicates that the current user
// is not authorized to act on a resource owned by someone else, while
// ErrConflict signals that an operation cannot proceed because of
// existing dependent records.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write cannot be performed because of
// conflicting state, such as creating operating hours that overlap an
// existing interval. Handlers should translate this into an HTTP 409
// response.
var ErrConflict = errors.New("conflict")

// ErrReservationNotFound is returned when a reservation lookup yields no rows.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrRoomNotFound is returned when a room lookup yields no rows.
var ErrRoomNotFound = errors.New("room not found")

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// ErrUserNotFound is returned when a user lookup yields no rows.
var ErrUserNotFound = errors.New("user not found")

// ErrOperatingHoursNotFound is returned when an operating hours lookup
// yields no rows.
var ErrOperatingHoursNotFound = errors.New("operating hours not found")
