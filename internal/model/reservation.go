package model

import "time"

// ReservationState enumerates the lifecycle of a reservation. Transitions
// only move along the legal edges checked in the reservation service:
//
//	DRAFT      -> CONFIRMED | CANCELLED
//	CONFIRMED  -> CHECKED_IN | CANCELLED
//	CHECKED_IN -> CHECKED_OUT
//
// CHECKED_OUT and CANCELLED are terminal. Rows are retained, not deleted.
type ReservationState string

const (
	StateDraft      ReservationState = "DRAFT"
	StateConfirmed  ReservationState = "CONFIRMED"
	StateCheckedIn  ReservationState = "CHECKED_IN"
	StateCheckedOut ReservationState = "CHECKED_OUT"
	StateCancelled  ReservationState = "CANCELLED"
)

// Active reports whether the reservation still occupies its window for
// availability purposes. Cancelled and checked-out rows no longer block
// seats or rooms.
func (s ReservationState) Active() bool {
	return s == StateDraft || s == StateConfirmed || s == StateCheckedIn
}

// Reservation is the central mutable entity of the coworking system. A
// reservation binds exactly one user to either a set of seats or a room
// for the [Start, End) window. Exactly one of Seats / Room is meaningful.
//
// Walkin marks reservations requested within the policy's walk-in window
// of the current time; these are granted a shorter maximum duration.
type Reservation struct {
	ID        uint64           `json:"id"`
	State     ReservationState `json:"state"`
	Start     time.Time        `json:"start"`
	End       time.Time        `json:"end"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Walkin    bool             `json:"walkin"`
	Users     []User           `json:"users"`
	Seats     []Seat           `json:"seats"`
	Room      *Room            `json:"room,omitempty"`
}

// Range returns the reservation's window as a TimeRange.
func (r *Reservation) Range() TimeRange {
	return TimeRange{Start: r.Start, End: r.End}
}

// HasUser reports whether the given user is part of the reservation.
func (r *Reservation) HasUser(userID uint64) bool {
	for _, u := range r.Users {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// ReservationRequest is the payload accepted when drafting a reservation.
// Either SeatIDs or RoomID must be supplied, not both. UserIDs is
// currently constrained to exactly one entry.
type ReservationRequest struct {
	UserIDs []uint64  `json:"user_ids" validate:"required,min=1,dive,gt=0"`
	SeatIDs []uint64  `json:"seat_ids,omitempty" validate:"omitempty,dive,gt=0"`
	RoomID  string    `json:"room_id,omitempty"`
	Start   time.Time `json:"start" validate:"required"`
	End     time.Time `json:"end" validate:"required,gtfield=Start"`
}

// ReservationDelta describes the changes a caller may apply to an
// existing reservation. Only a state transition is supported today;
// seat, party and time edits are explicit future work.
type ReservationDelta struct {
	ID    uint64            `json:"id" validate:"required,gt=0"`
	State *ReservationState `json:"state,omitempty"`
	Start *time.Time        `json:"start,omitempty"`
	End   *time.Time        `json:"end,omitempty"`
	Seats []uint64          `json:"seat_ids,omitempty"`
	Users []uint64          `json:"user_ids,omitempty"`
}

// OperatingHours is one facility open interval. Stored records for the
// same day must not overlap; enforced at creation time.
type OperatingHours struct {
	ID    uint64    `json:"id"`    // operating_hours.id
	Start time.Time `json:"start"` // operating_hours.start
	End   time.Time `json:"end"`   // operating_hours.end
}

// Range returns the open interval as a TimeRange.
func (o OperatingHours) Range() TimeRange {
	return TimeRange{Start: o.Start, End: o.End}
}
