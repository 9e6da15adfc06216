package model

import "time"

// Half-hour slot status codes used by the room reservation grid.
const (
	SlotAvailable       = 0 // free and bookable by the subject
	SlotReserved        = 1 // booked by someone else
	SlotSelected        = 2 // reserved for client-side selection state
	SlotUnavailable     = 3 // in the past, outside hours, or blocked
	SlotSubjectReserved = 4 // booked by the subject themselves
)

// RoomGrid is the per-room row of a day's half-hour reservation grid.
type RoomGrid struct {
	Room  Room  `json:"room"`
	Slots []int `json:"slots"`
}

// ReservationMapDetails is the response of the room grid computation: one
// slot row per room spanning the day's operating hours rounded outward to
// half-hour boundaries. Capacity lists how many hours the subject may
// still book this week under the weekly room limit.
type ReservationMapDetails struct {
	Date           time.Time  `json:"date"`
	GridStart      time.Time  `json:"grid_start"`
	GridEnd        time.Time  `json:"grid_end"`
	SlotCount      int        `json:"slot_count"`
	Rooms          []RoomGrid `json:"rooms"`
	RemainingHours float64    `json:"remaining_hours"`
}
