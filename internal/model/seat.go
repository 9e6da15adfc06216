package model

// Seat describes one physical workstation in the coworking space.
// Seats are reference data created by administrative seeding; the
// reservation flow never mutates them.
//
// Fields:
//  ID         – primary key identifier.
//  Title      – human-readable name ("Standing Desk 01").
//  Shorthand  – short label used on the floor map ("SD1").
//  Reservable – whether the seat may be pre-reserved (walk-ins may use
//               non-reservable seats).
//  HasMonitor – whether an external monitor is attached.
//  SitStand   – whether the desk is height-adjustable.
//  X, Y       – floor map coordinates.
//  RoomID     – room the seat is located in.
type Seat struct {
	ID         uint64 `json:"id"`          // seats.id
	Title      string `json:"title"`       // seats.title
	Shorthand  string `json:"shorthand"`   // seats.shorthand
	Reservable bool   `json:"reservable"`  // seats.reservable
	HasMonitor bool   `json:"has_monitor"` // seats.has_monitor
	SitStand   bool   `json:"sit_stand"`   // seats.sit_stand
	X          int    `json:"x"`           // seats.x
	Y          int    `json:"y"`           // seats.y
	RoomID     string `json:"room_id"`     // seats.room_id
}

// SeatAvailability pairs a seat with the sub-intervals of a query window
// during which it is free. Computed transiently per availability query;
// never persisted.
type SeatAvailability struct {
	Seat
	Availability AvailabilityList `json:"availability"`
}

// Room is a bookable study room. Seats reference rooms; room reservations
// carry no seats and bind the whole room instead.
type Room struct {
	ID         string `json:"id"`         // rooms.id (e.g. "SN156")
	Nickname   string `json:"nickname"`   // rooms.nickname
	Reservable bool   `json:"reservable"` // rooms.reservable
	Capacity   int    `json:"capacity"`   // rooms.capacity
}
