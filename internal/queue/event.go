// Package queue defines message payloads exchanged over the message
// broker and the publisher/consumer pair that moves them.
package queue

// ReservationEvent is published when a reservation is confirmed or
// cancelled. It carries enough information for downstream consumers to
// log, notify, or feed analytics without querying the primary database.
type ReservationEvent struct {
	EventID       string   `json:"event_id"`
	ReservationID uint64   `json:"reservation_id"`
	State         string   `json:"state"`
	Walkin        bool     `json:"walkin"`
	UserIDs       []uint64 `json:"user_ids"`
	SeatTitles    []string `json:"seats,omitempty"`
	RoomID        string   `json:"room_id,omitempty"`
	StartsAt      string   `json:"starts_at"`
	EndsAt        string   `json:"ends_at"`
	OccurredAt    string   `json:"occurred_at"`
}

// Queue names used for reservation lifecycle events.
const (
	ConfirmedQueueName = "reservation.confirmed"
	CancelledQueueName = "reservation.cancelled"
)
