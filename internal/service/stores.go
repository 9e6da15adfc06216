package service

import (
	"context"
	"time"

	"github.com/csxl/coworking-api/internal/model"
)

// The store interfaces below describe what the services need from the
// persistence layer. The concrete repositories in internal/repository
// satisfy them; tests substitute hand-rolled mocks.

// ReservationStore is the persistence surface for reservations. The
// reservation service is the sole mutator of reservation rows.
type ReservationStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	ListOverlappingForSeats(ctx context.Context, seatIDs []uint64, bounds model.TimeRange, states []model.ReservationState) ([]model.Reservation, error)
	ListOverlappingForUser(ctx context.Context, userID uint64, bounds model.TimeRange, states []model.ReservationState) ([]model.Reservation, error)
	ListRoomOverlapping(ctx context.Context, bounds model.TimeRange, states []model.ReservationState) ([]model.Reservation, error)
	ListRoomOverlappingForUser(ctx context.Context, userID uint64, bounds model.TimeRange, states []model.ReservationState) ([]model.Reservation, error)
	ListActiveAndUpcomingSeats(ctx context.Context, now time.Time) ([]model.Reservation, error)
	ListActiveAndUpcomingRooms(ctx context.Context, now time.Time) ([]model.Reservation, error)
	Create(ctx context.Context, res *model.Reservation) error
	UpdateState(ctx context.Context, id uint64, state model.ReservationState, end *time.Time) error
}

// SeatStore lists the seat reference data.
type SeatStore interface {
	List(ctx context.Context) ([]model.Seat, error)
	GetByIDs(ctx context.Context, ids []uint64) ([]model.Seat, error)
}

// RoomStore lists the room reference data.
type RoomStore interface {
	List(ctx context.Context) ([]model.Room, error)
	GetByID(ctx context.Context, id string) (*model.Room, error)
}

// UserStore resolves user ids to records.
type UserStore interface {
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	GetByIDs(ctx context.Context, ids []uint64) ([]model.User, error)
}

// OperatingHoursStore is the persistence surface for open intervals.
type OperatingHoursStore interface {
	ListOverlapping(ctx context.Context, bounds model.TimeRange) ([]model.OperatingHours, error)
	Create(ctx context.Context, oh *model.OperatingHours) error
	Delete(ctx context.Context, id uint64) error
}

// EventPublisher receives reservation lifecycle notifications. Publishing
// is best-effort: implementations log failures and never interrupt the
// request that triggered them.
type EventPublisher interface {
	ReservationConfirmed(ctx context.Context, res model.Reservation)
	ReservationCancelled(ctx context.Context, res model.Reservation)
}
