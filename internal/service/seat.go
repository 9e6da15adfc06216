package service

import (
	"context"

	"github.com/csxl/coworking-api/internal/model"
)

// SeatService exposes the seat reference data.
type SeatService struct {
	store SeatStore
}

// NewSeatService constructs the service.
func NewSeatService(store SeatStore) *SeatService {
	if store == nil {
		panic("nil store passed to NewSeatService")
	}
	return &SeatService{store: store}
}

// List returns every seat in the coworking space.
func (s *SeatService) List(ctx context.Context) ([]model.Seat, error) {
	return s.store.List(ctx)
}
