package service

import (
	"context"
	"fmt"

	"github.com/csxl/coworking-api/internal/model"
	"github.com/csxl/coworking-api/internal/repository"
)

// OperatingHoursService manages the intervals during which the coworking
// space is open. Reads have no side effects; creation enforces that no
// two stored intervals overlap.
type OperatingHoursService struct {
	store OperatingHoursStore
	perm  Permission
}

// NewOperatingHoursService constructs the service. Both dependencies
// must be non-nil.
func NewOperatingHoursService(store OperatingHoursStore, perm Permission) *OperatingHoursService {
	if store == nil || perm == nil {
		panic("nil dependency passed to NewOperatingHoursService")
	}
	return &OperatingHoursService{store: store, perm: perm}
}

// Schedule returns all stored open intervals overlapping the bounds
// window, sorted ascending by start.
func (s *OperatingHoursService) Schedule(ctx context.Context, bounds model.TimeRange) ([]model.OperatingHours, error) {
	return s.store.ListOverlapping(ctx, bounds)
}

// Create persists a new open interval. The subject must hold the
// operating-hours create permission, and the interval must not overlap
// any stored record; overlap fails with repository.ErrConflict wrapped
// in a descriptive message.
func (s *OperatingHoursService) Create(ctx context.Context, subject *model.User, span model.TimeRange) (*model.OperatingHours, error) {
	if err := s.perm.Enforce(subject, ActionOperatingHoursCreate, "operating_hours"); err != nil {
		return nil, err
	}
	if span.IsEmpty() {
		return nil, reservationErrorf("operating hours must end after they start")
	}
	existing, err := s.store.ListOverlapping(ctx, span)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("operating hours %s-%s overlap an existing interval: %w",
			span.Start.Format("2006-01-02 15:04"), span.End.Format("15:04"), repository.ErrConflict)
	}
	oh := &model.OperatingHours{Start: span.Start.UTC(), End: span.End.UTC()}
	if err := s.store.Create(ctx, oh); err != nil {
		return nil, err
	}
	return oh, nil
}

// Delete removes a stored open interval.
func (s *OperatingHoursService) Delete(ctx context.Context, subject *model.User, id uint64) error {
	if err := s.perm.Enforce(subject, ActionOperatingHoursDelete, "operating_hours"); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}
