package service

import (
	"context"
	"time"

	"github.com/csxl/coworking-api/internal/model"
)

// TransitionForTime is the pure decision half of the lazy state machine:
// given the current time, it returns the state a reservation should be
// in and whether that differs from its stored state. It never mutates
// its argument; persisting the result is the caller's concern.
//
// Rules:
//   - a DRAFT older than the draft timeout is cancelled
//   - a CONFIRMED reservation not checked in within the check-in
//     timeout of its start is cancelled
//   - a CHECKED_IN reservation past its end is checked out
func TransitionForTime(now time.Time, res *model.Reservation, draftTimeout, checkinTimeout time.Duration) (model.ReservationState, bool) {
	switch res.State {
	case model.StateDraft:
		if now.After(res.CreatedAt.Add(draftTimeout)) {
			return model.StateCancelled, true
		}
	case model.StateConfirmed:
		if now.After(res.Start.Add(checkinTimeout)) {
			return model.StateCancelled, true
		}
	case model.StateCheckedIn:
		if !now.Before(res.End) {
			return model.StateCheckedOut, true
		}
	}
	return res.State, false
}

// transitionOne applies the time-driven transition to a single loaded
// reservation, persisting and publishing when a change occurs.
func (s *ReservationService) transitionOne(ctx context.Context, now time.Time, res *model.Reservation) error {
	next, changed := TransitionForTime(now, res, s.policy.ReservationDraftTimeout(), s.policy.ReservationCheckinTimeout())
	if !changed {
		return nil
	}
	if err := s.reservations.UpdateState(ctx, res.ID, next, nil); err != nil {
		return err
	}
	res.State = next
	if s.events != nil && next == model.StateCancelled {
		s.events.ReservationCancelled(ctx, *res)
	}
	return nil
}

// transitionExpired applies the time-driven transition to a freshly
// loaded batch, persisting every change, and returns only the rows that
// are still active. Every read path that loads active reservations runs
// through here, which is what keeps stale rows from lingering without a
// background scheduler.
func (s *ReservationService) transitionExpired(ctx context.Context, now time.Time, batch []model.Reservation) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0, len(batch))
	for i := range batch {
		if err := s.transitionOne(ctx, now, &batch[i]); err != nil {
			return nil, err
		}
		if batch[i].State.Active() {
			out = append(out, batch[i])
		}
	}
	return out, nil
}
