package service

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/csxl/coworking-api/internal/model"
)

// ScheduleSource provides the facility's open intervals for a bounds
// window. OperatingHoursService satisfies it.
type ScheduleSource interface {
	Schedule(ctx context.Context, bounds model.TimeRange) ([]model.OperatingHours, error)
}

// ReservationService implements the coworking reservation engine:
// seat and room availability, reservation drafting, state-machine
// transitions, conflict detection and staff check-in. It is the sole
// mutator of reservation rows.
//
// Time-driven transitions (draft timeout, check-in timeout, automatic
// checkout) are evaluated lazily: every query that loads a batch of
// active reservations first applies TransitionForTime to the batch,
// persisting any rows that silently expired, then filters expired rows
// out of the result. There is no background scheduler.
type ReservationService struct {
	reservations ReservationStore
	seats        SeatStore
	rooms        RoomStore
	users        UserStore
	hours        ScheduleSource
	policy       *Policy
	perm         Permission
	events       EventPublisher

	now func() time.Time
	rng *rand.Rand
}

// NewReservationService constructs the service. The events publisher may
// be nil; every other dependency must be non-nil.
func NewReservationService(
	reservations ReservationStore,
	seats SeatStore,
	rooms RoomStore,
	users UserStore,
	hours ScheduleSource,
	policy *Policy,
	perm Permission,
	events EventPublisher,
) *ReservationService {
	if reservations == nil || seats == nil || rooms == nil || users == nil || hours == nil || policy == nil || perm == nil {
		panic("nil dependency passed to NewReservationService")
	}
	return &ReservationService{
		reservations: reservations,
		seats:        seats,
		rooms:        rooms,
		users:        users,
		hours:        hours,
		policy:       policy,
		perm:         perm,
		events:       events,
		now:          time.Now,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *ReservationService) WithClock(now func() time.Time) *ReservationService {
	s.now = now
	return s
}

// WithRand overrides the randomness used for the seat-sort tiebreak.
// Intended for tests.
func (s *ReservationService) WithRand(rng *rand.Rand) *ReservationService {
	s.rng = rng
	return s
}

// availabilityFudge loosens the requested-window duration pre-check so
// that callers asking for exactly the minimum are not rejected by clock
// skew between client and server.
const availabilityFudge = time.Minute

// SeatAvailability computes, for each given seat, the sub-intervals of
// the bounds window during which the seat is free. Seats whose total
// remaining availability falls below the minimum reservation duration
// are dropped. The result is sorted so walk-in assignment prefers seats
// that can be occupied soonest and longest, with a random tiebreak to
// spread physical wear across equivalent seats.
func (s *ReservationService) SeatAvailability(ctx context.Context, seats []model.Seat, bounds model.TimeRange) ([]model.SeatAvailability, error) {
	now := s.now().UTC()
	minDuration := s.policy.MinimumReservationDuration()

	// No retroactive availability, and no windows too short to hold the
	// minimum reservation.
	if !bounds.End.After(now) {
		return []model.SeatAvailability{}, nil
	}
	if bounds.Duration() < minDuration-availabilityFudge {
		return []model.SeatAvailability{}, nil
	}
	if bounds.Start.Before(now) {
		bounds.Start = now
	}

	hours, err := s.hours.Schedule(ctx, bounds)
	if err != nil {
		return nil, err
	}
	baseline := make(model.AvailabilityList, 0, len(hours))
	for _, oh := range hours {
		baseline = append(baseline, oh.Range())
	}
	baseline = baseline.Constrain(bounds)
	if len(baseline) == 0 {
		return []model.SeatAvailability{}, nil
	}
	outer := model.TimeRange{Start: baseline[0].Start, End: baseline[len(baseline)-1].End}

	result := make([]model.SeatAvailability, 0, len(seats))
	seatIDs := make([]uint64, 0, len(seats))
	for _, seat := range seats {
		availability := make(model.AvailabilityList, len(baseline))
		copy(availability, baseline)
		result = append(result, model.SeatAvailability{Seat: seat, Availability: availability})
		seatIDs = append(seatIDs, seat.ID)
	}

	existing, err := s.reservations.ListOverlappingForSeats(ctx, seatIDs, outer, nil)
	if err != nil {
		return nil, err
	}
	existing, err = s.transitionExpired(ctx, now, existing)
	if err != nil {
		return nil, err
	}
	index := make(map[uint64]int, len(result))
	for i := range result {
		index[result[i].ID] = i
	}
	for _, res := range existing {
		for _, seat := range res.Seats {
			if i, ok := index[seat.ID]; ok {
				result[i].Availability = result[i].Availability.Subtract(res.Range())
			}
		}
	}

	// Prune slots too short to book and seats with nothing left.
	pruned := make([]model.SeatAvailability, 0, len(result))
	for _, sa := range result {
		sa.Availability = sa.Availability.FilterShorterThan(minDuration - availabilityFudge)
		if len(sa.Availability) == 0 || sa.Availability.TotalDuration() < minDuration {
			continue
		}
		pruned = append(pruned, sa)
	}

	s.sortSeatAvailability(pruned)
	return pruned, nil
}

// sortSeatAvailability orders seats by earliest available start, then
// longest first slot, then non-reservable before reservable (walk-ins
// should consume non-reservable seats first), then randomly. The random
// tiebreak keeps low-demand assignment from always landing on the same
// physical seat.
func (s *ReservationService) sortSeatAvailability(seats []model.SeatAvailability) {
	tiebreak := make(map[uint64]int, len(seats))
	for _, sa := range seats {
		tiebreak[sa.ID] = s.rng.Int()
	}
	sort.SliceStable(seats, func(i, j int) bool {
		a, b := seats[i].Availability[0], seats[j].Availability[0]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if a.Duration() != b.Duration() {
			return a.Duration() > b.Duration()
		}
		if seats[i].Reservable != seats[j].Reservable {
			return !seats[i].Reservable
		}
		return tiebreak[seats[i].ID] < tiebreak[seats[j].ID]
	})
}

// DraftReservation validates a reservation request and persists it in
// DRAFT state. Seat requests bind to the best-ranked available seat and
// narrow the draft's window to that seat's first free sub-interval; room
// requests are checked against the weekly room-hour cap and existing
// room bookings.
func (s *ReservationService) DraftReservation(ctx context.Context, subject *model.User, req model.ReservationRequest) (*model.Reservation, error) {
	if len(req.UserIDs) != 1 {
		return nil, fmt.Errorf("multi-user reservations: %w", ErrNotImplemented)
	}
	for _, uid := range req.UserIDs {
		if subject != nil && subject.ID == uid {
			continue
		}
		if err := s.perm.Enforce(subject, ActionReservationManage, fmt.Sprintf("user/%d", uid)); err != nil {
			return nil, err
		}
	}
	if req.RoomID != "" && len(req.SeatIDs) > 0 {
		return nil, reservationErrorf("request either seats or a room, not both")
	}

	now := s.now().UTC()
	start, end := req.Start.UTC(), req.End.UTC()
	if start.Before(now) {
		start = now
	}
	if !end.After(start) {
		return nil, reservationErrorf("reservation must end after it starts")
	}
	if start.Sub(now) > s.policy.ReservationWindow(subject) {
		return nil, reservationErrorf("reservations may start at most %s in advance", s.policy.ReservationWindow(subject))
	}

	walkin := start.Sub(now) < s.policy.WalkinWindow(subject)
	maxLength := s.policy.MaximumInitialReservationDuration(subject)
	if walkin {
		maxLength = s.policy.WalkinInitialDuration(subject)
	}
	if end.Sub(start) > maxLength {
		end = start.Add(maxLength)
	}
	bounds := model.TimeRange{Start: start, End: end}

	var room *model.Room
	if req.RoomID != "" {
		var err error
		room, err = s.rooms.GetByID(ctx, req.RoomID)
		if err != nil {
			return nil, err
		}
		if !room.Reservable || s.policy.NonReservableRooms()[room.ID] {
			return nil, reservationErrorf("room %s is not reservable", room.ID)
		}
		if err := s.checkWeeklyRoomLimit(ctx, req.UserIDs[0], bounds); err != nil {
			return nil, err
		}
	}

	users, err := s.users.GetByIDs(ctx, req.UserIDs)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, reservationErrorf("requested users not found")
	}

	// The requesting user's other active reservations must either leave
	// the request untouched or shrink it to exactly one deterministic
	// remainder; anything else is a conflict. Two concurrent walk-ins
	// are disallowed outright.
	conflicts, err := s.reservations.ListOverlappingForUser(ctx, req.UserIDs[0], bounds, nil)
	if err != nil {
		return nil, err
	}
	conflicts, err = s.transitionExpired(ctx, now, conflicts)
	if err != nil {
		return nil, err
	}
	for i := range conflicts {
		conflict := &conflicts[i]
		if walkin && conflict.Walkin {
			return nil, reservationErrorf("users may hold only one walk-in reservation at a time")
		}
		remaining := bounds.Subtract(conflict.Range())
		if len(remaining) != 1 || remaining[0].IsEmpty() {
			return nil, reservationErrorf("requested time conflicts with an existing reservation")
		}
		bounds = remaining[0]
	}
	if bounds.Duration() < s.policy.MinimumReservationDuration() {
		return nil, reservationErrorf("less than the minimum reservation time of %s remains in the requested window", s.policy.MinimumReservationDuration())
	}

	draft := &model.Reservation{
		State:  model.StateDraft,
		Start:  bounds.Start,
		End:    bounds.End,
		Walkin: walkin,
		Users:  users,
	}

	if room != nil {
		taken, err := s.reservations.ListRoomOverlapping(ctx, bounds, nil)
		if err != nil {
			return nil, err
		}
		taken, err = s.transitionExpired(ctx, now, taken)
		if err != nil {
			return nil, err
		}
		for _, other := range taken {
			if other.Room != nil && other.Room.ID == room.ID && other.Range().Overlaps(bounds) {
				return nil, reservationErrorf("room %s is already reserved during the requested time", room.ID)
			}
		}
		draft.Room = room
	} else {
		var candidates []model.Seat
		if len(req.SeatIDs) > 0 {
			candidates, err = s.seats.GetByIDs(ctx, req.SeatIDs)
			if err != nil {
				return nil, err
			}
		} else {
			candidates, err = s.seats.List(ctx)
			if err != nil {
				return nil, err
			}
		}
		available, err := s.SeatAvailability(ctx, candidates, bounds)
		if err != nil {
			return nil, err
		}
		if !walkin {
			reservable := available[:0]
			for _, sa := range available {
				if sa.Reservable {
					reservable = append(reservable, sa)
				}
			}
			available = reservable
		}
		if len(available) == 0 {
			return nil, reservationErrorf("no seats are available for the requested time")
		}
		// The chosen seat's real availability, not the original request,
		// determines the final window.
		best := available[0]
		slot := best.Availability[0]
		draft.Start = slot.Start
		draft.End = slot.End
		if draft.End.Sub(draft.Start) > maxLength {
			draft.End = draft.Start.Add(maxLength)
		}
		draft.Seats = []model.Seat{best.Seat}
	}

	if err := s.reservations.Create(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// weekOf returns the Monday-to-Monday UTC week containing at.
func weekOf(at time.Time) model.TimeRange {
	at = at.UTC()
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	start := day.AddDate(0, 0, -offset)
	return model.TimeRange{Start: start, End: start.AddDate(0, 0, 7)}
}

// checkWeeklyRoomLimit rejects a room request when the user's existing
// room hours in the request's week plus the requested hours exceed the
// weekly cap. Cancelled reservations do not count against the cap.
func (s *ReservationService) checkWeeklyRoomLimit(ctx context.Context, userID uint64, requested model.TimeRange) error {
	week := weekOf(requested.Start)
	counted := []model.ReservationState{model.StateDraft, model.StateConfirmed, model.StateCheckedIn, model.StateCheckedOut}
	existing, err := s.reservations.ListRoomOverlappingForUser(ctx, userID, week, counted)
	if err != nil {
		return err
	}
	total := requested.Constrain(week).Duration()
	for _, res := range existing {
		total += res.Range().Constrain(week).Duration()
	}
	if limit := s.policy.RoomReservationWeeklyLimit(); total > limit {
		return reservationErrorf("weekly room reservation limit of %s exceeded", limit)
	}
	return nil
}

// GetReservation fetches a single reservation visible to the subject:
// their own, or any reservation when the subject holds the read
// permission. Expired lazy transitions are applied before returning, so
// a stale draft reads back as CANCELLED.
func (s *ReservationService) GetReservation(ctx context.Context, subject *model.User, id uint64) (*model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if subject == nil || !res.HasUser(subject.ID) {
		if err := s.perm.Enforce(subject, ActionReservationRead, fmt.Sprintf("reservation/%d", id)); err != nil {
			return nil, err
		}
	}
	if err := s.transitionOne(ctx, s.now().UTC(), res); err != nil {
		return nil, err
	}
	return res, nil
}

// ChangeReservation applies a state delta to an existing reservation on
// behalf of its owner (or a holder of the manage permission). Time, seat
// and party edits are not yet supported and fail explicitly. An illegal
// state transition is not applied: the reservation is returned unchanged.
func (s *ReservationService) ChangeReservation(ctx context.Context, subject *model.User, delta model.ReservationDelta) (*model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, delta.ID)
	if err != nil {
		return nil, err
	}
	if subject == nil || !res.HasUser(subject.ID) {
		if err := s.perm.Enforce(subject, ActionReservationManage, fmt.Sprintf("reservation/%d", delta.ID)); err != nil {
			return nil, err
		}
	}
	if delta.Start != nil || delta.End != nil || len(delta.Seats) > 0 || len(delta.Users) > 0 {
		return nil, fmt.Errorf("changing reservation times, seats or party: %w", ErrNotImplemented)
	}

	now := s.now().UTC()
	if err := s.transitionOne(ctx, now, res); err != nil {
		return nil, err
	}
	if delta.State == nil {
		return res, nil
	}
	if _, err := s.applyState(ctx, res, *delta.State, now); err != nil {
		return nil, err
	}
	return res, nil
}

// applyState moves the reservation along a legal edge of the state
// machine and persists the change. It reports false without error (and
// without mutation) when the transition is not legal from the current
// state. Transitioning into CHECKED_OUT sets the end to now.
func (s *ReservationService) applyState(ctx context.Context, res *model.Reservation, target model.ReservationState, now time.Time) (bool, error) {
	if res.State == target {
		return false, nil
	}
	var end *time.Time
	legal := false
	switch res.State {
	case model.StateDraft:
		legal = target == model.StateConfirmed || target == model.StateCancelled
	case model.StateConfirmed:
		legal = target == model.StateCancelled
	case model.StateCheckedIn:
		if target == model.StateCheckedOut {
			legal = true
			end = &now
		}
	}
	if !legal {
		return false, nil
	}
	if err := s.reservations.UpdateState(ctx, res.ID, target, end); err != nil {
		return false, err
	}
	res.State = target
	if end != nil {
		res.End = *end
	}
	if s.events != nil {
		switch target {
		case model.StateConfirmed:
			s.events.ReservationConfirmed(ctx, *res)
		case model.StateCancelled:
			s.events.ReservationCancelled(ctx, *res)
		}
	}
	return true, nil
}

// StaffCheckinReservation transitions a confirmed reservation into
// CHECKED_IN on behalf of the front desk. It is idempotent for already
// checked-in reservations and rejects drafts, cancelled and checked-out
// reservations with a business-rule error.
func (s *ReservationService) StaffCheckinReservation(ctx context.Context, subject *model.User, reservationID uint64) (*model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	for _, u := range res.Users {
		if err := s.perm.Enforce(subject, ActionReservationManage, fmt.Sprintf("user/%d", u.ID)); err != nil {
			return nil, err
		}
	}
	now := s.now().UTC()
	if err := s.transitionOne(ctx, now, res); err != nil {
		return nil, err
	}
	switch res.State {
	case model.StateCheckedIn:
		return res, nil
	case model.StateConfirmed:
		if err := s.reservations.UpdateState(ctx, res.ID, model.StateCheckedIn, nil); err != nil {
			return nil, err
		}
		res.State = model.StateCheckedIn
		return res, nil
	case model.StateDraft:
		return nil, reservationErrorf("reservation %d has not been confirmed", res.ID)
	default:
		return nil, reservationErrorf("reservation %d is %s and cannot be checked in", res.ID, res.State)
	}
}

// GetCurrentReservationsForUser returns the focus user's reservations
// overlapping the window from now through the reservation booking
// window, optionally filtered to a single state. Subjects may read their
// own reservations; reading another user's requires the read permission.
func (s *ReservationService) GetCurrentReservationsForUser(ctx context.Context, subject *model.User, focus *model.User, state *model.ReservationState) ([]model.Reservation, error) {
	if subject == nil || focus == nil {
		return nil, reservationErrorf("subject and focus users are required")
	}
	if subject.ID != focus.ID {
		if err := s.perm.Enforce(subject, ActionReservationRead, fmt.Sprintf("user/%d", focus.ID)); err != nil {
			return nil, err
		}
	}
	now := s.now().UTC()
	bounds := model.TimeRange{Start: now, End: now.Add(s.policy.ReservationWindow(focus))}
	var states []model.ReservationState
	if state != nil {
		states = []model.ReservationState{*state}
	}
	list, err := s.reservations.ListOverlappingForUser(ctx, focus.ID, bounds, states)
	if err != nil {
		return nil, err
	}
	if state == nil || state.Active() {
		return s.transitionExpired(ctx, now, list)
	}
	return list, nil
}

// ListAllActiveAndUpcomingForXL returns every active or upcoming seat
// reservation for the ambassador station on the XL floor.
func (s *ReservationService) ListAllActiveAndUpcomingForXL(ctx context.Context, subject *model.User) ([]model.Reservation, error) {
	if err := s.perm.Enforce(subject, ActionReservationRead, "user/*"); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	list, err := s.reservations.ListActiveAndUpcomingSeats(ctx, now)
	if err != nil {
		return nil, err
	}
	return s.transitionExpired(ctx, now, list)
}

// ListAllActiveAndUpcomingForRooms returns every active or upcoming room
// reservation for the ambassador station.
func (s *ReservationService) ListAllActiveAndUpcomingForRooms(ctx context.Context, subject *model.User) ([]model.Reservation, error) {
	if err := s.perm.Enforce(subject, ActionReservationRead, "user/*"); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	list, err := s.reservations.ListActiveAndUpcomingRooms(ctx, now)
	if err != nil {
		return nil, err
	}
	return s.transitionExpired(ctx, now, list)
}
