package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/csxl/coworking-api/internal/model"
	"github.com/csxl/coworking-api/internal/repository"
)

func openHours(start, end time.Time) []model.OperatingHours {
	return []model.OperatingHours{{ID: 1, Start: start, End: end}}
}

func seat(id uint64, reservable bool) model.Seat {
	return model.Seat{ID: id, Title: "Seat", Reservable: reservable}
}

func TestSeatAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("window entirely in the past yields nothing", func(t *testing.T) {
		f := newFixture()
		f.schedule.hours = openHours(at(7, 0), at(17, 0))
		got, err := f.svc.SeatAvailability(ctx, []model.Seat{seat(1, true)}, model.TimeRange{Start: at(7, 0), End: at(8, 0)})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 0 {
			t.Fatalf("got %d seats, want 0", len(got))
		}
	})

	t.Run("window too short for the minimum yields nothing", func(t *testing.T) {
		f := newFixture()
		f.schedule.hours = openHours(at(9, 0), at(17, 0))
		got, err := f.svc.SeatAvailability(ctx, []model.Seat{seat(1, true)}, model.TimeRange{Start: at(10, 0), End: at(10, 20)})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 0 {
			t.Fatalf("got %d seats, want 0", len(got))
		}
	})

	t.Run("reservations split availability and sorting prefers the freer seat", func(t *testing.T) {
		f := newFixture()
		f.schedule.hours = openHours(at(9, 0), at(17, 0))
		f.reservations.listOverlappingForSeats = func(seatIDs []uint64, bounds model.TimeRange, states []model.ReservationState) ([]model.Reservation, error) {
			return []model.Reservation{{
				ID: 7, State: model.StateConfirmed,
				Start: at(10, 0), End: at(11, 0),
				Seats: []model.Seat{seat(1, true)},
				Users: []model.User{member},
			}}, nil
		}

		got, err := f.svc.SeatAvailability(ctx, []model.Seat{seat(1, true), seat(2, true)},
			model.TimeRange{Start: at(9, 0), End: at(17, 0)})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d seats, want 2", len(got))
		}
		// Seat 2's first slot covers the whole day, so it sorts first.
		if got[0].ID != 2 {
			t.Errorf("first seat = %d, want 2", got[0].ID)
		}
		if len(got[0].Availability) != 1 || got[0].Availability[0] != (model.TimeRange{Start: at(9, 0), End: at(17, 0)}) {
			t.Errorf("seat 2 availability = %v", got[0].Availability)
		}
		want := model.AvailabilityList{
			{Start: at(9, 0), End: at(10, 0)},
			{Start: at(11, 0), End: at(17, 0)},
		}
		if len(got[1].Availability) != 2 || got[1].Availability[0] != want[0] || got[1].Availability[1] != want[1] {
			t.Errorf("seat 1 availability = %v, want %v", got[1].Availability, want)
		}
	})

	t.Run("seat with total availability below the minimum is dropped", func(t *testing.T) {
		f := newFixture()
		f.schedule.hours = openHours(at(9, 0), at(17, 0))
		f.reservations.listOverlappingForSeats = func([]uint64, model.TimeRange, []model.ReservationState) ([]model.Reservation, error) {
			// Leaves a 29 minute tail, one minute short of bookable.
			return []model.Reservation{{
				ID: 8, State: model.StateConfirmed,
				Start: at(9, 0), End: at(16, 31),
				Seats: []model.Seat{seat(1, true)},
				Users: []model.User{ambassador},
			}}, nil
		}
		got, err := f.svc.SeatAvailability(ctx, []model.Seat{seat(1, true)},
			model.TimeRange{Start: at(9, 0), End: at(17, 0)})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 0 {
			t.Fatalf("got %v, want no seats", got)
		}
	})

	t.Run("bounds starting in the past are clipped to now", func(t *testing.T) {
		f := newFixture()
		f.schedule.hours = openHours(at(7, 0), at(17, 0))
		got, err := f.svc.SeatAvailability(ctx, []model.Seat{seat(1, true)},
			model.TimeRange{Start: at(7, 0), End: at(17, 0)})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 {
			t.Fatalf("got %d seats, want 1", len(got))
		}
		if !got[0].Availability[0].Start.Equal(testClock) {
			t.Errorf("availability starts %v, want %v", got[0].Availability[0].Start, testClock)
		}
	})
}

func TestDraftReservationSeats(t *testing.T) {
	ctx := context.Background()

	t.Run("walk-in is clamped to the walk-in duration", func(t *testing.T) {
		f := newFixture()
		f.schedule.hours = openHours(at(9, 0), at(17, 0))
		f.users.users = []model.User{member}
		f.seats.seats = []model.Seat{seat(1, true)}

		res, err := f.svc.DraftReservation(ctx, &member, model.ReservationRequest{
			UserIDs: []uint64{member.ID},
			Start:   at(9, 0), End: at(17, 0),
		})
		if err != nil {
			t.Fatal(err)
		}
		if res.State != model.StateDraft {
			t.Errorf("state = %s, want DRAFT", res.State)
		}
		if !res.Walkin {
			t.Error("expected a walk-in reservation")
		}
		if !res.Start.Equal(at(9, 0)) || !res.End.Equal(at(11, 0)) {
			t.Errorf("window = %v..%v, want 09:00..11:00", res.Start, res.End)
		}
		if len(res.Seats) != 1 || res.Seats[0].ID != 1 {
			t.Errorf("seats = %v, want seat 1", res.Seats)
		}
		if len(f.reservations.created) != 1 {
			t.Errorf("created %d reservations, want 1", len(f.reservations.created))
		}
	})

	t.Run("advance reservations skip non-reservable seats", func(t *testing.T) {
		f := newFixture()
		f.schedule.hours = openHours(at(9, 0), at(17, 0))
		f.users.users = []model.User{member}
		f.seats.seats = []model.Seat{seat(1, false), seat(2, true)}

		res, err := f.svc.DraftReservation(ctx, &member, model.ReservationRequest{
			UserIDs: []uint64{member.ID},
			Start:   at(13, 0), End: at(15, 0),
		})
		if err != nil {
			t.Fatal(err)
		}
		if res.Walkin {
			t.Error("a reservation an hour out must not be a walk-in")
		}
		if len(res.Seats) != 1 || res.Seats[0].ID != 2 {
			t.Errorf("seats = %v, want reservable seat 2", res.Seats)
		}
	})

	t.Run("seats and a room together are rejected", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.DraftReservation(ctx, &member, model.ReservationRequest{
			UserIDs: []uint64{member.ID},
			SeatIDs: []uint64{1},
			RoomID:  "pair-a",
			Start:   at(10, 0), End: at(11, 0),
		})
		var resErr *ReservationError
		if !errors.As(err, &resErr) {
			t.Fatalf("err = %v, want ReservationError", err)
		}
	})

	t.Run("starts beyond the reservation window are rejected", func(t *testing.T) {
		f := newFixture()
		start := testClock.Add(8 * 24 * time.Hour)
		_, err := f.svc.DraftReservation(ctx, &member, model.ReservationRequest{
			UserIDs: []uint64{member.ID},
			Start:   start, End: start.Add(time.Hour),
		})
		var resErr *ReservationError
		if !errors.As(err, &resErr) {
			t.Fatalf("err = %v, want ReservationError", err)
		}
	})

	t.Run("a second concurrent walk-in is rejected", func(t *testing.T) {
		f := newFixture()
		f.schedule.hours = openHours(at(9, 0), at(17, 0))
		f.users.users = []model.User{member}
		f.seats.seats = []model.Seat{seat(1, true)}
		f.reservations.listOverlappingForUser = func(uint64, model.TimeRange, []model.ReservationState) ([]model.Reservation, error) {
			return []model.Reservation{{
				ID: 4, State: model.StateCheckedIn, Walkin: true,
				Start: at(8, 30), End: at(10, 30),
				Users: []model.User{member},
			}}, nil
		}
		_, err := f.svc.DraftReservation(ctx, &member, model.ReservationRequest{
			UserIDs: []uint64{member.ID},
			Start:   at(9, 0), End: at(10, 0),
		})
		var resErr *ReservationError
		if !errors.As(err, &resErr) {
			t.Fatalf("err = %v, want ReservationError", err)
		}
	})

	t.Run("an overlapping reservation shrinks the window to the remainder", func(t *testing.T) {
		f := newFixture()
		f.schedule.hours = openHours(at(9, 0), at(17, 0))
		f.users.users = []model.User{member}
		f.seats.seats = []model.Seat{seat(1, true)}
		f.reservations.listOverlappingForUser = func(uint64, model.TimeRange, []model.ReservationState) ([]model.Reservation, error) {
			return []model.Reservation{{
				ID: 5, State: model.StateConfirmed,
				Start: at(10, 0), End: at(11, 0),
				Users: []model.User{member},
			}}, nil
		}
		res, err := f.svc.DraftReservation(ctx, &member, model.ReservationRequest{
			UserIDs: []uint64{member.ID},
			Start:   at(9, 30), End: at(10, 30),
		})
		if err != nil {
			t.Fatal(err)
		}
		if !res.Start.Equal(at(9, 30)) || !res.End.Equal(at(10, 0)) {
			t.Errorf("window = %v..%v, want 09:30..10:00", res.Start, res.End)
		}
	})

	t.Run("a conflict splitting the window in two is rejected", func(t *testing.T) {
		f := newFixture()
		f.schedule.hours = openHours(at(9, 0), at(17, 0))
		f.users.users = []model.User{member}
		f.seats.seats = []model.Seat{seat(1, true)}
		f.reservations.listOverlappingForUser = func(uint64, model.TimeRange, []model.ReservationState) ([]model.Reservation, error) {
			return []model.Reservation{{
				ID: 5, State: model.StateConfirmed,
				Start: at(13, 30), End: at(14, 0),
				Users: []model.User{member},
			}}, nil
		}
		_, err := f.svc.DraftReservation(ctx, &member, model.ReservationRequest{
			UserIDs: []uint64{member.ID},
			Start:   at(13, 0), End: at(15, 0),
		})
		var resErr *ReservationError
		if !errors.As(err, &resErr) {
			t.Fatalf("err = %v, want ReservationError", err)
		}
	})

	t.Run("multi-user requests are not implemented", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.DraftReservation(ctx, &member, model.ReservationRequest{
			UserIDs: []uint64{1, 2},
			Start:   at(10, 0), End: at(11, 0),
		})
		if !errors.Is(err, ErrNotImplemented) {
			t.Fatalf("err = %v, want ErrNotImplemented", err)
		}
	})

	t.Run("drafting for another user requires the manage permission", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.DraftReservation(ctx, &member, model.ReservationRequest{
			UserIDs: []uint64{ambassador.ID},
			Start:   at(10, 0), End: at(11, 0),
		})
		if !errors.Is(err, repository.ErrForbidden) {
			t.Fatalf("err = %v, want ErrForbidden", err)
		}
	})
}

func TestDraftReservationRooms(t *testing.T) {
	ctx := context.Background()

	t.Run("a room draft binds the room and no seats", func(t *testing.T) {
		f := newFixture()
		f.schedule.hours = openHours(at(9, 0), at(17, 0))
		f.users.users = []model.User{member}
		f.rooms.rooms = []model.Room{{ID: "pair-a", Nickname: "Pair A", Reservable: true, Capacity: 4}}

		res, err := f.svc.DraftReservation(ctx, &member, model.ReservationRequest{
			UserIDs: []uint64{member.ID},
			RoomID:  "pair-a",
			Start:   at(13, 0), End: at(14, 0),
		})
		if err != nil {
			t.Fatal(err)
		}
		if res.Room == nil || res.Room.ID != "pair-a" {
			t.Errorf("room = %v, want pair-a", res.Room)
		}
		if len(res.Seats) != 0 {
			t.Errorf("seats = %v, want none", res.Seats)
		}
	})

	t.Run("non-reservable rooms are rejected", func(t *testing.T) {
		f := newFixture()
		f.rooms.rooms = []model.Room{{ID: "lounge", Nickname: "Lounge", Reservable: false}}
		_, err := f.svc.DraftReservation(ctx, &member, model.ReservationRequest{
			UserIDs: []uint64{member.ID},
			RoomID:  "lounge",
			Start:   at(13, 0), End: at(14, 0),
		})
		var resErr *ReservationError
		if !errors.As(err, &resErr) {
			t.Fatalf("err = %v, want ReservationError", err)
		}
	})

	t.Run("the weekly room cap counts existing hours in the same week", func(t *testing.T) {
		f := newFixture()
		f.rooms.rooms = []model.Room{{ID: "pair-a", Nickname: "Pair A", Reservable: true}}
		f.reservations.listRoomOverlappingForUser = func(uint64, model.TimeRange, []model.ReservationState) ([]model.Reservation, error) {
			room := model.Room{ID: "pair-a", Reservable: true}
			return []model.Reservation{{
				ID: 9, State: model.StateCheckedOut,
				Start: at(13, 0), End: at(18, 0), // five hours used
				Room:  &room,
				Users: []model.User{member},
			}}, nil
		}
		_, err := f.svc.DraftReservation(ctx, &member, model.ReservationRequest{
			UserIDs: []uint64{member.ID},
			RoomID:  "pair-a",
			Start:   testClock.AddDate(0, 0, 1), End: testClock.AddDate(0, 0, 1).Add(2 * time.Hour),
		})
		var resErr *ReservationError
		if !errors.As(err, &resErr) {
			t.Fatalf("err = %v, want ReservationError", err)
		}
	})

	t.Run("a room already reserved during the window is rejected", func(t *testing.T) {
		f := newFixture()
		f.users.users = []model.User{member}
		f.rooms.rooms = []model.Room{{ID: "pair-a", Nickname: "Pair A", Reservable: true}}
		f.reservations.listRoomOverlapping = func(model.TimeRange, []model.ReservationState) ([]model.Reservation, error) {
			room := model.Room{ID: "pair-a", Reservable: true}
			return []model.Reservation{{
				ID: 10, State: model.StateConfirmed,
				Start: at(13, 0), End: at(14, 0),
				Room:  &room,
				Users: []model.User{ambassador},
			}}, nil
		}
		_, err := f.svc.DraftReservation(ctx, &member, model.ReservationRequest{
			UserIDs: []uint64{member.ID},
			RoomID:  "pair-a",
			Start:   at(13, 30), End: at(14, 30),
		})
		var resErr *ReservationError
		if !errors.As(err, &resErr) {
			t.Fatalf("err = %v, want ReservationError", err)
		}
	})
}

func TestChangeReservation(t *testing.T) {
	ctx := context.Background()

	stored := func(state model.ReservationState) func(uint64) (*model.Reservation, error) {
		return func(id uint64) (*model.Reservation, error) {
			return &model.Reservation{
				ID: id, State: state,
				Start: at(10, 0), End: at(11, 0),
				CreatedAt: testClock, UpdatedAt: testClock,
				Users: []model.User{member},
			}, nil
		}
	}

	t.Run("the owner confirms a draft", func(t *testing.T) {
		f := newFixture()
		f.reservations.getByID = stored(model.StateDraft)
		state := model.StateConfirmed
		res, err := f.svc.ChangeReservation(ctx, &member, model.ReservationDelta{ID: 12, State: &state})
		if err != nil {
			t.Fatal(err)
		}
		if res.State != model.StateConfirmed {
			t.Errorf("state = %s, want CONFIRMED", res.State)
		}
		if len(f.events.confirmed) != 1 || f.events.confirmed[0] != 12 {
			t.Errorf("confirmed events = %v, want [12]", f.events.confirmed)
		}
	})

	t.Run("an illegal transition is ignored without error", func(t *testing.T) {
		f := newFixture()
		f.reservations.getByID = stored(model.StateConfirmed)
		state := model.StateDraft
		res, err := f.svc.ChangeReservation(ctx, &member, model.ReservationDelta{ID: 12, State: &state})
		if err != nil {
			t.Fatal(err)
		}
		if res.State != model.StateConfirmed {
			t.Errorf("state = %s, want CONFIRMED unchanged", res.State)
		}
		if len(f.reservations.updates) != 0 {
			t.Errorf("updates = %v, want none", f.reservations.updates)
		}
	})

	t.Run("time edits are not implemented", func(t *testing.T) {
		f := newFixture()
		f.reservations.getByID = stored(model.StateDraft)
		start := at(12, 0)
		_, err := f.svc.ChangeReservation(ctx, &member, model.ReservationDelta{ID: 12, Start: &start})
		if !errors.Is(err, ErrNotImplemented) {
			t.Fatalf("err = %v, want ErrNotImplemented", err)
		}
	})

	t.Run("a stranger cannot touch the reservation", func(t *testing.T) {
		f := newFixture()
		f.reservations.getByID = stored(model.StateDraft)
		stranger := model.User{ID: 99, Role: model.RoleMember}
		state := model.StateCancelled
		_, err := f.svc.ChangeReservation(ctx, &stranger, model.ReservationDelta{ID: 12, State: &state})
		if !errors.Is(err, repository.ErrForbidden) {
			t.Fatalf("err = %v, want ErrForbidden", err)
		}
	})

	t.Run("an expired draft reads back cancelled", func(t *testing.T) {
		f := newFixture()
		f.reservations.getByID = func(id uint64) (*model.Reservation, error) {
			return &model.Reservation{
				ID: 13, State: model.StateDraft,
				Start: at(10, 0), End: at(11, 0),
				CreatedAt: testClock.Add(-6 * time.Minute),
				Users:     []model.User{member},
			}, nil
		}
		res, err := f.svc.ChangeReservation(ctx, &member, model.ReservationDelta{ID: 13})
		if err != nil {
			t.Fatal(err)
		}
		if res.State != model.StateCancelled {
			t.Errorf("state = %s, want CANCELLED", res.State)
		}
		if len(f.reservations.updates) != 1 || f.reservations.updates[0].State != model.StateCancelled {
			t.Errorf("updates = %v, want one cancellation", f.reservations.updates)
		}
		if len(f.events.cancelled) != 1 {
			t.Errorf("cancelled events = %v, want one", f.events.cancelled)
		}
	})

	t.Run("checkout stamps the end time", func(t *testing.T) {
		f := newFixture()
		f.reservations.getByID = func(id uint64) (*model.Reservation, error) {
			return &model.Reservation{
				ID: 14, State: model.StateCheckedIn,
				Start: at(8, 0), End: at(12, 0),
				CreatedAt: at(8, 0),
				Users:     []model.User{member},
			}, nil
		}
		state := model.StateCheckedOut
		res, err := f.svc.ChangeReservation(ctx, &member, model.ReservationDelta{ID: 14, State: &state})
		if err != nil {
			t.Fatal(err)
		}
		if res.State != model.StateCheckedOut {
			t.Errorf("state = %s, want CHECKED_OUT", res.State)
		}
		if !res.End.Equal(testClock) {
			t.Errorf("end = %v, want %v", res.End, testClock)
		}
	})
}

func TestStaffCheckinReservation(t *testing.T) {
	ctx := context.Background()

	stored := func(state model.ReservationState, start time.Time) func(uint64) (*model.Reservation, error) {
		return func(id uint64) (*model.Reservation, error) {
			return &model.Reservation{
				ID: id, State: state,
				Start: start, End: start.Add(2 * time.Hour),
				CreatedAt: start.Add(-time.Hour),
				Users:     []model.User{member},
			}, nil
		}
	}

	t.Run("an ambassador checks in a confirmed reservation", func(t *testing.T) {
		f := newFixture()
		f.reservations.getByID = stored(model.StateConfirmed, at(8, 55))
		res, err := f.svc.StaffCheckinReservation(ctx, &ambassador, 21)
		if err != nil {
			t.Fatal(err)
		}
		if res.State != model.StateCheckedIn {
			t.Errorf("state = %s, want CHECKED_IN", res.State)
		}
	})

	t.Run("checking in twice is a no-op", func(t *testing.T) {
		f := newFixture()
		f.reservations.getByID = stored(model.StateCheckedIn, at(8, 55))
		res, err := f.svc.StaffCheckinReservation(ctx, &ambassador, 21)
		if err != nil {
			t.Fatal(err)
		}
		if res.State != model.StateCheckedIn {
			t.Errorf("state = %s, want CHECKED_IN", res.State)
		}
		if len(f.reservations.updates) != 0 {
			t.Errorf("updates = %v, want none", f.reservations.updates)
		}
	})

	t.Run("drafts cannot be checked in", func(t *testing.T) {
		f := newFixture()
		f.reservations.getByID = stored(model.StateDraft, at(8, 58))
		_, err := f.svc.StaffCheckinReservation(ctx, &ambassador, 21)
		var resErr *ReservationError
		if !errors.As(err, &resErr) {
			t.Fatalf("err = %v, want ReservationError", err)
		}
	})

	t.Run("a confirmed reservation past the check-in timeout auto-cancels", func(t *testing.T) {
		f := newFixture()
		f.reservations.getByID = stored(model.StateConfirmed, at(8, 30))
		_, err := f.svc.StaffCheckinReservation(ctx, &ambassador, 21)
		var resErr *ReservationError
		if !errors.As(err, &resErr) {
			t.Fatalf("err = %v, want ReservationError", err)
		}
		if len(f.reservations.updates) != 1 || f.reservations.updates[0].State != model.StateCancelled {
			t.Errorf("updates = %v, want one cancellation", f.reservations.updates)
		}
	})

	t.Run("members cannot run the check-in desk", func(t *testing.T) {
		f := newFixture()
		f.reservations.getByID = stored(model.StateConfirmed, at(8, 55))
		_, err := f.svc.StaffCheckinReservation(ctx, &member, 21)
		if !errors.Is(err, repository.ErrForbidden) {
			t.Fatalf("err = %v, want ErrForbidden", err)
		}
	})
}

func TestGetCurrentReservationsForUser(t *testing.T) {
	ctx := context.Background()

	t.Run("a cancelled-state filter skips lazy transitions", func(t *testing.T) {
		f := newFixture()
		f.reservations.listOverlappingForUser = func(_ uint64, _ model.TimeRange, states []model.ReservationState) ([]model.Reservation, error) {
			if len(states) != 1 || states[0] != model.StateCancelled {
				t.Errorf("states = %v, want [CANCELLED]", states)
			}
			return []model.Reservation{{ID: 31, State: model.StateCancelled, Users: []model.User{member}}}, nil
		}
		state := model.StateCancelled
		got, err := f.svc.GetCurrentReservationsForUser(ctx, &member, &member, &state)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 {
			t.Fatalf("got %d reservations, want 1", len(got))
		}
		if len(f.reservations.updates) != 0 {
			t.Errorf("updates = %v, want none", f.reservations.updates)
		}
	})

	t.Run("reading another member's reservations is forbidden", func(t *testing.T) {
		f := newFixture()
		other := model.User{ID: 50, Role: model.RoleMember}
		_, err := f.svc.GetCurrentReservationsForUser(ctx, &member, &other, nil)
		if !errors.Is(err, repository.ErrForbidden) {
			t.Fatalf("err = %v, want ErrForbidden", err)
		}
	})

	t.Run("ambassadors read any member and expired drafts drop out", func(t *testing.T) {
		f := newFixture()
		f.reservations.listOverlappingForUser = func(uint64, model.TimeRange, []model.ReservationState) ([]model.Reservation, error) {
			return []model.Reservation{
				{ID: 32, State: model.StateConfirmed, Start: at(10, 0), End: at(11, 0), Users: []model.User{member}},
				{ID: 33, State: model.StateDraft, Start: at(10, 0), End: at(11, 0),
					CreatedAt: testClock.Add(-10 * time.Minute), Users: []model.User{member}},
			}, nil
		}
		got, err := f.svc.GetCurrentReservationsForUser(ctx, &ambassador, &member, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].ID != 32 {
			t.Fatalf("got %v, want only reservation 32", got)
		}
	})
}

func TestWeekOf(t *testing.T) {
	// 2026-03-08 is a Sunday; its week starts Monday 2026-03-02.
	sunday := time.Date(2026, 3, 8, 23, 30, 0, 0, time.UTC)
	week := weekOf(sunday)
	if !week.Start.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("week start = %v", week.Start)
	}
	if !week.End.Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("week end = %v", week.End)
	}
}
