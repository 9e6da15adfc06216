package service

import (
	"context"
	"time"

	"github.com/csxl/coworking-api/internal/model"
)

const slotLength = 30 * time.Minute

func floorHalfHour(t time.Time) time.Time {
	return t.Truncate(slotLength)
}

func ceilHalfHour(t time.Time) time.Time {
	floored := t.Truncate(slotLength)
	if floored.Equal(t) {
		return t
	}
	return floored.Add(slotLength)
}

// GetMapReservedTimesByDate produces a per-room array of half-hour slot
// status codes for the given date, spanning the day's operating hours
// rounded outward to half-hour boundaries.
//
// Past slots on the current day are unavailable. Any slot column where
// the subject already holds a room reservation is blanket-marked
// unavailable in every other room: a user is never shown as able to
// double-book a different room during a half-hour they already occupy.
func (s *ReservationService) GetMapReservedTimesByDate(ctx context.Context, date time.Time, subject *model.User) (*model.ReservationMapDetails, error) {
	now := s.now().UTC()
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayBounds := model.TimeRange{Start: day, End: day.AddDate(0, 0, 1)}

	details := &model.ReservationMapDetails{Date: day, Rooms: []model.RoomGrid{}}
	remaining, err := s.remainingWeeklyRoomHours(ctx, subject, day)
	if err != nil {
		return nil, err
	}
	details.RemainingHours = remaining

	hours, err := s.hours.Schedule(ctx, dayBounds)
	if err != nil {
		return nil, err
	}
	if len(hours) == 0 {
		return details, nil
	}

	gridStart := floorHalfHour(hours[0].Start)
	if gridStart.Before(day) {
		gridStart = day
	}
	gridEnd := ceilHalfHour(hours[len(hours)-1].End)
	if gridEnd.After(dayBounds.End) {
		gridEnd = dayBounds.End
	}
	slotCount := int(gridEnd.Sub(gridStart) / slotLength)
	if slotCount <= 0 {
		return details, nil
	}
	details.GridStart = gridStart
	details.GridEnd = gridEnd
	details.SlotCount = slotCount

	open := make(model.AvailabilityList, 0, len(hours))
	for _, oh := range hours {
		open = append(open, oh.Range())
	}

	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, err
	}
	reservations, err := s.reservations.ListRoomOverlapping(ctx, model.TimeRange{Start: gridStart, End: gridEnd}, nil)
	if err != nil {
		return nil, err
	}
	reservations, err = s.transitionExpired(ctx, now, reservations)
	if err != nil {
		return nil, err
	}
	byRoom := make(map[string][]model.Reservation)
	for _, res := range reservations {
		if res.Room != nil {
			byRoom[res.Room.ID] = append(byRoom[res.Room.ID], res)
		}
	}

	nonReservable := s.policy.NonReservableRooms()
	officeHours := s.policy.OfficeHours(day)

	slotRange := func(i int) model.TimeRange {
		start := gridStart.Add(time.Duration(i) * slotLength)
		return model.TimeRange{Start: start, End: start.Add(slotLength)}
	}
	withinOpenHours := func(slot model.TimeRange) bool {
		for _, r := range open {
			if !slot.Start.Before(r.Start) && !slot.End.After(r.End) {
				return true
			}
		}
		return false
	}

	subjectColumns := make([]bool, slotCount)
	grids := make([]model.RoomGrid, 0, len(rooms))
	for _, room := range rooms {
		slots := make([]int, slotCount)
		blocked := officeHours[room.ID]
		for i := 0; i < slotCount; i++ {
			slot := slotRange(i)
			switch {
			case !withinOpenHours(slot):
				slots[i] = model.SlotUnavailable
			case slot.Start.Before(now):
				slots[i] = model.SlotUnavailable
			case !room.Reservable || nonReservable[room.ID]:
				slots[i] = model.SlotUnavailable
			default:
				slots[i] = model.SlotAvailable
				for _, b := range blocked {
					if b.Overlaps(slot) {
						slots[i] = model.SlotUnavailable
						break
					}
				}
			}
		}
		for _, res := range byRoom[room.ID] {
			mine := subject != nil && res.HasUser(subject.ID)
			for i := 0; i < slotCount; i++ {
				if !res.Range().Overlaps(slotRange(i)) {
					continue
				}
				if mine {
					slots[i] = model.SlotSubjectReserved
					subjectColumns[i] = true
				} else {
					slots[i] = model.SlotReserved
				}
			}
		}
		grids = append(grids, model.RoomGrid{Room: room, Slots: slots})
	}

	// Blanket rule: a half-hour the subject already occupies in one room
	// is unavailable everywhere else.
	for g := range grids {
		for i, status := range grids[g].Slots {
			if subjectColumns[i] && status == model.SlotAvailable {
				grids[g].Slots[i] = model.SlotUnavailable
			}
		}
	}

	details.Rooms = grids
	return details, nil
}

// remainingWeeklyRoomHours computes how many room hours the subject may
// still book in the week containing the given day.
func (s *ReservationService) remainingWeeklyRoomHours(ctx context.Context, subject *model.User, day time.Time) (float64, error) {
	if subject == nil {
		return 0, nil
	}
	week := weekOf(day)
	counted := []model.ReservationState{model.StateDraft, model.StateConfirmed, model.StateCheckedIn, model.StateCheckedOut}
	existing, err := s.reservations.ListRoomOverlappingForUser(ctx, subject.ID, week, counted)
	if err != nil {
		return 0, err
	}
	var used time.Duration
	for _, res := range existing {
		used += res.Range().Constrain(week).Duration()
	}
	remaining := s.policy.RoomReservationWeeklyLimit() - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining.Hours(), nil
}
