package service

import (
	"strings"
	"time"

	"github.com/csxl/coworking-api/internal/config"
	"github.com/csxl/coworking-api/internal/model"
)

// Policy is a pure provider of reservation limits. Values are static per
// process but the user-scoped accessors keep room for role-dependent
// policy without changing call sites.
type Policy struct {
	cfg config.PolicyConfig
}

// NewPolicy wraps a loaded PolicyConfig.
func NewPolicy(cfg config.PolicyConfig) *Policy {
	return &Policy{cfg: cfg}
}

// WalkinWindow is how close to the current time a requested start must be
// for the reservation to count as a walk-in.
func (p *Policy) WalkinWindow(user *model.User) time.Duration {
	return p.cfg.WalkinWindow
}

// WalkinInitialDuration caps the length of a walk-in reservation.
func (p *Policy) WalkinInitialDuration(user *model.User) time.Duration {
	return p.cfg.WalkinInitialDuration
}

// MaximumInitialReservationDuration caps the length of a pre-reservation.
func (p *Policy) MaximumInitialReservationDuration(user *model.User) time.Duration {
	return p.cfg.MaxReservationLength
}

// ReservationWindow is how far in advance a reservation may start.
func (p *Policy) ReservationWindow(user *model.User) time.Duration {
	return p.cfg.ReservationWindow
}

// ReservationDraftTimeout is how long an unconfirmed draft survives.
func (p *Policy) ReservationDraftTimeout() time.Duration {
	return p.cfg.DraftTimeout
}

// ReservationCheckinTimeout is how long after its start a confirmed
// reservation waits for check-in before auto-cancelling.
func (p *Policy) ReservationCheckinTimeout() time.Duration {
	return p.cfg.CheckinTimeout
}

// RoomReservationWeeklyLimit caps a user's total room hours per week.
func (p *Policy) RoomReservationWeeklyLimit() time.Duration {
	return p.cfg.RoomWeeklyLimit
}

// MinimumReservationDuration is the shortest reservation worth offering;
// availability slots below it are not surfaced.
func (p *Policy) MinimumReservationDuration() time.Duration {
	return p.cfg.MinReservationDuration
}

// NonReservableRooms returns the room ids excluded from member booking.
func (p *Policy) NonReservableRooms() map[string]bool {
	out := make(map[string]bool, len(p.cfg.NonReservableRooms))
	for _, id := range p.cfg.NonReservableRooms {
		out[id] = true
	}
	return out
}

// OfficeHours returns the room intervals blocked for office hours on the
// given date. The configuration format is a semicolon-separated list of
// ROOM=HH:MM-HH:MM[,HH:MM-HH:MM] entries applied to every weekday; the
// returned ranges are anchored to the date in UTC. Weekend dates have no
// office hours.
func (p *Policy) OfficeHours(date time.Time) map[string][]model.TimeRange {
	out := map[string][]model.TimeRange{}
	if p.cfg.OfficeHoursBlocks == "" {
		return out
	}
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return out
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	for _, entry := range strings.Split(p.cfg.OfficeHoursBlocks, ";") {
		entry = strings.TrimSpace(entry)
		room, spans, ok := strings.Cut(entry, "=")
		if !ok || room == "" {
			continue
		}
		for _, span := range strings.Split(spans, ",") {
			from, to, ok := strings.Cut(strings.TrimSpace(span), "-")
			if !ok {
				continue
			}
			start, err1 := time.Parse("15:04", from)
			end, err2 := time.Parse("15:04", to)
			if err1 != nil || err2 != nil {
				continue
			}
			r := model.TimeRange{
				Start: day.Add(time.Duration(start.Hour())*time.Hour + time.Duration(start.Minute())*time.Minute),
				End:   day.Add(time.Duration(end.Hour())*time.Hour + time.Duration(end.Minute())*time.Minute),
			}
			if !r.IsEmpty() {
				out[room] = append(out[room], r)
			}
		}
	}
	return out
}
