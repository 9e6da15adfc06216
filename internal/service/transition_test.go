package service

import (
	"testing"
	"time"

	"github.com/csxl/coworking-api/internal/model"
)

func TestTransitionForTime(t *testing.T) {
	const (
		draftTimeout   = 5 * time.Minute
		checkinTimeout = 10 * time.Minute
	)

	cases := []struct {
		name        string
		res         model.Reservation
		now         time.Time
		want        model.ReservationState
		wantChanged bool
	}{
		{
			name: "fresh draft stays",
			res:  model.Reservation{State: model.StateDraft, CreatedAt: at(9, 0)},
			now:  at(9, 4),
			want: model.StateDraft,
		},
		{
			name:        "stale draft cancels",
			res:         model.Reservation{State: model.StateDraft, CreatedAt: at(9, 0)},
			now:         at(9, 6),
			want:        model.StateCancelled,
			wantChanged: true,
		},
		{
			name: "confirmed within the check-in window stays",
			res:  model.Reservation{State: model.StateConfirmed, Start: at(10, 0), End: at(12, 0)},
			now:  at(10, 9),
			want: model.StateConfirmed,
		},
		{
			name:        "confirmed past the check-in window cancels",
			res:         model.Reservation{State: model.StateConfirmed, Start: at(10, 0), End: at(12, 0)},
			now:         at(10, 11),
			want:        model.StateCancelled,
			wantChanged: true,
		},
		{
			name: "checked in before the end stays",
			res:  model.Reservation{State: model.StateCheckedIn, Start: at(10, 0), End: at(12, 0)},
			now:  at(11, 59),
			want: model.StateCheckedIn,
		},
		{
			name:        "checked in at the end checks out",
			res:         model.Reservation{State: model.StateCheckedIn, Start: at(10, 0), End: at(12, 0)},
			now:         at(12, 0),
			want:        model.StateCheckedOut,
			wantChanged: true,
		},
		{
			name: "cancelled never moves",
			res:  model.Reservation{State: model.StateCancelled, Start: at(10, 0), End: at(12, 0)},
			now:  at(23, 0),
			want: model.StateCancelled,
		},
		{
			name: "checked out never moves",
			res:  model.Reservation{State: model.StateCheckedOut, Start: at(10, 0), End: at(12, 0)},
			now:  at(23, 0),
			want: model.StateCheckedOut,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := tc.res
			got, changed := TransitionForTime(tc.now, &res, draftTimeout, checkinTimeout)
			if got != tc.want || changed != tc.wantChanged {
				t.Errorf("TransitionForTime = (%s, %v), want (%s, %v)", got, changed, tc.want, tc.wantChanged)
			}
			if res.State != tc.res.State {
				t.Error("TransitionForTime mutated its argument")
			}
		})
	}
}
