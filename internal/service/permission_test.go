package service

import (
	"errors"
	"testing"

	"github.com/csxl/coworking-api/internal/model"
	"github.com/csxl/coworking-api/internal/repository"
)

func TestRolePermission(t *testing.T) {
	perm := NewRolePermission()

	cases := []struct {
		name    string
		subject *model.User
		action  string
		want    bool
	}{
		{"admin matches any coworking action", &admin, ActionOperatingHoursCreate, true},
		{"admin manages reservations", &admin, ActionReservationManage, true},
		{"ambassador manages reservations", &ambassador, ActionReservationManage, true},
		{"ambassador reads reservations", &ambassador, ActionReservationRead, true},
		{"ambassador cannot edit operating hours", &ambassador, ActionOperatingHoursCreate, false},
		{"member holds nothing", &member, ActionReservationRead, false},
		{"nil subject holds nothing", nil, ActionReservationRead, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := perm.Check(tc.subject, tc.action, "user/1"); got != tc.want {
				t.Errorf("Check = %v, want %v", got, tc.want)
			}
			err := perm.Enforce(tc.subject, tc.action, "user/1")
			if tc.want && err != nil {
				t.Errorf("Enforce = %v, want nil", err)
			}
			if !tc.want && !errors.Is(err, repository.ErrForbidden) {
				t.Errorf("Enforce = %v, want ErrForbidden", err)
			}
		})
	}
}
