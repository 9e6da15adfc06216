package service

import (
	"fmt"
	"strings"

	"github.com/csxl/coworking-api/internal/model"
	"github.com/csxl/coworking-api/internal/repository"
)

// Actions enforced by the coworking services.
const (
	ActionReservationManage    = "coworking.reservation.manage"
	ActionReservationRead      = "coworking.reservation.read"
	ActionOperatingHoursCreate = "coworking.operating_hours.create"
	ActionOperatingHoursDelete = "coworking.operating_hours.delete"
)

// Permission decides whether a subject may perform an action on a
// resource. The full grant grammar lives in the wider access-control
// system; this service only needs prefix-style grants keyed by role.
type Permission interface {
	// Enforce returns repository.ErrForbidden (wrapped) when the subject
	// lacks the grant, nil otherwise.
	Enforce(subject *model.User, action, resource string) error
	// Check reports whether the subject holds the grant.
	Check(subject *model.User, action, resource string) bool
}

// rolePermission grants actions by role. A grant ending in ".*" matches
// any action sharing its prefix.
type rolePermission struct {
	grants map[string][]string
}

// NewRolePermission builds the static role grants used by the coworking
// services: admins hold every coworking action, ambassadors hold the
// reservation actions needed to run the check-in desk.
func NewRolePermission() Permission {
	return &rolePermission{
		grants: map[string][]string{
			model.RoleAdmin:      {"coworking.*"},
			model.RoleAmbassador: {ActionReservationManage, ActionReservationRead},
			model.RoleMember:     {},
		},
	}
}

func (p *rolePermission) Check(subject *model.User, action, resource string) bool {
	if subject == nil {
		return false
	}
	for _, grant := range p.grants[subject.Role] {
		if grant == action {
			return true
		}
		if strings.HasSuffix(grant, ".*") && strings.HasPrefix(action, strings.TrimSuffix(grant, "*")) {
			return true
		}
	}
	return false
}

func (p *rolePermission) Enforce(subject *model.User, action, resource string) error {
	if p.Check(subject, action, resource) {
		return nil
	}
	return fmt.Errorf("%s on %s: %w", action, resource, repository.ErrForbidden)
}
