package config

import (
	"strings"
	"time"
)

// PolicyConfig holds the numeric and temporal limits governing
// reservation behavior. Every field corresponds to an environment
// variable; defaults reflect current coworking policy.
type PolicyConfig struct {
	WalkinWindow           time.Duration // how close to now a request counts as a walk-in
	WalkinInitialDuration  time.Duration // maximum length of a walk-in reservation
	MaxReservationLength   time.Duration // maximum length of a pre-reservation
	ReservationWindow      time.Duration // how far in advance a reservation may start
	DraftTimeout           time.Duration // unconfirmed drafts auto-cancel after this
	CheckinTimeout         time.Duration // confirmed reservations auto-cancel this long after start
	RoomWeeklyLimit        time.Duration // total room hours a user may hold per week
	MinReservationDuration time.Duration // shortest reservation worth offering
	NonReservableRooms     []string      // room ids excluded from member booking
	OfficeHoursBlocks      string        // raw office-hours spec, parsed by the policy service
}

// LoadPolicyConfig reads policy values from the environment, falling
// back to the documented defaults.
func LoadPolicyConfig() PolicyConfig {
	return PolicyConfig{
		WalkinWindow:           envDur("POLICY_WALKIN_WINDOW", 10*time.Minute),
		WalkinInitialDuration:  envDur("POLICY_WALKIN_DURATION", 2*time.Hour),
		MaxReservationLength:   envDur("POLICY_MAX_RESERVATION_LENGTH", 2*time.Hour),
		ReservationWindow:      envDur("POLICY_RESERVATION_WINDOW", 7*24*time.Hour),
		DraftTimeout:           envDur("POLICY_DRAFT_TIMEOUT", 5*time.Minute),
		CheckinTimeout:         envDur("POLICY_CHECKIN_TIMEOUT", 10*time.Minute),
		RoomWeeklyLimit:        envDur("POLICY_ROOM_WEEKLY_LIMIT", 6*time.Hour),
		MinReservationDuration: envDur("POLICY_MIN_RESERVATION_DURATION", 30*time.Minute),
		NonReservableRooms:     splitList(envStr("POLICY_NON_RESERVABLE_ROOMS", "")),
		OfficeHoursBlocks:      envStr("POLICY_OFFICE_HOURS", ""),
	}
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
