package service

import (
	"testing"
	"time"

	"github.com/csxl/coworking-api/internal/config"
	"github.com/csxl/coworking-api/internal/model"
)

func TestPolicyOfficeHours(t *testing.T) {
	policy := NewPolicy(testPolicyConfigWithOfficeHours("pair-a=13:00-14:00,15:00-16:00; lounge=09:00-10:00"))

	t.Run("weekday blocks are anchored to the date", func(t *testing.T) {
		monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		got := policy.OfficeHours(monday)
		if len(got) != 2 {
			t.Fatalf("got %d rooms, want 2", len(got))
		}
		a := got["pair-a"]
		if len(a) != 2 {
			t.Fatalf("pair-a has %d blocks, want 2", len(a))
		}
		if a[0] != (model.TimeRange{Start: at(13, 0), End: at(14, 0)}) {
			t.Errorf("first block = %v", a[0])
		}
		if a[1] != (model.TimeRange{Start: at(15, 0), End: at(16, 0)}) {
			t.Errorf("second block = %v", a[1])
		}
		if len(got["lounge"]) != 1 {
			t.Errorf("lounge blocks = %v, want one", got["lounge"])
		}
	})

	t.Run("weekends have no office hours", func(t *testing.T) {
		saturday := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
		if got := policy.OfficeHours(saturday); len(got) != 0 {
			t.Errorf("got %v, want empty", got)
		}
	})

	t.Run("malformed entries are skipped", func(t *testing.T) {
		p := NewPolicy(testPolicyConfigWithOfficeHours("garbage;pair-a=25:99-26:00;pair-b=13:00-14:00"))
		got := p.OfficeHours(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
		if len(got) != 1 || len(got["pair-b"]) != 1 {
			t.Errorf("got %v, want only pair-b", got)
		}
	})
}

func TestPolicyNonReservableRooms(t *testing.T) {
	policy := NewPolicy(config.PolicyConfig{NonReservableRooms: []string{"lounge", "quiet"}})
	rooms := policy.NonReservableRooms()
	if !rooms["lounge"] || !rooms["quiet"] || rooms["pair-a"] {
		t.Errorf("rooms = %v", rooms)
	}
}
