package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/csxl/coworking-api/internal/config"
	"github.com/csxl/coworking-api/internal/model"
	"github.com/csxl/coworking-api/internal/repository"
)

// Function-field mocks for the store interfaces. Unset fields return
// empty results so each test only wires what it exercises.

type mockReservationStore struct {
	mu      sync.Mutex
	updates []stateUpdate
	created []*model.Reservation

	getByID                    func(id uint64) (*model.Reservation, error)
	listOverlappingForSeats    func(seatIDs []uint64, bounds model.TimeRange, states []model.ReservationState) ([]model.Reservation, error)
	listOverlappingForUser     func(userID uint64, bounds model.TimeRange, states []model.ReservationState) ([]model.Reservation, error)
	listRoomOverlapping        func(bounds model.TimeRange, states []model.ReservationState) ([]model.Reservation, error)
	listRoomOverlappingForUser func(userID uint64, bounds model.TimeRange, states []model.ReservationState) ([]model.Reservation, error)
	listActiveAndUpcomingSeats func(now time.Time) ([]model.Reservation, error)
	listActiveAndUpcomingRooms func(now time.Time) ([]model.Reservation, error)
}

type stateUpdate struct {
	ID    uint64
	State model.ReservationState
	End   *time.Time
}

func (m *mockReservationStore) GetByID(_ context.Context, id uint64) (*model.Reservation, error) {
	if m.getByID == nil {
		return nil, repository.ErrReservationNotFound
	}
	return m.getByID(id)
}

func (m *mockReservationStore) ListOverlappingForSeats(_ context.Context, seatIDs []uint64, bounds model.TimeRange, states []model.ReservationState) ([]model.Reservation, error) {
	if m.listOverlappingForSeats == nil {
		return nil, nil
	}
	return m.listOverlappingForSeats(seatIDs, bounds, states)
}

func (m *mockReservationStore) ListOverlappingForUser(_ context.Context, userID uint64, bounds model.TimeRange, states []model.ReservationState) ([]model.Reservation, error) {
	if m.listOverlappingForUser == nil {
		return nil, nil
	}
	return m.listOverlappingForUser(userID, bounds, states)
}

func (m *mockReservationStore) ListRoomOverlapping(_ context.Context, bounds model.TimeRange, states []model.ReservationState) ([]model.Reservation, error) {
	if m.listRoomOverlapping == nil {
		return nil, nil
	}
	return m.listRoomOverlapping(bounds, states)
}

func (m *mockReservationStore) ListRoomOverlappingForUser(_ context.Context, userID uint64, bounds model.TimeRange, states []model.ReservationState) ([]model.Reservation, error) {
	if m.listRoomOverlappingForUser == nil {
		return nil, nil
	}
	return m.listRoomOverlappingForUser(userID, bounds, states)
}

func (m *mockReservationStore) ListActiveAndUpcomingSeats(_ context.Context, now time.Time) ([]model.Reservation, error) {
	if m.listActiveAndUpcomingSeats == nil {
		return nil, nil
	}
	return m.listActiveAndUpcomingSeats(now)
}

func (m *mockReservationStore) ListActiveAndUpcomingRooms(_ context.Context, now time.Time) ([]model.Reservation, error) {
	if m.listActiveAndUpcomingRooms == nil {
		return nil, nil
	}
	return m.listActiveAndUpcomingRooms(now)
}

func (m *mockReservationStore) Create(_ context.Context, res *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	res.ID = uint64(len(m.created) + 1)
	res.CreatedAt = res.Start
	res.UpdatedAt = res.Start
	m.created = append(m.created, res)
	return nil
}

func (m *mockReservationStore) UpdateState(_ context.Context, id uint64, state model.ReservationState, end *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, stateUpdate{ID: id, State: state, End: end})
	return nil
}

type mockSeatStore struct {
	seats []model.Seat
}

func (m *mockSeatStore) List(_ context.Context) ([]model.Seat, error) {
	return m.seats, nil
}

func (m *mockSeatStore) GetByIDs(_ context.Context, ids []uint64) ([]model.Seat, error) {
	wanted := map[uint64]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	out := []model.Seat{}
	for _, s := range m.seats {
		if wanted[s.ID] {
			out = append(out, s)
		}
	}
	return out, nil
}

type mockRoomStore struct {
	rooms []model.Room
}

func (m *mockRoomStore) List(_ context.Context) ([]model.Room, error) {
	return m.rooms, nil
}

func (m *mockRoomStore) GetByID(_ context.Context, id string) (*model.Room, error) {
	for i := range m.rooms {
		if m.rooms[i].ID == id {
			return &m.rooms[i], nil
		}
	}
	return nil, repository.ErrRoomNotFound
}

type mockUserStore struct {
	users []model.User
}

func (m *mockUserStore) GetByID(_ context.Context, id uint64) (*model.User, error) {
	for i := range m.users {
		if m.users[i].ID == id {
			return &m.users[i], nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserStore) GetByIDs(_ context.Context, ids []uint64) ([]model.User, error) {
	wanted := map[uint64]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	out := []model.User{}
	for _, u := range m.users {
		if wanted[u.ID] {
			out = append(out, u)
		}
	}
	return out, nil
}

type mockSchedule struct {
	hours []model.OperatingHours
}

func (m *mockSchedule) Schedule(_ context.Context, bounds model.TimeRange) ([]model.OperatingHours, error) {
	out := []model.OperatingHours{}
	for _, oh := range m.hours {
		if oh.Range().Overlaps(bounds) {
			out = append(out, oh)
		}
	}
	return out, nil
}

type mockHoursStore struct {
	hours   []model.OperatingHours
	created []*model.OperatingHours
	deleted []uint64
}

func (m *mockHoursStore) ListOverlapping(_ context.Context, bounds model.TimeRange) ([]model.OperatingHours, error) {
	out := []model.OperatingHours{}
	for _, oh := range m.hours {
		if oh.Range().Overlaps(bounds) {
			out = append(out, oh)
		}
	}
	return out, nil
}

func (m *mockHoursStore) Create(_ context.Context, oh *model.OperatingHours) error {
	oh.ID = uint64(len(m.created) + 1)
	m.created = append(m.created, oh)
	return nil
}

func (m *mockHoursStore) Delete(_ context.Context, id uint64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type mockPublisher struct {
	confirmed []uint64
	cancelled []uint64
}

func (m *mockPublisher) ReservationConfirmed(_ context.Context, res model.Reservation) {
	m.confirmed = append(m.confirmed, res.ID)
}

func (m *mockPublisher) ReservationCancelled(_ context.Context, res model.Reservation) {
	m.cancelled = append(m.cancelled, res.ID)
}

// testPolicy mirrors the documented defaults without touching the
// environment.
func testPolicy() *Policy {
	return NewPolicy(testPolicyConfigWithOfficeHours(""))
}

// testPolicyConfigWithOfficeHours returns the default test policy with
// the given office-hours blocks.
func testPolicyConfigWithOfficeHours(blocks string) config.PolicyConfig {
	return config.PolicyConfig{
		WalkinWindow:           10 * time.Minute,
		WalkinInitialDuration:  2 * time.Hour,
		MaxReservationLength:   2 * time.Hour,
		ReservationWindow:      7 * 24 * time.Hour,
		DraftTimeout:           5 * time.Minute,
		CheckinTimeout:         10 * time.Minute,
		RoomWeeklyLimit:        6 * time.Hour,
		MinReservationDuration: 30 * time.Minute,
		OfficeHoursBlocks:      blocks,
	}
}

// testClock is 09:00 UTC on Monday 2026-03-02 throughout the tests.
var testClock = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

type fixture struct {
	svc          *ReservationService
	reservations *mockReservationStore
	seats        *mockSeatStore
	rooms        *mockRoomStore
	users        *mockUserStore
	schedule     *mockSchedule
	events       *mockPublisher
}

func newFixture() *fixture {
	f := &fixture{
		reservations: &mockReservationStore{},
		seats:        &mockSeatStore{},
		rooms:        &mockRoomStore{},
		users:        &mockUserStore{},
		schedule:     &mockSchedule{},
		events:       &mockPublisher{},
	}
	f.svc = NewReservationService(
		f.reservations, f.seats, f.rooms, f.users, f.schedule, testPolicy(), NewRolePermission(), f.events,
	).WithClock(func() time.Time { return testClock }).WithRand(rand.New(rand.NewSource(1)))
	return f
}

var (
	member     = model.User{ID: 1, Onyen: "mmb", Name: "Member One", Role: model.RoleMember}
	ambassador = model.User{ID: 2, Onyen: "amb", Name: "Desk Ambassador", Role: model.RoleAmbassador}
	admin      = model.User{ID: 3, Onyen: "adm", Name: "Site Admin", Role: model.RoleAdmin}
)
