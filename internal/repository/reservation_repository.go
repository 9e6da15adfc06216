package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/csxl/coworking-api/internal/model"
)

// ReservationRepo provides CRUD operations for reservations and their
// seat and user associations. A reservation binds one user to either a
// set of seats (reservation_seats) or to a whole room (reservations.room_id).
// All timestamp columns are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions that
// span multiple repositories.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = `r.id, r.starts_at, r.ends_at, r.created_at, r.updated_at, r.state, r.walkin,
	       rm.id, rm.nickname, rm.reservable, rm.capacity`

const reservationFrom = ` FROM reservations r
	       LEFT JOIN rooms rm ON rm.id = r.room_id`

func scanReservation(scan func(dest ...interface{}) error) (model.Reservation, error) {
	var res model.Reservation
	var state string
	var roomID, roomNickname sql.NullString
	var roomReservable sql.NullBool
	var roomCapacity sql.NullInt64
	err := scan(
		&res.ID, &res.Start, &res.End, &res.CreatedAt, &res.UpdatedAt, &state, &res.Walkin,
		&roomID, &roomNickname, &roomReservable, &roomCapacity,
	)
	if err != nil {
		return res, err
	}
	res.State = model.ReservationState(state)
	res.Start = res.Start.UTC()
	res.End = res.End.UTC()
	res.CreatedAt = res.CreatedAt.UTC()
	res.UpdatedAt = res.UpdatedAt.UTC()
	if roomID.Valid {
		res.Room = &model.Room{
			ID:         roomID.String,
			Nickname:   roomNickname.String,
			Reservable: roomReservable.Bool,
			Capacity:   int(roomCapacity.Int64),
		}
	}
	res.Seats = []model.Seat{}
	res.Users = []model.User{}
	return res, nil
}

// GetByID loads a single reservation with its seats and users.
// ErrReservationNotFound is returned when the id does not resolve.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + reservationFrom + ` WHERE r.id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	list := []model.Reservation{res}
	if err := r.populateAssociations(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// listWhere runs a filtered reservation query and populates seat and user
// associations for every returned row. The where clause must reference
// the aliases r (reservations) and rm (rooms).
func (r *ReservationRepo) listWhere(ctx context.Context, where string, args ...interface{}) ([]model.Reservation, error) {
	query := `SELECT ` + reservationColumns + reservationFrom + ` WHERE ` + where + ` ORDER BY r.starts_at ASC, r.id ASC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.populateAssociations(ctx, reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// populateAssociations fills Seats and Users for every reservation in the
// slice with two IN queries, one per association table.
func (r *ReservationRepo) populateAssociations(ctx context.Context, reservations []model.Reservation) error {
	if len(reservations) == 0 {
		return nil
	}
	ids := make([]interface{}, 0, len(reservations))
	placeholders := make([]string, 0, len(reservations))
	index := make(map[uint64]int, len(reservations))
	for i := range reservations {
		ids = append(ids, reservations[i].ID)
		placeholders = append(placeholders, "?")
		index[reservations[i].ID] = i
	}
	in := strings.Join(placeholders, ",")

	seatQuery := `SELECT rs.reservation_id, s.id, s.title, s.shorthand, s.reservable, s.has_monitor, s.sit_stand, s.x, s.y, s.room_id
	              FROM reservation_seats rs
	              JOIN seats s ON s.id = rs.seat_id
	              WHERE rs.reservation_id IN (` + in + `)
	              ORDER BY rs.reservation_id, s.id`
	srows, err := r.db.QueryContext(ctx, seatQuery, ids...)
	if err != nil {
		return err
	}
	defer srows.Close()
	for srows.Next() {
		var rid uint64
		var s model.Seat
		if err := srows.Scan(&rid, &s.ID, &s.Title, &s.Shorthand, &s.Reservable, &s.HasMonitor, &s.SitStand, &s.X, &s.Y, &s.RoomID); err != nil {
			return err
		}
		if i, ok := index[rid]; ok {
			reservations[i].Seats = append(reservations[i].Seats, s)
		}
	}
	if err := srows.Err(); err != nil {
		return err
	}

	userQuery := `SELECT ru.reservation_id, u.id, u.onyen, u.name, u.role
	              FROM reservation_users ru
	              JOIN users u ON u.id = ru.user_id
	              WHERE ru.reservation_id IN (` + in + `)
	              ORDER BY ru.reservation_id, u.id`
	urows, err := r.db.QueryContext(ctx, userQuery, ids...)
	if err != nil {
		return err
	}
	defer urows.Close()
	for urows.Next() {
		var rid uint64
		var u model.User
		if err := urows.Scan(&rid, &u.ID, &u.Onyen, &u.Name, &u.Role); err != nil {
			return err
		}
		if i, ok := index[rid]; ok {
			reservations[i].Users = append(reservations[i].Users, u)
		}
	}
	return urows.Err()
}

// statesIn builds an "r.state IN (...)" fragment with its args. An empty
// state set matches the three non-terminal states.
func statesIn(states []model.ReservationState) (string, []interface{}) {
	if len(states) == 0 {
		states = []model.ReservationState{model.StateDraft, model.StateConfirmed, model.StateCheckedIn}
	}
	placeholders := make([]string, 0, len(states))
	args := make([]interface{}, 0, len(states))
	for _, s := range states {
		placeholders = append(placeholders, "?")
		args = append(args, string(s))
	}
	return `r.state IN (` + strings.Join(placeholders, ",") + `)`, args
}

// ListOverlappingForSeats returns reservations in the given states that
// occupy any of the seats and overlap the bounds window.
func (r *ReservationRepo) ListOverlappingForSeats(ctx context.Context, seatIDs []uint64, bounds model.TimeRange, states []model.ReservationState) ([]model.Reservation, error) {
	if len(seatIDs) == 0 {
		return []model.Reservation{}, nil
	}
	stateClause, args := statesIn(states)
	placeholders := make([]string, 0, len(seatIDs))
	for _, id := range seatIDs {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	where := stateClause + ` AND r.starts_at < ? AND r.ends_at > ?
	         AND r.id IN (SELECT reservation_id FROM reservation_seats WHERE seat_id IN (` +
		strings.Join(placeholders, ",") + `))`
	args = append(args, bounds.End.UTC(), bounds.Start.UTC())
	return r.listWhere(ctx, where, args...)
}

// ListOverlappingForUser returns the user's reservations in the given
// states that overlap the bounds window.
func (r *ReservationRepo) ListOverlappingForUser(ctx context.Context, userID uint64, bounds model.TimeRange, states []model.ReservationState) ([]model.Reservation, error) {
	stateClause, args := statesIn(states)
	where := stateClause + ` AND r.starts_at < ? AND r.ends_at > ?
	         AND r.id IN (SELECT reservation_id FROM reservation_users WHERE user_id = ?)`
	args = append(args, bounds.End.UTC(), bounds.Start.UTC(), userID)
	return r.listWhere(ctx, where, args...)
}

// ListRoomOverlapping returns room reservations (seatless) in the given
// states overlapping the bounds window, across all rooms.
func (r *ReservationRepo) ListRoomOverlapping(ctx context.Context, bounds model.TimeRange, states []model.ReservationState) ([]model.Reservation, error) {
	stateClause, args := statesIn(states)
	where := stateClause + ` AND r.room_id IS NOT NULL AND r.starts_at < ? AND r.ends_at > ?`
	args = append(args, bounds.End.UTC(), bounds.Start.UTC())
	return r.listWhere(ctx, where, args...)
}

// ListRoomOverlappingForUser returns the user's room reservations in the
// given states overlapping the bounds window. Used to enforce the weekly
// room-hour cap.
func (r *ReservationRepo) ListRoomOverlappingForUser(ctx context.Context, userID uint64, bounds model.TimeRange, states []model.ReservationState) ([]model.Reservation, error) {
	stateClause, args := statesIn(states)
	where := stateClause + ` AND r.room_id IS NOT NULL AND r.starts_at < ? AND r.ends_at > ?
	         AND r.id IN (SELECT reservation_id FROM reservation_users WHERE user_id = ?)`
	args = append(args, bounds.End.UTC(), bounds.Start.UTC(), userID)
	return r.listWhere(ctx, where, args...)
}

// ListActiveAndUpcomingSeats returns all seat reservations that are in a
// non-terminal state and have not yet ended. Used by the ambassador
// station view of the XL floor.
func (r *ReservationRepo) ListActiveAndUpcomingSeats(ctx context.Context, now time.Time) ([]model.Reservation, error) {
	stateClause, args := statesIn(nil)
	where := stateClause + ` AND r.room_id IS NULL AND r.ends_at > ?`
	args = append(args, now.UTC())
	return r.listWhere(ctx, where, args...)
}

// ListActiveAndUpcomingRooms returns all room reservations that are in a
// non-terminal state and have not yet ended.
func (r *ReservationRepo) ListActiveAndUpcomingRooms(ctx context.Context, now time.Time) ([]model.Reservation, error) {
	stateClause, args := statesIn(nil)
	where := stateClause + ` AND r.room_id IS NOT NULL AND r.ends_at > ?`
	args = append(args, now.UTC())
	return r.listWhere(ctx, where, args...)
}

// Create persists a new reservation together with its seat and user
// association rows in a single transaction. The generated id and the
// database-assigned timestamps are populated on the passed model.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var roomID interface{}
	if res.Room != nil {
		roomID = res.Room.ID
	}
	const q = `INSERT INTO reservations (starts_at, ends_at, state, walkin, room_id) VALUES (?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q, res.Start.UTC(), res.End.UTC(), string(res.State), res.Walkin, roomID)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	if len(res.Seats) > 0 {
		query := `INSERT INTO reservation_seats (reservation_id, seat_id) VALUES `
		args := make([]interface{}, 0, len(res.Seats)*2)
		for i, s := range res.Seats {
			if i > 0 {
				query += ","
			}
			query += "(?, ?)"
			args = append(args, res.ID, s.ID)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	if len(res.Users) > 0 {
		query := `INSERT INTO reservation_users (reservation_id, user_id) VALUES `
		args := make([]interface{}, 0, len(res.Users)*2)
		for i, u := range res.Users {
			if i > 0 {
				query += ","
			}
			query += "(?, ?)"
			args = append(args, res.ID, u.ID)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	// Query back timestamps assigned by the database.
	const sel = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt, &res.UpdatedAt); err != nil {
		return err
	}
	res.CreatedAt = res.CreatedAt.UTC()
	res.UpdatedAt = res.UpdatedAt.UTC()

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// UpdateState persists a state transition, optionally moving the end
// timestamp (automatic checkout sets ends_at to the transition time).
// ErrReservationNotFound is returned when the id does not resolve.
func (r *ReservationRepo) UpdateState(ctx context.Context, id uint64, state model.ReservationState, end *time.Time) error {
	var (
		result sql.Result
		err    error
	)
	if end != nil {
		const q = `UPDATE reservations SET state = ?, ends_at = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`
		result, err = r.db.ExecContext(ctx, q, string(state), end.UTC(), id)
	} else {
		const q = `UPDATE reservations SET state = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`
		result, err = r.db.ExecContext(ctx, q, string(state), id)
	}
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}
