package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/csxl/coworking-api/internal/model"
)

// RoomRepo provides read access to the rooms table.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// List retrieves all rooms ordered by id.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	const q = `SELECT id, nickname, reservable, capacity FROM rooms ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := make([]model.Room, 0)
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.Nickname, &rm.Reservable, &rm.Capacity); err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rooms, nil
}

// ListReservable retrieves rooms open to member booking, ordered by id.
func (r *RoomRepo) ListReservable(ctx context.Context) ([]model.Room, error) {
	const q = `SELECT id, nickname, reservable, capacity FROM rooms WHERE reservable = 1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := make([]model.Room, 0)
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.Nickname, &rm.Reservable, &rm.Capacity); err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rooms, nil
}

// GetByID retrieves a room by its id.
func (r *RoomRepo) GetByID(ctx context.Context, id string) (*model.Room, error) {
	const q = `SELECT id, nickname, reservable, capacity FROM rooms WHERE id = ?`
	var rm model.Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(&rm.ID, &rm.Nickname, &rm.Reservable, &rm.Capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &rm, nil
}
