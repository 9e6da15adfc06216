package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/csxl/coworking-api/internal/model"
)

// SeatRepo provides read access to the seats table. Seats are reference
// data seeded administratively; the reservation flow only lists them.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

const seatColumns = `id, title, shorthand, reservable, has_monitor, sit_stand, x, y, room_id`

func scanSeat(scan func(dest ...interface{}) error) (model.Seat, error) {
	var s model.Seat
	err := scan(&s.ID, &s.Title, &s.Shorthand, &s.Reservable, &s.HasMonitor, &s.SitStand, &s.X, &s.Y, &s.RoomID)
	return s, err
}

// List retrieves all seats ordered by room then title.
func (r *SeatRepo) List(ctx context.Context) ([]model.Seat, error) {
	const q = `SELECT ` + seatColumns + ` FROM seats ORDER BY room_id, title`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]model.Seat, 0)
	for rows.Next() {
		s, err := scanSeat(rows.Scan)
		if err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	const q = `SELECT ` + seatColumns + ` FROM seats WHERE id = ?`
	s, err := scanSeat(r.db.QueryRowContext(ctx, q, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetByIDs retrieves the seats matching the given ids. Unknown ids are
// silently omitted; callers decide whether a partial result is an error.
// Passing an empty slice returns an empty result without querying.
func (r *SeatRepo) GetByIDs(ctx context.Context, ids []uint64) ([]model.Seat, error) {
	if len(ids) == 0 {
		return []model.Seat{}, nil
	}
	placeholders := make([]string, 0, len(ids))
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	query := `SELECT ` + seatColumns + ` FROM seats WHERE id IN (` +
		strings.Join(placeholders, ",") + `) ORDER BY room_id, title`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]model.Seat, 0, len(ids))
	for rows.Next() {
		s, err := scanSeat(rows.Scan)
		if err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}
