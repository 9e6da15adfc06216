package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/csxl/coworking-api/internal/model"
)

// OperatingHoursRepo provides data access to the operating_hours table.
// Each row is one interval during which the coworking space is open.
// All timestamp columns are assumed to be stored in UTC.
type OperatingHoursRepo struct {
	db *sql.DB
}

// NewOperatingHoursRepo returns a repo bound to the given database.
func NewOperatingHoursRepo(db *sql.DB) *OperatingHoursRepo {
	return &OperatingHoursRepo{db: db}
}

// ListOverlapping returns all open intervals overlapping the bounds
// window, sorted ascending by start. Touching intervals (end == bounds
// start) do not overlap and are excluded.
func (r *OperatingHoursRepo) ListOverlapping(ctx context.Context, bounds model.TimeRange) ([]model.OperatingHours, error) {
	const q = `SELECT id, starts_at, ends_at FROM operating_hours
	           WHERE starts_at < ? AND ends_at > ?
	           ORDER BY starts_at ASC`
	rows, err := r.db.QueryContext(ctx, q, bounds.End.UTC(), bounds.Start.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hours := make([]model.OperatingHours, 0)
	for rows.Next() {
		var oh model.OperatingHours
		if err := rows.Scan(&oh.ID, &oh.Start, &oh.End); err != nil {
			return nil, err
		}
		oh.Start = oh.Start.UTC()
		oh.End = oh.End.UTC()
		hours = append(hours, oh)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return hours, nil
}

// Create persists a new open interval and populates its generated ID.
// Overlap validation is the caller's responsibility; the service layer
// checks ListOverlapping before inserting.
func (r *OperatingHoursRepo) Create(ctx context.Context, oh *model.OperatingHours) error {
	const q = `INSERT INTO operating_hours (starts_at, ends_at) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, oh.Start.UTC(), oh.End.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	oh.ID = uint64(id)
	return nil
}

// Delete removes an open interval by id. ErrOperatingHoursNotFound is
// returned when no row matches.
func (r *OperatingHoursRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM operating_hours WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOperatingHoursNotFound
	}
	return nil
}

// GetByID retrieves a single open interval.
func (r *OperatingHoursRepo) GetByID(ctx context.Context, id uint64) (*model.OperatingHours, error) {
	const q = `SELECT id, starts_at, ends_at FROM operating_hours WHERE id = ?`
	var oh model.OperatingHours
	err := r.db.QueryRowContext(ctx, q, id).Scan(&oh.ID, &oh.Start, &oh.End)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOperatingHoursNotFound
		}
		return nil, err
	}
	oh.Start = oh.Start.UTC()
	oh.End = oh.End.UTC()
	return &oh, nil
}
