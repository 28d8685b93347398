package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vet-clinic/internal/domain/schedule"
)

type ScheduleRepo struct {
	db *sql.DB
}

func NewScheduleRepo(db *sql.DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

func (r *ScheduleRepo) Create(ctx context.Context, e schedule.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO schedule_entries (
			id, owner_id, booking_id,
			title, description, date, category,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		e.ID,
		e.OwnerID,
		toNullString(e.BookingID),
		e.Title,
		e.Description,
		e.Date,
		string(e.Category),
		e.CreatedAt,
		e.UpdatedAt,
	)
	return err
}

func (r *ScheduleRepo) Update(ctx context.Context, e schedule.Entry) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE schedule_entries
		SET
			title = $2,
			description = $3,
			date = $4,
			category = $5,
			updated_at = $6
		WHERE id = $1
	`,
		e.ID,
		e.Title,
		e.Description,
		e.Date,
		string(e.Category),
		e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return schedule.ErrNotFound
	}
	return nil
}

func (r *ScheduleRepo) GetByID(ctx context.Context, id string) (schedule.Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return schedule.Entry{}, schedule.ErrNotFound
	}
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *ScheduleRepo) GetByBooking(ctx context.Context, bookingID string) (schedule.Entry, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return schedule.Entry{}, schedule.ErrNotFound
	}
	return r.getOne(ctx, `WHERE booking_id = $1`, bookingID)
}

func (r *ScheduleRepo) getOne(ctx context.Context, where string, arg any) (schedule.Entry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_id, booking_id,
			title, description, date, category,
			created_at, updated_at
		FROM schedule_entries
	`+where, arg)

	e, err := scanEntry(row)
	if err != nil {
		if isNoRows(err) {
			return schedule.Entry{}, schedule.ErrNotFound
		}
		return schedule.Entry{}, err
	}
	return e, nil
}

func (r *ScheduleRepo) ListByOwner(ctx context.Context, ownerID string) ([]schedule.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_id, booking_id,
			title, description, date, category,
			created_at, updated_at
		FROM schedule_entries
		WHERE owner_id = $1
		ORDER BY date ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]schedule.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ScheduleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedule_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return schedule.ErrNotFound
	}
	return nil
}

func scanEntry(row rowScanner) (schedule.Entry, error) {
	var e schedule.Entry
	var bookingID sql.NullString
	var category string
	if err := row.Scan(
		&e.ID,
		&e.OwnerID,
		&bookingID,
		&e.Title,
		&e.Description,
		&e.Date,
		&category,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return schedule.Entry{}, err
	}
	e.BookingID = bookingID.String
	e.Category = schedule.Category(category)
	return e, nil
}

// booking_id es nullable y tiene unique index parcial, así la base también
// garantiza una entrada por booking.
func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
