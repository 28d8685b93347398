package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vet-clinic/internal/domain/bookings"
)

type BookingsRepo struct {
	db *sql.DB
}

func NewBookingsRepo(db *sql.DB) *BookingsRepo {
	return &BookingsRepo{db: db}
}

func (r *BookingsRepo) Create(ctx context.Context, b bookings.Booking) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bookings (
			id, vet_id, owner_id, pet_id, owner_phone,
			date, status,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		b.ID,
		b.VetID,
		b.OwnerID,
		b.PetID,
		b.OwnerPhone,
		b.Date,
		int(b.Status),
		b.CreatedAt,
		b.UpdatedAt,
	)
	return err
}

func (r *BookingsRepo) Update(ctx context.Context, b bookings.Booking) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bookings
		SET
			vet_id = $2,
			owner_id = $3,
			pet_id = $4,
			owner_phone = $5,
			date = $6,
			status = $7,
			updated_at = $8
		WHERE id = $1
	`,
		b.ID,
		b.VetID,
		b.OwnerID,
		b.PetID,
		b.OwnerPhone,
		b.Date,
		int(b.Status),
		b.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return bookings.ErrNotFound
	}
	return nil
}

func (r *BookingsRepo) GetByID(ctx context.Context, id string) (bookings.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return bookings.Booking{}, bookings.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, vet_id, owner_id, pet_id, owner_phone,
			date, status,
			created_at, updated_at
		FROM bookings
		WHERE id = $1
	`, id)

	b, err := scanBooking(row)
	if err != nil {
		if isNoRows(err) {
			return bookings.Booking{}, bookings.ErrNotFound
		}
		return bookings.Booking{}, err
	}
	return b, nil
}

func (r *BookingsRepo) ListByVet(ctx context.Context, vetID string) ([]bookings.Booking, error) {
	return r.list(ctx, `WHERE vet_id = $1`, vetID)
}

func (r *BookingsRepo) ListByPetAndVet(ctx context.Context, petID, vetID string) ([]bookings.Booking, error) {
	return r.list(ctx, `WHERE pet_id = $1 AND vet_id = $2`, petID, vetID)
}

func (r *BookingsRepo) ListAll(ctx context.Context) ([]bookings.Booking, error) {
	return r.list(ctx, ``)
}

func (r *BookingsRepo) list(ctx context.Context, where string, args ...any) ([]bookings.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, vet_id, owner_id, pet_id, owner_phone,
			date, status,
			created_at, updated_at
		FROM bookings
	`+where+`
		ORDER BY date ASC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]bookings.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BookingsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return bookings.ErrNotFound
	}
	return nil
}

func scanBooking(row rowScanner) (bookings.Booking, error) {
	var b bookings.Booking
	var status int
	if err := row.Scan(
		&b.ID,
		&b.VetID,
		&b.OwnerID,
		&b.PetID,
		&b.OwnerPhone,
		&b.Date,
		&status,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return bookings.Booking{}, err
	}
	b.Status = bookings.Status(status)
	return b, nil
}
