package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vet-clinic/internal/domain/owners"
)

type OwnersRepo struct {
	db *sql.DB
}

func NewOwnersRepo(db *sql.DB) *OwnersRepo {
	return &OwnersRepo{db: db}
}

func (r *OwnersRepo) Create(ctx context.Context, o owners.Owner) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO owners (
			id, name, email, phone,
			avatar_url, role,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		o.ID,
		o.Name,
		o.Email,
		o.Phone,
		o.AvatarURL,
		o.Role,
		o.CreatedAt,
		o.UpdatedAt,
	)
	return err
}

func (r *OwnersRepo) Update(ctx context.Context, o owners.Owner) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE owners
		SET
			name = $2,
			email = $3,
			phone = $4,
			avatar_url = $5,
			role = $6,
			updated_at = $7
		WHERE id = $1
	`,
		o.ID,
		o.Name,
		o.Email,
		o.Phone,
		o.AvatarURL,
		o.Role,
		o.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return owners.ErrNotFound
	}
	return nil
}

func (r *OwnersRepo) GetByID(ctx context.Context, id string) (owners.Owner, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return owners.Owner{}, owners.ErrNotFound
	}
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *OwnersRepo) GetByEmail(ctx context.Context, email string) (owners.Owner, error) {
	return r.getOne(ctx, `WHERE lower(email) = lower($1)`, email)
}

func (r *OwnersRepo) GetByPhone(ctx context.Context, phone string) (owners.Owner, error) {
	return r.getOne(ctx, `WHERE phone = $1`, phone)
}

func (r *OwnersRepo) getOne(ctx context.Context, where string, arg any) (owners.Owner, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, email, phone,
			avatar_url, role,
			created_at, updated_at
		FROM owners
	`+where, arg)

	var o owners.Owner
	if err := row.Scan(
		&o.ID,
		&o.Name,
		&o.Email,
		&o.Phone,
		&o.AvatarURL,
		&o.Role,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		if isNoRows(err) {
			return owners.Owner{}, owners.ErrNotFound
		}
		return owners.Owner{}, err
	}
	return o, nil
}

func (r *OwnersRepo) List(ctx context.Context) ([]owners.Owner, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, name, email, phone,
			avatar_url, role,
			created_at, updated_at
		FROM owners
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]owners.Owner, 0)
	for rows.Next() {
		var o owners.Owner
		if err := rows.Scan(
			&o.ID,
			&o.Name,
			&o.Email,
			&o.Phone,
			&o.AvatarURL,
			&o.Role,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
