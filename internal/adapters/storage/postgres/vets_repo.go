package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vet-clinic/internal/domain/vets"
)

type VetsRepo struct {
	db *sql.DB
}

func NewVetsRepo(db *sql.DB) *VetsRepo {
	return &VetsRepo{db: db}
}

func (r *VetsRepo) Create(ctx context.Context, v vets.Vet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vets (
			id, owner_user_id,
			name, address, phone, description, image_urls,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		v.ID,
		v.OwnerUserID,
		v.Name,
		v.Address,
		v.Phone,
		v.Description,
		stringSlice(v.ImageURLs),
		v.CreatedAt,
		v.UpdatedAt,
	)
	return err
}

func (r *VetsRepo) Update(ctx context.Context, v vets.Vet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE vets
		SET
			name = $2,
			address = $3,
			phone = $4,
			description = $5,
			image_urls = $6,
			updated_at = $7
		WHERE id = $1
	`,
		v.ID,
		v.Name,
		v.Address,
		v.Phone,
		v.Description,
		stringSlice(v.ImageURLs),
		v.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return vets.ErrNotFound
	}
	return nil
}

func (r *VetsRepo) GetByID(ctx context.Context, id string) (vets.Vet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return vets.Vet{}, vets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id,
			name, address, phone, description, image_urls,
			created_at, updated_at
		FROM vets
		WHERE id = $1
	`, id)

	v, err := scanVet(row)
	if err != nil {
		if isNoRows(err) {
			return vets.Vet{}, vets.ErrNotFound
		}
		return vets.Vet{}, err
	}
	return v, nil
}

func (r *VetsRepo) ListByOwnerUser(ctx context.Context, ownerUserID string) ([]vets.Vet, error) {
	return r.list(ctx, `WHERE owner_user_id = $1`, ownerUserID)
}

func (r *VetsRepo) List(ctx context.Context) ([]vets.Vet, error) {
	return r.list(ctx, ``)
}

func (r *VetsRepo) list(ctx context.Context, where string, args ...any) ([]vets.Vet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id,
			name, address, phone, description, image_urls,
			created_at, updated_at
		FROM vets
	`+where+`
		ORDER BY created_at ASC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vets.Vet, 0)
	for rows.Next() {
		v, err := scanVet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func scanVet(row rowScanner) (vets.Vet, error) {
	var v vets.Vet
	var urls stringSlice
	if err := row.Scan(
		&v.ID,
		&v.OwnerUserID,
		&v.Name,
		&v.Address,
		&v.Phone,
		&v.Description,
		&urls,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		return vets.Vet{}, err
	}
	v.ImageURLs = urls
	return v, nil
}
