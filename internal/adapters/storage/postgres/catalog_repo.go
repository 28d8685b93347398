package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vet-clinic/internal/domain/catalog"
)

type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

func (r *MedicationsRepo) Create(ctx context.Context, m catalog.Medication) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medications (
			id, vet_id,
			name, dosage, instructions, price, quantity,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		m.ID,
		m.VetID,
		m.Name,
		m.Dosage,
		m.Instructions,
		m.Price,
		m.Quantity,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return err
}

func (r *MedicationsRepo) Update(ctx context.Context, m catalog.Medication) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medications
		SET
			name = $2,
			dosage = $3,
			instructions = $4,
			price = $5,
			quantity = $6,
			updated_at = $7
		WHERE id = $1
	`,
		m.ID,
		m.Name,
		m.Dosage,
		m.Instructions,
		m.Price,
		m.Quantity,
		m.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return catalog.ErrMedicationNotFound
	}
	return nil
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id string) (catalog.Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return catalog.Medication{}, catalog.ErrMedicationNotFound
	}
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *MedicationsRepo) GetByName(ctx context.Context, vetID, name string) (catalog.Medication, error) {
	return r.getOne(ctx, `WHERE vet_id = $1 AND lower(name) = lower($2)`, vetID, name)
}

func (r *MedicationsRepo) getOne(ctx context.Context, where string, args ...any) (catalog.Medication, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, vet_id,
			name, dosage, instructions, price, quantity,
			created_at, updated_at
		FROM medications
	`+where, args...)

	var m catalog.Medication
	if err := row.Scan(
		&m.ID,
		&m.VetID,
		&m.Name,
		&m.Dosage,
		&m.Instructions,
		&m.Price,
		&m.Quantity,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		if isNoRows(err) {
			return catalog.Medication{}, catalog.ErrMedicationNotFound
		}
		return catalog.Medication{}, err
	}
	return m, nil
}

func (r *MedicationsRepo) ListByVet(ctx context.Context, vetID string) ([]catalog.Medication, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, vet_id,
			name, dosage, instructions, price, quantity,
			created_at, updated_at
		FROM medications
		WHERE vet_id = $1
		ORDER BY created_at ASC
	`, vetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Medication, 0)
	for rows.Next() {
		var m catalog.Medication
		if err := rows.Scan(
			&m.ID,
			&m.VetID,
			&m.Name,
			&m.Dosage,
			&m.Instructions,
			&m.Price,
			&m.Quantity,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MedicationsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return catalog.ErrMedicationNotFound
	}
	return nil
}

type ServicesRepo struct {
	db *sql.DB
}

func NewServicesRepo(db *sql.DB) *ServicesRepo {
	return &ServicesRepo{db: db}
}

func (r *ServicesRepo) Create(ctx context.Context, s catalog.Service) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO services (
			id, vet_id,
			name, price, duration_min, available, usage_count,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		s.ID,
		s.VetID,
		s.Name,
		s.Price,
		s.DurationMin,
		s.Available,
		s.UsageCount,
		s.CreatedAt,
		s.UpdatedAt,
	)
	return err
}

func (r *ServicesRepo) Update(ctx context.Context, s catalog.Service) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE services
		SET
			name = $2,
			price = $3,
			duration_min = $4,
			available = $5,
			updated_at = $6
		WHERE id = $1
	`,
		s.ID,
		s.Name,
		s.Price,
		s.DurationMin,
		s.Available,
		s.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return catalog.ErrServiceNotFound
	}
	return nil
}

func (r *ServicesRepo) GetByID(ctx context.Context, id string) (catalog.Service, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return catalog.Service{}, catalog.ErrServiceNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, vet_id,
			name, price, duration_min, available, usage_count,
			created_at, updated_at
		FROM services
		WHERE id = $1
	`, id)

	var s catalog.Service
	if err := row.Scan(
		&s.ID,
		&s.VetID,
		&s.Name,
		&s.Price,
		&s.DurationMin,
		&s.Available,
		&s.UsageCount,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		if isNoRows(err) {
			return catalog.Service{}, catalog.ErrServiceNotFound
		}
		return catalog.Service{}, err
	}
	return s, nil
}

func (r *ServicesRepo) ListByVet(ctx context.Context, vetID string) ([]catalog.Service, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, vet_id,
			name, price, duration_min, available, usage_count,
			created_at, updated_at
		FROM services
		WHERE vet_id = $1
		ORDER BY created_at ASC
	`, vetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Service, 0)
	for rows.Next() {
		var s catalog.Service
		if err := rows.Scan(
			&s.ID,
			&s.VetID,
			&s.Name,
			&s.Price,
			&s.DurationMin,
			&s.Available,
			&s.UsageCount,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ServicesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return catalog.ErrServiceNotFound
	}
	return nil
}

func (r *ServicesRepo) IncrementUsage(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE services SET usage_count = usage_count + 1, updated_at = now() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return catalog.ErrServiceNotFound
	}
	return nil
}
