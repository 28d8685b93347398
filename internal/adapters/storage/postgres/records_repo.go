package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vet-clinic/internal/domain/records"
)

type RecordsRepo struct {
	db *sql.DB
}

func NewRecordsRepo(db *sql.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

func (r *RecordsRepo) Create(ctx context.Context, rec records.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO records (
			id, pet_id, owner_id, vet_id, booking_id,
			visit_date, reason, symptoms, diagnosis, treatment, notes,
			medication_ids, has_invoice,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		rec.ID,
		rec.PetID,
		rec.OwnerID,
		rec.VetID,
		toNullString(rec.BookingID),
		rec.VisitDate,
		rec.Reason,
		rec.Symptoms,
		rec.Diagnosis,
		rec.Treatment,
		rec.Notes,
		stringSlice(rec.MedicationIDs),
		rec.HasInvoice,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

func (r *RecordsRepo) Update(ctx context.Context, rec records.Record) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE records
		SET
			visit_date = $2,
			reason = $3,
			symptoms = $4,
			diagnosis = $5,
			treatment = $6,
			notes = $7,
			medication_ids = $8,
			updated_at = $9
		WHERE id = $1
	`,
		rec.ID,
		rec.VisitDate,
		rec.Reason,
		rec.Symptoms,
		rec.Diagnosis,
		rec.Treatment,
		rec.Notes,
		stringSlice(rec.MedicationIDs),
		rec.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return records.ErrNotFound
	}
	return nil
}

func (r *RecordsRepo) GetByID(ctx context.Context, id string) (records.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return records.Record{}, records.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, pet_id, owner_id, vet_id, booking_id,
			visit_date, reason, symptoms, diagnosis, treatment, notes,
			medication_ids, has_invoice,
			created_at, updated_at
		FROM records
		WHERE id = $1
	`, id)

	rec, err := scanRecord(row)
	if err != nil {
		if isNoRows(err) {
			return records.Record{}, records.ErrNotFound
		}
		return records.Record{}, err
	}
	return rec, nil
}

func (r *RecordsRepo) ListByVet(ctx context.Context, vetID string) ([]records.Record, error) {
	return r.list(ctx, `WHERE vet_id = $1`, vetID)
}

func (r *RecordsRepo) ListByPet(ctx context.Context, petID string) ([]records.Record, error) {
	return r.list(ctx, `WHERE pet_id = $1`, petID)
}

func (r *RecordsRepo) list(ctx context.Context, where string, args ...any) ([]records.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_id, owner_id, vet_id, booking_id,
			visit_date, reason, symptoms, diagnosis, treatment, notes,
			medication_ids, has_invoice,
			created_at, updated_at
		FROM records
	`+where+`
		ORDER BY visit_date ASC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *RecordsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return records.ErrNotFound
	}
	return nil
}

func (r *RecordsRepo) SetHasInvoice(ctx context.Context, id string, has bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE records SET has_invoice = $2, updated_at = now() WHERE id = $1
	`, id, has)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return records.ErrNotFound
	}
	return nil
}

func scanRecord(row rowScanner) (records.Record, error) {
	var rec records.Record
	var bookingID sql.NullString
	var medIDs stringSlice
	if err := row.Scan(
		&rec.ID,
		&rec.PetID,
		&rec.OwnerID,
		&rec.VetID,
		&bookingID,
		&rec.VisitDate,
		&rec.Reason,
		&rec.Symptoms,
		&rec.Diagnosis,
		&rec.Treatment,
		&rec.Notes,
		&medIDs,
		&rec.HasInvoice,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return records.Record{}, err
	}
	rec.BookingID = bookingID.String
	rec.MedicationIDs = medIDs
	return rec, nil
}
