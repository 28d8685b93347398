package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vet-clinic/internal/domain/invoices"
)

type InvoicesRepo struct {
	db *sql.DB
}

func NewInvoicesRepo(db *sql.DB) *InvoicesRepo {
	return &InvoicesRepo{db: db}
}

func (r *InvoicesRepo) Create(ctx context.Context, inv invoices.Invoice) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invoices (
			id, record_id, vet_id,
			medication_ids, service_ids, total,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		inv.ID,
		inv.RecordID,
		inv.VetID,
		stringSlice(inv.MedicationIDs),
		stringSlice(inv.ServiceIDs),
		inv.Total,
		inv.CreatedAt,
	)
	return err
}

func (r *InvoicesRepo) GetByID(ctx context.Context, id string) (invoices.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return invoices.Invoice{}, invoices.ErrNotFound
	}
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *InvoicesRepo) GetByRecord(ctx context.Context, recordID string) (invoices.Invoice, error) {
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return invoices.Invoice{}, invoices.ErrNotFound
	}
	return r.getOne(ctx, `WHERE record_id = $1`, recordID)
}

func (r *InvoicesRepo) getOne(ctx context.Context, where string, arg any) (invoices.Invoice, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, record_id, vet_id,
			medication_ids, service_ids, total,
			created_at
		FROM invoices
	`+where, arg)

	inv, err := scanInvoice(row)
	if err != nil {
		if isNoRows(err) {
			return invoices.Invoice{}, invoices.ErrNotFound
		}
		return invoices.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoicesRepo) ListByVet(ctx context.Context, vetID string) ([]invoices.Invoice, error) {
	return r.list(ctx, `WHERE vet_id = $1`, vetID)
}

func (r *InvoicesRepo) ListAll(ctx context.Context) ([]invoices.Invoice, error) {
	return r.list(ctx, ``)
}

func (r *InvoicesRepo) list(ctx context.Context, where string, args ...any) ([]invoices.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, record_id, vet_id,
			medication_ids, service_ids, total,
			created_at
		FROM invoices
	`+where+`
		ORDER BY created_at ASC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]invoices.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func scanInvoice(row rowScanner) (invoices.Invoice, error) {
	var inv invoices.Invoice
	var medIDs, svcIDs stringSlice
	if err := row.Scan(
		&inv.ID,
		&inv.RecordID,
		&inv.VetID,
		&medIDs,
		&svcIDs,
		&inv.Total,
		&inv.CreatedAt,
	); err != nil {
		return invoices.Invoice{}, err
	}
	inv.MedicationIDs = medIDs
	inv.ServiceIDs = svcIDs
	return inv, nil
}
