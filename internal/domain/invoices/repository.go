package invoices

import "context"

type Repository interface {
	Create(ctx context.Context, inv Invoice) error
	GetByID(ctx context.Context, id string) (Invoice, error)
	GetByRecord(ctx context.Context, recordID string) (Invoice, error)
	ListByVet(ctx context.Context, vetID string) ([]Invoice, error)
	ListAll(ctx context.Context) ([]Invoice, error)
}
