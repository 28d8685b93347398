package records

import "context"

type Repository interface {
	Create(ctx context.Context, rec Record) error
	Update(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	ListByVet(ctx context.Context, vetID string) ([]Record, error)
	ListByPet(ctx context.Context, petID string) ([]Record, error)
	Delete(ctx context.Context, id string) error

	// SetHasInvoice marca el record como facturado.
	SetHasInvoice(ctx context.Context, id string, has bool) error
}
