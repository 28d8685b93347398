package catalog

import "context"

type MedicationRepository interface {
	Create(ctx context.Context, m Medication) error
	Update(ctx context.Context, m Medication) error
	GetByID(ctx context.Context, id string) (Medication, error)
	GetByName(ctx context.Context, vetID, name string) (Medication, error)
	ListByVet(ctx context.Context, vetID string) ([]Medication, error)
	Delete(ctx context.Context, id string) error
}

type ServiceRepository interface {
	Create(ctx context.Context, s Service) error
	Update(ctx context.Context, s Service) error
	GetByID(ctx context.Context, id string) (Service, error)
	ListByVet(ctx context.Context, vetID string) ([]Service, error)
	Delete(ctx context.Context, id string) error

	// IncrementUsage suma 1 al contador de uso del servicio.
	IncrementUsage(ctx context.Context, id string) error
}
