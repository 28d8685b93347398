package bookings

import "context"

type Repository interface {
	Create(ctx context.Context, b Booking) error
	Update(ctx context.Context, b Booking) error
	GetByID(ctx context.Context, id string) (Booking, error)
	ListByVet(ctx context.Context, vetID string) ([]Booking, error)
	ListByPetAndVet(ctx context.Context, petID, vetID string) ([]Booking, error)
	ListAll(ctx context.Context) ([]Booking, error)
	Delete(ctx context.Context, id string) error
}
