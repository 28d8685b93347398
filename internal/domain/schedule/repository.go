package schedule

import "context"

type Repository interface {
	Create(ctx context.Context, e Entry) error
	Update(ctx context.Context, e Entry) error
	GetByID(ctx context.Context, id string) (Entry, error)
	GetByBooking(ctx context.Context, bookingID string) (Entry, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Entry, error)
	Delete(ctx context.Context, id string) error
}
