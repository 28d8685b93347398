package owners

import "context"

type Repository interface {
	Create(ctx context.Context, o Owner) error
	Update(ctx context.Context, o Owner) error
	GetByID(ctx context.Context, id string) (Owner, error)
	GetByEmail(ctx context.Context, email string) (Owner, error)
	GetByPhone(ctx context.Context, phone string) (Owner, error)
	List(ctx context.Context) ([]Owner, error)
}
