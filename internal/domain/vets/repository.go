package vets

import "context"

type Repository interface {
	Create(ctx context.Context, v Vet) error
	Update(ctx context.Context, v Vet) error
	GetByID(ctx context.Context, id string) (Vet, error)
	ListByOwnerUser(ctx context.Context, ownerUserID string) ([]Vet, error)
	List(ctx context.Context) ([]Vet, error)
}
