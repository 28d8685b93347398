package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vet-clinic/internal/domain/vets"
)

type vetsRepo struct {
	mu   sync.RWMutex
	byID map[string]vets.Vet
}

func NewVetsRepo() vets.Repository {
	return &vetsRepo{
		byID: make(map[string]vets.Vet),
	}
}

func (r *vetsRepo) Create(ctx context.Context, v vets.Vet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(v.ID) == "" {
		return errors.New("vet id required")
	}
	if _, exists := r.byID[v.ID]; exists {
		return errors.New("vet already exists")
	}
	r.byID[v.ID] = v
	return nil
}

func (r *vetsRepo) Update(ctx context.Context, v vets.Vet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[v.ID]; !exists {
		return vets.ErrNotFound
	}
	r.byID[v.ID] = v
	return nil
}

func (r *vetsRepo) GetByID(ctx context.Context, id string) (vets.Vet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return vets.Vet{}, vets.ErrNotFound
	}
	return v, nil
}

func (r *vetsRepo) ListByOwnerUser(ctx context.Context, ownerUserID string) ([]vets.Vet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vets.Vet, 0)
	for _, v := range r.byID {
		if v.OwnerUserID == ownerUserID {
			out = append(out, v)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *vetsRepo) List(ctx context.Context) ([]vets.Vet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vets.Vet, 0, len(r.byID))
	for _, v := range r.byID {
		out = append(out, v)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
