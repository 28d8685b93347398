package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vet-clinic/internal/domain/catalog"
)

type medicationsRepo struct {
	mu   sync.RWMutex
	byID map[string]catalog.Medication
}

func NewMedicationsRepo() catalog.MedicationRepository {
	return &medicationsRepo{
		byID: make(map[string]catalog.Medication),
	}
}

func (r *medicationsRepo) Create(ctx context.Context, m catalog.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medication id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("medication already exists")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *medicationsRepo) Update(ctx context.Context, m catalog.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[m.ID]; !exists {
		return catalog.ErrMedicationNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *medicationsRepo) GetByID(ctx context.Context, id string) (catalog.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return catalog.Medication{}, catalog.ErrMedicationNotFound
	}
	return m, nil
}

func (r *medicationsRepo) GetByName(ctx context.Context, vetID, name string) (catalog.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.byID {
		if m.VetID == vetID && strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}
	return catalog.Medication{}, catalog.ErrMedicationNotFound
}

func (r *medicationsRepo) ListByVet(ctx context.Context, vetID string) ([]catalog.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Medication, 0)
	for _, m := range r.byID {
		if m.VetID == vetID {
			out = append(out, m)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *medicationsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return catalog.ErrMedicationNotFound
	}
	delete(r.byID, id)
	return nil
}

type servicesRepo struct {
	mu   sync.RWMutex
	byID map[string]catalog.Service
}

func NewServicesRepo() catalog.ServiceRepository {
	return &servicesRepo{
		byID: make(map[string]catalog.Service),
	}
}

func (r *servicesRepo) Create(ctx context.Context, s catalog.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errors.New("service id required")
	}
	if _, exists := r.byID[s.ID]; exists {
		return errors.New("service already exists")
	}
	r.byID[s.ID] = s
	return nil
}

func (r *servicesRepo) Update(ctx context.Context, s catalog.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[s.ID]; !exists {
		return catalog.ErrServiceNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *servicesRepo) GetByID(ctx context.Context, id string) (catalog.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return catalog.Service{}, catalog.ErrServiceNotFound
	}
	return s, nil
}

func (r *servicesRepo) ListByVet(ctx context.Context, vetID string) ([]catalog.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Service, 0)
	for _, s := range r.byID {
		if s.VetID == vetID {
			out = append(out, s)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *servicesRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return catalog.ErrServiceNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *servicesRepo) IncrementUsage(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return catalog.ErrServiceNotFound
	}
	s.UsageCount++
	r.byID[id] = s
	return nil
}
