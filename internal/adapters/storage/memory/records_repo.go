package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vet-clinic/internal/domain/records"
)

type recordsRepo struct {
	mu   sync.RWMutex
	byID map[string]records.Record
}

func NewRecordsRepo() records.Repository {
	return &recordsRepo{
		byID: make(map[string]records.Record),
	}
}

func (r *recordsRepo) Create(ctx context.Context, rec records.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("record already exists")
	}
	r.byID[rec.ID] = cloneRecord(rec)
	return nil
}

func (r *recordsRepo) Update(ctx context.Context, rec records.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rec.ID]; !exists {
		return records.ErrNotFound
	}
	r.byID[rec.ID] = cloneRecord(rec)
	return nil
}

func (r *recordsRepo) GetByID(ctx context.Context, id string) (records.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return records.Record{}, records.ErrNotFound
	}
	return cloneRecord(rec), nil
}

func (r *recordsRepo) ListByVet(ctx context.Context, vetID string) ([]records.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]records.Record, 0)
	for _, rec := range r.byID {
		if rec.VetID == vetID {
			out = append(out, cloneRecord(rec))
		}
	}
	sortByVisitDate(out)
	return out, nil
}

func (r *recordsRepo) ListByPet(ctx context.Context, petID string) ([]records.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]records.Record, 0)
	for _, rec := range r.byID {
		if rec.PetID == petID {
			out = append(out, cloneRecord(rec))
		}
	}
	sortByVisitDate(out)
	return out, nil
}

func (r *recordsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return records.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *recordsRepo) SetHasInvoice(ctx context.Context, id string, has bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return records.ErrNotFound
	}
	rec.HasInvoice = has
	r.byID[id] = rec
	return nil
}

// cloneRecord copia el slice de medication ids para que el caller no pueda
// mutar el estado guardado.
func cloneRecord(rec records.Record) records.Record {
	if rec.MedicationIDs != nil {
		ids := make([]string, len(rec.MedicationIDs))
		copy(ids, rec.MedicationIDs)
		rec.MedicationIDs = ids
	}
	return rec
}

func sortByVisitDate(items []records.Record) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].VisitDate.Before(items[j].VisitDate)
	})
}
