package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vet-clinic/internal/domain/schedule"
)

type scheduleRepo struct {
	mu   sync.RWMutex
	byID map[string]schedule.Entry
}

func NewScheduleRepo() schedule.Repository {
	return &scheduleRepo{
		byID: make(map[string]schedule.Entry),
	}
}

func (r *scheduleRepo) Create(ctx context.Context, e schedule.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("schedule entry id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("schedule entry already exists")
	}
	r.byID[e.ID] = e
	return nil
}

func (r *scheduleRepo) Update(ctx context.Context, e schedule.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[e.ID]; !exists {
		return schedule.ErrNotFound
	}
	r.byID[e.ID] = e
	return nil
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (schedule.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return schedule.Entry{}, schedule.ErrNotFound
	}
	return e, nil
}

func (r *scheduleRepo) GetByBooking(ctx context.Context, bookingID string) (schedule.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if bookingID == "" {
		return schedule.Entry{}, schedule.ErrNotFound
	}
	for _, e := range r.byID {
		if e.BookingID == bookingID {
			return e, nil
		}
	}
	return schedule.Entry{}, schedule.ErrNotFound
}

func (r *scheduleRepo) ListByOwner(ctx context.Context, ownerID string) ([]schedule.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedule.Entry, 0)
	for _, e := range r.byID {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (r *scheduleRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return schedule.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
