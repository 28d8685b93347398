package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vet-clinic/internal/domain/invoices"
)

type invoicesRepo struct {
	mu   sync.RWMutex
	byID map[string]invoices.Invoice
}

func NewInvoicesRepo() invoices.Repository {
	return &invoicesRepo{
		byID: make(map[string]invoices.Invoice),
	}
}

func (r *invoicesRepo) Create(ctx context.Context, inv invoices.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(inv.ID) == "" {
		return errors.New("invoice id required")
	}
	if _, exists := r.byID[inv.ID]; exists {
		return errors.New("invoice already exists")
	}
	r.byID[inv.ID] = cloneInvoice(inv)
	return nil
}

func (r *invoicesRepo) GetByID(ctx context.Context, id string) (invoices.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.byID[id]
	if !ok {
		return invoices.Invoice{}, invoices.ErrNotFound
	}
	return cloneInvoice(inv), nil
}

func (r *invoicesRepo) GetByRecord(ctx context.Context, recordID string) (invoices.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, inv := range r.byID {
		if inv.RecordID == recordID {
			return cloneInvoice(inv), nil
		}
	}
	return invoices.Invoice{}, invoices.ErrNotFound
}

func (r *invoicesRepo) ListByVet(ctx context.Context, vetID string) ([]invoices.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]invoices.Invoice, 0)
	for _, inv := range r.byID {
		if inv.VetID == vetID {
			out = append(out, cloneInvoice(inv))
		}
	}
	sortInvoices(out)
	return out, nil
}

func (r *invoicesRepo) ListAll(ctx context.Context) ([]invoices.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]invoices.Invoice, 0, len(r.byID))
	for _, inv := range r.byID {
		out = append(out, cloneInvoice(inv))
	}
	sortInvoices(out)
	return out, nil
}

func cloneInvoice(inv invoices.Invoice) invoices.Invoice {
	if inv.MedicationIDs != nil {
		ids := make([]string, len(inv.MedicationIDs))
		copy(ids, inv.MedicationIDs)
		inv.MedicationIDs = ids
	}
	if inv.ServiceIDs != nil {
		ids := make([]string, len(inv.ServiceIDs))
		copy(ids, inv.ServiceIDs)
		inv.ServiceIDs = ids
	}
	return inv
}

func sortInvoices(items []invoices.Invoice) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
