package invoices

import (
	"context"
	"errors"
	"strings"
	"time"

	"vet-clinic/internal/domain/catalog"
	"vet-clinic/internal/domain/records"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid medications/services array")
	ErrRecordNotFound  = errors.New("medical record not found")
	ErrItemNotFound    = errors.New("catalog item not found")
	ErrAlreadyInvoiced = errors.New("medical record already invoiced")
	ErrNotFound        = errors.New("invoice not found")
)

// RecordStore es lo que el generador necesita del módulo de records.
// *records.Service lo satisface.
type RecordStore interface {
	GetScopedByVet(ctx context.Context, id, vetID string) (records.Record, error)
	MarkInvoiced(ctx context.Context, id string) error
}

// Catalog resuelve precios y registra uso de servicios.
// *catalog.Manager lo satisface.
type Catalog interface {
	GetMedication(ctx context.Context, id string) (catalog.Medication, error)
	GetService(ctx context.Context, id string) (catalog.Service, error)
	IncrementServiceUsage(ctx context.Context, id string) error
}

type Service struct {
	repo    Repository
	records RecordStore
	catalog Catalog
	now     func() time.Time
}

func NewService(repo Repository, recordStore RecordStore, cat Catalog) *Service {
	return &Service{
		repo:    repo,
		records: recordStore,
		catalog: cat,
		now:     time.Now,
	}
}

type CreateInput struct {
	RecordID      string
	VetID         string
	MedicationIDs []string
	ServiceIDs    []string
}

// Create congela los ítems facturables de un record en un invoice.
//
// El total se calcula acá, con los precios de catálogo vigentes; no se
// confía en aritmética del caller. Los ids se deduplican conservando orden.
// MarkInvoiced corre de forma síncrona antes de devolver: el caller ve el
// flag actualizado apenas recibe la respuesta.
func (s *Service) Create(ctx context.Context, in CreateInput) (Invoice, error) {
	recordID := strings.TrimSpace(in.RecordID)
	vetID := strings.TrimSpace(in.VetID)
	if recordID == "" || vetID == "" {
		return Invoice{}, ErrInvalidInput
	}

	medIDs, err := dedupIDs(in.MedicationIDs)
	if err != nil {
		return Invoice{}, err
	}
	svcIDs, err := dedupIDs(in.ServiceIDs)
	if err != nil {
		return Invoice{}, err
	}

	rec, err := s.records.GetScopedByVet(ctx, recordID, vetID)
	if err != nil {
		return Invoice{}, ErrRecordNotFound
	}
	if rec.HasInvoice {
		return Invoice{}, ErrAlreadyInvoiced
	}
	// El flag del record puede quedar desfasado; el invoice existente manda.
	if _, err := s.repo.GetByRecord(ctx, recordID); err == nil {
		return Invoice{}, ErrAlreadyInvoiced
	}

	var total float64
	for _, id := range medIDs {
		med, err := s.catalog.GetMedication(ctx, id)
		if err != nil {
			return Invoice{}, ErrItemNotFound
		}
		total += med.Price
	}
	for _, id := range svcIDs {
		svc, err := s.catalog.GetService(ctx, id)
		if err != nil {
			return Invoice{}, ErrItemNotFound
		}
		total += svc.Price
	}

	inv := Invoice{
		ID:            uuid.NewString(),
		RecordID:      recordID,
		VetID:         vetID,
		MedicationIDs: medIDs,
		ServiceIDs:    svcIDs,
		Total:         total,
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		return Invoice{}, err
	}

	if err := s.records.MarkInvoiced(ctx, recordID); err != nil {
		return Invoice{}, err
	}

	// Contadores de uso para los charts; fallas acá no invalidan el invoice.
	for _, id := range svcIDs {
		_ = s.catalog.IncrementServiceUsage(ctx, id)
	}

	return inv, nil
}

// ExpandedInvoice resuelve las referencias a catálogo en el momento de la
// lectura (los precios mostrados pueden diferir del total congelado).
type ExpandedInvoice struct {
	Invoice     Invoice
	Medications []catalog.Medication
	Services    []catalog.Service
}

func (s *Service) GetExpanded(ctx context.Context, id string) (ExpandedInvoice, error) {
	inv, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return ExpandedInvoice{}, err
	}
	return s.expand(ctx, inv), nil
}

func (s *Service) ListByVetExpanded(ctx context.Context, vetID string) ([]ExpandedInvoice, error) {
	items, err := s.repo.ListByVet(ctx, vetID)
	if err != nil {
		return nil, err
	}
	out := make([]ExpandedInvoice, 0, len(items))
	for _, inv := range items {
		out = append(out, s.expand(ctx, inv))
	}
	return out, nil
}

func (s *Service) ListAll(ctx context.Context) ([]Invoice, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) expand(ctx context.Context, inv Invoice) ExpandedInvoice {
	out := ExpandedInvoice{Invoice: inv}

	for _, id := range inv.MedicationIDs {
		if med, err := s.catalog.GetMedication(ctx, id); err == nil {
			out.Medications = append(out.Medications, med)
		}
		// Ítems borrados del catálogo se omiten de la vista expandida;
		// el id sigue en el invoice.
	}
	for _, id := range inv.ServiceIDs {
		if svc, err := s.catalog.GetService(ctx, id); err == nil {
			out.Services = append(out.Services, svc)
		}
	}
	return out
}

func dedupIDs(ids []string) ([]string, error) {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, ErrInvalidInput
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
