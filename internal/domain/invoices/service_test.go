package invoices

import (
	"context"
	"errors"
	"testing"
	"time"

	"vet-clinic/internal/domain/catalog"
	"vet-clinic/internal/domain/records"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Invoice
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Invoice{}}
}

func (r *testRepo) Create(ctx context.Context, inv Invoice) error {
	if inv.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[inv.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[inv.ID] = inv
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Invoice, error) {
	inv, ok := r.byID[id]
	if !ok {
		return Invoice{}, ErrNotFound
	}
	return inv, nil
}

func (r *testRepo) GetByRecord(ctx context.Context, recordID string) (Invoice, error) {
	for _, inv := range r.byID {
		if inv.RecordID == recordID {
			return inv, nil
		}
	}
	return Invoice{}, ErrNotFound
}

func (r *testRepo) ListByVet(ctx context.Context, vetID string) ([]Invoice, error) {
	out := make([]Invoice, 0)
	for _, inv := range r.byID {
		if inv.VetID == vetID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *testRepo) ListAll(ctx context.Context) ([]Invoice, error) {
	out := make([]Invoice, 0, len(r.byID))
	for _, inv := range r.byID {
		out = append(out, inv)
	}
	return out, nil
}

// -------------------------
// Fakes de colaboradores
// -------------------------

type testRecords struct {
	byID map[string]records.Record
}

func (f *testRecords) GetScopedByVet(ctx context.Context, id, vetID string) (records.Record, error) {
	rec, ok := f.byID[id]
	if !ok || rec.VetID != vetID {
		return records.Record{}, records.ErrNotFound
	}
	return rec, nil
}

func (f *testRecords) MarkInvoiced(ctx context.Context, id string) error {
	rec, ok := f.byID[id]
	if !ok {
		return records.ErrNotFound
	}
	rec.HasInvoice = true
	f.byID[id] = rec
	return nil
}

type testCatalog struct {
	meds  map[string]catalog.Medication
	svcs  map[string]catalog.Service
	usage map[string]int
}

func newTestCatalog() *testCatalog {
	return &testCatalog{
		meds:  map[string]catalog.Medication{},
		svcs:  map[string]catalog.Service{},
		usage: map[string]int{},
	}
}

func (f *testCatalog) GetMedication(ctx context.Context, id string) (catalog.Medication, error) {
	m, ok := f.meds[id]
	if !ok {
		return catalog.Medication{}, catalog.ErrMedicationNotFound
	}
	return m, nil
}

func (f *testCatalog) GetService(ctx context.Context, id string) (catalog.Service, error) {
	s, ok := f.svcs[id]
	if !ok {
		return catalog.Service{}, catalog.ErrServiceNotFound
	}
	return s, nil
}

func (f *testCatalog) IncrementServiceUsage(ctx context.Context, id string) error {
	f.usage[id]++
	return nil
}

func newTestService() (*Service, *testRecords, *testCatalog) {
	recs := &testRecords{byID: map[string]records.Record{
		"rec-1": {ID: "rec-1", VetID: "vet-1", PetID: "pet-1", OwnerID: "owner-1"},
	}}
	cat := newTestCatalog()
	cat.meds["med-1"] = catalog.Medication{ID: "med-1", VetID: "vet-1", Name: "Amoxicilina", Price: 1500}
	cat.meds["med-2"] = catalog.Medication{ID: "med-2", VetID: "vet-1", Name: "Ivermectina", Price: 800}
	cat.svcs["svc-1"] = catalog.Service{ID: "svc-1", VetID: "vet-1", Name: "Consulta", Price: 5000}

	svc := NewService(newTestRepo(), recs, cat)
	return svc, recs, cat
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_ServerSideTotal_AndDedup(t *testing.T) {
	svc, _, cat := newTestService()

	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	inv, err := svc.Create(context.Background(), CreateInput{
		RecordID:      "rec-1",
		VetID:         "vet-1",
		MedicationIDs: []string{"med-1", "med-2", "med-1"},
		ServiceIDs:    []string{"svc-1"},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// med-1 duplicado se cuenta una vez, conservando el orden
	if len(inv.MedicationIDs) != 2 || inv.MedicationIDs[0] != "med-1" || inv.MedicationIDs[1] != "med-2" {
		t.Fatalf("expected deduped [med-1 med-2], got %#v", inv.MedicationIDs)
	}
	if inv.Total != 1500+800+5000 {
		t.Fatalf("expected total 7300, got %v", inv.Total)
	}
	if inv.CreatedAt != now {
		t.Fatalf("expected CreatedAt now")
	}
	if cat.usage["svc-1"] != 1 {
		t.Fatalf("expected service usage incremented, got %d", cat.usage["svc-1"])
	}
}

func TestService_Create_MarksRecordInvoiced_Synchronously(t *testing.T) {
	svc, recs, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateInput{
		RecordID:   "rec-1",
		VetID:      "vet-1",
		ServiceIDs: []string{"svc-1"},
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !recs.byID["rec-1"].HasInvoice {
		t.Fatalf("expected record flagged has_invoice after create")
	}
}

func TestService_Create_SecondInvoice_Conflict(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.Create(context.Background(), CreateInput{
		RecordID:   "rec-1",
		VetID:      "vet-1",
		ServiceIDs: []string{"svc-1"},
	}); err != nil {
		t.Fatalf("Create #1 error: %v", err)
	}

	_, err := svc.Create(context.Background(), CreateInput{
		RecordID:   "rec-1",
		VetID:      "vet-1",
		ServiceIDs: []string{"svc-1"},
	})
	if err != ErrAlreadyInvoiced {
		t.Fatalf("expected ErrAlreadyInvoiced, got %v", err)
	}
}

func TestService_Create_StaleRecordFlag_StillConflicts(t *testing.T) {
	svc, recs, _ := newTestService()

	if _, err := svc.Create(context.Background(), CreateInput{
		RecordID:   "rec-1",
		VetID:      "vet-1",
		ServiceIDs: []string{"svc-1"},
	}); err != nil {
		t.Fatalf("Create #1 error: %v", err)
	}

	// flag desfasado (p.ej. escritura perdida): el invoice existente manda
	rec := recs.byID["rec-1"]
	rec.HasInvoice = false
	recs.byID["rec-1"] = rec

	_, err := svc.Create(context.Background(), CreateInput{
		RecordID:   "rec-1",
		VetID:      "vet-1",
		ServiceIDs: []string{"svc-1"},
	})
	if err != ErrAlreadyInvoiced {
		t.Fatalf("expected ErrAlreadyInvoiced despite stale flag, got %v", err)
	}
}

func TestService_Create_RecordScopedToVet(t *testing.T) {
	svc, _, _ := newTestService()

	// rec-1 pertenece a vet-1; otra clínica no lo puede facturar
	_, err := svc.Create(context.Background(), CreateInput{
		RecordID:   "rec-1",
		VetID:      "vet-2",
		ServiceIDs: []string{"svc-1"},
	})
	if err != ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestService_Create_EmptyItemID_Invalid(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateInput{
		RecordID:      "rec-1",
		VetID:         "vet-1",
		MedicationIDs: []string{"med-1", "  "},
	})
	if err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Create_UnknownCatalogItem(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateInput{
		RecordID:      "rec-1",
		VetID:         "vet-1",
		MedicationIDs: []string{"med-nope"},
	})
	if err != ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestService_Expand_OmitsDeletedItems_FrozenTotalIntact(t *testing.T) {
	svc, _, cat := newTestService()

	inv, err := svc.Create(context.Background(), CreateInput{
		RecordID:      "rec-1",
		VetID:         "vet-1",
		MedicationIDs: []string{"med-1"},
		ServiceIDs:    []string{"svc-1"},
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// borrar el medicamento del catálogo y subir el precio del servicio
	delete(cat.meds, "med-1")
	s := cat.svcs["svc-1"]
	s.Price = 9999
	cat.svcs["svc-1"] = s

	exp, err := svc.GetExpanded(context.Background(), inv.ID)
	if err != nil {
		t.Fatalf("GetExpanded error: %v", err)
	}
	if len(exp.Medications) != 0 {
		t.Fatalf("expected deleted medication omitted from expansion")
	}
	if len(exp.Invoice.MedicationIDs) != 1 {
		t.Fatalf("expected medication id kept in frozen invoice")
	}
	if exp.Invoice.Total != 1500+5000 {
		t.Fatalf("expected frozen total 6500, got %v", exp.Invoice.Total)
	}
}
