package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"vet-clinic/internal/domain/catalog"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Record
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Record{}}
}

func (r *testRepo) Create(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[rec.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) Update(ctx context.Context, rec Record) error {
	if _, ok := r.byID[rec.ID]; !ok {
		return ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Record, error) {
	rec, ok := r.byID[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *testRepo) ListByVet(ctx context.Context, vetID string) ([]Record, error) {
	out := make([]Record, 0)
	for _, rec := range r.byID {
		if rec.VetID == vetID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]Record, error) {
	out := make([]Record, 0)
	for _, rec := range r.byID {
		if rec.PetID == petID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) SetHasInvoice(ctx context.Context, id string, has bool) error {
	rec, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	rec.HasInvoice = has
	r.byID[id] = rec
	return nil
}

type testMeds struct {
	byID map[string]catalog.Medication
}

func (m *testMeds) GetMedication(ctx context.Context, id string) (catalog.Medication, error) {
	med, ok := m.byID[id]
	if !ok {
		return catalog.Medication{}, catalog.ErrMedicationNotFound
	}
	return med, nil
}

// -------------------------
// Tests
// -------------------------

func newTestService() (*Service, *testRepo, *testMeds) {
	repo := newTestRepo()
	meds := &testMeds{byID: map[string]catalog.Medication{}}
	return NewService(repo, meds), repo, meds
}

func validCreateInput() CreateInput {
	return CreateInput{
		PetID:         "pet-1",
		OwnerID:       "owner-1",
		VetID:         "vet-1",
		VisitDate:     time.Date(2026, 2, 15, 11, 0, 0, 0, time.UTC),
		Reason:        "control anual",
		MedicationIDs: []string{"med-b", "med-a", "med-c"},
	}
}

func TestService_Create_PreservesMedicationOrder(t *testing.T) {
	svc, _, _ := newTestService()

	now := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	rec, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.HasInvoice {
		t.Fatalf("expected hasInvoice false on create")
	}
	want := []string{"med-b", "med-a", "med-c"}
	if len(rec.MedicationIDs) != len(want) {
		t.Fatalf("expected %d medications, got %d", len(want), len(rec.MedicationIDs))
	}
	for i, id := range want {
		if rec.MedicationIDs[i] != id {
			t.Fatalf("expected medication order preserved, got %#v", rec.MedicationIDs)
		}
	}
	if rec.CreatedAt != now || rec.UpdatedAt != now {
		t.Fatalf("expected CreatedAt/UpdatedAt to be now")
	}
}

func TestService_Create_RequiresReason(t *testing.T) {
	svc, _, _ := newTestService()

	in := validCreateInput()
	in.Reason = "   "
	if _, err := svc.Create(context.Background(), in); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Update_ScopedToVet(t *testing.T) {
	svc, _, _ := newTestService()

	rec, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// otra clínica: NotFound, sin revelar que el record existe
	_, err = svc.Update(context.Background(), rec.ID, "vet-2", UpdateInput{
		VisitDate: rec.VisitDate,
		Reason:    "editado",
	})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign vet, got %v", err)
	}

	// la clínica dueña sí puede
	updated, err := svc.Update(context.Background(), rec.ID, "vet-1", UpdateInput{
		VisitDate:     rec.VisitDate,
		Reason:        "editado",
		MedicationIDs: []string{"med-x"},
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Reason != "editado" {
		t.Fatalf("expected reason replaced, got %q", updated.Reason)
	}
	if len(updated.MedicationIDs) != 1 || updated.MedicationIDs[0] != "med-x" {
		t.Fatalf("expected medications replaced, got %#v", updated.MedicationIDs)
	}
}

func TestService_Update_NormalizesMedicationIDs(t *testing.T) {
	svc, _, _ := newTestService()

	rec, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// ids con espacios se recortan, igual que en Create
	updated, err := svc.Update(context.Background(), rec.ID, "vet-1", UpdateInput{
		VisitDate:     rec.VisitDate,
		Reason:        rec.Reason,
		MedicationIDs: []string{" med-x ", "med-y"},
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if len(updated.MedicationIDs) != 2 || updated.MedicationIDs[0] != "med-x" || updated.MedicationIDs[1] != "med-y" {
		t.Fatalf("expected trimmed ids, got %#v", updated.MedicationIDs)
	}

	// un id en blanco invalida el update completo
	_, err = svc.Update(context.Background(), rec.ID, "vet-1", UpdateInput{
		VisitDate:     rec.VisitDate,
		Reason:        rec.Reason,
		MedicationIDs: []string{"med-x", "   "},
	})
	if err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for blank medication id, got %v", err)
	}
}

func TestService_Delete_ScopedToVet(t *testing.T) {
	svc, repo, _ := newTestService()

	rec, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := svc.Delete(context.Background(), rec.ID, "vet-2"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign vet, got %v", err)
	}
	if err := svc.Delete(context.Background(), rec.ID, "vet-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, ok := repo.byID[rec.ID]; ok {
		t.Fatalf("expected record removed")
	}
}

func TestService_MarkInvoiced_Idempotent(t *testing.T) {
	svc, repo, _ := newTestService()

	rec, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := svc.MarkInvoiced(context.Background(), rec.ID); err != nil {
		t.Fatalf("MarkInvoiced error: %v", err)
	}
	if err := svc.MarkInvoiced(context.Background(), rec.ID); err != nil {
		t.Fatalf("MarkInvoiced #2 error: %v", err)
	}
	if !repo.byID[rec.ID].HasInvoice {
		t.Fatalf("expected hasInvoice true")
	}
}

func TestService_ExpandMedications_OmitsDeleted(t *testing.T) {
	svc, _, meds := newTestService()

	meds.byID["med-a"] = catalog.Medication{ID: "med-a", Name: "Amoxicilina", Price: 1500}
	meds.byID["med-c"] = catalog.Medication{ID: "med-c", Name: "Ivermectina", Price: 800}

	rec, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// med-b ya no está en el catálogo: se omite, los ids del record quedan
	refs := svc.ExpandMedications(context.Background(), rec)
	if len(refs) != 2 {
		t.Fatalf("expected 2 resolved medications, got %d", len(refs))
	}
	if refs[0].Name != "Amoxicilina" || refs[1].Name != "Ivermectina" {
		t.Fatalf("unexpected expansion %#v", refs)
	}
	if len(rec.MedicationIDs) != 3 {
		t.Fatalf("expected frozen ids untouched, got %#v", rec.MedicationIDs)
	}
}
