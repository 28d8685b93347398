package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// -------------------------
// Test repos (in-memory)
// -------------------------

type testMedsRepo struct {
	byID map[string]Medication
}

func newTestMedsRepo() *testMedsRepo {
	return &testMedsRepo{byID: map[string]Medication{}}
}

func (r *testMedsRepo) Create(ctx context.Context, m Medication) error {
	if m.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[m.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testMedsRepo) Update(ctx context.Context, m Medication) error {
	if _, ok := r.byID[m.ID]; !ok {
		return ErrMedicationNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testMedsRepo) GetByID(ctx context.Context, id string) (Medication, error) {
	m, ok := r.byID[id]
	if !ok {
		return Medication{}, ErrMedicationNotFound
	}
	return m, nil
}

func (r *testMedsRepo) GetByName(ctx context.Context, vetID, name string) (Medication, error) {
	for _, m := range r.byID {
		if m.VetID == vetID && strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}
	return Medication{}, ErrMedicationNotFound
}

func (r *testMedsRepo) ListByVet(ctx context.Context, vetID string) ([]Medication, error) {
	out := make([]Medication, 0)
	for _, m := range r.byID {
		if m.VetID == vetID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *testMedsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrMedicationNotFound
	}
	delete(r.byID, id)
	return nil
}

type testSvcsRepo struct {
	byID map[string]Service
}

func newTestSvcsRepo() *testSvcsRepo {
	return &testSvcsRepo{byID: map[string]Service{}}
}

func (r *testSvcsRepo) Create(ctx context.Context, s Service) error {
	if s.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[s.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[s.ID] = s
	return nil
}

func (r *testSvcsRepo) Update(ctx context.Context, s Service) error {
	if _, ok := r.byID[s.ID]; !ok {
		return ErrServiceNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *testSvcsRepo) GetByID(ctx context.Context, id string) (Service, error) {
	s, ok := r.byID[id]
	if !ok {
		return Service{}, ErrServiceNotFound
	}
	return s, nil
}

func (r *testSvcsRepo) ListByVet(ctx context.Context, vetID string) ([]Service, error) {
	out := make([]Service, 0)
	for _, s := range r.byID {
		if s.VetID == vetID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *testSvcsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrServiceNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testSvcsRepo) IncrementUsage(ctx context.Context, id string) error {
	s, ok := r.byID[id]
	if !ok {
		return ErrServiceNotFound
	}
	s.UsageCount++
	r.byID[id] = s
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestManager_CreateMedication_DuplicateNamePerVet(t *testing.T) {
	mgr := NewManager(newTestMedsRepo(), newTestSvcsRepo())

	in := CreateMedicationInput{VetID: "vet-1", Name: "Amoxicilina", Price: 1200}
	if _, err := mgr.CreateMedication(context.Background(), in); err != nil {
		t.Fatalf("CreateMedication #1 error: %v", err)
	}

	// mismo nombre, distinta capitalización: duplicado
	in.Name = "amoxicilina"
	if _, err := mgr.CreateMedication(context.Background(), in); err != ErrDuplicateMedication {
		t.Fatalf("expected ErrDuplicateMedication, got %v", err)
	}

	// mismo nombre en otra clínica: permitido
	in.VetID = "vet-2"
	if _, err := mgr.CreateMedication(context.Background(), in); err != nil {
		t.Fatalf("expected duplicate check scoped per vet, got %v", err)
	}
}

func TestManager_CreateMedication_RejectsNegativePrice(t *testing.T) {
	mgr := NewManager(newTestMedsRepo(), newTestSvcsRepo())

	_, err := mgr.CreateMedication(context.Background(), CreateMedicationInput{
		VetID: "vet-1",
		Name:  "Algo",
		Price: -1,
	})
	if err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestManager_UpdateMedication_ScopedToVet(t *testing.T) {
	mgr := NewManager(newTestMedsRepo(), newTestSvcsRepo())

	med, err := mgr.CreateMedication(context.Background(), CreateMedicationInput{
		VetID: "vet-1",
		Name:  "Ivermectina",
		Price: 800,
	})
	if err != nil {
		t.Fatalf("CreateMedication error: %v", err)
	}

	newPrice := 950.0
	if _, err := mgr.UpdateMedication(context.Background(), med.ID, "vet-2", UpdateMedicationInput{Price: &newPrice}); err != ErrMedicationNotFound {
		t.Fatalf("expected ErrMedicationNotFound for foreign vet, got %v", err)
	}

	updated, err := mgr.UpdateMedication(context.Background(), med.ID, "vet-1", UpdateMedicationInput{Price: &newPrice})
	if err != nil {
		t.Fatalf("UpdateMedication error: %v", err)
	}
	if updated.Price != 950 {
		t.Fatalf("expected price updated, got %v", updated.Price)
	}
}

func TestManager_IncrementServiceUsage(t *testing.T) {
	svcsRepo := newTestSvcsRepo()
	mgr := NewManager(newTestMedsRepo(), svcsRepo)

	s, err := mgr.CreateService(context.Background(), CreateServiceInput{
		VetID:     "vet-1",
		Name:      "Consulta",
		Price:     5000,
		Available: true,
	})
	if err != nil {
		t.Fatalf("CreateService error: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := mgr.IncrementServiceUsage(context.Background(), s.ID); err != nil {
			t.Fatalf("IncrementServiceUsage error: %v", err)
		}
	}
	if got := svcsRepo.byID[s.ID].UsageCount; got != 3 {
		t.Fatalf("expected usage 3, got %d", got)
	}
}
