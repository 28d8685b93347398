package pets

import (
	"context"
	"errors"
	"testing"
	"time"

	"vet-clinic/internal/domain/owners"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[p.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerID == ownerID {
			out = append(out, p)
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

type testOwners struct {
	ids map[string]bool
}

func (o *testOwners) GetByID(ctx context.Context, id string) (owners.Owner, error) {
	if !o.ids[id] {
		return owners.Owner{}, owners.ErrNotFound
	}
	return owners.Owner{ID: id}, nil
}

// -------------------------
// Tests
// -------------------------

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, &testOwners{ids: map[string]bool{"owner-1": true}})
	return svc, repo
}

func TestService_Create_DefaultSexUnknown(t *testing.T) {
	svc, _ := newTestService()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.Create(context.Background(), CreateInput{
		OwnerID:  "owner-1",
		Name:     "  Milo ",
		AgeYears: 3,
		WeightKg: 12.5,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.Name != "Milo" {
		t.Fatalf("expected name trimmed, got %q", p.Name)
	}
	if p.Sex != SexUnknown {
		t.Fatalf("expected default sex unknown, got %q", p.Sex)
	}
	if p.CreatedAt != now || p.UpdatedAt != now {
		t.Fatalf("expected CreatedAt/UpdatedAt to be now")
	}
}

func TestService_Create_UnknownOwner(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateInput{
		OwnerID: "owner-x",
		Name:    "Milo",
	})
	if err != ErrOwnerNotFound {
		t.Fatalf("expected ErrOwnerNotFound, got %v", err)
	}
}

func TestService_Create_RejectsNegativeWeight(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateInput{
		OwnerID:  "owner-1",
		Name:     "Milo",
		WeightKg: -2,
	})
	if err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Update_PartialPatch(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), CreateInput{
		OwnerID:  "owner-1",
		Name:     "Milo",
		Breed:    "mestizo",
		AgeYears: 3,
		WeightKg: 12.5,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// solo el peso: el resto queda igual
	w := 13.2
	updated, err := svc.Update(context.Background(), p.ID, UpdateInput{WeightKg: &w})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.WeightKg != 13.2 {
		t.Fatalf("expected weight updated, got %v", updated.WeightKg)
	}
	if updated.Name != "Milo" || updated.Breed != "mestizo" || updated.AgeYears != 3 {
		t.Fatalf("expected untouched fields preserved, got %+v", updated)
	}

	// nombre vacío no pisa el existente
	empty := "   "
	if _, err := svc.Update(context.Background(), p.ID, UpdateInput{Name: &empty}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}
