package owners

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Owner
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Owner{}}
}

func (r *testRepo) Create(ctx context.Context, o Owner) error {
	if o.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[o.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[o.ID] = o
	return nil
}

func (r *testRepo) Update(ctx context.Context, o Owner) error {
	if _, ok := r.byID[o.ID]; !ok {
		return ErrNotFound
	}
	r.byID[o.ID] = o
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Owner, error) {
	o, ok := r.byID[id]
	if !ok {
		return Owner{}, ErrNotFound
	}
	return o, nil
}

func (r *testRepo) GetByEmail(ctx context.Context, email string) (Owner, error) {
	for _, o := range r.byID {
		if strings.EqualFold(o.Email, email) {
			return o, nil
		}
	}
	return Owner{}, ErrNotFound
}

func (r *testRepo) GetByPhone(ctx context.Context, phone string) (Owner, error) {
	for _, o := range r.byID {
		if o.Phone == phone {
			return o, nil
		}
	}
	return Owner{}, ErrNotFound
}

func (r *testRepo) List(ctx context.Context) ([]Owner, error) {
	out := make([]Owner, 0, len(r.byID))
	for _, o := range r.byID {
		out = append(out, o)
	}
	return out, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Register_DefaultRole_AndNormalizedEmail(t *testing.T) {
	svc := NewService(newTestRepo())

	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	o, err := svc.Register(context.Background(), RegisterInput{
		Name:  "Ana",
		Email: "  Ana@Example.COM ",
		Phone: "+549115555",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if o.Role != "owner" {
		t.Fatalf("expected default role owner, got %q", o.Role)
	}
	if o.Email != "ana@example.com" {
		t.Fatalf("expected email lowercased/trimmed, got %q", o.Email)
	}
	if o.CreatedAt != now || o.UpdatedAt != now {
		t.Fatalf("expected CreatedAt/UpdatedAt to be now")
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ana", Email: "ana@example.com", Phone: "111",
	}); err != nil {
		t.Fatalf("Register #1 error: %v", err)
	}

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Otra Ana", Email: "ANA@example.com", Phone: "222",
	})
	if err != ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestService_Register_DuplicatePhone(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ana", Email: "ana@example.com", Phone: "111",
	}); err != nil {
		t.Fatalf("Register #1 error: %v", err)
	}

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Beto", Email: "beto@example.com", Phone: "111",
	})
	if err != ErrDuplicatePhone {
		t.Fatalf("expected ErrDuplicatePhone, got %v", err)
	}
}

func TestService_UpdateProfile_PhoneCollision(t *testing.T) {
	svc := NewService(newTestRepo())

	a, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ana", Email: "ana@example.com", Phone: "111",
	})
	if err != nil {
		t.Fatalf("Register Ana error: %v", err)
	}
	if _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Beto", Email: "beto@example.com", Phone: "222",
	}); err != nil {
		t.Fatalf("Register Beto error: %v", err)
	}

	taken := "222"
	if _, err := svc.UpdateProfile(context.Background(), a.ID, UpdateProfileInput{Phone: &taken}); err != ErrDuplicatePhone {
		t.Fatalf("expected ErrDuplicatePhone, got %v", err)
	}

	// actualizar al mismo número propio no es colisión
	own := "111"
	if _, err := svc.UpdateProfile(context.Background(), a.ID, UpdateProfileInput{Phone: &own}); err != nil {
		t.Fatalf("expected self-update allowed, got %v", err)
	}
}
