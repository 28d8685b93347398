package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"vet-clinic/internal/domain/schedule"
	"vet-clinic/internal/domain/vets"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Booking
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Booking{}}
}

func (r *testRepo) Create(ctx context.Context, b Booking) error {
	if b.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[b.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[b.ID] = b
	return nil
}

func (r *testRepo) Update(ctx context.Context, b Booking) error {
	if _, ok := r.byID[b.ID]; !ok {
		return ErrNotFound
	}
	r.byID[b.ID] = b
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Booking, error) {
	b, ok := r.byID[id]
	if !ok {
		return Booking{}, ErrNotFound
	}
	return b, nil
}

func (r *testRepo) ListByVet(ctx context.Context, vetID string) ([]Booking, error) {
	out := make([]Booking, 0)
	for _, b := range r.byID {
		if b.VetID == vetID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *testRepo) ListByPetAndVet(ctx context.Context, petID, vetID string) ([]Booking, error) {
	out := make([]Booking, 0)
	for _, b := range r.byID {
		if b.PetID == petID && b.VetID == vetID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *testRepo) ListAll(ctx context.Context) ([]Booking, error) {
	out := make([]Booking, 0, len(r.byID))
	for _, b := range r.byID {
		out = append(out, b)
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

// -------------------------
// Fakes de colaboradores
// -------------------------

type testVets struct {
	byID map[string]vets.Vet
}

func (f *testVets) GetByID(ctx context.Context, id string) (vets.Vet, error) {
	v, ok := f.byID[id]
	if !ok {
		return vets.Vet{}, vets.ErrNotFound
	}
	return v, nil
}

// testScheduler registra los upserts; una entrada por booking id, como el
// servicio real.
type testScheduler struct {
	byBooking map[string]schedule.Entry
	calls     int
}

func newTestScheduler() *testScheduler {
	return &testScheduler{byBooking: map[string]schedule.Entry{}}
}

func (f *testScheduler) UpsertByBooking(ctx context.Context, in schedule.UpsertByBookingInput) (schedule.Entry, error) {
	f.calls++
	e, ok := f.byBooking[in.BookingID]
	if !ok {
		e = schedule.Entry{
			ID:        "entry-" + in.BookingID,
			BookingID: in.BookingID,
			OwnerID:   in.OwnerID,
			Category:  schedule.CategoryVet,
		}
	}
	e.Title = in.Title
	e.Description = in.Description
	e.Date = in.Date
	f.byBooking[in.BookingID] = e
	return e, nil
}

type testPublisher struct {
	published []Booking
}

func (f *testPublisher) PublishBookingCreated(ctx context.Context, b Booking) {
	f.published = append(f.published, b)
}

func newTestService() (*Service, *testRepo, *testScheduler, *testPublisher) {
	repo := newTestRepo()
	sched := newTestScheduler()
	pub := &testPublisher{}
	vetsDir := &testVets{byID: map[string]vets.Vet{
		"vet-1": {ID: "vet-1", Name: "Clínica Patitas"},
	}}
	svc := NewService(repo, vetsDir, sched, pub)
	return svc, repo, sched, pub
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_DefaultsToPending_AndPublishes(t *testing.T) {
	svc, _, _, pub := newTestService()

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	date := now.Add(48 * time.Hour)
	b, err := svc.Create(context.Background(), CreateInput{
		VetID:   "vet-1",
		OwnerID: "owner-1",
		PetID:   "pet-1",
		Date:    date,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if b.Status != StatusPending {
		t.Fatalf("expected default status pending, got %s", b.Status)
	}
	if b.CreatedAt != now || b.UpdatedAt != now {
		t.Fatalf("expected CreatedAt/UpdatedAt to be now")
	}
	if len(pub.published) != 1 || pub.published[0].ID != b.ID {
		t.Fatalf("expected newBooking published once, got %d", len(pub.published))
	}
}

func TestService_Create_UnknownVet_Fails(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateInput{
		VetID:   "vet-nope",
		OwnerID: "owner-1",
		PetID:   "pet-1",
		Date:    time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	})
	if err != ErrVetNotFound {
		t.Fatalf("expected ErrVetNotFound, got %v", err)
	}
}

func TestService_UpdateStatus_ConfirmedReflectsSchedule(t *testing.T) {
	svc, _, sched, _ := newTestService()

	bookingDate := time.Date(2026, 3, 12, 15, 30, 0, 0, time.UTC)
	b, err := svc.Create(context.Background(), CreateInput{
		VetID:   "vet-1",
		OwnerID: "owner-1",
		PetID:   "pet-1",
		Date:    bookingDate,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), b.ID, StatusConfirmed); err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}

	e, ok := sched.byBooking[b.ID]
	if !ok {
		t.Fatalf("expected schedule entry for booking %s", b.ID)
	}
	if e.Title != "Clínica Patitas" {
		t.Fatalf("expected vet name as title, got %q", e.Title)
	}
	if e.Description != "Turno confirmed" {
		t.Fatalf("unexpected description %q", e.Description)
	}
	// la entrada usa la fecha del booking, no now()
	if !e.Date.Equal(bookingDate) {
		t.Fatalf("expected entry date %v, got %v", bookingDate, e.Date)
	}
}

func TestService_UpdateStatus_RepeatedTransition_SingleEntry(t *testing.T) {
	svc, _, sched, _ := newTestService()

	b, err := svc.Create(context.Background(), CreateInput{
		VetID:   "vet-1",
		OwnerID: "owner-1",
		PetID:   "pet-1",
		Date:    time.Date(2026, 3, 12, 15, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	for _, st := range []Status{StatusConfirmed, StatusConfirmed, StatusCompleted} {
		if _, err := svc.UpdateStatus(context.Background(), b.ID, st); err != nil {
			t.Fatalf("UpdateStatus(%s) error: %v", st, err)
		}
	}

	if len(sched.byBooking) != 1 {
		t.Fatalf("expected a single schedule entry, got %d", len(sched.byBooking))
	}
	if e := sched.byBooking[b.ID]; e.Description != "Turno completed" {
		t.Fatalf("expected description updated on re-transition, got %q", e.Description)
	}
}

func TestService_UpdateStatus_CancelledDoesNotTouchSchedule(t *testing.T) {
	svc, _, sched, _ := newTestService()

	b, err := svc.Create(context.Background(), CreateInput{
		VetID:   "vet-1",
		OwnerID: "owner-1",
		PetID:   "pet-1",
		Date:    time.Date(2026, 3, 12, 15, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), b.ID, StatusCancelled); err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if sched.calls != 0 {
		t.Fatalf("expected no schedule upsert on cancel, got %d", sched.calls)
	}
}

func TestService_UpdateStatus_InvalidStatus(t *testing.T) {
	svc, _, _, _ := newTestService()

	if _, err := svc.UpdateStatus(context.Background(), "whatever", Status(9)); err != ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestService_Delete_LeavesScheduleEntryOrphan(t *testing.T) {
	svc, repo, sched, _ := newTestService()

	b, err := svc.Create(context.Background(), CreateInput{
		VetID:   "vet-1",
		OwnerID: "owner-1",
		PetID:   "pet-1",
		Date:    time.Date(2026, 3, 12, 15, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), b.ID, StatusConfirmed); err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}

	if err := svc.Delete(context.Background(), b.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, ok := repo.byID[b.ID]; ok {
		t.Fatalf("expected booking removed")
	}
	// sin cascada: la entrada derivada sobrevive al delete del booking
	if _, ok := sched.byBooking[b.ID]; !ok {
		t.Fatalf("expected schedule entry to survive booking delete")
	}
}
