package schedule

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("schedule entry not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	OwnerID     string
	Title       string
	Description string
	Date        time.Time
	Category    Category
}

// Create agrega una entrada manual al calendario del dueño.
func (s *Service) Create(ctx context.Context, in CreateInput) (Entry, error) {
	if strings.TrimSpace(in.OwnerID) == "" {
		return Entry{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return Entry{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return Entry{}, ErrInvalidInput
	}

	cat := in.Category
	if cat == "" {
		cat = CategoryPersonal
	}

	now := s.now()
	e := Entry{
		ID:          uuid.NewString(),
		OwnerID:     strings.TrimSpace(in.OwnerID),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Date:        in.Date,
		Category:    cat,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

type UpsertByBookingInput struct {
	BookingID   string
	OwnerID     string
	Title       string
	Description string
	Date        time.Time
}

// UpsertByBooking crea o actualiza la entrada derivada de un booking.
// Repetir la misma transición no genera una segunda entrada.
func (s *Service) UpsertByBooking(ctx context.Context, in UpsertByBookingInput) (Entry, error) {
	bookingID := strings.TrimSpace(in.BookingID)
	if bookingID == "" || strings.TrimSpace(in.OwnerID) == "" {
		return Entry{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return Entry{}, ErrInvalidInput
	}

	now := s.now()

	existing, err := s.repo.GetByBooking(ctx, bookingID)
	if err == nil {
		existing.Title = strings.TrimSpace(in.Title)
		existing.Description = strings.TrimSpace(in.Description)
		existing.Date = in.Date
		existing.UpdatedAt = now
		if err := s.repo.Update(ctx, existing); err != nil {
			return Entry{}, err
		}
		return existing, nil
	}

	e := Entry{
		ID:          uuid.NewString(),
		OwnerID:     strings.TrimSpace(in.OwnerID),
		BookingID:   bookingID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Date:        in.Date,
		Category:    CategoryVet,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) GetByBooking(ctx context.Context, bookingID string) (Entry, error) {
	return s.repo.GetByBooking(ctx, strings.TrimSpace(bookingID))
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Entry, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}
