package bookings

import (
	"context"
	"errors"
	"strings"
	"time"

	"vet-clinic/internal/domain/schedule"
	"vet-clinic/internal/domain/vets"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidStatus = errors.New("invalid status")
	ErrVetNotFound   = errors.New("vet not found")
	ErrNotFound      = errors.New("booking not found")
)

// VetFinder resuelve la clínica referenciada. *vets.Service lo satisface.
type VetFinder interface {
	GetByID(ctx context.Context, id string) (vets.Vet, error)
}

// ScheduleUpserter refleja el booking en el calendario del dueño.
// *schedule.Service lo satisface.
type ScheduleUpserter interface {
	UpsertByBooking(ctx context.Context, in schedule.UpsertByBookingInput) (schedule.Entry, error)
}

// EventPublisher avisa a los clientes conectados que hay booking nuevo.
// Fire-and-forget: sin garantía de entrega ni replay.
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, b Booking)
}

type Service struct {
	repo      Repository
	vetsDir   VetFinder
	scheduler ScheduleUpserter
	publisher EventPublisher // puede ser nil
	now       func() time.Time
}

func NewService(repo Repository, vetsDir VetFinder, scheduler ScheduleUpserter, publisher EventPublisher) *Service {
	return &Service{
		repo:      repo,
		vetsDir:   vetsDir,
		scheduler: scheduler,
		publisher: publisher,
		now:       time.Now,
	}
}

type CreateInput struct {
	VetID      string
	OwnerID    string
	PetID      string
	OwnerPhone string
	Date       time.Time
	Status     *Status // nil => depende del punto de entrada (pending/confirmed)
}

// Create persiste el booking y publica el evento newBooking a los topics
// vet:<id> y owner:<id>. La clínica referenciada debe existir.
func (s *Service) Create(ctx context.Context, in CreateInput) (Booking, error) {
	vetID := strings.TrimSpace(in.VetID)
	ownerID := strings.TrimSpace(in.OwnerID)
	petID := strings.TrimSpace(in.PetID)

	if vetID == "" || ownerID == "" || petID == "" {
		return Booking{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return Booking{}, ErrInvalidInput
	}

	if _, err := s.vetsDir.GetByID(ctx, vetID); err != nil {
		return Booking{}, ErrVetNotFound
	}

	status := StatusPending
	if in.Status != nil {
		if !in.Status.Valid() {
			return Booking{}, ErrInvalidStatus
		}
		status = *in.Status
	}

	now := s.now()
	b := Booking{
		ID:         uuid.NewString(),
		VetID:      vetID,
		OwnerID:    ownerID,
		PetID:      petID,
		OwnerPhone: strings.TrimSpace(in.OwnerPhone),
		Date:       in.Date,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return Booking{}, err
	}

	if s.publisher != nil {
		s.publisher.PublishBookingCreated(ctx, b)
	}

	return b, nil
}

// UpdateStatus asigna el nuevo estado y, si queda en confirmado o completado,
// hace upsert de la entrada de calendario del dueño (idempotente por booking id).
// La entrada usa la fecha del propio booking, no now(); y el nombre de la
// clínica como título.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Booking{}, ErrInvalidInput
	}
	if !status.Valid() {
		return Booking{}, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Booking{}, err
	}

	b.Status = status
	b.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, b); err != nil {
		return Booking{}, err
	}

	if status.TriggersSchedule() {
		title := "Cita veterinaria"
		if v, err := s.vetsDir.GetByID(ctx, b.VetID); err == nil {
			title = v.Name
		}

		if _, err := s.scheduler.UpsertByBooking(ctx, schedule.UpsertByBookingInput{
			BookingID:   b.ID,
			OwnerID:     b.OwnerID,
			Title:       title,
			Description: "Turno " + status.String(),
			Date:        b.Date,
		}); err != nil {
			return Booking{}, err
		}
	}

	return b, nil
}

// Delete borra el booking. No cascadea a la entrada de calendario derivada:
// si existía, queda huérfana (comportamiento heredado del sistema original).
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (Booking, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) ListByVet(ctx context.Context, vetID string) ([]Booking, error) {
	return s.repo.ListByVet(ctx, vetID)
}

func (s *Service) ListByPetAndVet(ctx context.Context, petID, vetID string) ([]Booking, error) {
	return s.repo.ListByPetAndVet(ctx, petID, vetID)
}

func (s *Service) ListAll(ctx context.Context) ([]Booking, error) {
	return s.repo.ListAll(ctx)
}
