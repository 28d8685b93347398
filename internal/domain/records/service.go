package records

import (
	"context"
	"errors"
	"strings"
	"time"

	"vet-clinic/internal/domain/catalog"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medical record not found")
)

// MedicationResolver resuelve los medicamentos referenciados al leer un record.
type MedicationResolver interface {
	GetMedication(ctx context.Context, id string) (catalog.Medication, error)
}

type Service struct {
	repo Repository
	meds MedicationResolver
	now  func() time.Time
}

func NewService(repo Repository, meds MedicationResolver) *Service {
	return &Service{
		repo: repo,
		meds: meds,
		now:  time.Now,
	}
}

type CreateInput struct {
	PetID     string
	OwnerID   string
	VetID     string
	BookingID string

	VisitDate time.Time
	Reason    string
	Symptoms  string
	Diagnosis string
	Treatment string
	Notes     string

	MedicationIDs []string
}

// Create persiste la visita con hasInvoice=false. El listado de medicamentos
// conserva el orden recibido.
func (s *Service) Create(ctx context.Context, in CreateInput) (Record, error) {
	petID := strings.TrimSpace(in.PetID)
	ownerID := strings.TrimSpace(in.OwnerID)
	vetID := strings.TrimSpace(in.VetID)

	if petID == "" || ownerID == "" || vetID == "" {
		return Record{}, ErrInvalidInput
	}
	if in.VisitDate.IsZero() {
		return Record{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Reason) == "" {
		return Record{}, ErrInvalidInput
	}

	meds := make([]string, 0, len(in.MedicationIDs))
	for _, id := range in.MedicationIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return Record{}, ErrInvalidInput
		}
		meds = append(meds, id)
	}

	now := s.now()
	rec := Record{
		ID:            uuid.NewString(),
		PetID:         petID,
		OwnerID:       ownerID,
		VetID:         vetID,
		BookingID:     strings.TrimSpace(in.BookingID),
		VisitDate:     in.VisitDate,
		Reason:        strings.TrimSpace(in.Reason),
		Symptoms:      strings.TrimSpace(in.Symptoms),
		Diagnosis:     strings.TrimSpace(in.Diagnosis),
		Treatment:     strings.TrimSpace(in.Treatment),
		Notes:         strings.TrimSpace(in.Notes),
		MedicationIDs: meds,
		HasInvoice:    false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

type UpdateInput struct {
	VisitDate     time.Time
	Reason        string
	Symptoms      string
	Diagnosis     string
	Treatment     string
	Notes         string
	MedicationIDs []string
}

// Update es un reemplazo de campos completo, scopeado por la clínica que
// actúa: un vet no puede editar records de otra clínica (NotFound).
func (s *Service) Update(ctx context.Context, id, vetID string, in UpdateInput) (Record, error) {
	rec, err := s.getScoped(ctx, id, vetID)
	if err != nil {
		return Record{}, err
	}

	if in.VisitDate.IsZero() || strings.TrimSpace(in.Reason) == "" {
		return Record{}, ErrInvalidInput
	}

	meds := make([]string, 0, len(in.MedicationIDs))
	for _, medID := range in.MedicationIDs {
		medID = strings.TrimSpace(medID)
		if medID == "" {
			return Record{}, ErrInvalidInput
		}
		meds = append(meds, medID)
	}

	rec.VisitDate = in.VisitDate
	rec.Reason = strings.TrimSpace(in.Reason)
	rec.Symptoms = strings.TrimSpace(in.Symptoms)
	rec.Diagnosis = strings.TrimSpace(in.Diagnosis)
	rec.Treatment = strings.TrimSpace(in.Treatment)
	rec.Notes = strings.TrimSpace(in.Notes)
	rec.MedicationIDs = meds
	rec.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Delete con el mismo scope por clínica que Update.
func (s *Service) Delete(ctx context.Context, id, vetID string) error {
	rec, err := s.getScoped(ctx, id, vetID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, rec.ID)
}

// MarkInvoiced lo invoca el generador de invoices; corre de forma síncrona
// antes de que aquel responda. Repetirlo es inocuo.
func (s *Service) MarkInvoiced(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.SetHasInvoice(ctx, id, true)
}

func (s *Service) GetByID(ctx context.Context, id string) (Record, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

// MedicationRef es la vista resuelta de un medicamento recetado.
type MedicationRef struct {
	ID     string
	Name   string
	Dosage string
	Price  float64
}

// ExpandMedications resuelve los ids recetados contra el catálogo actual.
// Los medicamentos borrados del catálogo se omiten; los ids congelados en el
// record no se tocan.
func (s *Service) ExpandMedications(ctx context.Context, rec Record) []MedicationRef {
	out := make([]MedicationRef, 0, len(rec.MedicationIDs))
	for _, id := range rec.MedicationIDs {
		med, err := s.meds.GetMedication(ctx, id)
		if err != nil {
			continue
		}
		out = append(out, MedicationRef{
			ID:     med.ID,
			Name:   med.Name,
			Dosage: med.Dosage,
			Price:  med.Price,
		})
	}
	return out
}

// GetScopedByVet expone la lectura scopeada para otros módulos (invoices).
func (s *Service) GetScopedByVet(ctx context.Context, id, vetID string) (Record, error) {
	return s.getScoped(ctx, id, vetID)
}

func (s *Service) ListByVet(ctx context.Context, vetID string) ([]Record, error) {
	return s.repo.ListByVet(ctx, vetID)
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Record, error) {
	return s.repo.ListByPet(ctx, petID)
}

func (s *Service) getScoped(ctx context.Context, id, vetID string) (Record, error) {
	id = strings.TrimSpace(id)
	vetID = strings.TrimSpace(vetID)
	if id == "" || vetID == "" {
		return Record{}, ErrInvalidInput
	}

	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if rec.VetID != vetID {
		return Record{}, ErrNotFound
	}
	return rec, nil
}
