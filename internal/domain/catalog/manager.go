package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrDuplicateMedication = errors.New("medication name already exists for this vet")
	ErrMedicationNotFound  = errors.New("medication not found")
	ErrServiceNotFound     = errors.New("service not found")
)

// Manager agrupa los casos de uso de ambos catálogos (medicamentos y
// servicios). Se llama Manager y no Service para no pisarse con el
// modelo Service.
type Manager struct {
	meds MedicationRepository
	svcs ServiceRepository
	now  func() time.Time
}

func NewManager(meds MedicationRepository, svcs ServiceRepository) *Manager {
	return &Manager{
		meds: meds,
		svcs: svcs,
		now:  time.Now,
	}
}

// ---- Medications ----

type CreateMedicationInput struct {
	VetID        string
	Name         string
	Dosage       string
	Instructions string
	Price        float64
	Quantity     int
}

func (m *Manager) CreateMedication(ctx context.Context, in CreateMedicationInput) (Medication, error) {
	vetID := strings.TrimSpace(in.VetID)
	name := strings.TrimSpace(in.Name)

	if vetID == "" || name == "" {
		return Medication{}, ErrInvalidInput
	}
	if in.Price < 0 || in.Quantity < 0 {
		return Medication{}, ErrInvalidInput
	}

	// Nombre único por clínica; el store no lo fuerza.
	if _, err := m.meds.GetByName(ctx, vetID, name); err == nil {
		return Medication{}, ErrDuplicateMedication
	}

	now := m.now()
	med := Medication{
		ID:           uuid.NewString(),
		VetID:        vetID,
		Name:         name,
		Dosage:       strings.TrimSpace(in.Dosage),
		Instructions: strings.TrimSpace(in.Instructions),
		Price:        in.Price,
		Quantity:     in.Quantity,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := m.meds.Create(ctx, med); err != nil {
		return Medication{}, err
	}
	return med, nil
}

type UpdateMedicationInput struct {
	Name         *string
	Dosage       *string
	Instructions *string
	Price        *float64
	Quantity     *int
}

func (m *Manager) UpdateMedication(ctx context.Context, id, vetID string, in UpdateMedicationInput) (Medication, error) {
	med, err := m.meds.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Medication{}, err
	}
	if med.VetID != strings.TrimSpace(vetID) {
		return Medication{}, ErrMedicationNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Medication{}, ErrInvalidInput
		}
		if existing, err := m.meds.GetByName(ctx, med.VetID, name); err == nil && existing.ID != med.ID {
			return Medication{}, ErrDuplicateMedication
		}
		med.Name = name
	}
	if in.Dosage != nil {
		med.Dosage = strings.TrimSpace(*in.Dosage)
	}
	if in.Instructions != nil {
		med.Instructions = strings.TrimSpace(*in.Instructions)
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return Medication{}, ErrInvalidInput
		}
		med.Price = *in.Price
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return Medication{}, ErrInvalidInput
		}
		med.Quantity = *in.Quantity
	}

	med.UpdatedAt = m.now()
	if err := m.meds.Update(ctx, med); err != nil {
		return Medication{}, err
	}
	return med, nil
}

func (m *Manager) GetMedication(ctx context.Context, id string) (Medication, error) {
	return m.meds.GetByID(ctx, strings.TrimSpace(id))
}

func (m *Manager) ListMedicationsByVet(ctx context.Context, vetID string) ([]Medication, error) {
	return m.meds.ListByVet(ctx, vetID)
}

func (m *Manager) DeleteMedication(ctx context.Context, id, vetID string) error {
	med, err := m.meds.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if med.VetID != strings.TrimSpace(vetID) {
		return ErrMedicationNotFound
	}
	return m.meds.Delete(ctx, med.ID)
}

// ---- Services ----

type CreateServiceInput struct {
	VetID       string
	Name        string
	Price       float64
	DurationMin int
	Available   bool
}

func (m *Manager) CreateService(ctx context.Context, in CreateServiceInput) (Service, error) {
	vetID := strings.TrimSpace(in.VetID)
	name := strings.TrimSpace(in.Name)

	if vetID == "" || name == "" {
		return Service{}, ErrInvalidInput
	}
	if in.Price < 0 || in.DurationMin < 0 {
		return Service{}, ErrInvalidInput
	}

	now := m.now()
	s := Service{
		ID:          uuid.NewString(),
		VetID:       vetID,
		Name:        name,
		Price:       in.Price,
		DurationMin: in.DurationMin,
		Available:   in.Available,
		UsageCount:  0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := m.svcs.Create(ctx, s); err != nil {
		return Service{}, err
	}
	return s, nil
}

type UpdateServiceInput struct {
	Name        *string
	Price       *float64
	DurationMin *int
	Available   *bool
}

func (m *Manager) UpdateService(ctx context.Context, id, vetID string, in UpdateServiceInput) (Service, error) {
	s, err := m.svcs.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Service{}, err
	}
	if s.VetID != strings.TrimSpace(vetID) {
		return Service{}, ErrServiceNotFound
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Service{}, ErrInvalidInput
		}
		s.Name = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return Service{}, ErrInvalidInput
		}
		s.Price = *in.Price
	}
	if in.DurationMin != nil {
		if *in.DurationMin < 0 {
			return Service{}, ErrInvalidInput
		}
		s.DurationMin = *in.DurationMin
	}
	if in.Available != nil {
		s.Available = *in.Available
	}

	s.UpdatedAt = m.now()
	if err := m.svcs.Update(ctx, s); err != nil {
		return Service{}, err
	}
	return s, nil
}

func (m *Manager) GetService(ctx context.Context, id string) (Service, error) {
	return m.svcs.GetByID(ctx, strings.TrimSpace(id))
}

func (m *Manager) ListServicesByVet(ctx context.Context, vetID string) ([]Service, error) {
	return m.svcs.ListByVet(ctx, vetID)
}

func (m *Manager) DeleteService(ctx context.Context, id, vetID string) error {
	s, err := m.svcs.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if s.VetID != strings.TrimSpace(vetID) {
		return ErrServiceNotFound
	}
	return m.svcs.Delete(ctx, s.ID)
}

// IncrementServiceUsage lo invoca el generador de invoices.
func (m *Manager) IncrementServiceUsage(ctx context.Context, id string) error {
	return m.svcs.IncrementUsage(ctx, strings.TrimSpace(id))
}
