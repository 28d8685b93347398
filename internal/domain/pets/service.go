package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"vet-clinic/internal/domain/owners"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrOwnerNotFound = errors.New("owner not found")
	ErrNotFound      = errors.New("pet not found")
)

// OwnerFinder resuelve el dueño referenciado al crear una mascota.
type OwnerFinder interface {
	GetByID(ctx context.Context, id string) (owners.Owner, error)
}

type Service struct {
	repo      Repository
	ownersDir OwnerFinder
	now       func() time.Time
}

func NewService(repo Repository, ownersDir OwnerFinder) *Service {
	return &Service{
		repo:      repo,
		ownersDir: ownersDir,
		now:       time.Now,
	}
}

type CreateInput struct {
	OwnerID  string
	Name     string
	Breed    string
	Sex      string
	AgeYears int
	WeightKg float64
	ImageURL string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	ownerID := strings.TrimSpace(in.OwnerID)
	if ownerID == "" || strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.AgeYears < 0 || in.WeightKg < 0 {
		return Pet{}, ErrInvalidInput
	}

	if _, err := s.ownersDir.GetByID(ctx, ownerID); err != nil {
		return Pet{}, ErrOwnerNotFound
	}

	sex := Sex(strings.TrimSpace(in.Sex))
	if sex == "" {
		sex = SexUnknown
	}

	now := s.now()
	p := Pet{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(in.Name),
		Breed:     strings.TrimSpace(in.Breed),
		Sex:       sex,
		AgeYears:  in.AgeYears,
		WeightKg:  in.WeightKg,
		ImageURL:  strings.TrimSpace(in.ImageURL),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name     *string
	Breed    *string
	Sex      *string
	AgeYears *int
	WeightKg *float64
	ImageURL *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		p.Sex = Sex(strings.TrimSpace(*in.Sex))
	}
	if in.AgeYears != nil {
		if *in.AgeYears < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.AgeYears = *in.AgeYears
	}
	if in.WeightKg != nil {
		if *in.WeightKg < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.WeightKg = *in.WeightKg
	}
	if in.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*in.ImageURL)
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}
