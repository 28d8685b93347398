package vets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("vet not found")
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
	Name        string
	Address     string
	Phone       string
	Description string
	ImageURLs   []string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Vet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Vet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Vet{}, ErrInvalidInput
	}

	now := s.now()
	v := Vet{
		ID:          uuid.NewString(),
		OwnerUserID: strings.TrimSpace(ownerUserID),
		Name:        strings.TrimSpace(in.Name),
		Address:     strings.TrimSpace(in.Address),
		Phone:       strings.TrimSpace(in.Phone),
		Description: strings.TrimSpace(in.Description),
		ImageURLs:   in.ImageURLs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return Vet{}, err
	}
	return v, nil
}

type UpdateInput struct {
	Name        *string
	Address     *string
	Phone       *string
	Description *string
	ImageURLs   *[]string
}

// Update solo permite editar clínicas propias (ownerUserID del caller).
func (s *Service) Update(ctx context.Context, id, ownerUserID string, in UpdateInput) (Vet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Vet{}, ErrInvalidInput
	}

	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Vet{}, err
	}
	if v.OwnerUserID != strings.TrimSpace(ownerUserID) {
		return Vet{}, ErrNotFound
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Vet{}, ErrInvalidInput
		}
		v.Name = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		v.Address = strings.TrimSpace(*in.Address)
	}
	if in.Phone != nil {
		v.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Description != nil {
		v.Description = strings.TrimSpace(*in.Description)
	}
	if in.ImageURLs != nil {
		v.ImageURLs = *in.ImageURLs
	}

	v.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, v); err != nil {
		return Vet{}, err
	}
	return v, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Vet, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) ListByOwnerUser(ctx context.Context, ownerUserID string) ([]Vet, error) {
	return s.repo.ListByOwnerUser(ctx, ownerUserID)
}

func (s *Service) List(ctx context.Context) ([]Vet, error) {
	return s.repo.List(ctx)
}
