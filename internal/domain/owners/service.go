package owners

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrDuplicatePhone = errors.New("phone already registered")
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

type RegisterInput struct {
	Name      string
	Email     string
	Phone     string
	AvatarURL string
	Role      string
}

// Register crea la cuenta del dueño. Email y phone son claves naturales:
// se chequean por lookup antes del insert (el store no las fuerza).
func (s *Service) Register(ctx context.Context, in RegisterInput) (Owner, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	phone := strings.TrimSpace(in.Phone)

	if name == "" || email == "" || phone == "" {
		return Owner{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return Owner{}, ErrDuplicateEmail
	}
	if _, err := s.repo.GetByPhone(ctx, phone); err == nil {
		return Owner{}, ErrDuplicatePhone
	}

	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = "owner"
	}

	now := s.now()
	o := Owner{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		AvatarURL: strings.TrimSpace(in.AvatarURL),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return Owner{}, err
	}
	return o, nil
}

type UpdateProfileInput struct {
	Name      *string
	Phone     *string
	AvatarURL *string
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (Owner, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Owner{}, ErrInvalidInput
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Owner{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Owner{}, ErrInvalidInput
		}
		o.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		if phone == "" {
			return Owner{}, ErrInvalidInput
		}
		if existing, err := s.repo.GetByPhone(ctx, phone); err == nil && existing.ID != o.ID {
			return Owner{}, ErrDuplicatePhone
		}
		o.Phone = phone
	}
	if in.AvatarURL != nil {
		o.AvatarURL = strings.TrimSpace(*in.AvatarURL)
	}

	o.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, o); err != nil {
		return Owner{}, err
	}
	return o, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Owner, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) List(ctx context.Context) ([]Owner, error) {
	return s.repo.List(ctx)
}
