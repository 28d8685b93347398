package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vet-clinic/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// Verifier valida tokens HS256 emitidos por el servicio de cuentas.
// Implementa ports/auth.AuthVerifier.
type Verifier struct {
	secret []byte
}

func New(secret string) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwtauth: secret required")
	}
	return &Verifier{secret: []byte(secret)}, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if strings.TrimSpace(token) == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	sub, _ := mc["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing sub", ErrInvalidToken)
	}

	email, _ := mc["email"].(string)

	role := auth.RoleOwner
	if rs, _ := mc["role"].(string); strings.EqualFold(rs, string(auth.RoleStaff)) {
		role = auth.RoleStaff
	}

	return auth.Claims{
		UserID: sub,
		Email:  email,
		Role:   role,
	}, nil
}
