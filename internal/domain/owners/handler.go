package owners

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"vet-clinic/internal/middleware"
	"vet-clinic/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/owners", func(or chi.Router) {
		or.Post("/", registerOwnerHandler(svc))
		or.Get("/", listOwnersHandler(svc)) // staff
		or.Get("/{ownerID}", getOwnerHandler(svc))
		or.Patch("/{ownerID}", updateOwnerHandler(svc))
	})
}

type registerOwnerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatar_url"`
	Role      string `json:"role"`
}

type updateOwnerRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
}

type ownerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// registerOwnerHandler godoc
// @Summary Registrar dueño
// @Description Crea la cuenta de un dueño de mascota. Email y teléfono deben ser únicos.
// @Tags owners
// @Accept json
// @Produce json
// @Success 201 {object} ownerResponse
// @Router /owners [post]
func registerOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerOwnerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		o, err := svc.Register(r.Context(), RegisterInput{
			Name:      req.Name,
			Email:     req.Email,
			Phone:     req.Phone,
			AvatarURL: req.AvatarURL,
			Role:      req.Role,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrDuplicateEmail), errors.Is(err, ErrDuplicatePhone):
				writeError(w, http.StatusConflict, err.Error())
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, toOwnerResponse(o))
	}
}

func getOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		ownerID := chi.URLParam(r, "ownerID")

		// El dueño solo ve su propio perfil; staff puede ver cualquiera.
		if claims.Role != auth.RoleStaff && claims.UserID != ownerID {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		o, err := svc.GetByID(r.Context(), ownerID)
		if err != nil {
			writeError(w, http.StatusNotFound, "owner not found")
			return
		}

		writeJSON(w, http.StatusOK, toOwnerResponse(o))
	}
}

func listOwnersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.Role != auth.RoleStaff {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]ownerResponse, 0, len(items))
		for _, o := range items {
			out = append(out, toOwnerResponse(o))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updateOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		ownerID := chi.URLParam(r, "ownerID")
		if claims.Role != auth.RoleStaff && claims.UserID != ownerID {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		var req updateOwnerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		o, err := svc.UpdateProfile(r.Context(), ownerID, UpdateProfileInput{
			Name:      req.Name,
			Phone:     req.Phone,
			AvatarURL: req.AvatarURL,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				writeError(w, http.StatusNotFound, "owner not found")
			case errors.Is(err, ErrDuplicatePhone):
				writeError(w, http.StatusConflict, err.Error())
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, toOwnerResponse(o))
	}
}

func toOwnerResponse(o Owner) ownerResponse {
	return ownerResponse{
		ID:        o.ID,
		Name:      o.Name,
		Email:     o.Email,
		Phone:     o.Phone,
		AvatarURL: o.AvatarURL,
		Role:      o.Role,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// writeJSON/writeError están duplicados intencionalmente en handlers de distintos
// módulos para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
