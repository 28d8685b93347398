package vets

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
	r.Route("/vets", func(vr chi.Router) {
		vr.Post("/", createVetHandler(svc))
		vr.Get("/", listVetsHandler(svc)) // directorio público de clínicas
		vr.Get("/{vetID}", getVetHandler(svc))
		vr.Patch("/{vetID}", updateVetHandler(svc))
	})

	// Clínicas del usuario staff autenticado
	r.Get("/me/vets", listMyVetsHandler(svc))
}

type createVetRequest struct {
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Phone       string   `json:"phone"`
	Description string   `json:"description"`
	ImageURLs   []string `json:"image_urls"`
}

type updateVetRequest struct {
	Name        *string   `json:"name"`
	Address     *string   `json:"address"`
	Phone       *string   `json:"phone"`
	Description *string   `json:"description"`
	ImageURLs   *[]string `json:"image_urls"`
}

type vetResponse struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Description string    `json:"description"`
	ImageURLs   []string  `json:"image_urls,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// createVetHandler godoc
// @Summary Crear clínica
// @Description Crea una clínica veterinaria propiedad del usuario staff autenticado.
// @Tags vets
// @Accept json
// @Produce json
// @Success 201 {object} vetResponse
// @Router /vets [post]
func createVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if claims.Role != auth.RoleStaff {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		var req createVetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		v, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:        req.Name,
			Address:     req.Address,
			Phone:       req.Phone,
			Description: req.Description,
			ImageURLs:   req.ImageURLs,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, toVetResponse(v))
	}
}

func listVetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]vetResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVetResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.GetByID(r.Context(), chi.URLParam(r, "vetID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "vet not found")
			return
		}
		writeJSON(w, http.StatusOK, toVetResponse(v))
	}
}

func updateVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.Role != auth.RoleStaff {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		var req updateVetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		v, err := svc.Update(r.Context(), chi.URLParam(r, "vetID"), claims.UserID, UpdateInput{
			Name:        req.Name,
			Address:     req.Address,
			Phone:       req.Phone,
			Description: req.Description,
			ImageURLs:   req.ImageURLs,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				writeError(w, http.StatusNotFound, "vet not found")
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, toVetResponse(v))
	}
}

func listMyVetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.Role != auth.RoleStaff {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		items, err := svc.ListByOwnerUser(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]vetResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVetResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toVetResponse(v Vet) vetResponse {
	return vetResponse{
		ID:          v.ID,
		OwnerUserID: v.OwnerUserID,
		Name:        v.Name,
		Address:     v.Address,
		Phone:       v.Phone,
		Description: v.Description,
		ImageURLs:   v.ImageURLs,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
