package pets

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
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))

		// Borrar mascota: solo staff
		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

type createPetRequest struct {
	OwnerID  string  `json:"owner_id"` // opcional si quien crea es el dueño
	Name     string  `json:"name"`
	Breed    string  `json:"breed"`
	Sex      string  `json:"sex"`
	AgeYears int     `json:"age_years"`
	WeightKg float64 `json:"weight_kg"`
	ImageURL string  `json:"image_url"`
}

type updatePetRequest struct {
	Name     *string  `json:"name"`
	Breed    *string  `json:"breed"`
	Sex      *string  `json:"sex"`
	AgeYears *int     `json:"age_years"`
	WeightKg *float64 `json:"weight_kg"`
	ImageURL *string  `json:"image_url"`
}

type petResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Breed     string    `json:"breed"`
	Sex       Sex       `json:"sex"`
	AgeYears  int       `json:"age_years"`
	WeightKg  float64   `json:"weight_kg"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Description El dueño crea su mascota (owner_id implícito) o staff la crea para un dueño (owner_id explícito).
// @Tags pets
// @Accept json
// @Produce json
// @Success 201 {object} petResponse
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		ownerID := strings.TrimSpace(req.OwnerID)
		if claims.Role != auth.RoleStaff {
			// Un dueño solo puede crear mascotas propias.
			ownerID = claims.UserID
		}
		if ownerID == "" {
			ownerID = claims.UserID
		}

		p, err := svc.Create(r.Context(), CreateInput{
			OwnerID:  ownerID,
			Name:     req.Name,
			Breed:    req.Breed,
			Sex:      req.Sex,
			AgeYears: req.AgeYears,
			WeightKg: req.WeightKg,
			ImageURL: req.ImageURL,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrOwnerNotFound):
				writeError(w, http.StatusNotFound, "owner not found")
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	// Lista las mascotas del usuario autenticado; staff puede pasar ?owner_id=.
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		ownerID := claims.UserID
		if claims.Role == auth.RoleStaff {
			if q := strings.TrimSpace(r.URL.Query().Get("owner_id")); q != "" {
				ownerID = q
			}
		}

		items, err := svc.ListByOwner(r.Context(), ownerID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "pet not found")
			return
		}

		if claims.Role != auth.RoleStaff && p.OwnerID != claims.UserID {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		petID := chi.URLParam(r, "petID")
		current, err := svc.GetByID(r.Context(), petID)
		if err != nil {
			writeError(w, http.StatusNotFound, "pet not found")
			return
		}

		if claims.Role != auth.RoleStaff && current.OwnerID != claims.UserID {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		var req updatePetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.Update(r.Context(), petID, UpdateInput{
			Name:     req.Name,
			Breed:    req.Breed,
			Sex:      req.Sex,
			AgeYears: req.AgeYears,
			WeightKg: req.WeightKg,
			ImageURL: req.ImageURL,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				writeError(w, http.StatusNotFound, "pet not found")
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.Role != auth.RoleStaff {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID")); err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				writeError(w, http.StatusNotFound, "pet not found")
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		Breed:     p.Breed,
		Sex:       p.Sex,
		AgeYears:  p.AgeYears,
		WeightKg:  p.WeightKg,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
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
