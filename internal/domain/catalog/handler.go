package catalog

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

func RegisterRoutes(r chi.Router, mgr *Manager) {
	r.Route("/medications", func(mr chi.Router) {
		mr.Post("/", createMedicationHandler(mgr))
		mr.Get("/vet/{vetID}", listMedicationsHandler(mgr))
		mr.Get("/{medicationID}", getMedicationHandler(mgr))
		mr.Patch("/{medicationID}", updateMedicationHandler(mgr))
		mr.Delete("/{medicationID}", deleteMedicationHandler(mgr))
	})

	r.Route("/services", func(sr chi.Router) {
		sr.Post("/", createServiceHandler(mgr))
		sr.Get("/vet/{vetID}", listServicesHandler(mgr))
		sr.Get("/{serviceID}", getServiceHandler(mgr))
		sr.Patch("/{serviceID}", updateServiceHandler(mgr))
		sr.Delete("/{serviceID}", deleteServiceHandler(mgr))
	})
}

type createMedicationRequest struct {
	VetID        string  `json:"vet_id"`
	Name         string  `json:"name"`
	Dosage       string  `json:"dosage"`
	Instructions string  `json:"instructions"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
}

type updateMedicationRequest struct {
	Name         *string  `json:"name"`
	Dosage       *string  `json:"dosage"`
	Instructions *string  `json:"instructions"`
	Price        *float64 `json:"price"`
	Quantity     *int     `json:"quantity"`
}

type medicationResponse struct {
	ID           string    `json:"id"`
	VetID        string    `json:"vet_id"`
	Name         string    `json:"name"`
	Dosage       string    `json:"dosage"`
	Instructions string    `json:"instructions"`
	Price        float64   `json:"price"`
	Quantity     int       `json:"quantity"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type createServiceRequest struct {
	VetID       string  `json:"vet_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`
	Available   bool    `json:"available"`
}

type updateServiceRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	DurationMin *int     `json:"duration_min"`
	Available   *bool    `json:"available"`
}

type serviceResponse struct {
	ID          string    `json:"id"`
	VetID       string    `json:"vet_id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	DurationMin int       `json:"duration_min"`
	Available   bool      `json:"available"`
	UsageCount  int       `json:"usage_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func requireStaff(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || claims.Role != auth.RoleStaff {
		writeError(w, http.StatusForbidden, "forbidden")
		return auth.Claims{}, false
	}
	return claims, true
}

// createMedicationHandler godoc
// @Summary Crear medicamento
// @Description Alta de medicamento en el catálogo de la clínica. Nombre único por clínica.
// @Tags catalog
// @Accept json
// @Produce json
// @Success 201 {object} medicationResponse
// @Router /medications [post]
func createMedicationHandler(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireStaff(w, r); !ok {
			return
		}

		var req createMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		med, err := mgr.CreateMedication(r.Context(), CreateMedicationInput{
			VetID:        req.VetID,
			Name:         req.Name,
			Dosage:       req.Dosage,
			Instructions: req.Instructions,
			Price:        req.Price,
			Quantity:     req.Quantity,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrDuplicateMedication):
				writeError(w, http.StatusConflict, err.Error())
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, toMedicationResponse(med))
	}
}

func listMedicationsHandler(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireStaff(w, r); !ok {
			return
		}

		items, err := mgr.ListMedicationsByVet(r.Context(), chi.URLParam(r, "vetID"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]medicationResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMedicationResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getMedicationHandler(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireStaff(w, r); !ok {
			return
		}

		med, err := mgr.GetMedication(r.Context(), chi.URLParam(r, "medicationID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "medication not found")
			return
		}
		writeJSON(w, http.StatusOK, toMedicationResponse(med))
	}
}

func updateMedicationHandler(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireStaff(w, r); !ok {
			return
		}

		var req updateMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		// Scope por vet: el vet_id viene del query (clínica activa del staff).
		vetID := strings.TrimSpace(r.URL.Query().Get("vet_id"))

		med, err := mgr.UpdateMedication(r.Context(), chi.URLParam(r, "medicationID"), vetID, UpdateMedicationInput{
			Name:         req.Name,
			Dosage:       req.Dosage,
			Instructions: req.Instructions,
			Price:        req.Price,
			Quantity:     req.Quantity,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrMedicationNotFound):
				writeError(w, http.StatusNotFound, "medication not found")
			case errors.Is(err, ErrDuplicateMedication):
				writeError(w, http.StatusConflict, err.Error())
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, toMedicationResponse(med))
	}
}

func deleteMedicationHandler(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireStaff(w, r); !ok {
			return
		}

		vetID := strings.TrimSpace(r.URL.Query().Get("vet_id"))
		if err := mgr.DeleteMedication(r.Context(), chi.URLParam(r, "medicationID"), vetID); err != nil {
			if errors.Is(err, ErrMedicationNotFound) {
				writeError(w, http.StatusNotFound, "medication not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func createServiceHandler(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireStaff(w, r); !ok {
			return
		}

		var req createServiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		s, err := mgr.CreateService(r.Context(), CreateServiceInput{
			VetID:       req.VetID,
			Name:        req.Name,
			Price:       req.Price,
			DurationMin: req.DurationMin,
			Available:   req.Available,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, toServiceResponse(s))
	}
}

func listServicesHandler(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Directorio de servicios visible para cualquier usuario autenticado.
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := mgr.ListServicesByVet(r.Context(), chi.URLParam(r, "vetID"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]serviceResponse, 0, len(items))
		for _, s := range items {
			out = append(out, toServiceResponse(s))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getServiceHandler(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		s, err := mgr.GetService(r.Context(), chi.URLParam(r, "serviceID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "service not found")
			return
		}
		writeJSON(w, http.StatusOK, toServiceResponse(s))
	}
}

func updateServiceHandler(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireStaff(w, r); !ok {
			return
		}

		var req updateServiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		vetID := strings.TrimSpace(r.URL.Query().Get("vet_id"))
		s, err := mgr.UpdateService(r.Context(), chi.URLParam(r, "serviceID"), vetID, UpdateServiceInput{
			Name:        req.Name,
			Price:       req.Price,
			DurationMin: req.DurationMin,
			Available:   req.Available,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrServiceNotFound):
				writeError(w, http.StatusNotFound, "service not found")
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, toServiceResponse(s))
	}
}

func deleteServiceHandler(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireStaff(w, r); !ok {
			return
		}

		vetID := strings.TrimSpace(r.URL.Query().Get("vet_id"))
		if err := mgr.DeleteService(r.Context(), chi.URLParam(r, "serviceID"), vetID); err != nil {
			if errors.Is(err, ErrServiceNotFound) {
				writeError(w, http.StatusNotFound, "service not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func toMedicationResponse(m Medication) medicationResponse {
	return medicationResponse{
		ID:           m.ID,
		VetID:        m.VetID,
		Name:         m.Name,
		Dosage:       m.Dosage,
		Instructions: m.Instructions,
		Price:        m.Price,
		Quantity:     m.Quantity,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toServiceResponse(s Service) serviceResponse {
	return serviceResponse{
		ID:          s.ID,
		VetID:       s.VetID,
		Name:        s.Name,
		Price:       s.Price,
		DurationMin: s.DurationMin,
		Available:   s.Available,
		UsageCount:  s.UsageCount,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
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
