package records

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
	r.Route("/medical-records", func(rr chi.Router) {
		rr.Post("/", createRecordHandler(svc))
		rr.Get("/vet/{vetID}", listRecordsByVetHandler(svc))
		rr.Get("/pet/{petID}", listRecordsByPetHandler(svc))
		rr.Get("/{recordID}", getRecordHandler(svc))
		rr.Put("/{recordID}", updateRecordHandler(svc))
		rr.Delete("/{recordID}", deleteRecordHandler(svc))
	})
}

type createRecordRequest struct {
	PetID     string `json:"pet_id"`
	OwnerID   string `json:"owner_id"`
	VetID     string `json:"vet_id"`
	BookingID string `json:"booking_id"`

	VisitDate string `json:"visit_date"` // RFC3339
	Reason    string `json:"reason"`
	Symptoms  string `json:"symptoms"`
	Diagnosis string `json:"diagnosis"`
	Treatment string `json:"treatment"`
	Notes     string `json:"notes"`

	MedicationIDs []string `json:"medication_ids"`
}

type updateRecordRequest struct {
	VetID string `json:"vet_id"` // clínica que actúa (scope)

	VisitDate string `json:"visit_date"`
	Reason    string `json:"reason"`
	Symptoms  string `json:"symptoms"`
	Diagnosis string `json:"diagnosis"`
	Treatment string `json:"treatment"`
	Notes     string `json:"notes"`

	MedicationIDs []string `json:"medication_ids"`
}

type recordResponse struct {
	ID            string    `json:"id"`
	PetID         string    `json:"pet_id"`
	OwnerID       string    `json:"owner_id"`
	VetID         string    `json:"vet_id"`
	BookingID     string    `json:"booking_id,omitempty"`
	VisitDate     time.Time `json:"visit_date"`
	Reason        string    `json:"reason"`
	Symptoms      string    `json:"symptoms"`
	Diagnosis     string    `json:"diagnosis"`
	Treatment     string    `json:"treatment"`
	Notes         string    `json:"notes"`
	MedicationIDs []string  `json:"medication_ids"`
	HasInvoice    bool      `json:"has_invoice"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type medicationRefResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Dosage string  `json:"dosage"`
	Price  float64 `json:"price"`
}

// expandedRecordResponse agrega los medicamentos resueltos a la lectura por id.
type expandedRecordResponse struct {
	recordResponse
	Medications []medicationRefResponse `json:"medications"`
}

// createRecordHandler godoc
// @Summary Crear record médico
// @Description Staff registra la visita de una mascota. Arranca con has_invoice=false.
// @Tags medical-records
// @Accept json
// @Produce json
// @Success 201 {object} recordResponse
// @Router /medical-records [post]
func createRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.Role != auth.RoleStaff {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		var req createRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		visitDate, err := time.Parse(time.RFC3339, strings.TrimSpace(req.VisitDate))
		if err != nil {
			writeError(w, http.StatusBadRequest, "visit_date must be RFC3339")
			return
		}

		rec, err := svc.Create(r.Context(), CreateInput{
			PetID:         req.PetID,
			OwnerID:       req.OwnerID,
			VetID:         req.VetID,
			BookingID:     req.BookingID,
			VisitDate:     visitDate,
			Reason:        req.Reason,
			Symptoms:      req.Symptoms,
			Diagnosis:     req.Diagnosis,
			Treatment:     req.Treatment,
			Notes:         req.Notes,
			MedicationIDs: req.MedicationIDs,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

func getRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		rec, err := svc.GetByID(r.Context(), chi.URLParam(r, "recordID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "medical record not found")
			return
		}

		// El dueño solo ve records de sus mascotas.
		if claims.Role != auth.RoleStaff && rec.OwnerID != claims.UserID {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		refs := svc.ExpandMedications(r.Context(), rec)
		meds := make([]medicationRefResponse, 0, len(refs))
		for _, ref := range refs {
			meds = append(meds, medicationRefResponse{
				ID:     ref.ID,
				Name:   ref.Name,
				Dosage: ref.Dosage,
				Price:  ref.Price,
			})
		}

		writeJSON(w, http.StatusOK, expandedRecordResponse{
			recordResponse: toRecordResponse(rec),
			Medications:    meds,
		})
	}
}

func listRecordsByVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.Role != auth.RoleStaff {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		items, err := svc.ListByVet(r.Context(), chi.URLParam(r, "vetID"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponses(items))
	}
}

func listRecordsByPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.ListByPet(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		// El dueño solo ve el historial de sus propias mascotas.
		if claims.Role != auth.RoleStaff {
			filtered := make([]Record, 0, len(items))
			for _, rec := range items {
				if rec.OwnerID == claims.UserID {
					filtered = append(filtered, rec)
				}
			}
			items = filtered
		}

		writeJSON(w, http.StatusOK, toRecordResponses(items))
	}
}

func updateRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.Role != auth.RoleStaff {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		var req updateRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		visitDate, err := time.Parse(time.RFC3339, strings.TrimSpace(req.VisitDate))
		if err != nil {
			writeError(w, http.StatusBadRequest, "visit_date must be RFC3339")
			return
		}

		rec, err := svc.Update(r.Context(), chi.URLParam(r, "recordID"), req.VetID, UpdateInput{
			VisitDate:     visitDate,
			Reason:        req.Reason,
			Symptoms:      req.Symptoms,
			Diagnosis:     req.Diagnosis,
			Treatment:     req.Treatment,
			Notes:         req.Notes,
			MedicationIDs: req.MedicationIDs,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				writeError(w, http.StatusNotFound, "medical record not found")
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func deleteRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.Role != auth.RoleStaff {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		vetID := strings.TrimSpace(r.URL.Query().Get("vet_id"))
		if err := svc.Delete(r.Context(), chi.URLParam(r, "recordID"), vetID); err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				writeError(w, http.StatusNotFound, "medical record not found")
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

func toRecordResponse(rec Record) recordResponse {
	return recordResponse{
		ID:            rec.ID,
		PetID:         rec.PetID,
		OwnerID:       rec.OwnerID,
		VetID:         rec.VetID,
		BookingID:     rec.BookingID,
		VisitDate:     rec.VisitDate,
		Reason:        rec.Reason,
		Symptoms:      rec.Symptoms,
		Diagnosis:     rec.Diagnosis,
		Treatment:     rec.Treatment,
		Notes:         rec.Notes,
		MedicationIDs: rec.MedicationIDs,
		HasInvoice:    rec.HasInvoice,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
}

func toRecordResponses(items []Record) []recordResponse {
	out := make([]recordResponse, 0, len(items))
	for _, rec := range items {
		out = append(out, toRecordResponse(rec))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
