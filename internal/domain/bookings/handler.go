package bookings

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
	r.Route("/bookings", func(br chi.Router) {
		br.Post("/", createBookingHandler(svc))
		br.Get("/", listAllBookingsHandler(svc)) // staff/admin

		br.Get("/vet/{vetID}", listBookingsByVetHandler(svc))
		br.Get("/vet/{vetID}/pet/{petID}", listBookingsByPetAndVetHandler(svc))

		br.Get("/{bookingID}", getBookingHandler(svc))
		br.Patch("/{bookingID}/status", updateBookingStatusHandler(svc))
		br.Delete("/{bookingID}", deleteBookingHandler(svc))
	})
}

type createBookingRequest struct {
	VetID      string `json:"vet_id"`
	OwnerID    string `json:"owner_id"` // opcional si quien crea es el dueño
	PetID      string `json:"pet_id"`
	OwnerPhone string `json:"owner_phone"`
	Date       string `json:"date"`   // RFC3339
	Status     *int   `json:"status"` // opcional
}

// updateStatusRequest exige status numérico: `{"status": 2}`.
// Un payload no numérico falla el decode y responde 400.
type updateStatusRequest struct {
	Status *int `json:"status"`
}

type bookingResponse struct {
	ID         string    `json:"id"`
	VetID      string    `json:"vet_id"`
	OwnerID    string    `json:"owner_id"`
	PetID      string    `json:"pet_id"`
	OwnerPhone string    `json:"owner_phone"`
	Date       time.Time `json:"date"`
	Status     int       `json:"status"`
	StatusName string    `json:"status_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// createBookingHandler godoc
// @Summary Crear booking
// @Description Crea un turno. Autoservicio del dueño arranca en pendiente (1); staff arranca en confirmado (2), salvo status explícito.
// @Tags bookings
// @Accept json
// @Produce json
// @Success 201 {object} bookingResponse
// @Router /bookings [post]
func createBookingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req createBookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		date, err := time.Parse(time.RFC3339, strings.TrimSpace(req.Date))
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be RFC3339")
			return
		}

		ownerID := strings.TrimSpace(req.OwnerID)
		if claims.Role != auth.RoleStaff || ownerID == "" {
			ownerID = claims.UserID
		}

		// Default por punto de entrada: autoservicio => pendiente,
		// carga por staff => confirmado.
		var status *Status
		if req.Status != nil {
			st := Status(*req.Status)
			status = &st
		} else if claims.Role == auth.RoleStaff {
			st := StatusConfirmed
			status = &st
		}

		b, err := svc.Create(r.Context(), CreateInput{
			VetID:      req.VetID,
			OwnerID:    ownerID,
			PetID:      req.PetID,
			OwnerPhone: req.OwnerPhone,
			Date:       date,
			Status:     status,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrVetNotFound):
				writeError(w, http.StatusNotFound, "vet not found")
			case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidStatus):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, toBookingResponse(b))
	}
}

// updateBookingStatusHandler godoc
// @Summary Transicionar estado de booking
// @Description Body: `{"status": number}`. Estados: 0 cancelado, 1 pendiente, 2 confirmado, 3 completado. 2 y 3 reflejan el turno en el calendario del dueño.
// @Tags bookings
// @Accept json
// @Produce json
// @Success 200 {object} bookingResponse
// @Router /bookings/{bookingID}/status [patch]
func updateBookingStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.Role != auth.RoleStaff {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == nil {
			writeError(w, http.StatusBadRequest, "status must be a number")
			return
		}

		b, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "bookingID"), Status(*req.Status))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				writeError(w, http.StatusNotFound, "booking not found")
			case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, toBookingResponse(b))
	}
}

func getBookingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		b, err := svc.GetByID(r.Context(), chi.URLParam(r, "bookingID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "booking not found")
			return
		}

		if claims.Role != auth.RoleStaff && b.OwnerID != claims.UserID {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		writeJSON(w, http.StatusOK, toBookingResponse(b))
	}
}

func listBookingsByVetHandler(svc *Service) http.HandlerFunc {
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

		writeJSON(w, http.StatusOK, toBookingResponses(items))
	}
}

func listBookingsByPetAndVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.Role != auth.RoleStaff {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		items, err := svc.ListByPetAndVet(r.Context(), chi.URLParam(r, "petID"), chi.URLParam(r, "vetID"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, toBookingResponses(items))
	}
}

func listAllBookingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.Role != auth.RoleStaff {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		items, err := svc.ListAll(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, toBookingResponses(items))
	}
}

func deleteBookingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.Role != auth.RoleStaff {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "bookingID")); err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				writeError(w, http.StatusNotFound, "booking not found")
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

func toBookingResponse(b Booking) bookingResponse {
	return bookingResponse{
		ID:         b.ID,
		VetID:      b.VetID,
		OwnerID:    b.OwnerID,
		PetID:      b.PetID,
		OwnerPhone: b.OwnerPhone,
		Date:       b.Date,
		Status:     int(b.Status),
		StatusName: b.Status.String(),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func toBookingResponses(items []Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(items))
	for _, b := range items {
		out = append(out, toBookingResponse(b))
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
