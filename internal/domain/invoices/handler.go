package invoices

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"vet-clinic/internal/middleware"
	"vet-clinic/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/invoices", func(ir chi.Router) {
		ir.Post("/", createInvoiceHandler(svc))
		ir.Get("/", listAllInvoicesHandler(svc)) // admin
		ir.Get("/vet/{vetID}", listInvoicesByVetHandler(svc))
		ir.Get("/{invoiceID}", getInvoiceHandler(svc))
	})
}

type createInvoiceRequest struct {
	RecordID      string   `json:"record_id"`
	VetID         string   `json:"vet_id"`
	MedicationIDs []string `json:"medication_ids"`
	ServiceIDs    []string `json:"service_ids"`
}

type invoiceResponse struct {
	ID            string    `json:"id"`
	RecordID      string    `json:"record_id"`
	VetID         string    `json:"vet_id"`
	MedicationIDs []string  `json:"medication_ids"`
	ServiceIDs    []string  `json:"service_ids"`
	Total         float64   `json:"total"`
	CreatedAt     time.Time `json:"created_at"`
}

type expandedItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type expandedInvoiceResponse struct {
	invoiceResponse
	Medications []expandedItem `json:"medications"`
	Services    []expandedItem `json:"services"`
}

// createInvoiceHandler godoc
// @Summary Crear invoice
// @Description Genera el invoice de un record médico a partir de listas de ids de medicamentos y servicios. El total se calcula server-side con los precios de catálogo vigentes y queda congelado.
// @Tags invoices
// @Accept json
// @Produce json
// @Success 201 {object} invoiceResponse
// @Router /invoices [post]
func createInvoiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.Role != auth.RoleStaff {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		var req createInvoiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid medications/services array")
			return
		}

		inv, err := svc.Create(r.Context(), CreateInput{
			RecordID:      req.RecordID,
			VetID:         req.VetID,
			MedicationIDs: req.MedicationIDs,
			ServiceIDs:    req.ServiceIDs,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrRecordNotFound), errors.Is(err, ErrItemNotFound):
				writeError(w, http.StatusNotFound, err.Error())
			case errors.Is(err, ErrAlreadyInvoiced):
				writeError(w, http.StatusConflict, err.Error())
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, toInvoiceResponse(inv))
	}
}

// getInvoiceHandler godoc
// @Summary Obtener invoice expandido
// @Description Devuelve el invoice con medicamentos y servicios resueltos al momento de la lectura.
// @Tags invoices
// @Produce json
// @Success 200 {object} expandedInvoiceResponse
// @Router /invoices/{invoiceID} [get]
func getInvoiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.Role != auth.RoleStaff {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		exp, err := svc.GetExpanded(r.Context(), chi.URLParam(r, "invoiceID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "invoice not found")
			return
		}

		writeJSON(w, http.StatusOK, toExpandedResponse(exp))
	}
}

func listInvoicesByVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.Role != auth.RoleStaff {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		items, err := svc.ListByVetExpanded(r.Context(), chi.URLParam(r, "vetID"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]expandedInvoiceResponse, 0, len(items))
		for _, exp := range items {
			out = append(out, toExpandedResponse(exp))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listAllInvoicesHandler(svc *Service) http.HandlerFunc {
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

		out := make([]invoiceResponse, 0, len(items))
		for _, inv := range items {
			out = append(out, toInvoiceResponse(inv))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toInvoiceResponse(inv Invoice) invoiceResponse {
	return invoiceResponse{
		ID:            inv.ID,
		RecordID:      inv.RecordID,
		VetID:         inv.VetID,
		MedicationIDs: inv.MedicationIDs,
		ServiceIDs:    inv.ServiceIDs,
		Total:         inv.Total,
		CreatedAt:     inv.CreatedAt,
	}
}

func toExpandedResponse(exp ExpandedInvoice) expandedInvoiceResponse {
	out := expandedInvoiceResponse{
		invoiceResponse: toInvoiceResponse(exp.Invoice),
		Medications:     make([]expandedItem, 0, len(exp.Medications)),
		Services:        make([]expandedItem, 0, len(exp.Services)),
	}
	for _, med := range exp.Medications {
		out.Medications = append(out.Medications, toExpandedItem(med.ID, med.Name, med.Price))
	}
	for _, svc := range exp.Services {
		out.Services = append(out.Services, toExpandedItem(svc.ID, svc.Name, svc.Price))
	}
	return out
}

func toExpandedItem(id, name string, price float64) expandedItem {
	return expandedItem{ID: id, Name: name, Price: price}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
