package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vet-clinic/internal/router"
)

func TestHTTP_EndToEnd_BookingLifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	staffID := "staff-1"
	ownerID := "owner-1"

	// 1) Staff crea la clínica
	vetID := createVet(t, ts.URL, staffID, map[string]any{
		"name":    "Clínica Patitas",
		"address": "Av. Siempre Viva 742",
		"phone":   "+549114444",
	})

	date := time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC).Format(time.RFC3339)

	// 2) Owner crea un booking: arranca pending (1)
	var bookingID string
	{
		st, body := doReq(t, ts.URL, "POST", "/bookings", ownerID, "", map[string]any{
			"vet_id":      vetID,
			"pet_id":      "pet-1",
			"owner_phone": "+549115555",
			"date":        date,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create booking, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID         string `json:"id"`
			OwnerID    string `json:"owner_id"`
			Status     int    `json:"status"`
			StatusName string `json:"status_name"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID == "" {
			t.Fatalf("create booking: missing id body=%s", string(body))
		}
		if resp.OwnerID != ownerID {
			t.Fatalf("expected booking owned by caller, got %q", resp.OwnerID)
		}
		if resp.Status != 1 || resp.StatusName != "pending" {
			t.Fatalf("expected status 1/pending, got %d/%s", resp.Status, resp.StatusName)
		}
		bookingID = resp.ID
	}

	// 3) Pending no genera entrada de calendario
	{
		st, body := doReq(t, ts.URL, "GET", "/schedule", ownerID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list schedule, got %d body=%s", st, string(body))
		}
		var entries []map[string]any
		_ = json.Unmarshal(body, &entries)
		if len(entries) != 0 {
			t.Fatalf("expected empty schedule while pending, got %d entries", len(entries))
		}
	}

	// 4) El owner no puede cambiar el estado
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/bookings/"+bookingID+"/status", ownerID, "", map[string]any{
			"status": 2,
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 status change by owner, got %d", st)
		}
	}

	// 5) Estado no numérico => 400
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/bookings/"+bookingID+"/status", staffID, "staff", map[string]any{
			"status": "confirmed",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for non numeric status, got %d", st)
		}
	}

	// 6) Staff confirma: aparece la entrada derivada en el calendario del owner
	{
		st, body := doReq(t, ts.URL, "PATCH", "/bookings/"+bookingID+"/status", staffID, "staff", map[string]any{
			"status": 2,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 confirm booking, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/schedule", ownerID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list schedule, got %d body=%s", st, string(body))
		}
		var entries []struct {
			BookingID   string `json:"booking_id"`
			Title       string `json:"title"`
			Description string `json:"description"`
			Date        string `json:"date"`
		}
		_ = json.Unmarshal(body, &entries)
		if len(entries) != 1 {
			t.Fatalf("expected 1 derived entry, got %d body=%s", len(entries), string(body))
		}
		if entries[0].BookingID != bookingID {
			t.Fatalf("expected entry linked to booking, got %q", entries[0].BookingID)
		}
		if entries[0].Title != "Clínica Patitas" {
			t.Fatalf("expected vet name as title, got %q", entries[0].Title)
		}
		if entries[0].Description != "Turno confirmed" {
			t.Fatalf("expected confirmed description, got %q", entries[0].Description)
		}
	}

	// 7) Completar reusa la misma entrada (upsert por booking)
	{
		st, body := doReq(t, ts.URL, "PATCH", "/bookings/"+bookingID+"/status", staffID, "staff", map[string]any{
			"status": 3,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 complete booking, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/schedule", ownerID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list schedule, got %d body=%s", st, string(body))
		}
		var entries []struct {
			Description string `json:"description"`
		}
		_ = json.Unmarshal(body, &entries)
		if len(entries) != 1 {
			t.Fatalf("expected single entry after second transition, got %d", len(entries))
		}
		if entries[0].Description != "Turno completed" {
			t.Fatalf("expected description updated, got %q", entries[0].Description)
		}
	}

	// 8) Staff borra el booking: el booking desaparece, la entrada queda huérfana
	{
		st, body := doReq(t, ts.URL, "DELETE", "/bookings/"+bookingID, staffID, "staff", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete booking, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/bookings/"+bookingID, staffID, "staff", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/schedule", ownerID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list schedule, got %d body=%s", st, string(body))
		}
		var entries []map[string]any
		_ = json.Unmarshal(body, &entries)
		if len(entries) != 1 {
			t.Fatalf("expected orphan entry to survive, got %d entries", len(entries))
		}
	}
}

func TestHTTP_EndToEnd_InvoiceFreeze(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	staffID := "staff-1"

	vetID := createVet(t, ts.URL, staffID, map[string]any{
		"name":    "Clínica Sur",
		"address": "Calle 9",
		"phone":   "+549110000",
	})

	// Catálogo: un medicamento y un servicio
	medID := createCatalogItem(t, ts.URL, staffID, "/medications", map[string]any{
		"vet_id": vetID,
		"name":   "Amoxicilina",
		"price":  1500.0,
	})
	svcID := createCatalogItem(t, ts.URL, staffID, "/services", map[string]any{
		"vet_id":    vetID,
		"name":      "Consulta",
		"price":     5000.0,
		"available": true,
	})

	// Record de la visita
	var recordID string
	{
		st, body := doReq(t, ts.URL, "POST", "/medical-records", staffID, "staff", map[string]any{
			"pet_id":         "pet-1",
			"owner_id":       "owner-1",
			"vet_id":         vetID,
			"visit_date":     time.Now().UTC().Format(time.RFC3339),
			"reason":         "control anual",
			"medication_ids": []string{medID},
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create record, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &resp)
		recordID = resp.ID
	}

	// Invoice: los duplicados se deduplican y el total sale del catálogo
	var invoiceID string
	{
		st, body := doReq(t, ts.URL, "POST", "/invoices", staffID, "staff", map[string]any{
			"record_id":      recordID,
			"vet_id":         vetID,
			"medication_ids": []string{medID, medID},
			"service_ids":    []string{svcID},
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create invoice, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID            string   `json:"id"`
			MedicationIDs []string `json:"medication_ids"`
			Total         float64  `json:"total"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.MedicationIDs) != 1 {
			t.Fatalf("expected medication ids deduplicated, got %#v", resp.MedicationIDs)
		}
		if resp.Total != 6500 {
			t.Fatalf("expected total 6500, got %v", resp.Total)
		}
		invoiceID = resp.ID
	}

	// Segundo invoice del mismo record => 409
	{
		st, _ := doReq(t, ts.URL, "POST", "/invoices", staffID, "staff", map[string]any{
			"record_id":      recordID,
			"vet_id":         vetID,
			"medication_ids": []string{medID},
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 for already invoiced record, got %d", st)
		}
	}

	// Borrar el medicamento del catálogo no toca el invoice congelado
	{
		st, body := doReq(t, ts.URL, "DELETE", "/medications/"+medID+"?vet_id="+vetID, staffID, "staff", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete medication, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/invoices/"+invoiceID, staffID, "staff", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get invoice, got %d body=%s", st, string(body))
		}
		var resp struct {
			MedicationIDs []string `json:"medication_ids"`
			Total         float64  `json:"total"`
			Medications   []struct {
				ID string `json:"id"`
			} `json:"medications"`
			Services []struct {
				ID string `json:"id"`
			} `json:"services"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.MedicationIDs) != 1 || resp.Total != 6500 {
			t.Fatalf("expected frozen ids/total intact, got %#v total=%v", resp.MedicationIDs, resp.Total)
		}
		// la vista expandida omite el item borrado
		if len(resp.Medications) != 0 {
			t.Fatalf("expected deleted medication omitted from expansion, got %#v", resp.Medications)
		}
		if len(resp.Services) != 1 || resp.Services[0].ID != svcID {
			t.Fatalf("expected service expanded, got %#v", resp.Services)
		}
	}
}

func createVet(t *testing.T, baseURL, staffID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/vets", staffID, "staff", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create vet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create vet: missing id body=%s", string(body))
	}
	return resp.ID
}

func createCatalogItem(t *testing.T, baseURL, staffID, path string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, staffID, "staff", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create %s, got %d body=%s", path, st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create %s: missing id body=%s", path, string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID, debugRole string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}
	if debugRole != "" {
		req.Header.Set("X-Debug-Role", debugRole)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
