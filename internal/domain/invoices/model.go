package invoices

import "time"

// Invoice es el resumen congelado de una visita facturada: referencias a los
// ítems de catálogo (ids, no objetos denormalizados) y el total calculado con
// los precios vigentes al momento de crearla. Cambios de precio posteriores
// no la alteran.
type Invoice struct {
	ID       string
	RecordID string
	VetID    string

	MedicationIDs []string
	ServiceIDs    []string

	Total float64

	CreatedAt time.Time
}
