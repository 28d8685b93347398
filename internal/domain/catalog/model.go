package catalog

import "time"

// Medication es un ítem del catálogo de medicamentos de una clínica.
// El nombre es único por clínica (chequeado por lookup antes del insert).
type Medication struct {
	ID    string
	VetID string

	Name         string
	Dosage       string
	Instructions string
	Price        float64
	Quantity     int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service es un servicio facturable de la clínica. UsageCount cuenta cuántas
// veces se incluyó en invoices (alimenta los charts del panel).
type Service struct {
	ID    string
	VetID string

	Name        string
	Price       float64
	DurationMin int
	Available   bool
	UsageCount  int

	CreatedAt time.Time
	UpdatedAt time.Time
}
