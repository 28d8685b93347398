package records

import "time"

// Record es la nota de visita que la clínica produce para una mascota.
// MedicationIDs conserva el orden en que se prescribió.
// HasInvoice pasa a true una única vez, cuando el generador de invoices
// referencia este record.
type Record struct {
	ID      string
	PetID   string
	OwnerID string
	VetID   string

	// Booking que originó la visita; vacío para visitas sin turno previo.
	BookingID string

	VisitDate time.Time
	Reason    string
	Symptoms  string
	Diagnosis string
	Treatment string
	Notes     string

	MedicationIDs []string

	HasInvoice bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
