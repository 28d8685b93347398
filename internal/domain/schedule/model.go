package schedule

import "time"

// Category etiqueta la entrada en el calendario del dueño.
// @Enum vet, personal
type Category string

const (
	CategoryVet      Category = "vet"
	CategoryPersonal Category = "personal"
)

// Entry es un evento del calendario del dueño. Puede nacer de una
// transición de booking (BookingID seteado) o crearse a mano.
// Invariante: a lo sumo una entrada por booking id, garantizada por
// UpsertByBooking (no por el store).
type Entry struct {
	ID      string
	OwnerID string

	// Booking que originó la entrada; vacío para entradas manuales.
	BookingID string

	Title       string
	Description string
	Date        time.Time
	Category    Category

	CreatedAt time.Time
	UpdatedAt time.Time
}
