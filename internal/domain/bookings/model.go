package bookings

import "time"

// Booking es la solicitud de turno que une dueño, mascota y clínica.
type Booking struct {
	ID      string
	VetID   string
	OwnerID string
	PetID   string

	// Teléfono del dueño denormalizado en el booking, para que la clínica
	// pueda llamar sin resolver el owner.
	OwnerPhone string

	Date   time.Time
	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
