package owners

import "time"

// Owner representa al dueño/tutor de una mascota (titular de la cuenta).
// No se borra en el flujo normal: pets y bookings lo referencian.
type Owner struct {
	ID    string
	Name  string
	Email string // único, verificado por lookup antes de insertar
	Phone string // único, mismo esquema

	AvatarURL string
	Role      string // owner | staff

	CreatedAt time.Time
	UpdatedAt time.Time
}
