package pets

import "time"

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Pet representa el perfil de una mascota registrada en la clínica.
type Pet struct {
	ID      string
	OwnerID string

	Name     string
	Breed    string
	Sex      Sex
	AgeYears int
	WeightKg float64 // mutable: se actualiza en cada visita

	ImageURL string

	CreatedAt time.Time
	UpdatedAt time.Time
}
