package vets

import "time"

// Vet representa una clínica veterinaria. El dueño de la clínica es un
// usuario staff; un mismo usuario puede tener cero o más clínicas.
type Vet struct {
	ID          string
	OwnerUserID string

	Name        string
	Address     string
	Phone       string
	Description string // texto libre de servicios ofrecidos

	ImageURLs []string

	CreatedAt time.Time
	UpdatedAt time.Time
}
