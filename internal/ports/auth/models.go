package auth

// Role distingue al dueño de mascota del usuario de clínica (staff).
type Role string

const (
	RoleOwner Role = "owner"
	RoleStaff Role = "staff"
)

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Role   Role
}
