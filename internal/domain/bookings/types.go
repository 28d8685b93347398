package bookings

// Status codifica el estado del booking como entero chico.
// Mapeo canónico único: 0 cancelado, 1 pendiente, 2 confirmado, 3 completado.
// Las transiciones no están restringidas: cualquier estado puede pasar a
// cualquier otro vía UpdateStatus.
type Status int

const (
	StatusCancelled Status = 0
	StatusPending   Status = 1
	StatusConfirmed Status = 2
	StatusCompleted Status = 3
)

func (s Status) Valid() bool {
	return s >= StatusCancelled && s <= StatusCompleted
}

func (s Status) String() string {
	switch s {
	case StatusCancelled:
		return "cancelled"
	case StatusPending:
		return "pending"
	case StatusConfirmed:
		return "confirmed"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// TriggersSchedule indica si la transición refleja el booking en el
// calendario del dueño.
func (s Status) TriggersSchedule() bool {
	return s == StatusConfirmed || s == StatusCompleted
}
