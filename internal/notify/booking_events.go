package notify

import (
	"context"
	"encoding/json"
	"time"

	"vet-clinic/internal/domain/bookings"
)

// BookingEvents adapta el hub al puerto bookings.EventPublisher:
// publica el evento newBooking en los topics de la clínica y del dueño.
type BookingEvents struct {
	Hub *Hub
}

func NewBookingEvents(hub *Hub) *BookingEvents {
	return &BookingEvents{Hub: hub}
}

type bookingPayload struct {
	ID         string    `json:"id"`
	VetID      string    `json:"vet_id"`
	OwnerID    string    `json:"owner_id"`
	PetID      string    `json:"pet_id"`
	OwnerPhone string    `json:"owner_phone"`
	Date       time.Time `json:"date"`
	Status     int       `json:"status"`
}

func (p *BookingEvents) PublishBookingCreated(ctx context.Context, b bookings.Booking) {
	data, err := json.Marshal(bookingPayload{
		ID:         b.ID,
		VetID:      b.VetID,
		OwnerID:    b.OwnerID,
		PetID:      b.PetID,
		OwnerPhone: b.OwnerPhone,
		Date:       b.Date,
		Status:     int(b.Status),
	})
	if err != nil {
		return
	}

	now := time.Now()
	for _, topic := range []string{"vet:" + b.VetID, "owner:" + b.OwnerID} {
		p.Hub.Publish(ctx, Event{
			Type:      "newBooking",
			Topic:     topic,
			Timestamp: now,
			Data:      data,
		})
	}
}
