package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"vet-clinic/internal/domain/bookings"
)

func newTestClient(topics ...string) *Client {
	return &Client{
		ID:     "client-" + topics[0],
		Topics: topics,
		Send:   make(chan []byte, sendBuffer),
	}
}

func drain(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case payload := <-c.Send:
		var e Event
		if err := json.Unmarshal(payload, &e); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		return e
	default:
		t.Fatalf("expected event in client buffer")
		return Event{}
	}
}

func TestHub_Publish_TopicScoped(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	vetClient := newTestClient("vet:vet-1")
	ownerClient := newTestClient("owner:owner-1")
	otherClient := newTestClient("vet:vet-2")

	hub.Register(vetClient)
	hub.Register(ownerClient)
	hub.Register(otherClient)

	hub.Publish(context.Background(), Event{
		Type:      "newBooking",
		Topic:     "vet:vet-1",
		Timestamp: time.Now(),
	})

	e := drain(t, vetClient)
	if e.Type != "newBooking" || e.Topic != "vet:vet-1" {
		t.Fatalf("unexpected event %+v", e)
	}

	// otros topics no reciben nada
	if len(ownerClient.Send) != 0 {
		t.Fatalf("owner client should not receive vet topic events")
	}
	if len(otherClient.Send) != 0 {
		t.Fatalf("other vet client should not receive events")
	}
}

func TestHub_Publish_SlowClientDropsEvent(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	slow := &Client{
		ID:     "slow",
		Topics: []string{"vet:vet-1"},
		Send:   make(chan []byte, 1),
	}
	hub.Register(slow)

	for i := 0; i < 3; i++ {
		hub.Publish(context.Background(), Event{Type: "newBooking", Topic: "vet:vet-1"})
	}

	// buffer de 1: el resto se descartó sin bloquear
	if len(slow.Send) != 1 {
		t.Fatalf("expected 1 buffered event, got %d", len(slow.Send))
	}
}

func TestHub_Unregister_RemovesFromTopics(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	c := newTestClient("owner:owner-1")
	hub.Register(c)
	if hub.ClientCount() != 1 {
		t.Fatalf("expected 1 client, got %d", hub.ClientCount())
	}

	hub.Unregister(c)
	if hub.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unregister, got %d", hub.ClientCount())
	}

	// publicar después del unregister no entrega ni entra en pánico
	hub.Publish(context.Background(), Event{Type: "newBooking", Topic: "owner:owner-1"})

	// doble unregister es inocuo
	hub.Unregister(c)
}

func TestBookingEvents_PublishesToBothTopics(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	events := NewBookingEvents(hub)

	vetClient := newTestClient("vet:vet-1")
	ownerClient := newTestClient("owner:owner-1")
	hub.Register(vetClient)
	hub.Register(ownerClient)

	b := bookings.Booking{
		ID:      "b-1",
		VetID:   "vet-1",
		OwnerID: "owner-1",
		PetID:   "pet-1",
		Status:  bookings.StatusPending,
	}
	events.PublishBookingCreated(context.Background(), b)

	ve := drain(t, vetClient)
	oe := drain(t, ownerClient)

	if ve.Type != "newBooking" || oe.Type != "newBooking" {
		t.Fatalf("expected newBooking on both topics")
	}

	var payload struct {
		ID     string `json:"id"`
		Status int    `json:"status"`
	}
	if err := json.Unmarshal(ve.Data, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.ID != "b-1" || payload.Status != int(bookings.StatusPending) {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestParseTopics_FiltersUnknownPrefixes(t *testing.T) {
	got := parseTopics("vet:v1, owner:o1 ,, bogus:x, pets:y")
	if len(got) != 2 || got[0] != "vet:v1" || got[1] != "owner:o1" {
		t.Fatalf("unexpected topics %#v", got)
	}
}
