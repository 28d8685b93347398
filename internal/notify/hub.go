// Package notify implementa el relay de notificaciones en tiempo real:
// un hub de conexiones websocket donde cada cliente se suscribe a topics
// (vet:<id>, owner:<id>) y recibe los eventos publicados en ellos.
// Sin replay ni garantía de entrega: cliente lento o desconectado pierde
// el evento.
package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event es la notificación que viaja al cliente.
type Event struct {
	Type      string          `json:"type"` // p.ej. newBooking
	Topic     string          `json:"topic"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Conn abstrae la conexión websocket para poder testear sin red.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client es una conexión suscripta al hub.
type Client struct {
	ID     string
	Topics []string
	Send   chan []byte
	hub    *Hub
	conn   Conn
}

// Hub administra clientes y sus suscripciones por topic.
type Hub struct {
	log zerolog.Logger

	mu      sync.RWMutex
	clients map[string]map[*Client]struct{} // topic -> set de clientes
	all     map[*Client]struct{}
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		log:     log,
		clients: make(map[string]map[*Client]struct{}),
		all:     make(map[*Client]struct{}),
	}
}

// Register suma el cliente al hub con sus topics iniciales.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.all[c] = struct{}{}
	for _, topic := range c.Topics {
		if h.clients[topic] == nil {
			h.clients[topic] = make(map[*Client]struct{})
		}
		h.clients[topic][c] = struct{}{}
	}
}

// Unregister saca al cliente de todos los topics y cierra su canal Send.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.all[c]; !ok {
		return
	}

	for _, topic := range c.Topics {
		if subs, ok := h.clients[topic]; ok {
			delete(subs, c)
			if len(subs) == 0 {
				delete(h.clients, topic)
			}
		}
	}

	delete(h.all, c)
	close(c.Send)
}

// Publish manda el evento a los suscriptores del topic. No bloquea:
// si el buffer del cliente está lleno, el evento se descarta para ese
// cliente (sin backpressure, igual que el sistema original).
func (h *Hub) Publish(ctx context.Context, e Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		h.log.Error().Err(err).Str("topic", e.Topic).Msg("notify: marshal event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[e.Topic] {
		select {
		case c.Send <- payload:
		default:
			h.log.Debug().Str("client", c.ID).Str("topic", e.Topic).Msg("notify: dropping event, slow client")
		}
	}
}

// ClientCount es para health/debug.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.all)
}
