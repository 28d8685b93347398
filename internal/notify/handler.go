package notify

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// El canal original no autenticaba; acá tampoco se exige origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler atiende GET /ws?topics=vet:<id>,owner:<id>.
// Cada cliente recibe solo los eventos de los topics que pidió.
func WSHandler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topics := parseTopics(r.URL.Query().Get("topics"))
		if len(topics) == 0 {
			http.Error(w, "topics query param required", http.StatusBadRequest)
			return
		}

		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade ya respondió el error al cliente.
			return
		}

		c := &Client{
			ID:     uuid.NewString(),
			Topics: topics,
			Send:   make(chan []byte, sendBuffer),
			hub:    hub,
			conn:   ws,
		}
		hub.Register(c)

		go c.writePump()
		go c.readPump()
	}
}

func parseTopics(raw string) []string {
	out := make([]string, 0, 4)
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		// Solo topics con el formato esperado.
		if !strings.HasPrefix(t, "vet:") && !strings.HasPrefix(t, "owner:") {
			continue
		}
		out = append(out, t)
	}
	return out
}

// readPump drena mensajes entrantes (solo para detectar el cierre).
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	if ws, ok := c.conn.(*websocket.Conn); ok {
		ws.SetReadLimit(512)
		_ = ws.SetReadDeadline(time.Now().Add(pongWait))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(pongWait))
		})
	}

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump entrega eventos y mantiene la conexión viva con pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
