// Package mapfeed pushes map widget commands to connected browsers over websockets.
package mapfeed

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jengzang/workouts-backend-go/internal/models"
)

const (
	KindCenter = "center"
	KindMarker = "marker"
	KindReset  = "reset"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 64
)

var ErrHubClosed = errors.New("map feed is closed")

// Event is one command for the map widget
type Event struct {
	Kind   string              `json:"kind"`
	Center *models.Coordinates `json:"center,omitempty"`
	Zoom   int                 `json:"zoom,omitempty"`
	Marker *models.Marker      `json:"marker,omitempty"`
}

// Hub fans map events out to every connected client.
// Slow clients whose buffer fills up are disconnected rather than waited for.
type Hub struct {
	upgrader websocket.Upgrader
	mu       sync.Mutex
	clients  map[uuid.UUID]*client
	closed   bool
	wg       sync.WaitGroup
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan Event
	once sync.Once
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[uuid.UUID]*client),
	}
}

// Center tells every client to centre the map
func (h *Hub) Center(coords models.Coordinates, zoom int) {
	h.broadcast(Event{Kind: KindCenter, Center: &coords, Zoom: zoom})
}

// AddMarker tells every client to add a marker
func (h *Hub) AddMarker(marker models.Marker) {
	h.broadcast(Event{Kind: KindMarker, Marker: &marker})
}

// Reset tells every client to drop its markers
func (h *Hub) Reset() {
	h.broadcast(Event{Kind: KindReset})
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.clients {
		select {
		case c.send <- ev:
		default:
			slog.Warn("dropping slow map feed client", "client_id", id)
			h.removeLocked(c)
		}
	}
}

// ServeHTTP upgrades the request and streams events until the client goes away
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		http.Error(w, ErrHubClosed.Error(), http.StatusServiceUnavailable)
		return
	}
	h.mu.Unlock()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("map feed upgrade failed", "error", err)
		return
	}

	c := &client{
		id:   uuid.New(),
		conn: conn,
		send: make(chan Event, sendBuffer),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c.id] = c
	h.wg.Add(1)
	h.mu.Unlock()

	slog.Debug("map feed client connected", "client_id", c.id)

	go h.writeLoop(c)
	h.readLoop(c)
}

// readLoop discards inbound messages and detects disconnects
func (h *Hub) readLoop(c *client) {
	defer h.remove(c)

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	defer h.wg.Done()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				c.conn.Close()
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				c.conn.Close()
				h.remove(c)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.conn.Close()
				h.remove(c)
				return
			}
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if existing, ok := h.clients[c.id]; ok && existing == c {
		delete(h.clients, c.id)
	}
	c.once.Do(func() { close(c.send) })
}

// Close disconnects every client and waits for their writers to finish
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	for _, c := range h.clients {
		h.removeLocked(c)
	}
	h.mu.Unlock()

	h.wg.Wait()
}
