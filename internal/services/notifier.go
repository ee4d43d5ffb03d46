package services

import (
	"log"
	"sync"
	"time"
)

// Notification is the transient user feedback the web client renders as a
// toast: success or failure of submissions and reactions.
type Notification struct {
	Level     string    `json:"level"` // "success" or "error"
	Event     string    `json:"event"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Notifier publishes notifications to whoever is listening. Submission and
// reaction outcomes are published here regardless of whether the request that
// triggered them already got an HTTP response, so a failure is never dropped
// silently.
type Notifier interface {
	Publish(n Notification)
}

// NotificationConn is the minimal interface a websocket connection must
// satisfy for fan-out.
type NotificationConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// hubConn pairs a connection with a write lock. Websocket connections do not
// support concurrent writers, so every write goes through writeJSON.
type hubConn struct {
	mu   sync.Mutex
	conn NotificationConn
}

func (c *hubConn) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// NotificationHub fans notifications out to connected websocket clients.
type NotificationHub struct {
	mu    sync.RWMutex
	conns map[string]*hubConn
}

// NewNotificationHub creates a new NotificationHub
func NewNotificationHub() *NotificationHub {
	return &NotificationHub{conns: make(map[string]*hubConn)}
}

// Register adds or replaces a client connection.
func (h *NotificationHub) Register(clientID string, conn NotificationConn) {
	h.mu.Lock()
	if old, ok := h.conns[clientID]; ok {
		old.conn.Close()
	}
	h.conns[clientID] = &hubConn{conn: conn}
	h.mu.Unlock()
}

// Unregister removes a client connection.
func (h *NotificationHub) Unregister(clientID string) {
	h.mu.Lock()
	delete(h.conns, clientID)
	h.mu.Unlock()
}

// Publish sends the notification to every connected client. Dead connections
// are dropped on write failure.
func (h *NotificationHub) Publish(n Notification) {
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}

	h.mu.RLock()
	targets := make(map[string]*hubConn, len(h.conns))
	for id, conn := range h.conns {
		targets[id] = conn
	}
	h.mu.RUnlock()

	for id, conn := range targets {
		if err := conn.writeJSON(n); err != nil {
			log.Printf("Dropping notification client %s: %v", id, err)
			conn.conn.Close()
			h.Unregister(id)
		}
	}
}
