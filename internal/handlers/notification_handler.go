package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/be2025/memory-wall/backend/internal/middleware"
	"github.com/be2025/memory-wall/backend/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The wall is an open site; origins are filtered by the CORS layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NotificationHandler upgrades clients onto the notification stream that
// carries transient submission and reaction outcomes.
type NotificationHandler struct {
	hub *services.NotificationHub
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(hub *services.NotificationHub) *NotificationHandler {
	return &NotificationHandler{hub: hub}
}

// RegisterNotificationRoutes registers notification-related routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications/ws", h.Stream)
}

// Stream upgrades the connection and keeps it registered until the client
// goes away.
func (h *NotificationHandler) Stream(c echo.Context) error {
	clientID := middleware.GetClientID(c)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "WebSocket upgrade failed")
	}

	h.hub.Register(clientID, conn)
	log.Printf("Notification client %s connected", clientID)

	// Drain the connection until the peer closes; notifications only flow
	// server to client.
	go func() {
		defer func() {
			h.hub.Unregister(clientID)
			conn.Close()
			log.Printf("Notification client %s disconnected", clientID)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	return nil
}
