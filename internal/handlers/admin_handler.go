package handlers

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/be2025/memory-wall/backend/internal/services"
)

// AdminTokenHeader authorizes the maintenance endpoints.
const AdminTokenHeader = "X-Admin-Token"

// AdminHandler exposes the destructive maintenance operations. They live on
// their own invocation path and are disabled outright when no token is
// configured, so nothing on the normal page flow can ever trigger them.
type AdminHandler struct {
	admin *services.AdminService
	token string
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(admin *services.AdminService, token string) *AdminHandler {
	return &AdminHandler{admin: admin, token: token}
}

// RegisterAdminRoutes registers admin-related routes
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.POST("/admin/reset", h.Reset)
}

// Reset wipes the memories collection and reseeds it with one replacement
// entry. Irreversible.
func (h *AdminHandler) Reset(c echo.Context) error {
	if h.token == "" {
		return echo.NewHTTPError(http.StatusForbidden, "Admin operations are disabled")
	}
	provided := c.Request().Header.Get(AdminTokenHeader)
	if subtle.ConstantTimeCompare([]byte(provided), []byte(h.token)) != 1 {
		return echo.NewHTTPError(http.StatusForbidden, "Invalid admin token")
	}

	result, err := h.admin.Reset(c.Request().Context())
	if err != nil {
		log.Printf("Admin reset failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Reset failed")
	}
	return c.JSON(http.StatusOK, result)
}
