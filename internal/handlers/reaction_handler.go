package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/be2025/memory-wall/backend/internal/middleware"
	"github.com/be2025/memory-wall/backend/internal/models"
	"github.com/be2025/memory-wall/backend/internal/repositories"
	"github.com/be2025/memory-wall/backend/internal/services"
)

// ReactionHandler handles HTTP requests related to reactions
type ReactionHandler struct {
	ledger           *services.ReactionLedger
	memoryRepository repositories.MemoryRepository
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(ledger *services.ReactionLedger, memoryRepo repositories.MemoryRepository) *ReactionHandler {
	return &ReactionHandler{ledger: ledger, memoryRepository: memoryRepo}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/memories/:id/reactions", h.React)
	g.GET("/memories/:id/reactions/status", h.GetReactionStatus)
}

// React applies one reaction action: first reaction increments, repeating
// the same kind toggles it off, a different kind switches.
func (h *ReactionHandler) React(c echo.Context) error {
	clientID := middleware.GetClientID(c)
	memoryID := c.Param("id")

	var req models.ReactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	current, err := h.ledger.React(c.Request().Context(), clientID, memoryID, models.ReactionKind(req.Kind))
	if err != nil {
		if errors.Is(err, repositories.ErrMemoryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Memory not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add reaction. Please try again.")
	}

	memory, err := h.memoryRepository.GetMemoryByID(c.Request().Context(), memoryID)
	if err != nil {
		// The reaction itself landed; report it without the fresh counts.
		return c.JSON(http.StatusOK, echo.Map{"memory_id": memoryID, "reaction": nullableKind(current)})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"memory_id": memoryID,
		"reaction":  nullableKind(current),
		"reactions": memory.Reactions,
	})
}

// GetReactionStatus returns the client's active reaction on a memory
func (h *ReactionHandler) GetReactionStatus(c echo.Context) error {
	clientID := middleware.GetClientID(c)
	memoryID := c.Param("id")

	current, err := h.ledger.CurrentReaction(c.Request().Context(), clientID, memoryID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load reaction status")
	}
	return c.JSON(http.StatusOK, echo.Map{"memory_id": memoryID, "reaction": nullableKind(current)})
}

func nullableKind(k models.ReactionKind) interface{} {
	if k == "" {
		return nil
	}
	return string(k)
}
