package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/be2025/memory-wall/backend/internal/services"
)

// StoryHandler serves the story-sequence view of the wall
type StoryHandler struct {
	feed *services.FeedService
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(feed *services.FeedService) *StoryHandler {
	return &StoryHandler{feed: feed}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.GET("/stories", h.GetStories)
}

// GetStories returns the entries shown in the story carousel: only memories
// with a photo, capped at the 8 most recent, newest first.
func (h *StoryHandler) GetStories(c echo.Context) error {
	stories, err := h.feed.Stories(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load stories")
	}
	return c.JSON(http.StatusOK, echo.Map{"stories": stories})
}
