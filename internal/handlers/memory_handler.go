package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/be2025/memory-wall/backend/internal/models"
	"github.com/be2025/memory-wall/backend/internal/repositories"
	"github.com/be2025/memory-wall/backend/internal/services"
)

// maxImageBytes caps the uploaded photo at 15MB, matching what the submit
// form tells users.
const maxImageBytes = 15 << 20

// MemoryHandler handles HTTP requests related to memories
type MemoryHandler struct {
	submissions      *services.SubmissionService
	feed             *services.FeedService
	memoryRepository repositories.MemoryRepository
}

// NewMemoryHandler creates a new MemoryHandler
func NewMemoryHandler(submissions *services.SubmissionService, feed *services.FeedService, memoryRepo repositories.MemoryRepository) *MemoryHandler {
	return &MemoryHandler{
		submissions:      submissions,
		feed:             feed,
		memoryRepository: memoryRepo,
	}
}

// RegisterMemoryRoutes registers memory-related routes
func (h *MemoryHandler) RegisterMemoryRoutes(g *echo.Group) {
	g.POST("/memories", h.CreateMemory)
	g.GET("/memories", h.ListMemories)
	g.GET("/memories/:id", h.GetMemory)
}

// CreateMemory accepts a multipart submission: the form fields plus an
// optional "image" file part.
func (h *MemoryHandler) CreateMemory(c echo.Context) error {
	var req models.CreateMemoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	img, err := readSubmittedImage(c)
	if err != nil {
		return err
	}

	if h.submissions.Policy() == services.AckImmediate {
		// Answer now, finish in the background. The outcome reaches the
		// client through the notification stream, success or failure.
		go func() {
			if _, err := h.submissions.Submit(context.Background(), req, img); err != nil {
				log.Printf("Background submission failed: %v", err)
			}
		}()
		return c.JSON(http.StatusAccepted, echo.Map{"status": "accepted"})
	}

	memory, err := h.submissions.Submit(c.Request().Context(), req, img)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save memory")
	}
	return c.JSON(http.StatusCreated, memory)
}

// readSubmittedImage pulls the optional image part off the request. A
// missing part is not an error; an oversized one is.
func readSubmittedImage(c echo.Context) (*services.SubmittedImage, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}
	if fileHeader.Size > maxImageBytes {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Please select an image under 15MB")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Could not read uploaded image")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Could not read uploaded image")
	}

	return &services.SubmittedImage{
		Data:     data,
		MIME:     fileHeader.Header.Get("Content-Type"),
		Filename: fileHeader.Filename,
	}, nil
}

// ListMemories returns one feed page. Without a cursor it is the initial
// load, which degrades to the fallback entry rather than failing; with a
// cursor it is a load-more, whose failures surface so the client keeps what
// it already has.
func (h *MemoryHandler) ListMemories(c echo.Context) error {
	cursor := c.QueryParam("cursor")

	var page services.FeedPage
	var err error
	if cursor == "" {
		page, err = h.feed.LoadInitial(c.Request().Context())
	} else {
		page, err = h.feed.LoadMore(c.Request().Context(), cursor)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load memories. Please try again later.")
	}
	return c.JSON(http.StatusOK, page)
}

// GetMemory retrieves a single memory by id
func (h *MemoryHandler) GetMemory(c echo.Context) error {
	memory, err := h.memoryRepository.GetMemoryByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrMemoryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Memory not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load memory")
	}
	return c.JSON(http.StatusOK, memory)
}
