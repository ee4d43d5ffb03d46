package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/be2025/memory-wall/backend/internal/models"
	"github.com/be2025/memory-wall/backend/internal/services"
)

// brokenMemoryRepo fails every operation with the same error.
type brokenMemoryRepo struct{ err error }

func (r *brokenMemoryRepo) CreateMemory(ctx context.Context, memory *models.Memory) (string, error) {
	return "", r.err
}

func (r *brokenMemoryRepo) GetMemoryByID(ctx context.Context, id string) (*models.Memory, error) {
	return nil, r.err
}

func (r *brokenMemoryRepo) ListMemories(ctx context.Context, cursor string, limit int) ([]models.Memory, string, error) {
	return nil, "", r.err
}

func (r *brokenMemoryRepo) ApplyReaction(ctx context.Context, memoryID string, inc, dec models.ReactionKind) error {
	return r.err
}

func (r *brokenMemoryRepo) DeleteAllMemories(ctx context.Context) (int64, error) {
	return 0, r.err
}

func performReset(t *testing.T, configured, provided string) *echo.HTTPError {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/admin/reset", nil)
	if provided != "" {
		req.Header.Set(AdminTokenHeader, provided)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	h := NewAdminHandler(nil, configured)
	err := h.Reset(c)
	if err == nil {
		return nil
	}
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr
}

func TestAdminResetDisabledWithoutToken(t *testing.T) {
	httpErr := performReset(t, "", "anything")
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}

func TestAdminResetRejectsWrongToken(t *testing.T) {
	httpErr := performReset(t, "correct-token", "wrong-token")
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)

	httpErr = performReset(t, "correct-token", "")
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}

func TestAdminResetFailureKeepsErrorDetailOut(t *testing.T) {
	repo := &brokenMemoryRepo{err: errors.New("rpc error: code = PermissionDenied desc = internal detail")}
	admin := services.NewAdminService(repo, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/admin/reset", nil)
	req.Header.Set(AdminTokenHeader, "correct-token")
	c := e.NewContext(req, httptest.NewRecorder())

	err := NewAdminHandler(admin, "correct-token").Reset(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	assert.Equal(t, "Reset failed", httpErr.Message)
	assert.NotContains(t, httpErr.Message, "PermissionDenied", "remote error detail stays server-side")
}

func TestHealthCheck(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
