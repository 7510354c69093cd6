package middleware_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"productapi/internal/apperrors"
	"productapi/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		errName string
		message string
	}{
		{"not found", apperrors.NewNotFoundError("Product not found"), http.StatusNotFound, "NotFoundError", "Product not found"},
		{"wrapped not found", fmt.Errorf("get: %w", apperrors.NewNotFoundError("Product not found")), http.StatusNotFound, "NotFoundError", "Product not found"},
		{"validation", apperrors.NewValidationError("Invalid JSON payload"), http.StatusBadRequest, "ValidationError", "Invalid JSON payload"},
		{"fiber route miss", fiber.NewError(http.StatusNotFound, "Cannot GET /nowhere"), http.StatusNotFound, "NotFoundError", "Cannot GET /nowhere"},
		{"fiber method", fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "Error", "Method Not Allowed"},
		{"fiber server error", fiber.ErrServiceUnavailable, http.StatusInternalServerError, "Error", "Internal Server Error"},
		{"unclassified", errors.New("pq: connection refused at 10.0.0.3"), http.StatusInternalServerError, "Error", "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := middleware.Normalize(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.errName, body.Error.Name)
			assert.Equal(t, tt.message, body.Error.Message)
		})
	}
}

func TestErrorHandler_LogsAndHidesInternalFaults(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(logger)})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("secret table products_v2 missing")
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFoundError("Product not found")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body map[string]map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	assert.Equal(t, map[string]string{"name": "Error", "message": "Internal Server Error"}, body["error"])
	assert.Contains(t, logs.String(), "secret table products_v2 missing")

	logs.Reset()
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	assert.Equal(t, map[string]string{"name": "NotFoundError", "message": "Product not found"}, body["error"])
	assert.Empty(t, logs.String())
}
