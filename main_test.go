package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"productapi/internal/config"
	"productapi/internal/models"
	"productapi/internal/repositories"
	"productapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() config.Config {
	return config.Config{
		Port:        "3000",
		APIKey:      "k3y",
		StoreDriver: repositories.DriverMemory,
		BodyLimit:   1 << 20,
	}
}

func newTestApp(t *testing.T, cfg config.Config) (*fiber.App, *bytes.Buffer) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repositories.NewMemoryProductRepository(nil)
	seedProducts(repo, logger)

	var accessLog bytes.Buffer
	app := NewApp(cfg, services.NewProductService(repo, nil, logger), logger, &accessLog)
	return app, &accessLog
}

func TestRootWelcome(t *testing.T) {
	app, _ := newTestApp(t, testConfig())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Welcome to the Product API! Go to /api/products to see all products.", string(body))
}

func TestHealthCheck(t *testing.T) {
	app, _ := newTestApp(t, testConfig())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "memory", body["store"])
	assert.Equal(t, false, body["events"])
}

func TestAccessLogFormat(t *testing.T) {
	app, accessLog := newTestApp(t, testConfig())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/products?page=1", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Contains(t, accessLog.String(), "GET request for '/api/products?page=1' - ")
}

func TestProtectedRoutesUseConfiguredKey(t *testing.T) {
	app, _ := newTestApp(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/products/stats", nil)
	req.Header.Set("x-api-key", "k3y")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/products/stats", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProtectedRoutesAcceptHashedKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.APIKey = ""
	cfg.APIKeyHash = string(hash)
	app, _ := newTestApp(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/product", nil)
	req.Header.Set("x-api-key", "hashed-secret")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHashedKeyRejectsWrongKeyAfterValidRequest(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.APIKey = ""
	cfg.APIKeyHash = string(hash)
	app, _ := newTestApp(t, cfg)

	send := func(key string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/products/stats", nil)
		req.Header.Set("x-api-key", key)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		return resp.StatusCode
	}

	require.Equal(t, http.StatusOK, send("hashed-secret"))
	assert.Equal(t, http.StatusForbidden, send("wrong-secret!"))
	assert.Equal(t, http.StatusForbidden, send("hashed-secreT"))
	assert.Equal(t, http.StatusOK, send("hashed-secret"))
}

func TestUnconfiguredKeyDeniesEverything(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = ""
	app, _ := newTestApp(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/product", nil)
	req.Header.Set("x-api-key", "")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUnknownRouteIsNormalized(t *testing.T) {
	app, _ := newTestApp(t, testConfig())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nowhere", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "NotFoundError", body["error"]["name"])
}

func TestSeedProducts(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repositories.NewMemoryProductRepository(nil)

	seedProducts(repo, logger)
	seedProducts(repo, logger) // a non-empty store is left alone

	all, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, models.Product{
		ID:          "3",
		Name:        "Coffee Maker",
		Description: "Programmable coffee maker with timer",
		Price:       50,
		Category:    "kitchen",
		InStock:     false,
	}, all[2])
}
