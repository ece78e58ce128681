package expiration

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"placement-manager/core/clock"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(store Store) *fiber.App {
	app := fiber.New()
	s := NewSweeper(store, clock.NewFixed(time.Date(2026, 3, 26, 0, 0, 0, 0, time.UTC)), zap.NewNop(), Config{HoldingDays: 20})
	NewHandler(s).RegisterRoutes(app)
	return app
}

func TestHandleSweepNow(t *testing.T) {
	app := setupTestApp(&stubStore{count: 3})

	req := httptest.NewRequest("POST", "/sweep", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]int64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(3), body["expired"])
}

func TestHandleSweepNowFailure(t *testing.T) {
	app := setupTestApp(&stubStore{err: errors.New("store down")})

	req := httptest.NewRequest("POST", "/sweep", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}
