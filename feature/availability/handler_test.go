package availability

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"placement-manager/core/cache"
	"placement-manager/feature/availability/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, repo Repository) *fiber.App {
	t.Helper()

	app := fiber.New()
	c := cache.New(0)
	t.Cleanup(c.Stop)

	svc := NewService(repo, c, zap.NewNop(), Config{
		CacheTTL:        time.Minute,
		OptionsCacheTTL: time.Minute,
	})
	NewHandler(svc).RegisterRoutes(app)
	return app
}

func TestHandleQuery(t *testing.T) {
	repo := &stubRepo{
		items: []models.InventoryItem{
			{ID: 1, Plaza: "Norte"},
			{ID: 2, Plaza: "Sur"},
		},
		reservations: []models.Reservation{
			{ID: 1, InventoryItemID: 1, Status: models.ReservationSold},
		},
	}
	app := setupTestApp(t, repo)

	req := httptest.NewRequest("GET", "/availability?plaza=Norte", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		KPIs Summary `json:"kpis"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.KPIs.Total)
	assert.Equal(t, 1, body.KPIs.Sold)
}

func TestHandleQueryRejectsBadInput(t *testing.T) {
	app := setupTestApp(t, &stubRepo{})

	for name, target := range map[string]string{
		"Unknown Parameter": "/availability?colour=red",
		"Bad Date":          "/availability?start_date=tomorrow&end_date=2026-03-15",
		"Bad Digital":       "/availability?digital=sometimes",
		"Bad Status":        "/availability?status=pending",
		"Bad Period":        "/availability?period_id=abc",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", target, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, 400, resp.StatusCode)
		})
	}
}

func TestHandleDetail(t *testing.T) {
	items := make([]models.InventoryItem, 30)
	for i := range items {
		items[i] = models.InventoryItem{ID: i + 1}
	}
	app := setupTestApp(t, &stubRepo{items: items})

	req := httptest.NewRequest("GET", "/availability/detail?page=2&page_size=10", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body DetailResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, Pagination{Page: 2, PageSize: 10, Total: 30, TotalPages: 3}, body.Pagination)
	assert.Len(t, body.Items, 10)
}

func TestHandleOptions(t *testing.T) {
	app := setupTestApp(t, &stubRepo{})

	req := httptest.NewRequest("GET", "/availability/options", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string][]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body, "plaza")
	assert.Contains(t, body, "digital")
}

func TestHandleCacheEndpoints(t *testing.T) {
	app := setupTestApp(t, &stubRepo{items: []models.InventoryItem{{ID: 1}}})

	// Warm the cache.
	resp, err := app.Test(httptest.NewRequest("GET", "/availability", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/availability/cache/stats", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var stats cache.Stats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 1, stats.Size)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/availability/cache", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var flushed map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&flushed))
	assert.Equal(t, 1, flushed["removed"])
}
