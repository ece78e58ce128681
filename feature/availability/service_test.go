package availability

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"placement-manager/core/cache"
	"placement-manager/feature/availability/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubRepo is a canned-response Repository that counts its calls.
type stubRepo struct {
	items        []models.InventoryItem
	reservations []models.Reservation
	window       *models.CalendarWindow
	windowErr    error
	err          error

	listCalls  int
	scopeSeen  *models.CalendarWindow
	scopedCall bool
}

func (s *stubRepo) ListItems(_ context.Context, _ Filter) ([]models.InventoryItem, error) {
	s.listCalls++
	return s.items, s.err
}

func (s *stubRepo) ListActiveReservations(_ context.Context, _ []int, scope *models.CalendarWindow) ([]models.Reservation, error) {
	s.scopeSeen = scope
	s.scopedCall = true
	return s.reservations, s.err
}

func (s *stubRepo) FindWindowForPeriod(_ context.Context, _ int) (*models.CalendarWindow, error) {
	if s.windowErr != nil {
		return nil, s.windowErr
	}
	return s.window, nil
}

func (s *stubRepo) DistinctValues(_ context.Context, column string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []string{column + "_a", column + "_b"}, nil
}

func (s *stubRepo) ExpireStaleHolds(_ context.Context, _, _ time.Time) (int64, error) {
	return 0, s.err
}

func newTestService(repo Repository) (*Service, *cache.Cache) {
	c := cache.New(0)
	svc := NewService(repo, c, zap.NewNop(), Config{
		CacheTTL:        5 * time.Minute,
		OptionsCacheTTL: 30 * time.Minute,
	})
	return svc, c
}

func TestServiceQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("Resolves And Aggregates", func(t *testing.T) {
		repo := &stubRepo{
			items: []models.InventoryItem{
				{ID: 1, Plaza: "Norte"},
				{ID: 2, Plaza: "Norte"},
				{ID: 3, Plaza: "Sur"},
			},
			reservations: []models.Reservation{
				{ID: 1, InventoryItemID: 1, Status: models.ReservationSold},
				{ID: 2, InventoryItemID: 2, Status: models.ReservationBonus},
			},
		}
		svc, c := newTestService(repo)
		defer c.Stop()

		result, err := svc.Query(ctx, Filter{})
		require.NoError(t, err)

		assert.Equal(t, Summary{Total: 3, Available: 1, Reserved: 1, Sold: 1}, result.KPIs)
		assert.Equal(t, []GroupCount{
			{Label: "Norte", Count: 2},
			{Label: "Sur", Count: 1},
		}, result.Aggregations["plaza"])
	})

	t.Run("Second Call Served From Cache", func(t *testing.T) {
		repo := &stubRepo{items: []models.InventoryItem{{ID: 1}}}
		svc, c := newTestService(repo)
		defer c.Stop()

		_, err := svc.Query(ctx, Filter{})
		require.NoError(t, err)
		_, err = svc.Query(ctx, Filter{})
		require.NoError(t, err)

		assert.Equal(t, 1, repo.listCalls, "cache hit must not touch the store")
	})

	t.Run("Distinct Filters Compute Separately", func(t *testing.T) {
		repo := &stubRepo{items: []models.InventoryItem{{ID: 1}}}
		svc, c := newTestService(repo)
		defer c.Stop()

		_, err := svc.Query(ctx, Filter{})
		require.NoError(t, err)
		_, err = svc.Query(ctx, Filter{Plaza: "Norte"})
		require.NoError(t, err)

		assert.Equal(t, 2, repo.listCalls)
	})

	t.Run("Invalid Filter Rejected Before Store", func(t *testing.T) {
		repo := &stubRepo{}
		svc, c := newTestService(repo)
		defer c.Stop()

		_, err := svc.Query(ctx, Filter{Status: "pending"})
		assert.ErrorIs(t, err, ErrInvalidFilter)
		assert.Zero(t, repo.listCalls)
	})

	t.Run("Store Failure Not Cached", func(t *testing.T) {
		repo := &stubRepo{err: errors.New("connection refused")}
		svc, c := newTestService(repo)
		defer c.Stop()

		_, err := svc.Query(ctx, Filter{})
		require.Error(t, err)

		// Immediate retry must hit the store again, not a cached failure.
		repo.err = nil
		_, err = svc.Query(ctx, Filter{})
		require.NoError(t, err)
		assert.Equal(t, 2, repo.listCalls)
	})

	t.Run("Period Resolves To Window", func(t *testing.T) {
		window := &models.CalendarWindow{
			ID:        1,
			StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		}
		repo := &stubRepo{items: []models.InventoryItem{{ID: 1}}, window: window}
		svc, c := newTestService(repo)
		defer c.Stop()

		_, err := svc.Query(ctx, Filter{PeriodID: 7})
		require.NoError(t, err)
		assert.Equal(t, window, repo.scopeSeen)
	})

	t.Run("Unknown Period Degrades To Unscoped", func(t *testing.T) {
		repo := &stubRepo{
			items:     []models.InventoryItem{{ID: 1}},
			windowErr: fmt.Errorf("%w: id 99", ErrPeriodNotFound),
		}
		svc, c := newTestService(repo)
		defer c.Stop()

		_, err := svc.Query(ctx, Filter{PeriodID: 99})
		require.NoError(t, err)
		assert.True(t, repo.scopedCall)
		assert.Nil(t, repo.scopeSeen, "missing period means no time scope, not a failure")
	})
}

func TestServiceQueryDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("Pagination After Status Filtering", func(t *testing.T) {
		// 120 items; the first 57 carry a sold reservation.
		items := make([]models.InventoryItem, 120)
		var reservations []models.Reservation
		for i := range items {
			items[i] = models.InventoryItem{ID: i + 1, Code: fmt.Sprintf("ITM-%03d", i+1)}
			if i < 57 {
				reservations = append(reservations, models.Reservation{
					ID: i + 1, InventoryItemID: i + 1, Status: models.ReservationSold,
				})
			}
		}
		repo := &stubRepo{items: items, reservations: reservations}
		svc, c := newTestService(repo)
		defer c.Stop()

		result, err := svc.QueryDetail(ctx, Filter{Status: "sold"}, 2, 25)
		require.NoError(t, err)

		assert.Equal(t, Pagination{Page: 2, PageSize: 25, Total: 57, TotalPages: 3}, result.Pagination)
		require.Len(t, result.Items, 25)
		assert.Equal(t, 26, result.Items[0].ID, "page 2 starts at the 26th filtered item")
		assert.Equal(t, 50, result.Items[24].ID)
	})

	t.Run("Past End Page Is Empty Not Error", func(t *testing.T) {
		repo := &stubRepo{items: []models.InventoryItem{{ID: 1}}}
		svc, c := newTestService(repo)
		defer c.Stop()

		result, err := svc.QueryDetail(ctx, Filter{}, 5, 25)
		require.NoError(t, err)
		assert.Empty(t, result.Items)
		assert.Equal(t, 1, result.Pagination.Total)
	})

	t.Run("Bad Pagination Rejected", func(t *testing.T) {
		repo := &stubRepo{}
		svc, c := newTestService(repo)
		defer c.Stop()

		_, err := svc.QueryDetail(ctx, Filter{}, 0, 25)
		assert.ErrorIs(t, err, ErrInvalidFilter)

		_, err = svc.QueryDetail(ctx, Filter{}, 1, MaxPageSize+1)
		assert.ErrorIs(t, err, ErrInvalidFilter)
	})

	t.Run("Map Coordinates Cover Whole Filtered Set", func(t *testing.T) {
		lat, lng := 25.67, -100.31
		repo := &stubRepo{items: []models.InventoryItem{
			{ID: 1, Code: "A", Latitude: &lat, Longitude: &lng},
			{ID: 2, Code: "B"},
			{ID: 3, Code: "C", Latitude: &lat, Longitude: &lng},
		}}
		svc, c := newTestService(repo)
		defer c.Stop()

		result, err := svc.QueryDetail(ctx, Filter{}, 1, 2)
		require.NoError(t, err)

		assert.Len(t, result.Items, 2, "page is cropped")
		assert.Len(t, result.MapCoordinates, 2, "map covers every plottable filtered item")
	})
}

func TestServiceFilterOptions(t *testing.T) {
	repo := &stubRepo{}
	svc, c := newTestService(repo)
	defer c.Stop()

	options, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"plaza_a", "plaza_b"}, options["plaza"])
	assert.Equal(t, []string{"digital", "traditional"}, options["digital"])
}

func TestServiceCacheOperations(t *testing.T) {
	repo := &stubRepo{items: []models.InventoryItem{{ID: 1}}}
	svc, c := newTestService(repo)
	defer c.Stop()

	_, err := svc.Query(context.Background(), Filter{})
	require.NoError(t, err)

	stats := svc.CacheStats()
	assert.Equal(t, 1, stats.Size)

	removed := svc.FlushCache()
	assert.Equal(t, 1, removed)
	assert.Zero(t, svc.CacheStats().Size)
}
