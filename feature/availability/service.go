package availability

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"placement-manager/core/cache"
	"placement-manager/feature/availability/models"

	"go.uber.org/zap"
)

// Config holds configuration for the availability feature.
type Config struct {
	// CacheTTL bounds how stale a cached aggregation result may be.
	CacheTTL time.Duration `mapstructure:"cache_ttl" default:"5m"`
	// OptionsCacheTTL bounds staleness of the filter option lists.
	OptionsCacheTTL time.Duration `mapstructure:"options_cache_ttl" default:"30m"`
}

// Pagination bounds for detail queries.
const (
	DefaultPageSize = 25
	MaxPageSize     = 200
)

// Cache key layout. Everything this feature stores lives under cachePrefix
// so one prefix delete flushes the whole feature.
const (
	cachePrefix     = "availability:"
	queryKeyPrefix  = cachePrefix + "query:"
	detailKeyPrefix = cachePrefix + "detail:"
	optionsCacheKey = cachePrefix + "options"
)

// Service answers availability queries by orchestrating the repository, the
// status resolver, the aggregation pass and the TTL cache.
type Service struct {
	repo   Repository
	cache  *cache.Cache
	logger *zap.Logger
	cfg    Config
}

// NewService creates a new availability service.
func NewService(repo Repository, c *cache.Cache, logger *zap.Logger, cfg Config) *Service {
	return &Service{
		repo:   repo,
		cache:  c,
		logger: logger,
		cfg:    cfg,
	}
}

// QueryResult is the aggregated answer for one filter set.
type QueryResult struct {
	KPIs         Summary                 `json:"kpis"`
	Aggregations map[string][]GroupCount `json:"aggregations"`
}

// ItemStatus is one inventory item with its resolved status attached.
type ItemStatus struct {
	models.InventoryItem
	Status Status `json:"status"`
}

// Pagination describes one page of a detail listing.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// MapPoint is one plottable item for map rendering.
type MapPoint struct {
	ID        int     `json:"id"`
	Code      string  `json:"code"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Status    Status  `json:"status"`
}

// DetailResult is the paged item listing with its map companions.
type DetailResult struct {
	Items          []ItemStatus   `json:"items"`
	Pagination     Pagination     `json:"pagination"`
	PlazaSummary   []PlazaSummary `json:"plaza_summary"`
	MapCoordinates []MapPoint     `json:"map_coordinates"`
}

// Query returns KPIs and per-dimension breakdowns for the filter, served
// from cache when a fresh entry exists. Failed computations are never
// cached and are safe to retry immediately.
func (s *Service) Query(ctx context.Context, f Filter) (*QueryResult, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	key := queryKeyPrefix + f.CacheKey()
	v, err := s.cache.GetOrCompute(key, s.cfg.CacheTTL, func() (any, error) {
		return s.computeQuery(ctx, f)
	})
	if err != nil {
		return nil, err
	}
	return v.(*QueryResult), nil
}

func (s *Service) computeQuery(ctx context.Context, f Filter) (*QueryResult, error) {
	items, resolved, err := s.fetchAndResolve(ctx, f)
	if err != nil {
		return nil, err
	}

	statusFilter := f.statusFilter()
	aggregations := make(map[string][]GroupCount, len(Dimensions))
	for _, dim := range Dimensions {
		aggregations[string(dim)] = Aggregate(items, resolved, dim, statusFilter)
	}

	// KPIs always cover the full filtered item set; the status filter only
	// narrows the breakdowns.
	return &QueryResult{
		KPIs:         KPIs(items, resolved),
		Aggregations: aggregations,
	}, nil
}

// QueryDetail returns one page of items with resolved statuses. Pagination
// applies after status resolution and status filtering, so totals reflect
// the filtered set, not the raw page.
func (s *Service) QueryDetail(ctx context.Context, f Filter, page, pageSize int) (*DetailResult, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1", ErrInvalidFilter)
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return nil, fmt.Errorf("%w: page size must be between 1 and %d", ErrInvalidFilter, MaxPageSize)
	}

	key := detailKeyPrefix + f.CacheKey() + "|page=" + strconv.Itoa(page) + "|size=" + strconv.Itoa(pageSize)
	v, err := s.cache.GetOrCompute(key, s.cfg.CacheTTL, func() (any, error) {
		return s.computeDetail(ctx, f, page, pageSize)
	})
	if err != nil {
		return nil, err
	}
	return v.(*DetailResult), nil
}

func (s *Service) computeDetail(ctx context.Context, f Filter, page, pageSize int) (*DetailResult, error) {
	items, resolved, err := s.fetchAndResolve(ctx, f)
	if err != nil {
		return nil, err
	}

	filtered := items
	if statusFilter := f.statusFilter(); statusFilter != nil {
		filtered = make([]models.InventoryItem, 0, len(items))
		for _, item := range items {
			if resolved[item.ID] == *statusFilter {
				filtered = append(filtered, item)
			}
		}
	}

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	pageItems := make([]ItemStatus, 0, end-start)
	for _, item := range filtered[start:end] {
		pageItems = append(pageItems, ItemStatus{InventoryItem: item, Status: resolved[item.ID]})
	}

	// Map companions cover the whole filtered set; a map cropped to one
	// page would be useless.
	points := make([]MapPoint, 0, len(filtered))
	for _, item := range filtered {
		if item.Latitude == nil || item.Longitude == nil {
			continue
		}
		points = append(points, MapPoint{
			ID:        item.ID,
			Code:      item.Code,
			Latitude:  *item.Latitude,
			Longitude: *item.Longitude,
			Status:    resolved[item.ID],
		})
	}

	return &DetailResult{
		Items: pageItems,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
		PlazaSummary:   SummarizeByPlaza(filtered),
		MapCoordinates: points,
	}, nil
}

// fetchAndResolve runs the shared fetch → resolve pipeline for a filter.
func (s *Service) fetchAndResolve(ctx context.Context, f Filter) ([]models.InventoryItem, map[int]Status, error) {
	scope, err := s.resolveScope(ctx, f)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.repo.ListItems(ctx, f)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]int, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	reservations, err := s.repo.ListActiveReservations(ctx, ids, scope)
	if err != nil {
		return nil, nil, err
	}

	return items, ResolveStatuses(ids, reservations), nil
}

// resolveScope expands the filter's time scope into a concrete window.
// Explicit dates win over a billing period reference. A billing period that
// resolves to nothing degrades to "no time scope" instead of failing.
func (s *Service) resolveScope(ctx context.Context, f Filter) (*models.CalendarWindow, error) {
	if !f.StartDate.IsZero() {
		return &models.CalendarWindow{StartDate: f.StartDate, EndDate: f.EndDate}, nil
	}
	if f.PeriodID == 0 {
		return nil, nil
	}

	window, err := s.repo.FindWindowForPeriod(ctx, f.PeriodID)
	if errors.Is(err, ErrPeriodNotFound) {
		s.logger.Warn("Billing period not found, querying unscoped", zap.Int("period_id", f.PeriodID))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return window, nil
}

// FilterOptions lists the distinct values of every categorical dimension,
// for populating filter dropdowns. Cached under its own longer TTL.
func (s *Service) FilterOptions(ctx context.Context) (map[string][]string, error) {
	v, err := s.cache.GetOrCompute(optionsCacheKey, s.cfg.OptionsCacheTTL, func() (any, error) {
		options := map[string][]string{
			string(DimensionDigital): {"digital", "traditional"},
		}
		for _, column := range []string{"furniture_type", "municipality", "state", "plaza", "tier"} {
			values, err := s.repo.DistinctValues(ctx, column)
			if err != nil {
				return nil, err
			}
			options[column] = values
		}
		return options, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string][]string), nil
}

// CacheStats exposes the cache contents for operational visibility.
func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// FlushCache drops every cached entry owned by this feature and returns how
// many entries were removed.
func (s *Service) FlushCache() int {
	return s.cache.DeletePrefix(cachePrefix)
}
