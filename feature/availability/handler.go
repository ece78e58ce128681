package availability

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"placement-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for availability queries.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the availability routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/availability")
	group.Get("/", h.HandleQuery)
	group.Get("/detail", h.HandleDetail)
	group.Get("/options", h.HandleOptions)
	group.Get("/cache/stats", h.HandleCacheStats)
	group.Delete("/cache", h.HandleCacheFlush)
}

// knownParams is the full set of recognized query parameters. Anything else
// is rejected so typos never silently widen a query.
var knownParams = map[string]bool{
	"type": true, "digital": true, "municipality": true, "state": true,
	"plaza": true, "tier": true, "status": true, "period_id": true,
	"start_date": true, "end_date": true, "page": true, "page_size": true,
}

// parseFilter builds a Filter from the request query, rejecting unknown
// parameters and unparseable values before any store access.
func parseFilter(c *fiber.Ctx) (Filter, error) {
	for key := range c.Queries() {
		if !knownParams[key] {
			return Filter{}, fmt.Errorf("%w: unknown parameter %q", ErrInvalidFilter, key)
		}
	}

	f := Filter{
		FurnitureType: c.Query("type"),
		Municipality:  c.Query("municipality"),
		State:         c.Query("state"),
		Plaza:         c.Query("plaza"),
		Tier:          c.Query("tier"),
		Status:        c.Query("status"),
	}

	if raw := c.Query("digital"); raw != "" {
		digital, err := strconv.ParseBool(raw)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: digital must be a boolean", ErrInvalidFilter)
		}
		f.Digital = &digital
	}

	if raw := c.Query("period_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: period_id must be an integer", ErrInvalidFilter)
		}
		f.PeriodID = id
	}

	if raw := c.Query("start_date"); raw != "" {
		t, err := time.Parse(DateLayout, raw)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: unparseable start_date %q", ErrInvalidFilter, raw)
		}
		f.StartDate = t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := time.Parse(DateLayout, raw)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: unparseable end_date %q", ErrInvalidFilter, raw)
		}
		f.EndDate = t
	}

	return f, nil
}

// respondError maps service failures to HTTP statuses.
func respondError(c *fiber.Ctx, l *zap.Logger, err error) error {
	if errors.Is(err, ErrInvalidFilter) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	l.Error("Availability query failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

// HandleQuery returns KPIs and breakdowns for the given filters.
// @Summary Query Availability
// @Description Returns KPIs and per-dimension breakdowns of inventory item availability for an optional time scope.
// @Tags availability
// @Accept json
// @Produce json
// @Param type query string false "Furniture type"
// @Param digital query boolean false "Digital (true) or traditional (false)"
// @Param municipality query string false "Municipality"
// @Param state query string false "State"
// @Param plaza query string false "Plaza"
// @Param tier query string false "Socioeconomic tier"
// @Param status query string false "Resolved status filter (available, reserved, sold, blocked)"
// @Param period_id query int false "Billing period id"
// @Param start_date query string false "Scope start (YYYY-MM-DD)"
// @Param end_date query string false "Scope end (YYYY-MM-DD)"
// @Success 200 {object} availability.QueryResult "Aggregated availability"
// @Failure 400 {object} map[string]string "Invalid Filter"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /availability [get]
func (h *Handler) HandleQuery(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	f, err := parseFilter(c)
	if err != nil {
		return respondError(c, l, err)
	}

	result, err := h.service.Query(c.Context(), f)
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(result)
}

// HandleDetail returns one page of items with resolved statuses.
// @Summary Query Availability Detail
// @Description Returns a paginated item listing with resolved statuses, a per-plaza summary and map coordinates.
// @Tags availability
// @Accept json
// @Produce json
// @Param page query int false "Page (1-indexed)"
// @Param page_size query int false "Page size"
// @Success 200 {object} availability.DetailResult "Item Detail"
// @Failure 400 {object} map[string]string "Invalid Filter"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /availability/detail [get]
func (h *Handler) HandleDetail(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	f, err := parseFilter(c)
	if err != nil {
		return respondError(c, l, err)
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 0)

	result, err := h.service.QueryDetail(c.Context(), f, page, pageSize)
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(result)
}

// HandleOptions lists the distinct values of every filterable dimension.
// @Summary List Filter Options
// @Description Lists the distinct values of every categorical filter dimension, for dropdown population.
// @Tags availability
// @Produce json
// @Success 200 {object} map[string][]string "Filter Options"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /availability/options [get]
func (h *Handler) HandleOptions(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	options, err := h.service.FilterOptions(c.Context())
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(options)
}

// HandleCacheStats exposes the cache contents.
// @Summary Cache Stats
// @Description Returns the number of live cache entries and their keys.
// @Tags availability
// @Produce json
// @Success 200 {object} cache.Stats "Cache Stats"
// @Router /availability/cache/stats [get]
func (h *Handler) HandleCacheStats(c *fiber.Ctx) error {
	return c.JSON(h.service.CacheStats())
}

// HandleCacheFlush drops every cached availability entry.
// @Summary Flush Cache
// @Description Removes every cached availability entry, forcing recomputation on the next query.
// @Tags availability
// @Produce json
// @Success 200 {object} map[string]int "Removed entry count"
// @Router /availability/cache [delete]
func (h *Handler) HandleCacheFlush(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	removed := h.service.FlushCache()
	l.Info("Availability cache flushed", zap.Int("removed", removed))
	return c.JSON(fiber.Map{"removed": removed})
}
