package expiration

import (
	"placement-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the expiration sweeper.
type Handler struct {
	sweeper *Sweeper
}

// NewHandler creates a new HTTP handler.
func NewHandler(sweeper *Sweeper) *Handler {
	return &Handler{sweeper: sweeper}
}

// RegisterRoutes registers the expiration routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/sweep", h.HandleSweepNow)
}

// HandleSweepNow triggers an immediate expiration sweep.
// @Summary Sweep Now
// @Description Expires every reserved or bonus hold older than the holding period and reports the count.
// @Tags expiration
// @Produce json
// @Success 200 {object} map[string]int64 "Expired reservation count"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sweep [post]
func (h *Handler) HandleSweepNow(c *fiber.Ctx) error {
	l := logger.WithRayID(h.sweeper.logger, c)

	count, err := h.sweeper.Sweep(c.Context())
	if err != nil {
		l.Error("Manual sweep failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"expired": count})
}
