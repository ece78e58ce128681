package expiration

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	sweeper *Sweeper
	handler *Handler
}

// NewFeature creates a new Expiration feature around an existing sweeper.
// The sweeper itself is constructed in cmd/start so its first run can
// happen before the server starts listening.
func NewFeature(sweeper *Sweeper) *Feature {
	return &Feature{sweeper: sweeper, handler: NewHandler(sweeper)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "expiration"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
