package expiration

import (
	"context"
	"fmt"
	"time"

	"placement-manager/core/clock"

	"go.uber.org/zap"
)

// Config holds configuration for the expiration sweeper.
type Config struct {
	// HoldingDays is how many days a reserved or bonus hold may stay
	// unconverted before it expires automatically.
	HoldingDays int `mapstructure:"holding_days" default:"20"`
	// Interval is the spacing between automatic sweeps.
	Interval time.Duration `mapstructure:"interval" default:"6h"`
}

// Store is the slice of the data layer the sweeper mutates.
type Store interface {
	// ExpireStaleHolds soft-deletes every active reserved or bonus
	// reservation dated before cutoff and returns the affected row count.
	ExpireStaleHolds(ctx context.Context, now, cutoff time.Time) (int64, error)
}

// Sweeper periodically expires tentative holds that outlived the holding
// period, silently returning their inventory to the available pool.
type Sweeper struct {
	store  Store
	clock  clock.Clock
	logger *zap.Logger
	cfg    Config
}

// NewSweeper creates a new sweeper.
func NewSweeper(store Store, clk clock.Clock, logger *zap.Logger, cfg Config) *Sweeper {
	return &Sweeper{
		store:  store,
		clock:  clk,
		logger: logger,
		cfg:    cfg,
	}
}

// Sweep soft-expires every active hold older than the holding period in one
// bulk mutation and reports how many rows it touched. Sold and blocked
// reservations never age out. Running Sweep again immediately touches
// nothing, since the first pass already marked every qualifying row.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	now := s.clock.Now()
	cutoff := now.AddDate(0, 0, -s.cfg.HoldingDays)

	count, err := s.store.ExpireStaleHolds(ctx, now, cutoff)
	if err != nil {
		return 0, fmt.Errorf("sweep: %w", err)
	}

	if count > 0 {
		s.logger.Info("Expired stale holds",
			zap.Int64("count", count),
			zap.Time("cutoff", cutoff),
		)
	}
	return count, nil
}

// Run performs one sweep immediately and then keeps sweeping on the
// configured interval until the returned scheduler is stopped. A failed
// sweep is logged and swallowed; the rows it missed are still stale on the
// next tick, so failures self-heal.
func (s *Sweeper) Run() *clock.Scheduler {
	sch := clock.NewScheduler(s.cfg.Interval, func() {
		if _, err := s.Sweep(context.Background()); err != nil {
			s.logger.Error("Sweep failed", zap.Error(err))
		}
	})
	sch.Start()
	return sch
}
