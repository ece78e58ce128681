package cmd

import (
	"context"
	"log"

	"placement-manager/core/clock"
	"placement-manager/core/config"
	"placement-manager/core/database"
	"placement-manager/core/logger"
	"placement-manager/feature/availability"
	"placement-manager/feature/expiration"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// sweepCmd runs a single expiration sweep and exits. Useful for cron-style
// deployments and for verifying the holding-period configuration.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Expire stale holds once and exit",
	Long: `Runs a single expiration sweep: every active reserved or bonus
reservation older than the holding period is soft-deleted, returning its
inventory to the available pool.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.ConnectWithRetry(cfg.Database, logg)
		if err != nil {
			return err
		}
		defer func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}()

		repo := availability.NewGormRepository(db)
		sweeper := expiration.NewSweeper(repo, clock.NewSystem(), logg, cfg.Expiration)

		count, err := sweeper.Sweep(context.Background())
		if err != nil {
			return err
		}

		logg.Info("Sweep complete",
			zap.Int64("expired", count),
			zap.Int("holding_days", cfg.Expiration.HoldingDays),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(sweepCmd)
}
