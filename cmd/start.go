package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"placement-manager/core/cache"
	"placement-manager/core/clock"
	"placement-manager/core/config"
	"placement-manager/core/database"
	"placement-manager/core/loader"
	"placement-manager/core/logger"
	"placement-manager/core/middleware/auth"
	"placement-manager/core/middleware/rayid"

	"placement-manager/feature/availability"
	"placement-manager/feature/expiration"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "placement-manager/docs/swagger"
)

// @title Placement Manager API
// @version 1.0
// @description API for querying advertising placement availability.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the placement manager server",
	Long:  `Starts the HTTP server, the cache and the expiration sweeper.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (required; bounded retry, fatal on exhaustion)
		db, err := database.ConnectWithRetry(cfg.Database, logg)
		if err != nil {
			logg.Fatal("Database connection failed", zap.Error(err))
		}
		logg.Info("Connected to database")

		// 4. Initialize Cache (one instance, injected everywhere)
		store := cache.New(time.Minute)

		// 5. Run the first sweep before the server opens, so no query ever
		// observes holds that were already past their deadline at startup.
		repo := availability.NewGormRepository(db)
		sweeper := expiration.NewSweeper(repo, clock.NewSystem(), logg, cfg.Expiration)
		scheduler := sweeper.Run()

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// 7. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(availability.NewFeature(db, store, logg, cfg.Availability))
		mgr.Register(expiration.NewFeature(sweeper))

		// Middleware Registration
		// RayID must be first to trace everything.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 8. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")

		scheduler.Stop()
		store.Stop()
		_ = app.Shutdown()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
