package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"catalog-manager/core/archive"
	"catalog-manager/core/config"
	"catalog-manager/core/database"
	"catalog-manager/core/loader"
	"catalog-manager/core/logger"
	"catalog-manager/core/middleware/auth"
	"catalog-manager/core/middleware/rayid"
	"catalog-manager/core/remote"

	"catalog-manager/feature/catalog"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/integrity"
	"catalog-manager/feature/pricing"
	"catalog-manager/feature/push"
	"catalog-manager/feature/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title Catalog Manager API
// @version 1.0
// @description API for pricing a product catalog and syncing it with a remote store.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalog manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
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

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if cfg.Database.Driver == database.DriverSQLite {
			// The sqlite driver is for local runs; mysql schemas are managed
			// outside the binary.
			if err := db.AutoMigrate(&models.Item{}, &models.RecipeLine{}, &models.Parameter{}); err != nil {
				logg.Fatal("Failed to migrate schema", zap.Error(err))
			}
		}

		// 4. Remote catalog client and report archive
		client := remote.NewClient(cfg.Remote)
		archiver, err := archive.New(cfg.Archive)
		if err != nil {
			logg.Fatal("Failed to create report archive", zap.Error(err))
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		store := catalog.NewStore(db)
		mgr.Register(catalog.NewFeature(db, logg))
		mgr.Register(pricing.NewFeature(store, logg))
		mgr.Register(push.NewFeature(store, client, cfg.Remote, archiver, logg))
		mgr.Register(stock.NewFeature(store, client, cfg.Remote, archiver, logg))
		mgr.Register(integrity.NewFeature(store, logg))

		// Middleware Registration
		// RayID must be first so every log line can be traced.
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

		// Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
