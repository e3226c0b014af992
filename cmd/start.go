package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"collection-manager/core/cache"
	"collection-manager/core/config"
	"collection-manager/core/database"
	"collection-manager/core/loader"
	"collection-manager/core/logger"
	"collection-manager/core/media"
	"collection-manager/core/middleware/auth"
	"collection-manager/core/middleware/rayid"
	"collection-manager/core/token"

	authfeature "collection-manager/feature/auth"
	authmodels "collection-manager/feature/auth/models"
	"collection-manager/feature/catalog"
	"collection-manager/feature/catalog/bgg"
	"collection-manager/feature/catalog/cached"
	"collection-manager/feature/catalog/ludopedia"
	"collection-manager/feature/collection"
	colmodels "collection-manager/feature/collection/models"
	"collection-manager/feature/export"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "collection-manager/docs/swagger"
)

// @title Collection Manager API
// @version 1.0
// @description API for managing personal board game collections.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the collection manager server",
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
		if err := db.AutoMigrate(&authmodels.User{}, &colmodels.Game{}); err != nil {
			logg.Fatal("Failed to migrate schema", zap.Error(err))
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 5. Initialize Media Storage (avatars)
		store, err := media.NewClient(cfg.Media)
		if err != nil {
			logg.Fatal("Failed to create media client", zap.Error(err))
		}
		bucketCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := media.EnsureBucket(bucketCtx, store, cfg.Media.Bucket, cfg.Media.Region); err != nil {
			logg.Warn("Media bucket check failed, uploads may not work", zap.Error(err))
		}
		cancel()

		// 6. Optional Redis cache for catalog searches
		searchCache, err := cache.New(cfg.Cache)
		if err != nil {
			logg.Warn("Cache disabled", zap.Error(err))
		} else if searchCache != nil {
			defer searchCache.Close()
			logg.Info("Search cache enabled")
		}

		// 7. Catalog clients
		ludoClient := ludopedia.New(cfg.Catalog, logg)
		clients := []catalog.Client{
			cached.Wrap(bgg.New(cfg.Catalog, logg), searchCache, cfg.Catalog.SearchCacheTTL()),
			cached.Wrap(ludoClient, searchCache, cfg.Catalog.SearchCacheTTL()),
		}

		// 8. Token manager shared by the auth feature and the guard
		tokens := token.NewManager(cfg.Token)

		// 9. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(authfeature.NewFeature(db, tokens, cfg.OAuth, ludoClient, store, cfg.Media.Bucket, cfg.Server.FrontendURL, logg))
		mgr.Register(collection.NewFeature(db, clients, cfg.Catalog.RequestDelay(), logg))
		mgr.Register(export.NewFeature(db, logg))

		// Middleware Registration
		// RayID first so everything downstream can trace.
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

		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})

		// Bearer guard; sign-in endpoints stay open.
		app.Use(auth.New(auth.Config{
			Tokens: tokens,
			Skip: []string{
				"/auth/register",
				"/auth/login",
				"/auth/google",
				"/swagger",
				"/health",
			},
		}))

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
