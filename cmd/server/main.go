package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/relieflink/backend/internal/advisor"
	"github.com/relieflink/backend/internal/config"
	"github.com/relieflink/backend/internal/database"
	"github.com/relieflink/backend/internal/donations"
	"github.com/relieflink/backend/internal/handlers"
	"github.com/relieflink/backend/internal/middleware"
	"github.com/relieflink/backend/pkg/logger"
	"github.com/relieflink/backend/pkg/utils"
	"gorm.io/gorm"
)

func main() {
	logger.Init()

	cfg := config.Load()
	utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.ExpirationHours)

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	repo, err := buildDonationRepository(cfg, db)
	if err != nil {
		log.Fatalf("donation repository setup failed: %v", err)
	}

	classifier, err := advisor.NewGeminiClassifier(context.Background(), cfg.Advisor)
	if err != nil {
		log.Fatalf("classification advisor setup failed: %v", err)
	}

	authHandler := handlers.NewAuthHandler(db)
	donationsHandler := handlers.NewDonationsHandler(db, repo, classifier)
	authMiddleware := middleware.NewAuthMiddleware(db)

	app := fiber.New(fiber.Config{AppName: "relieflink"})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS(cfg.Server.FrontendURL))
	app.Use(middleware.RequestLogger())
	app.Use(middleware.SecurityLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/signup", authHandler.Signup)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/me", authMiddleware.RequireAuth, authHandler.Me)

	donationRoutes := api.Group("/donations")
	donationRoutes.Post("/", donationsHandler.Create)
	donationRoutes.Get("/", donationsHandler.List)
	donationRoutes.Get("/stats", donationsHandler.Stats)
	donationRoutes.Get("/user/:userId", donationsHandler.ListByUser)
	donationRoutes.Put("/:id", donationsHandler.Update)
	donationRoutes.Delete("/:id", donationsHandler.Delete)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"port":              cfg.Server.Port,
		"db_driver":         cfg.DB.Driver,
		"donations_backend": cfg.Donations.Backend,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}

// buildDonationRepository selects the repository implementation once, at
// startup. Requests never branch on the backend kind.
func buildDonationRepository(cfg *config.Config, db *gorm.DB) (donations.Repository, error) {
	switch cfg.Donations.Backend {
	case "remote":
		if cfg.Donations.RemoteURL == "" {
			return nil, fmt.Errorf("DONATIONS_REMOTE_URL is required for the remote backend")
		}
		return donations.NewAPIStore(cfg.Donations.RemoteURL), nil
	case "local":
		if cfg.Donations.SeedDemoData {
			return donations.NewSeededGormStore(db)
		}
		return donations.NewGormStore(db), nil
	default:
		return nil, fmt.Errorf("unsupported donations backend: %q", cfg.Donations.Backend)
	}
}
