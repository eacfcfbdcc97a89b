package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Beawareofme/warehouse-frontend/internal/adapter/api"
	"github.com/Beawareofme/warehouse-frontend/internal/adapter/storage"
	"github.com/Beawareofme/warehouse-frontend/internal/catalog"
	"github.com/Beawareofme/warehouse-frontend/internal/handler"
	"github.com/Beawareofme/warehouse-frontend/internal/middleware"
	"github.com/Beawareofme/warehouse-frontend/internal/service"
	"github.com/Beawareofme/warehouse-frontend/pkg/config"
)

var portFlag string

var rootCmd = &cobra.Command{
	Use:           "whx",
	Short:         "WarehouseHub front end server",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the marketplace front end (default)",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the client storage tables and exit",
	RunE:  runMigrate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&portFlag, "port", "", "Listen port (overrides PORT)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	cfg := config.Load()
	if portFlag != "" {
		cfg.Port = portFlag
	}
	return cfg
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	if cfg.StorageDriver == "" || cfg.StorageDriver == "memory" {
		slog.Info("memory storage has nothing to migrate")
		return nil
	}
	// storage.Open migrates SQL stores before returning them.
	store, err := storage.Open(cmd.Context(), cfg.StorageDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer store.Close()
	slog.Info("client storage migrated", "driver", cfg.StorageDriver, "dsn", cfg.DSN())
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	// ── Configuration ────────────────────────────────────────────────────
	cfg := loadConfig()

	slog.Info("🚀 Starting WarehouseHub front end",
		"port", cfg.Port,
		"api_url", cfg.APIURL,
		"storage", cfg.StorageDriver,
		"dsn", cfg.DSN(),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── Storage ──────────────────────────────────────────────────────────
	store, err := storage.Open(ctx, cfg.StorageDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open client storage: %w", err)
	}
	defer store.Close()

	opts, err := catalog.Default()
	if err != nil {
		return err
	}

	// ── Adapters ─────────────────────────────────────────────────────────
	marketplace := api.NewClient(cfg.APIURL, cfg.HTTPTimeout)

	// ── Services ─────────────────────────────────────────────────────────
	sessions := service.NewSessionManager(store, marketplace, true)
	defer sessions.Close()
	go sessions.Run(ctx, time.Minute, cfg.SessionIdle)

	toasts := service.NewToastCenter(cfg.ToastTTL)
	go toasts.Run(ctx, time.Second)

	wizards := service.NewWizardRegistry(marketplace, toasts)
	dashboards := service.NewDashboards(marketplace)
	actions := service.NewActions(marketplace)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: handler.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowCredentials: true,
	}))

	// Health check
	app.Get("/api/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"app":     cfg.AppName,
			"api_url": cfg.APIURL,
			"clients": sessions.Len(),
		})
	})

	// Client identity, session and navigation audit
	app.Use(middleware.ClientIdentity(middleware.ClientConfig{Secure: cfg.CookieSecure}))
	app.Use(middleware.Session(sessions))
	app.Use(middleware.NavigationAudit(store))
	app.Use(middleware.LeaveWizard(wizards))

	// ── Routes ───────────────────────────────────────────────────────────
	handler.NewAuthHandler(wizards).Register(app)
	handler.NewEventsHandler(toasts).Register(app)
	handler.NewOptionsHandler(opts).Register(app)
	handler.NewNavigationHandler(store).Register(app)
	handler.NewActionsHandler(actions, toasts).Register(app)
	handler.NewWizardHandler(wizards, opts).Register(app)

	pages := handler.NewPageHandler(dashboards)
	pages.Register(app)
	pages.RegisterFallback(app)

	// ── Start ────────────────────────────────────────────────────────────
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(":"+cfg.Port, fiber.ListenConfig{DisableStartupMessage: true})
	}()
	slog.Info("listening", "addr", ":"+cfg.Port)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}
