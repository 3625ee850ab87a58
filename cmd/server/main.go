package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"color_robotics_site/config"
	"color_robotics_site/db"
	"color_robotics_site/handlers"
	"color_robotics_site/middleware"
	"color_robotics_site/models"
	"color_robotics_site/services"
	"color_robotics_site/services/contactform"
	"color_robotics_site/services/jobs"
	"color_robotics_site/services/variants"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	// submissionTTL is how long a submission can still be polled after it was posted
	submissionTTL = 30 * time.Minute
	// leadExportWindow is the period each scheduled export covers
	leadExportWindow = 7 * 24 * time.Hour
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(db.Options{
		Path:        cfg.DBPath,
		TursoURL:    cfg.TursoDatabaseURL,
		TursoToken:  cfg.TursoAuthToken,
		Environment: cfg.Environment,
	}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.Lead{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load landing page variants
	registry, err := variants.NewRegistry(cfg.VariantsFile, cfg.DefaultVariant)
	if err != nil {
		log.Fatalf("Failed to load variants: %v", err)
	}
	log.Printf("Loaded %d variants (default: %s)", len(registry.Keys()), registry.Default().Key)

	if cfg.Environment == "development" && registry.Path() != "" {
		err := registry.Watch(ctx, func(err error) {
			if err != nil {
				log.Printf("[WARNING] Variants reload failed, keeping previous variants: %v", err)
				return
			}
			log.Printf("[INFO] Variants reloaded from %s", registry.Path())
		})
		if err != nil {
			log.Printf("[WARNING] Variants file watch disabled: %v", err)
		}
	}

	tracker := contactform.NewTracker(submissionTTL)
	handlers.Configure(handlers.SiteDeps{
		Registry: registry,
		Tracker:  tracker,
		Relay:    services.NewFormRelay(cfg.RelayTimeout),
		Clock:    contactform.RealClock{},
	})

	// Hash static assets for cache busting
	middleware.InitAssetVersions()

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
	}))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		HSTSMaxAge:         hstsMaxAge(cfg),
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	e.Use(middleware.CSRF(cfg.IsProduction()))
	e.Use(middleware.CSPNonce(middleware.FormActionOrigin(cfg.FormEndpointBase)))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Static files
	e.Static("/static", "static")

	withVariant := middleware.Variant(registry)

	// Landing pages
	e.GET("/", handlers.LandingHandler, withVariant)
	e.GET("/v/:variant", handlers.LandingHandler, withVariant)
	e.GET("/theme/:file", handlers.ThemeHandler)

	// Contact form
	e.POST("/contact/:variant", handlers.SubmitContactHandler, middleware.ContactFormRateLimiter.Middleware(), withVariant)
	e.GET("/contact/status/:id", handlers.ContactStatusHandler, middleware.StatusPollRateLimiter.Middleware())

	// HTMX partials
	e.GET("/htmx/industries/:variant/:tab", handlers.IndustryTabHandler, withVariant)

	// SEO and health
	e.GET("/sitemap.xml", handlers.GetSitemapHandler)
	e.GET("/robots.txt", handlers.RobotsHandler)
	e.GET("/healthz", handlers.HealthHandler)

	// Background jobs
	scheduler := jobs.NewScheduler(ctx)
	err = scheduler.Add(jobs.JobMaintenance, cfg.MaintenanceSchedule, jobs.Chain(
		jobs.SweepSubmissions(tracker),
		jobs.CleanupLeads(db.DB, cfg.LeadRetentionDays),
	))
	if err != nil {
		log.Fatalf("Failed to schedule maintenance: %v", err)
	}
	if cfg.LeadExportSchedule != "" {
		storage := services.NewStorage(ctx, cfg)
		if err := scheduler.Add(jobs.JobLeadExport, cfg.LeadExportSchedule, jobs.ExportRecentLeads(db.DB, storage, leadExportWindow)); err != nil {
			log.Fatalf("Failed to schedule lead export: %v", err)
		}
	}
	scheduler.Start()

	// Start server
	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARNING] Server shutdown: %v", err)
	}
	scheduler.Stop(shutdownCtx)
}

func hstsMaxAge(cfg *config.Config) int {
	if cfg.IsProduction() {
		return 31536000
	}
	return 0
}
