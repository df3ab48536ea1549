package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/ward-api/internal/config"
	"github.com/jwalitptl/ward-api/internal/handler"
	admissionHandler "github.com/jwalitptl/ward-api/internal/handler/admission"
	censusHandler "github.com/jwalitptl/ward-api/internal/handler/census"
	notesHandler "github.com/jwalitptl/ward-api/internal/handler/notes"
	shareHandler "github.com/jwalitptl/ward-api/internal/handler/share"
	shiftHandler "github.com/jwalitptl/ward-api/internal/handler/shift"
	"github.com/jwalitptl/ward-api/internal/middleware"
	"github.com/jwalitptl/ward-api/internal/repository/postgres"
	"github.com/jwalitptl/ward-api/internal/router"
	admissionService "github.com/jwalitptl/ward-api/internal/service/admission"
	censusService "github.com/jwalitptl/ward-api/internal/service/census"
	eventService "github.com/jwalitptl/ward-api/internal/service/event"
	notesService "github.com/jwalitptl/ward-api/internal/service/notes"
	"github.com/jwalitptl/ward-api/internal/service/shift"
	"github.com/jwalitptl/ward-api/internal/service/stay"
	"github.com/jwalitptl/ward-api/pkg/auth"
	"github.com/jwalitptl/ward-api/pkg/logger"
	"github.com/jwalitptl/ward-api/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(&logger.Config{
		Level: logger.ParseLevel(cfg.Log.Level),
		JSON:  cfg.Log.JSON,
	}).WithFields(map[string]interface{}{"service": "ward-api"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	m := metrics.NewMetrics("ward", "api", prometheus.DefaultRegisterer)

	// Initialize repositories
	repos := postgres.NewRepositories(postgres.NewBaseRepository(db, m))

	// Ward policy
	loc, _ := cfg.Census.Location()
	weekendDays, _ := cfg.Census.Weekdays()
	classifier := shift.NewClassifier(weekendDays...)
	stays := stay.NewEngine(cfg.Census.LongStayThresholdDays, func() time.Time { return time.Now().In(loc) })

	// Initialize services
	events := eventService.NewEventService(repos.Outbox)
	censusSvc := censusService.NewService(
		repos.Patients,
		repos.Consultations,
		repos.Appointments,
		censusService.NewAggregator(stays),
		m,
		log,
	)
	admissionSvc := admissionService.NewService(repos.Admissions, repos.Users, classifier, events, m, log)
	notesSvc := notesService.NewService(repos.Notes, events, m, log)

	// Initialize middleware
	tokens := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	authMiddleware := middleware.NewAuthMiddleware(tokens, repos.Users, cfg.JWT.ActorCacheTTL)

	// Setup router
	r := router.NewRouter(
		handler.NewHandler(db, prometheus.DefaultGatherer),
		log,
		router.RouterConfig{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:        cfg.RateLimit.Burst,
			Timeout:          time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORSConfig:       middleware.NewCORSConfig(cfg.CORS.AllowedOrigins, cfg.CORS.AllowCredentials, cfg.CORS.MaxAge),
			MetricsPrefix:    "ward_api",
		},
		censusHandler.NewHandler(censusSvc),
		shiftHandler.NewHandler(classifier),
		admissionHandler.NewHandler(admissionSvc, authMiddleware.Authenticate()),
		notesHandler.NewHandler(notesSvc, authMiddleware.Authenticate()),
		shareHandler.NewHandler(),
	)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	go func() {
		log.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err, "failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "Server forced to shutdown")
	}
	log.Info("Server exited")
}
