package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/medflow/translation-backend/internal/translation/events"
	"github.com/medflow/translation-backend/internal/translation/handler"
	"github.com/medflow/translation-backend/internal/translation/patterns"
	"github.com/medflow/translation-backend/internal/translation/repository"
	"github.com/medflow/translation-backend/internal/translation/service"
	"github.com/medflow/translation-backend/internal/translation/translator"
	"github.com/medflow/translation-backend/pkg/cache"
	"github.com/medflow/translation-backend/pkg/config"
	"github.com/medflow/translation-backend/pkg/database"
	"github.com/medflow/translation-backend/pkg/httputil"
	"github.com/medflow/translation-backend/pkg/logger"
	"github.com/medflow/translation-backend/pkg/messaging"
	"github.com/medflow/translation-backend/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithValidation("translation-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("translation-service", cfg.Server.Environment)
	log.Info().Msg("starting Translation Service")

	// Connect to database (audit trail only; clinical text is never stored)
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Connect to RabbitMQ
	rmq, err := messaging.New(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer rmq.Close()

	// Disclaimer table; a YAML file extends the built-in languages
	disclaimers := patterns.NewDisclaimers()
	if cfg.Translator.DisclaimersFile != "" {
		disclaimers, err = patterns.LoadDisclaimers(cfg.Translator.DisclaimersFile)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load disclaimers file")
		}
	}

	m := metrics.New()

	// Translator stack: HTTP engine, bounded and timed, optionally cached
	var tr translator.Translator = translator.NewHTTPTranslator(cfg.Translator.URL)
	tr = translator.NewGuarded(tr, cfg.Translator.MaxConcurrent, cfg.Translator.Timeout)

	if cfg.Redis.Addr != "" {
		redisCache, err := cache.New(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer redisCache.Close()
		tr = translator.NewCached(tr, redisCache, cfg.Translator.CacheTTL, m)
	}

	eventPublisher, err := events.NewTranslationEventPublisher(rmq, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event publisher")
	}

	auditRepo := repository.NewAuditRepository(db)

	svc := service.New(service.Config{
		Translator:  tr,
		Disclaimers: disclaimers,
		Workers:     cfg.Pipeline.Workers,
		Metrics:     m,
		Audit:       auditRepo,
		Events:      eventPublisher,
		Logger:      log,
	})

	translationHandler := handler.NewHandler(svc, auditRepo, m, log)

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"service":  "translation-service",
			"database": db.Health(r.Context()),
			"rabbitmq": rmq.Health(),
		})
	})

	// Prometheus exposition
	r.Method(http.MethodGet, "/metrics", m.Handler())

	// Translation routes
	translationHandler.RegisterRoutes(r)

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
