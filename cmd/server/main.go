package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/brookfield-academy/site-server-go/internal/config"
	"github.com/brookfield-academy/site-server-go/internal/database"
	"github.com/brookfield-academy/site-server-go/internal/handler"
	"github.com/brookfield-academy/site-server-go/internal/jobs"
	"github.com/brookfield-academy/site-server-go/internal/middleware"
	"github.com/brookfield-academy/site-server-go/internal/redis"
	"github.com/brookfield-academy/site-server-go/internal/repository"
	"github.com/brookfield-academy/site-server-go/internal/service"
	"github.com/brookfield-academy/site-server-go/internal/storage"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := os.Getenv("APP_ENV") == "production"
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	db, err := database.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()
	log.Info().Msg("database connected")

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	credentialRepo := repository.NewAdminCredentialRepository(db.DB)
	adminSessionRepo := repository.NewAdminSessionRepository(db.DB)
	inquiryRepo := repository.NewInquiryRepository(db.DB)
	galleryRepo := repository.NewGalleryRepository(db.DB)
	contentRepo := repository.NewContentRepository(db.DB)

	contentCache := redis.NewContentCache(redisClient.Client, cfg.ContentCacheTTL())

	// A nil signer must stay an untyped nil so the data service sees it as absent.
	var uploads service.UploadURLSigner
	if cfg.Storage.Enabled() {
		signer, err := storage.NewUploadSigner(cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create upload signer")
		}
		uploads = signer
		log.Info().Str("bucket", cfg.Storage.Bucket).Msg("image uploads enabled")
	} else {
		log.Warn().Msg("STORAGE_* not configured: create-upload-url is disabled")
	}

	gate := service.NewSessionGate(adminSessionRepo, cfg.AdminSessionSecret)
	authService := service.NewAuthService(db, credentialRepo, adminSessionRepo, gate, service.AuthOptions{
		SessionSecret:                  cfg.AdminSessionSecret,
		EncryptionKey:                  cfg.EncryptionKey,
		RevokeSessionsOnPasswordChange: cfg.RevokeSessionsOnPasswordChange,
	})
	dataService := service.NewAdminDataService(gate, inquiryRepo, galleryRepo, contentRepo, uploads, contentCache)
	siteService := service.NewSiteService(inquiryRepo, galleryRepo, contentRepo, contentCache)

	authHandler := handler.NewAuthHandler(authService)
	dataHandler := handler.NewDataHandler(dataService)
	siteHandler := handler.NewSiteHandler(siteService)

	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)
	securityHeadersMiddleware := middleware.NewSecurityHeadersMiddleware(isProduction)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		body := map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		}

		pingCtx, cancel := context.WithTimeout(r.Context(), config.DBPingTimeout)
		defer cancel()
		if err := db.Ping(pingCtx); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["database"] = "unreachable"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/functions", func(r chi.Router) {
		r.Use(middleware.CORS)
		r.Use(securityHeadersMiddleware.Handler)
		r.Use(middleware.NoStore)
		r.Mount("/admin-auth", authHandler.Routes())
		r.Mount("/admin-data", dataHandler.Routes())
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CORS)
		r.Use(securityHeadersMiddleware.Handler)
		r.Mount("/", siteHandler.Routes())
	})

	cleanupJob := jobs.NewCleanupJob(adminSessionRepo, config.CleanupJobInterval)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
