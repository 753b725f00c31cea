// Package main is the entrypoint for the PartsDesk API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/partsdesk/partsdesk/internal/auth"
	"github.com/partsdesk/partsdesk/internal/cache"
	"github.com/partsdesk/partsdesk/internal/config"
	"github.com/partsdesk/partsdesk/internal/handler"
	"github.com/partsdesk/partsdesk/internal/metrics"
	"github.com/partsdesk/partsdesk/internal/middleware"
	"github.com/partsdesk/partsdesk/internal/ratelimit"
	"github.com/partsdesk/partsdesk/internal/repository"
	"github.com/partsdesk/partsdesk/internal/server"
	"github.com/partsdesk/partsdesk/internal/service"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL, repository.Options{
		MaxConns:       int32(cfg.DBMaxConns),
		MinConns:       int32(cfg.DBMinConns),
		AcquireTimeout: cfg.DBAcquireTimeout,
	})
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		// Catalog caching fails open, so Redis being down only costs
		// read performance. Submissions must keep working.
		logger.Warn(
			"failed to connect to Redis, catalog cache disabled",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		cacheClient = nil
	} else {
		logger.Info("connected to Redis")
	}

	recorder := metrics.NewInMemory()

	quoteService := service.NewQuoteService(repo, recorder)
	suggestionService := service.NewSuggestionService(repo, recorder)
	contactService := service.NewContactService(repo, recorder)
	partService := service.NewPartService(repo, cacheClient, recorder, cfg.FeaturedPartsLimit)

	tokenIssuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	adminService := service.NewAdminService(tokenIssuer, cfg.AdminEmail, cfg.AdminPasswordHash, recorder)

	base := handler.New(logger, cfg.IsProduction())
	quoteHandler := handler.NewQuoteHandler(base, quoteService)
	suggestionHandler := handler.NewSuggestionHandler(base, suggestionService)
	contactHandler := handler.NewContactHandler(base, contactService)
	partHandler := handler.NewPartHandler(base, partService)
	adminHandler := handler.NewAdminHandler(base, adminService)

	var cacheChecker handler.HealthChecker
	if cacheClient != nil {
		cacheChecker = cacheClient
	}
	healthHandler := handler.NewHealthHandler(repo, cacheChecker, version)

	r := setupRouter(routerDeps{
		base:       base,
		health:     healthHandler,
		quotes:     quoteHandler,
		suggestion: suggestionHandler,
		contact:    contactHandler,
		parts:      partHandler,
		admin:      adminHandler,
		verifier:   auth.NewVerifier(cfg.APIKey, cfg.APISecret, cfg.SignatureWindow),
		limiter:    ratelimit.New(cfg.RateLimitPerKeyMax, cfg.RateLimitPerKeyWindow),
		issuer:     tokenIssuer,
		metrics:    recorder,
		cfg:        cfg,
		logger:     logger,
	})

	srv := server.New(r, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		IdleTimeout:     cfg.IdleTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	srv.OnShutdown("postgres", func(ctx context.Context) error {
		repo.Close()
		return nil
	})
	if cacheClient != nil {
		srv.OnShutdown("redis", func(ctx context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"version", version,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	base       *handler.Handler
	health     *handler.HealthHandler
	quotes     *handler.QuoteHandler
	suggestion *handler.SuggestionHandler
	contact    *handler.ContactHandler
	parts      *handler.PartHandler
	admin      *handler.AdminHandler
	verifier   *auth.Verifier
	limiter    *ratelimit.Limiter
	issuer     *auth.TokenIssuer
	metrics    metrics.Recorder
	cfg        *config.Config
	logger     *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = d.cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	// Coarse per-IP limit over everything, keyed on RealIP.
	r.Use(httprate.LimitByIP(d.cfg.RateLimitGlobalMax, d.cfg.RateLimitGlobalWindow))

	// Health endpoints (no auth required)
	r.Get("/health", d.health.Health)
	r.Get("/health/detailed", d.health.Detailed)
	r.Get("/health/ready", d.health.Ready)
	r.Get("/health/live", d.health.Live)

	signatureCfg := middleware.SignatureConfig{
		Logger:      d.logger,
		Verifier:    d.verifier,
		Metrics:     d.metrics,
		MaxBodySize: d.cfg.MaxRequestBodySize,
	}

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:  d.logger,
		Limiter: d.limiter,
		Metrics: d.metrics,
		Enabled: d.cfg.RateLimitPerKeyEnabled,
	}

	adminCfg := middleware.AdminConfig{
		Logger: d.logger,
		Issuer: d.issuer,
	}

	r.Route("/api", func(r chi.Router) {
		// Admin auth is bearer-token based, not storefront-signed.
		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", d.admin.Login)
			r.With(middleware.AdminAuth(adminCfg)).Get("/verify", d.admin.Verify)
		})

		// Everything else requires a signed storefront request.
		r.Group(func(r chi.Router) {
			r.Use(middleware.SignatureAuth(signatureCfg))
			r.Use(middleware.RateLimitPerKey(rateLimitCfg))

			r.Route("/quotes", func(r chi.Router) {
				r.Post("/", d.quotes.Submit)
				r.Get("/", d.quotes.List)
				r.Get("/{referenceID}", d.quotes.Get)
				r.With(middleware.AdminAuth(adminCfg)).Patch("/{referenceID}", d.quotes.UpdateStatus)
			})

			r.Route("/suggestions", func(r chi.Router) {
				r.Post("/", d.suggestion.Submit)
				r.Get("/", d.suggestion.List)
				r.Get("/{referenceID}", d.suggestion.Get)
				r.With(middleware.AdminAuth(adminCfg)).Patch("/{referenceID}", d.suggestion.UpdateStatus)
			})

			r.Route("/contact-support", func(r chi.Router) {
				r.Post("/", d.contact.Submit)
				r.Get("/", d.contact.List)
				r.Get("/{referenceID}", d.contact.Get)
				r.With(middleware.AdminAuth(adminCfg)).Patch("/{referenceID}", d.contact.UpdateStatus)
			})

			r.Route("/parts", func(r chi.Router) {
				r.Get("/", d.parts.List)
				r.Get("/featured", d.parts.Featured)
				r.Get("/meta/categories", d.parts.Categories)
				r.Get("/meta/manufacturers", d.parts.Manufacturers)
				r.Get("/{identifier}", d.parts.Get)
			})
		})
	})

	// 404 and 405 handlers
	r.NotFound(d.base.NotFound)
	r.MethodNotAllowed(d.base.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
