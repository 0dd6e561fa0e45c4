// Package main is the entrypoint for the urlio.in web frontend.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/urlio/urlio-web/internal/apiclient"
	"github.com/urlio/urlio-web/internal/config"
	"github.com/urlio/urlio-web/internal/i18n"
	"github.com/urlio/urlio-web/internal/metrics"
	"github.com/urlio/urlio-web/internal/render"
	"github.com/urlio/urlio-web/internal/server"
	"github.com/urlio/urlio-web/internal/session"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	store, err := newSessionStore(ctx, cfg)
	if err != nil {
		logger.Error(
			"failed to initialize session store",
			slog.String("backend", cfg.SessionBackend),
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	logger.Info("session store ready", slog.String("backend", cfg.SessionBackend))

	recorder := metrics.NewInMemory()

	api, err := apiclient.New(apiclient.Options{
		BaseURL:         cfg.APIURL,
		DefaultLanguage: cfg.DefaultLanguage,
		Timeout:         cfg.APITimeout,
		Recorder:        recorder,
	})
	if err != nil {
		logger.Error("failed to create API client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	catalog, err := i18n.Load(cfg.DefaultLanguage)
	if err != nil {
		logger.Error("failed to load translations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	renderer, err := render.New(catalog, logger)
	if err != nil {
		logger.Error("failed to parse templates", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sessions := session.NewManager(store, session.Options{
		CookieName: cfg.SessionCookieName,
		TTL:        cfg.SessionTTL,
		Secure:     cfg.CookieSecure,
	}, recorder, logger)

	r := setupRouter(routerDeps{
		cfg:      cfg,
		logger:   logger,
		api:      api,
		catalog:  catalog,
		renderer: renderer,
		store:    store,
		sessions: sessions,
		recorder: recorder,
	})

	srv := server.New(r, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)
	srv.OnShutdown("session store", func(ctx context.Context) error {
		return store.Close()
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"api_url", redactURL(cfg.APIURL),
		"env", cfg.AppEnv,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// newSessionStore builds the store selected by SESSION_BACKEND.
func newSessionStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	if cfg.SessionBackend == config.SessionBackendRedis {
		return session.NewRedisStore(ctx, cfg.RedisURL)
	}
	return session.NewMemoryStore(), nil
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
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
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
