package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/urlio/urlio-web/internal/apiclient"
	"github.com/urlio/urlio-web/internal/config"
	"github.com/urlio/urlio-web/internal/guard"
	"github.com/urlio/urlio-web/internal/handler"
	"github.com/urlio/urlio-web/internal/i18n"
	"github.com/urlio/urlio-web/internal/metrics"
	"github.com/urlio/urlio-web/internal/middleware"
	"github.com/urlio/urlio-web/internal/render"
	"github.com/urlio/urlio-web/internal/session"
)

type routerDeps struct {
	cfg      *config.Config
	logger   *slog.Logger
	api      *apiclient.Client
	catalog  *i18n.Catalog
	renderer *render.Renderer
	store    session.Store
	sessions *session.Manager
	recorder *metrics.InMemoryRecorder
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(d routerDeps) *chi.Mux {
	h := handler.New(d.renderer, d.catalog, d.logger)
	healthHandler := handler.NewHealthHandler(d.store, d.cfg.SessionBackend)
	metricsHandler := handler.NewMetricsHandler(d.recorder)
	homeHandler := handler.NewHomeHandler(h, d.api)
	authHandler := handler.NewAuthHandler(h, d.api, d.sessions, d.cfg.CookieSecure)
	dashboardHandler := handler.NewDashboardHandler(h, d.api)
	qrHandler := handler.NewQRHandler(h, d.cfg.ShortBaseURL)
	adminHandler := handler.NewAdminHandler(h, d.api)
	shareHandler := handler.NewShareHandler(h)
	redirectHandler := handler.NewRedirectHandler(h, d.api)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(d.sessions.Middleware)
	r.Use(middleware.Language(d.catalog))
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger, http.HandlerFunc(h.InternalError), d.cfg.IsDevelopment()))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment:      d.cfg.IsDevelopment(),
		MaxRequestBodySize: d.cfg.MaxRequestBodySize,
	}))
	r.Use(middleware.MaxBodySize(d.cfg.MaxRequestBodySize))
	r.Use(middleware.SameOrigin)
	r.Use(middleware.APIContext)

	// Probes and assets
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)
	r.Handle("/static/*", render.Static())

	// Open to everyone
	r.Get("/", homeHandler.Home)
	r.Post("/shorten", homeHandler.Shorten)
	r.Get("/share", shareHandler.Share)
	r.Post("/logout", authHandler.Logout)
	r.Post("/language", authHandler.SetLanguage)

	requireOf := func(c guard.Category) func(http.Handler) http.Handler {
		return guard.Require(c, d.recorder, d.logger)
	}

	r.Group(func(r chi.Router) {
		r.Use(requireOf(guard.PublicOnly))
		r.Get("/login", authHandler.LoginForm)
		r.Post("/login", authHandler.Login)
		r.Get("/register", authHandler.RegisterForm)
		r.Post("/register", authHandler.Register)
	})

	r.Route("/dashboard", func(r chi.Router) {
		r.Use(requireOf(guard.Authenticated))
		r.Get("/", dashboardHandler.Show)
		r.Post("/shorten", dashboardHandler.Shorten)
		r.Get("/stats/{code}", dashboardHandler.Stats)
		r.Post("/warnings/{id}/read", dashboardHandler.AckWarning)
		r.Get("/qr/{code}.png", qrHandler.Download)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(requireOf(guard.AdminOnly))
		r.Get("/", adminHandler.Show)
		r.Get("/users/{id}/links", adminHandler.UserLinks)
		r.Post("/users/{id}/warn", adminHandler.Warn)
		r.Post("/users/{id}/toggle-status", adminHandler.ToggleStatus)
		r.Post("/password", adminHandler.ChangePassword)
		r.Post("/links/{id}/flag", adminHandler.FlagLink)
		r.Post("/links/{id}/delete", adminHandler.DeleteLink)
	})

	// Bare short codes go to the backend. Registered last so every page
	// route above wins.
	r.Get("/{shortCode}", redirectHandler.Redirect)

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
