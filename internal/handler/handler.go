// Package handler provides the HTTP page handlers.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/urlio/urlio-web/internal/apiclient"
	"github.com/urlio/urlio-web/internal/i18n"
	"github.com/urlio/urlio-web/internal/middleware"
	"github.com/urlio/urlio-web/internal/model"
	"github.com/urlio/urlio-web/internal/render"
	"github.com/urlio/urlio-web/internal/session"
)

// SessionWriter is the session mutation surface handlers use.
type SessionWriter interface {
	Save(w http.ResponseWriter, r *http.Request, sess *model.Session) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

// ShortenAPI creates short links.
type ShortenAPI interface {
	PublicShorten(ctx context.Context, originalURL string) (*model.ShortenResult, error)
	Shorten(ctx context.Context, originalURL string) (*model.ShortenResult, error)
}

// ErrorData is the data of the error page.
type ErrorData struct {
	MessageKey string
}

// Handler carries what every page handler needs to render.
type Handler struct {
	renderer *render.Renderer
	catalog  *i18n.Catalog
	logger   *slog.Logger
}

// New creates a Handler.
func New(renderer *render.Renderer, catalog *i18n.Catalog, logger *slog.Logger) *Handler {
	return &Handler{renderer: renderer, catalog: catalog, logger: logger}
}

// NotFound renders the 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, "errors.notFound")
}

// MethodNotAllowed renders the 405 page.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusMethodNotAllowed, "errors.methodNotAllowed")
}

// InternalError renders the 500 page. It is the panic fallback.
func (h *Handler) InternalError(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusInternalServerError, "errors.generic")
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, key string) {
	h.render(w, r, status, render.PageError, h.page(r, "", ErrorData{MessageKey: key}))
}

// page builds the common page data for r.
func (h *Handler) page(r *http.Request, title string, data any) *render.Page {
	return &render.Page{
		Lang:    h.lang(r),
		Session: session.FromContext(r.Context()),
		Path:    r.URL.Path,
		Title:   title,
		Data:    data,
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, p *render.Page) {
	h.renderer.Render(w, status, name, p)
}

func (h *Handler) lang(r *http.Request) string {
	if lang := middleware.GetLanguage(r.Context()); lang != "" {
		return lang
	}
	lang, _ := h.catalog.Normalize("")
	return lang
}

func (h *Handler) t(r *http.Request, key string) string {
	return h.catalog.T(h.lang(r), key)
}

// errorText turns a backend failure into banner text: the backend's own
// message when it sent one, the network notice when nothing came back,
// the fallback key otherwise.
func (h *Handler) errorText(r *http.Request, err error, fallbackKey string) string {
	if msg, ok := apiclient.MessageOf(err); ok {
		return msg.Resolve(h.lang(r))
	}
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		return h.t(r, "errors.network")
	}
	return h.t(r, fallbackKey)
}

func errorBanner(text string) *render.Banner {
	return &render.Banner{Kind: render.BannerError, Text: text}
}

func infoBanner(text string) *render.Banner {
	return &render.Banner{Kind: render.BannerInfo, Text: text}
}

// idParam parses a positive integer URL parameter.
func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// shortenFor picks the endpoint from the session: a token means the
// authenticated endpoint, no token means the public one.
func shortenFor(ctx context.Context, api ShortenAPI, sess *model.Session, originalURL string) (*model.ShortenResult, error) {
	if sess.Authenticated() {
		return api.Shorten(ctx, originalURL)
	}
	return api.PublicShorten(ctx, originalURL)
}

// safeNext returns next when it is a same-site absolute path, else "/".
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
