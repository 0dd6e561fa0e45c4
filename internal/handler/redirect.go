package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/urlio/urlio-web/internal/render"
)

// RedirectData is the data of the interstitial redirect page.
type RedirectData struct {
	Target string
}

// URLResolver builds absolute backend URLs.
type URLResolver interface {
	ResolveURL(path string) string
}

// RedirectHandler forwards bare short codes to the backend, which owns
// resolution and click counting.
type RedirectHandler struct {
	*Handler
	backend URLResolver
}

// NewRedirectHandler creates a RedirectHandler.
func NewRedirectHandler(h *Handler, backend URLResolver) *RedirectHandler {
	return &RedirectHandler{Handler: h, backend: backend}
}

// Redirect handles GET /{shortCode}. The segment travels as one escaped
// path segment; no resolution happens here.
func (h *RedirectHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	shortCode, ok := shortCodeParam(r)
	if !ok || shortCode == "" {
		h.NotFound(w, r)
		return
	}

	target := h.backend.ResolveURL(url.PathEscape(shortCode))
	h.logger.Debug("forwarding short code", slog.String("short_code", shortCode))

	w.Header().Set("Location", target)

	p := h.page(r, "redirect.redirecting", RedirectData{Target: target})
	p.Refresh = &render.Refresh{URL: target, Seconds: 0}
	h.render(w, r, http.StatusFound, render.PageRedirect, p)
}

// shortCodeParam returns the decoded segment. chi matches on RawPath when
// the request carries a non-canonical escape such as %2F, and the param is
// still escaped in that case.
func shortCodeParam(r *http.Request) (string, bool) {
	code := chi.URLParam(r, "shortCode")
	if r.URL.RawPath == "" {
		return code, true
	}
	decoded, err := url.PathUnescape(code)
	if err != nil {
		return "", false
	}
	return decoded, true
}
