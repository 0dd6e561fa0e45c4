package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/urlio/urlio-web/internal/model"
	"github.com/urlio/urlio-web/internal/render"
	"github.com/urlio/urlio-web/internal/session"
	"github.com/urlio/urlio-web/internal/share"
	"github.com/urlio/urlio-web/internal/view"
)

// DashboardAPI is the backend surface of the user dashboard.
type DashboardAPI interface {
	ShortenAPI
	Stats(ctx context.Context, shortCode string) (*model.ClickStats, error)
	Links(ctx context.Context) ([]model.ShortLink, error)
	Warnings(ctx context.Context) ([]model.Warning, error)
	MarkWarningRead(ctx context.Context, warningID int64) error
}

// DashboardData is the data of the dashboard page.
type DashboardData struct {
	View      *view.Dashboard
	Username  string
	Platforms []string
}

// DashboardHandler serves the user dashboard.
type DashboardHandler struct {
	*Handler
	api DashboardAPI
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(h *Handler, api DashboardAPI) *DashboardHandler {
	return &DashboardHandler{Handler: h, api: api}
}

// mount loads links and warnings concurrently. Each list settles on its
// own; a failure in one never cancels or hides the other.
func (h *DashboardHandler) mount(ctx context.Context) *view.Dashboard {
	d := view.NewDashboard()
	d.BeginMount()

	var (
		g           errgroup.Group
		links       []model.ShortLink
		linksErr    error
		warnings    []model.Warning
		warningsErr error
	)
	g.Go(func() error {
		links, linksErr = h.api.Links(ctx)
		return nil
	})
	g.Go(func() error {
		warnings, warningsErr = h.api.Warnings(ctx)
		return nil
	})
	_ = g.Wait()

	if linksErr != nil {
		h.logger.Warn("loading links failed", slog.String("error", linksErr.Error()))
	}
	if warningsErr != nil {
		h.logger.Warn("loading warnings failed", slog.String("error", warningsErr.Error()))
	}
	d.LinksLoaded(links, linksErr)
	d.WarningsLoaded(warnings, warningsErr)
	return d
}

func (h *DashboardHandler) show(w http.ResponseWriter, r *http.Request, d *view.Dashboard, banner *render.Banner) {
	username := ""
	if u := session.FromContext(r.Context()).User; u != nil {
		username = u.Username
	}

	p := h.page(r, "dashboard.meta.title", DashboardData{
		View:      d,
		Username:  username,
		Platforms: share.Platforms(),
	})
	p.Path = "/dashboard"
	p.Banner = banner
	h.render(w, r, http.StatusOK, render.PageDashboard, p)
}

// Show renders the dashboard.
// GET /dashboard
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.show(w, r, h.mount(r.Context()), nil)
}

// Shorten creates a link and prepends it to the list.
// POST /dashboard/shorten
func (h *DashboardHandler) Shorten(w http.ResponseWriter, r *http.Request) {
	value := strings.TrimSpace(r.PostFormValue("url"))
	d := h.mount(r.Context())

	if !d.BeginSubmit(value) {
		h.show(w, r, d, errorBanner(h.t(r, "dashboard.shorten.required")))
		return
	}

	result, err := shortenFor(r.Context(), h.api, session.FromContext(r.Context()), value)
	if err != nil {
		h.logger.Warn("shorten failed", slog.String("error", err.Error()))
		text := h.errorText(r, err, "dashboard.shorten.failed")
		d.SubmitFailed()
		h.show(w, r, d, errorBanner(text))
		return
	}

	text := result.Message.Resolve(h.lang(r))
	d.SubmitSucceeded(result.ShortLink)
	var banner *render.Banner
	if text != "" {
		banner = infoBanner(text)
	}
	h.show(w, r, d, banner)
}

// Stats opens the analytics modal. Stats are fetched fresh on every open.
// GET /dashboard/stats/{code}
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		h.NotFound(w, r)
		return
	}
	d := h.mount(r.Context())

	stats, err := h.api.Stats(r.Context(), code)
	if err != nil {
		h.logger.Warn("loading stats failed",
			slog.String("short_code", code),
			slog.String("error", err.Error()),
		)
		h.show(w, r, d, errorBanner(h.errorText(r, err, "dashboard.stats.failed")))
		return
	}

	d.OpenStats(code, stats)
	h.show(w, r, d, nil)
}

// AckWarning marks a warning read. The warning leaves the list only once
// the backend accepted the acknowledgement.
// POST /dashboard/warnings/{id}/read
func (h *DashboardHandler) AckWarning(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}

	d := h.mount(r.Context())
	if err := h.api.MarkWarningRead(r.Context(), id); err != nil {
		h.logger.Warn("acknowledging warning failed",
			slog.Int64("warning_id", id),
			slog.String("error", err.Error()),
		)
		h.show(w, r, d, nil)
		return
	}

	d.Acknowledged(id)
	h.show(w, r, d, nil)
}
