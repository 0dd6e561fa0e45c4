package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/urlio/urlio-web/internal/model"
	"github.com/urlio/urlio-web/internal/render"
	"github.com/urlio/urlio-web/internal/session"
)

// Headline counters shown on the landing page. They are marketing copy,
// not live data.
const (
	headlineLinks     = 125000
	headlineClicks    = 4500000
	headlineCountries = 180
)

var (
	homeFeatures = []string{"shortLinks", "analytics", "geo", "qr", "fast", "secure"}
	homeSteps    = []string{"step1", "step2", "step3"}
	homeUseCases = []string{"social", "email", "marketing", "business"}
)

// HomeStats are the headline counters.
type HomeStats struct {
	Links     int64
	Clicks    int64
	Countries int64
}

// HomeData is the data of the landing page.
type HomeData struct {
	Stats    HomeStats
	Features []string
	Steps    []string
	UseCases []string

	URL    string
	Result *model.ShortenResult
}

func newHomeData() HomeData {
	return HomeData{
		Stats:    HomeStats{Links: headlineLinks, Clicks: headlineClicks, Countries: headlineCountries},
		Features: homeFeatures,
		Steps:    homeSteps,
		UseCases: homeUseCases,
	}
}

// HomeHandler serves the landing page.
type HomeHandler struct {
	*Handler
	api ShortenAPI
}

// NewHomeHandler creates a HomeHandler.
func NewHomeHandler(h *Handler, api ShortenAPI) *HomeHandler {
	return &HomeHandler{Handler: h, api: api}
}

func (h *HomeHandler) homePage(r *http.Request, data HomeData) *render.Page {
	p := h.page(r, "home.meta.title", data)
	p.Description = "home.meta.description"
	return p
}

// Home renders the landing page.
// GET /
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, render.PageHome, h.homePage(r, newHomeData()))
}

// Shorten handles the quick-shorten form on the landing page.
// POST /shorten
func (h *HomeHandler) Shorten(w http.ResponseWriter, r *http.Request) {
	data := newHomeData()
	data.URL = strings.TrimSpace(r.PostFormValue("url"))
	p := h.homePage(r, data)

	if data.URL == "" {
		p.Banner = errorBanner(h.t(r, "dashboard.shorten.required"))
		h.render(w, r, http.StatusOK, render.PageHome, p)
		return
	}

	result, err := shortenFor(r.Context(), h.api, session.FromContext(r.Context()), data.URL)
	if err != nil {
		h.logger.Warn("shorten failed", slog.String("error", err.Error()))
		p.Banner = errorBanner(h.errorText(r, err, "dashboard.shorten.failed"))
		h.render(w, r, http.StatusOK, render.PageHome, p)
		return
	}

	data.URL = ""
	data.Result = result
	p.Data = data
	if text := result.Message.Resolve(p.Lang); text != "" {
		p.Banner = infoBanner(text)
	}
	h.render(w, r, http.StatusOK, render.PageHome, p)
}
