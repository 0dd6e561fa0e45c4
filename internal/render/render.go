// Package render executes the embedded page templates.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"

	"github.com/urlio/urlio-web/internal/i18n"
	"github.com/urlio/urlio-web/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names.
const (
	PageHome         = "home"
	PageLogin        = "login"
	PageRegister     = "register"
	PageDashboard    = "dashboard"
	PageAdmin        = "admin"
	PageRedirect     = "redirect"
	PageShareConfirm = "share_confirm"
	PageShareOpen    = "share_open"
	PageError        = "error"
)

var pageNames = []string{
	PageHome, PageLogin, PageRegister, PageDashboard, PageAdmin,
	PageRedirect, PageShareConfirm, PageShareOpen, PageError,
}

// BannerKind selects banner styling.
type BannerKind string

const (
	BannerInfo  BannerKind = "info"
	BannerError BannerKind = "error"
)

// Banner is an inline notice at the top of the page.
type Banner struct {
	Kind BannerKind
	Text string
}

// Refresh is a timed client-side redirect.
type Refresh struct {
	URL     string
	Seconds int
}

// Page is the data every template receives.
type Page struct {
	Lang      string
	Languages []string
	Session   *model.Session
	Path      string

	// Title and Description are translation keys.
	Title       string
	Description string

	Banner  *Banner
	Refresh *Refresh
	Data    any

	catalog *i18n.Catalog
}

// T translates key into the page language.
func (p *Page) T(key string) string {
	return p.catalog.T(p.Lang, key)
}

// Tf translates key and substitutes args.
func (p *Page) Tf(key string, args ...any) string {
	return p.catalog.Tf(p.Lang, key, args...)
}

// Number formats n with the page language's digit grouping.
func (p *Page) Number(n int64) string {
	return i18n.FormatNumber(p.Lang, n)
}

// Date formats a backend timestamp, or returns "-" when unset.
func (p *Page) Date(ts model.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	if p.Lang == "en" {
		return ts.Format("Jan 2, 2006 15:04")
	}
	return ts.Format("02.01.2006 15:04")
}

// Msg resolves a backend message in the page language.
func (p *Page) Msg(m model.Message) string {
	return m.Resolve(p.Lang)
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages   map[string]*template.Template
	catalog *i18n.Catalog
	logger  *slog.Logger
}

// New parses the embedded templates.
func New(catalog *i18n.Catalog, logger *slog.Logger) (*Renderer, error) {
	layout, err := template.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout: %w", err)
		}
		tpl, err := clone.ParseFS(templateFS, path.Join("templates", name+".html"))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = tpl
	}

	return &Renderer{pages: pages, catalog: catalog, logger: logger}, nil
}

// Render writes page name with status. Templates run into a buffer first
// so a failing template never produces a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, p *Page) {
	tpl, ok := r.pages[name]
	if !ok {
		r.logger.Error("unknown page", slog.String("page", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	p.catalog = r.catalog
	if p.Session == nil {
		p.Session = &model.Session{}
	}
	if p.Languages == nil {
		p.Languages = r.catalog.Languages()
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout", p); err != nil {
		r.logger.Error("render failed", slog.String("page", name), slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Static serves the embedded scripts and styles under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
