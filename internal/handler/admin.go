package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/urlio/urlio-web/internal/apiclient"
	"github.com/urlio/urlio-web/internal/guard"
	"github.com/urlio/urlio-web/internal/model"
	"github.com/urlio/urlio-web/internal/render"
	"github.com/urlio/urlio-web/internal/session"
	"github.com/urlio/urlio-web/internal/view"
)

// Admin page constants.
const (
	// MinPasswordLength is the shortest admin password accepted locally.
	MinPasswordLength = 6
	// AdminRedirectDelay is how long the access notice shows, in seconds.
	AdminRedirectDelay = 2
)

// AdminAPI is the backend surface of the admin dashboard.
type AdminAPI interface {
	AdminDashboard(ctx context.Context) (*model.AdminDashboard, error)
	AdminUserLinks(ctx context.Context, userID int64) ([]model.ShortLink, error)
	WarnUser(ctx context.Context, userID int64, req apiclient.WarnRequest) (model.Message, error)
	ToggleUserStatus(ctx context.Context, userID int64) (*apiclient.ToggleResult, error)
	ChangePassword(ctx context.Context, newPassword string) (model.Message, error)
	FlagLink(ctx context.Context, linkID int64) (model.Message, error)
	DeleteLink(ctx context.Context, linkID int64) (model.Message, error)
}

// AdminHandler serves the admin dashboard. Every action is followed by a
// fresh snapshot; no row is ever patched locally.
type AdminHandler struct {
	*Handler
	api AdminAPI
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(h *Handler, api AdminAPI) *AdminHandler {
	return &AdminHandler{Handler: h, api: api}
}

// precheck re-checks the cached admin flag before any backend call. The
// backend's 403 stays authoritative; this only spares a round trip.
func (h *AdminHandler) precheck(w http.ResponseWriter, r *http.Request) (*view.Admin, bool) {
	a := view.NewAdmin()
	if !session.FromContext(r.Context()).IsAdmin() {
		a.Deny(h.t(r, "admin.messages.adminRequired"), guard.DashboardPath)
		h.show(w, r, a)
		return nil, false
	}
	return a, true
}

// load fetches the snapshot into a. A 403 turns into the timed redirect
// to the dashboard; any other failure into the access-denied notice.
func (h *AdminHandler) load(r *http.Request, a *view.Admin) bool {
	a.BeginLoad()
	data, err := h.api.AdminDashboard(r.Context())
	if err != nil {
		h.logger.Warn("loading admin dashboard failed", slog.String("error", err.Error()))
		if apiclient.IsForbidden(err) {
			a.Deny(h.t(r, "admin.messages.adminRequired"), guard.DashboardPath)
		} else {
			a.LoadFailed()
		}
		return false
	}
	a.Loaded(data)
	return true
}

// selectUser opens the links modal for userID on a loaded snapshot.
func (h *AdminHandler) selectUser(r *http.Request, a *view.Admin, userID int64) {
	username := ""
	if u := a.Data.User(userID); u != nil {
		username = u.Username
	}
	a.SelectUser(userID, username)

	links, err := h.api.AdminUserLinks(r.Context(), userID)
	if err != nil {
		h.logger.Warn("loading user links failed",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
	a.UserLinksLoaded(links, err)
}

func (h *AdminHandler) show(w http.ResponseWriter, r *http.Request, a *view.Admin) {
	p := h.page(r, "admin.meta.title", a)
	p.Path = guard.AdminPath
	if a.RedirectTo != "" {
		p.Refresh = &render.Refresh{URL: a.RedirectTo, Seconds: AdminRedirectDelay}
	}
	if a.Banner != "" {
		p.Banner = infoBanner(a.Banner)
	}
	h.render(w, r, http.StatusOK, render.PageAdmin, p)
}

// Show renders the admin dashboard.
// GET /admin
func (h *AdminHandler) Show(w http.ResponseWriter, r *http.Request) {
	a, ok := h.precheck(w, r)
	if !ok {
		return
	}
	h.load(r, a)
	h.show(w, r, a)
}

// UserLinks refetches the snapshot and opens one user's links.
// GET /admin/users/{id}/links
func (h *AdminHandler) UserLinks(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	a, ok := h.precheck(w, r)
	if !ok {
		return
	}
	if h.load(r, a) {
		h.selectUser(r, a, userID)
	}
	h.show(w, r, a)
}

// Warn sends a warning to a user. A blank message never reaches the
// backend.
// POST /admin/users/{id}/warn
func (h *AdminHandler) Warn(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	a, ok := h.precheck(w, r)
	if !ok {
		return
	}

	message := strings.TrimSpace(r.PostFormValue("message"))
	req := apiclient.WarnRequest{Message: message}
	if raw := r.PostFormValue("url_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			req.URLID = &id
		}
	}

	if message == "" {
		if h.load(r, a) {
			h.selectUser(r, a, userID)
			a.Alert = h.t(r, "admin.warning.required")
		}
		h.show(w, r, a)
		return
	}

	msg, err := h.api.WarnUser(r.Context(), userID, req)
	if !h.load(r, a) {
		h.show(w, r, a)
		return
	}
	if err != nil {
		h.logger.Warn("sending warning failed",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()),
		)
		h.selectUser(r, a, userID)
		a.Alert = h.errorText(r, err, "admin.warning.error")
		h.show(w, r, a)
		return
	}

	a.ClearSelection()
	a.Banner = msg.Resolve(h.lang(r))
	h.show(w, r, a)
}

// ToggleStatus flips a user's active flag, then shows the refetched row.
// POST /admin/users/{id}/toggle-status
func (h *AdminHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	a, ok := h.precheck(w, r)
	if !ok {
		return
	}

	result, err := h.api.ToggleUserStatus(r.Context(), userID)
	if !h.load(r, a) {
		h.show(w, r, a)
		return
	}
	if err != nil {
		h.logger.Warn("toggling user status failed",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()),
		)
		a.Alert = h.errorText(r, err, "admin.users.statusError")
	} else {
		a.Banner = result.Message.Resolve(h.lang(r))
	}
	h.show(w, r, a)
}

// ChangePassword changes the admin password. Passwords shorter than
// MinPasswordLength never reach the backend.
// POST /admin/password
func (h *AdminHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	a, ok := h.precheck(w, r)
	if !ok {
		return
	}

	password := r.PostFormValue("new_password")
	if utf8.RuneCountInString(password) < MinPasswordLength {
		if h.load(r, a) {
			a.Alert = h.t(r, "admin.password.minLength")
		}
		h.show(w, r, a)
		return
	}

	msg, err := h.api.ChangePassword(r.Context(), password)
	if !h.load(r, a) {
		h.show(w, r, a)
		return
	}
	if err != nil {
		h.logger.Warn("changing password failed", slog.String("error", err.Error()))
		a.Alert = h.errorText(r, err, "admin.password.error")
	} else {
		a.Banner = msg.Resolve(h.lang(r))
	}
	h.show(w, r, a)
}

// FlagLink marks a link as inappropriate.
// POST /admin/links/{id}/flag
func (h *AdminHandler) FlagLink(w http.ResponseWriter, r *http.Request) {
	h.linkAction(w, r, "flagging link failed", h.api.FlagLink)
}

// DeleteLink removes a link.
// POST /admin/links/{id}/delete
func (h *AdminHandler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	h.linkAction(w, r, "deleting link failed", h.api.DeleteLink)
}

// linkAction runs a per-link moderation call, refetches, and reopens the
// user modal the action came from, if any.
func (h *AdminHandler) linkAction(w http.ResponseWriter, r *http.Request, failure string, call func(context.Context, int64) (model.Message, error)) {
	linkID, ok := idParam(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	a, ok := h.precheck(w, r)
	if !ok {
		return
	}

	msg, err := call(r.Context(), linkID)
	if !h.load(r, a) {
		h.show(w, r, a)
		return
	}
	if userID, perr := strconv.ParseInt(r.PostFormValue("user_id"), 10, 64); perr == nil && userID > 0 {
		h.selectUser(r, a, userID)
	}
	if err != nil {
		h.logger.Warn(failure,
			slog.Int64("link_id", linkID),
			slog.String("error", err.Error()),
		)
		a.Alert = h.errorText(r, err, "admin.links.error")
	} else {
		a.Banner = msg.Resolve(h.lang(r))
	}
	h.show(w, r, a)
}
