package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/urlio/urlio-web/internal/render"
	"github.com/urlio/urlio-web/internal/share"
)

// ShareData is the data of the share pages.
type ShareData struct {
	Platform string
	URL      string
	ShareURL string
}

// ShareHandler sends a short link to a social platform.
type ShareHandler struct {
	*Handler
}

// NewShareHandler creates a ShareHandler.
func NewShareHandler(h *Handler) *ShareHandler {
	return &ShareHandler{Handler: h}
}

// Share handles GET /share?platform=&url=[&confirm=1]. Loopback targets
// on platforms that fetch the link themselves ask for confirmation first.
func (h *ShareHandler) Share(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	platform := strings.ToLower(q.Get("platform"))
	target := strings.TrimSpace(q.Get("url"))
	data := ShareData{Platform: platform, URL: target}

	if target == "" {
		h.renderError(w, r, http.StatusBadRequest, "share.unknown")
		return
	}

	shareURL, err := share.Link(platform, target, h.t(r, "app.name"))
	if err != nil {
		if errors.Is(err, share.ErrUnknownPlatform) {
			h.renderError(w, r, http.StatusBadRequest, "share.unknown")
			return
		}
		h.renderError(w, r, http.StatusInternalServerError, "errors.generic")
		return
	}

	if share.NeedsConfirmation(platform, target) && q.Get("confirm") == "" {
		h.render(w, r, http.StatusOK, render.PageShareConfirm, h.page(r, "share.title", data))
		return
	}

	data.ShareURL = shareURL
	w.Header().Set("Location", shareURL)
	h.render(w, r, http.StatusFound, render.PageShareOpen, h.page(r, "share.title", data))
}
