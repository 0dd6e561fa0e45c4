package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"
)

// QRSize is the edge length of the generated PNG in pixels.
const QRSize = 256

// qrCodePattern bounds what can end up in the download filename.
var qrCodePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,32}$`)

// QRHandler serves QR codes for short links.
type QRHandler struct {
	*Handler
	shortBaseURL string
}

// NewQRHandler creates a QRHandler. Codes encode shortBaseURL/<code>.
func NewQRHandler(h *Handler, shortBaseURL string) *QRHandler {
	return &QRHandler{Handler: h, shortBaseURL: strings.TrimRight(shortBaseURL, "/")}
}

// Download returns the QR code PNG as an attachment.
// GET /dashboard/qr/{code}.png
func (h *QRHandler) Download(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if !qrCodePattern.MatchString(code) {
		h.NotFound(w, r)
		return
	}

	png, err := qrcode.Encode(h.shortBaseURL+"/"+code, qrcode.Medium, QRSize)
	if err != nil {
		h.logger.Error("qr encode failed",
			slog.String("short_code", code),
			slog.String("error", err.Error()),
		)
		h.renderError(w, r, http.StatusInternalServerError, "errors.qr")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="urlio-in-qr-%s.png"`, code))
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
