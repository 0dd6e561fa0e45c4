package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/urlio/urlio-web/internal/apiclient"
	"github.com/urlio/urlio-web/internal/guard"
	"github.com/urlio/urlio-web/internal/middleware"
	"github.com/urlio/urlio-web/internal/model"
	"github.com/urlio/urlio-web/internal/render"
)

// languageCookieMaxAge keeps the language choice for a year.
const languageCookieMaxAge = 365 * 24 * time.Hour

// AuthAPI is the backend surface for login and registration.
type AuthAPI interface {
	Login(ctx context.Context, req apiclient.LoginRequest) (*apiclient.LoginResponse, error)
	Register(ctx context.Context, req apiclient.RegisterRequest) (*apiclient.RegisterResponse, error)
}

// AuthData is the data of the login and register forms. Passwords are
// never echoed back.
type AuthData struct {
	Username          string
	Email             string
	PreferredLanguage string
}

// AuthHandler serves login, registration, logout and the language switch.
type AuthHandler struct {
	*Handler
	api      AuthAPI
	sessions SessionWriter
	secure   bool
}

// NewAuthHandler creates an AuthHandler. secure marks the language
// cookie Secure.
func NewAuthHandler(h *Handler, api AuthAPI, sessions SessionWriter, secure bool) *AuthHandler {
	return &AuthHandler{Handler: h, api: api, sessions: sessions, secure: secure}
}

// LoginForm renders the login page.
// GET /login
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, render.PageLogin, h.page(r, "auth.login.title", AuthData{}))
}

// Login exchanges credentials for a session.
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	data := AuthData{Username: strings.TrimSpace(r.PostFormValue("username"))}

	resp, err := h.api.Login(r.Context(), apiclient.LoginRequest{
		Username: data.Username,
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		h.logger.Info("login failed", slog.String("error", err.Error()))
		p := h.page(r, "auth.login.title", data)
		p.Banner = errorBanner(h.errorText(r, err, "auth.login.failed"))
		h.render(w, r, http.StatusOK, render.PageLogin, p)
		return
	}

	user := resp.User
	if user == nil {
		user = &model.User{Username: data.Username}
	}
	sess := &model.Session{Token: resp.AccessToken, User: user}
	if err := h.sessions.Save(w, r, sess); err != nil {
		h.logger.Error("session save failed", slog.String("error", err.Error()))
		p := h.page(r, "auth.login.title", data)
		p.Banner = errorBanner(h.t(r, "errors.generic"))
		h.render(w, r, http.StatusOK, render.PageLogin, p)
		return
	}

	target := guard.DashboardPath
	if sess.IsAdmin() {
		target = guard.AdminPath
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RegisterForm renders the registration page.
// GET /register
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	data := AuthData{PreferredLanguage: h.lang(r)}
	h.render(w, r, http.StatusOK, render.PageRegister, h.page(r, "auth.register.title", data))
}

// Register creates an account and shows the login page with the
// backend's confirmation.
// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	data := AuthData{
		Username:          strings.TrimSpace(r.PostFormValue("username")),
		Email:             strings.TrimSpace(r.PostFormValue("email")),
		PreferredLanguage: h.lang(r),
	}
	if lang, ok := h.catalog.Normalize(r.PostFormValue("preferred_language")); ok {
		data.PreferredLanguage = lang
	}

	resp, err := h.api.Register(r.Context(), apiclient.RegisterRequest{
		Username:          data.Username,
		Email:             data.Email,
		Password:          r.PostFormValue("password"),
		PreferredLanguage: data.PreferredLanguage,
	})
	if err != nil {
		h.logger.Info("registration failed", slog.String("error", err.Error()))
		p := h.page(r, "auth.register.title", data)
		p.Banner = errorBanner(h.errorText(r, err, "auth.register.failed"))
		h.render(w, r, http.StatusOK, render.PageRegister, p)
		return
	}

	p := h.page(r, "auth.login.title", AuthData{Username: data.Username})
	text := resp.Message.Resolve(p.Lang)
	if text == "" {
		text = h.t(r, "auth.register.success")
	}
	p.Banner = infoBanner(text)
	p.Path = guard.LoginPath
	h.render(w, r, http.StatusOK, render.PageLogin, p)
}

// Logout clears the session.
// POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		h.logger.Warn("session clear failed", slog.String("error", err.Error()))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SetLanguage stores the UI language and returns to the page it came from.
// Unsupported values leave the cookie untouched.
// POST /language
func (h *AuthHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	if lang, ok := h.catalog.Normalize(r.PostFormValue("language")); ok {
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.LanguageCookie,
			Value:    lang,
			Path:     "/",
			MaxAge:   int(languageCookieMaxAge.Seconds()),
			HttpOnly: true,
			Secure:   h.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	http.Redirect(w, r, safeNext(r.PostFormValue("next")), http.StatusSeeOther)
}
