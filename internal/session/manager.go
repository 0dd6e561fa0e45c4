package session

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/urlio/urlio-web/internal/metrics"
	"github.com/urlio/urlio-web/internal/model"
)

// Options configures a Manager.
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Manager binds Store records to browser cookies. It is the only
// mutation surface for the session: Save and Clear.
type Manager struct {
	store    Store
	opts     Options
	recorder metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewManager creates a Manager.
func NewManager(store Store, opts Options, recorder metrics.Recorder, logger *slog.Logger) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "urlio_session"
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Manager{
		store:    store,
		opts:     opts,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Load returns the session snapshot for the request. Missing cookies,
// unknown ids and store failures all yield an anonymous session.
func (m *Manager) Load(r *http.Request) *model.Session {
	cookie, err := r.Cookie(m.opts.CookieName)
	if err != nil || cookie.Value == "" {
		return &model.Session{}
	}

	sess, err := m.store.Get(r.Context(), cookie.Value)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.logger.Error("session load failed", slog.String("error", err.Error()))
		}
		return &model.Session{}
	}
	return sess
}

// Save stores token and user together under a fresh session id and sets
// the cookie. Any previous record for the request is discarded.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, sess *model.Session) error {
	if old, err := r.Cookie(m.opts.CookieName); err == nil && old.Value != "" {
		if err := m.store.Delete(r.Context(), old.Value); err != nil {
			m.logger.Warn("discarding previous session failed", slog.String("error", err.Error()))
		}
	}

	id := uuid.NewString()
	ttl := m.ttlFor(sess.Token)
	if err := m.store.Set(r.Context(), id, sess, ttl); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	m.recorder.IncSessionCreated()
	return nil
}

// Clear deletes the record and expires the cookie.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	var err error
	if cookie, cerr := r.Cookie(m.opts.CookieName); cerr == nil && cookie.Value != "" {
		err = m.store.Delete(r.Context(), cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	m.recorder.IncSessionCleared()
	return err
}

// Middleware loads the session snapshot into the request context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithSession(r.Context(), m.Load(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ttlFor caps the configured TTL at the token's exp claim when the token is
// a JWT. The signature is not verified; only the backend can do that.
func (m *Manager) ttlFor(token string) time.Duration {
	ttl := m.opts.TTL
	if token == "" {
		return ttl
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ttl
	}
	if claims.ExpiresAt == nil {
		return ttl
	}

	remaining := claims.ExpiresAt.Time.Sub(m.now())
	if remaining < time.Second {
		remaining = time.Second
	}
	if ttl <= 0 || remaining < ttl {
		return remaining
	}
	return ttl
}
