// Package guard decides client-side route access from the session snapshot.
//
// The guard is a navigation shortcut only. It trusts the cached token and
// admin flag at face value and makes no network call; the backend remains
// the authorization boundary.
package guard

import (
	"log/slog"
	"net/http"

	"github.com/urlio/urlio-web/internal/metrics"
	"github.com/urlio/urlio-web/internal/model"
	"github.com/urlio/urlio-web/internal/session"
)

// Category classifies a route by who may view it.
type Category int

const (
	// PublicOnly routes are for visitors without a token (login, register).
	PublicOnly Category = iota
	// Authenticated routes require a token.
	Authenticated
	// AdminOnly routes require a token and the admin flag.
	AdminOnly
)

// Redirect targets.
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
	AdminPath     = "/admin"
)

// Decision is the outcome of a guard check.
type Decision struct {
	Allow      bool
	RedirectTo string
}

func allow() Decision { return Decision{Allow: true} }

func redirect(to string) Decision { return Decision{RedirectTo: to} }

// Decide applies the access policy for category to s.
func Decide(s *model.Session, category Category) Decision {
	switch category {
	case PublicOnly:
		if !s.Authenticated() {
			return allow()
		}
		if s.IsAdmin() {
			return redirect(AdminPath)
		}
		return redirect(DashboardPath)

	case Authenticated:
		if s.Authenticated() {
			return allow()
		}
		return redirect(LoginPath)

	case AdminOnly:
		if !s.Authenticated() {
			return redirect(LoginPath)
		}
		if !s.IsAdmin() {
			return redirect(DashboardPath)
		}
		return allow()
	}

	return redirect(LoginPath)
}

// Require returns middleware that enforces category using the session
// snapshot placed in the context by session.Manager.Middleware.
func Require(category Category, recorder metrics.Recorder, logger *slog.Logger) func(http.Handler) http.Handler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := Decide(session.FromContext(r.Context()), category)
			if d.Allow {
				next.ServeHTTP(w, r)
				return
			}

			logger.Debug("route guard redirect",
				slog.String("path", r.URL.Path),
				slog.String("redirect_to", d.RedirectTo),
			)
			recorder.IncGuardRedirect(d.RedirectTo)
			http.Redirect(w, r, d.RedirectTo, http.StatusFound)
		})
	}
}
