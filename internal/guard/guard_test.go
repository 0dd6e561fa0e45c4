package guard

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/urlio/urlio-web/internal/metrics"
	"github.com/urlio/urlio-web/internal/model"
	"github.com/urlio/urlio-web/internal/session"
)

var (
	anonymous     = &model.Session{}
	userNoProfile = &model.Session{Token: "tok"}
	regularUser   = &model.Session{Token: "tok", User: &model.User{ID: 1, IsAdmin: false}}
	adminUser     = &model.Session{Token: "tok", User: &model.User{ID: 2, IsAdmin: true}}
	profileOnly   = &model.Session{User: &model.User{ID: 3, IsAdmin: true}}
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		session  *model.Session
		category Category
		want     Decision
	}{
		{"anonymous public-only", anonymous, PublicOnly, Decision{Allow: true}},
		{"anonymous authenticated", anonymous, Authenticated, Decision{RedirectTo: "/login"}},
		{"anonymous admin", anonymous, AdminOnly, Decision{RedirectTo: "/login"}},

		{"profile without token is anonymous", profileOnly, AdminOnly, Decision{RedirectTo: "/login"}},
		{"profile without token public-only", profileOnly, PublicOnly, Decision{Allow: true}},

		{"user public-only", regularUser, PublicOnly, Decision{RedirectTo: "/dashboard"}},
		{"user authenticated", regularUser, Authenticated, Decision{Allow: true}},
		{"user admin", regularUser, AdminOnly, Decision{RedirectTo: "/dashboard"}},

		{"token without profile public-only", userNoProfile, PublicOnly, Decision{RedirectTo: "/dashboard"}},
		{"token without profile admin", userNoProfile, AdminOnly, Decision{RedirectTo: "/dashboard"}},

		{"admin public-only", adminUser, PublicOnly, Decision{RedirectTo: "/admin"}},
		{"admin authenticated", adminUser, Authenticated, Decision{Allow: true}},
		{"admin admin", adminUser, AdminOnly, Decision{Allow: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.session, tt.category); got != tt.want {
				t.Errorf("Decide() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecide_NoTokenProperty(t *testing.T) {
	profiles := []*model.User{nil, {IsAdmin: false}, {IsAdmin: true, IsActive: true}}
	for _, u := range profiles {
		s := &model.Session{User: u}
		for _, c := range []Category{Authenticated, AdminOnly} {
			if d := Decide(s, c); d.Allow || d.RedirectTo != LoginPath {
				t.Errorf("no-token session %+v on %d: got %+v", u, c, d)
			}
		}
		if d := Decide(s, PublicOnly); !d.Allow {
			t.Errorf("no-token session %+v must be allowed on public-only", u)
		}
	}
}

func TestRequire(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name         string
		session      *model.Session
		category     Category
		wantStatus   int
		wantLocation string
	}{
		{"dashboard without token", anonymous, Authenticated, http.StatusFound, "/login"},
		{"admin as regular user", regularUser, AdminOnly, http.StatusFound, "/dashboard"},
		{"login as admin", adminUser, PublicOnly, http.StatusFound, "/admin"},
		{"dashboard as user", regularUser, Authenticated, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := metrics.NewInMemory()
			h := Require(tt.category, rec, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req = req.WithContext(session.WithSession(req.Context(), tt.session))
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			if got := rr.Header().Get("Location"); got != tt.wantLocation {
				t.Errorf("expected Location %q, got %q", tt.wantLocation, got)
			}
			if tt.wantLocation != "" && rec.Snapshot().GuardRedirects[tt.wantLocation] != 1 {
				t.Error("expected guard redirect to be recorded")
			}
		})
	}
}
