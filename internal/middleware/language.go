package middleware

import (
	"context"
	"net/http"

	"github.com/urlio/urlio-web/internal/apiclient"
	"github.com/urlio/urlio-web/internal/session"
)

// LanguageCookie is the cookie holding the chosen UI language.
const LanguageCookie = "language"

// Normalizer maps a raw language value to a supported code.
type Normalizer interface {
	Normalize(raw string) (code string, ok bool)
}

// Language resolves the UI language from the language cookie. Without a
// valid cookie the fallback language applies; the browser's
// Accept-Language is not consulted.
func Language(n Normalizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := ""
			if c, err := r.Cookie(LanguageCookie); err == nil {
				raw = c.Value
			}
			lang, _ := n.Normalize(raw)

			ctx := context.WithValue(r.Context(), LanguageKey, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetLanguage retrieves the UI language from context.
func GetLanguage(ctx context.Context) string {
	if lang, ok := ctx.Value(LanguageKey).(string); ok {
		return lang
	}
	return ""
}

// APIContext copies what the backend interceptor needs onto the request
// context: language, bearer token and request id. It must run after the
// session and Language middleware.
func APIContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = apiclient.WithLanguage(ctx, GetLanguage(ctx))
		ctx = apiclient.WithToken(ctx, session.FromContext(ctx).Token)
		ctx = apiclient.WithRequestID(ctx, GetRequestID(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
