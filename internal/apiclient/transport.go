package apiclient

import (
	"context"
	"net"
	"net/http"
	"time"
)

const (
	// DialTimeout is the connection timeout.
	DialTimeout = 10 * time.Second
	// TLSHandshakeTimeout is the TLS negotiation timeout.
	TLSHandshakeTimeout = 10 * time.Second
)

// Header names set on every outgoing request.
const (
	HeaderAcceptLanguage = "Accept-Language"
	HeaderAuthorization  = "Authorization"
	HeaderRequestID      = "X-Request-ID"
)

type contextKey string

const (
	languageKey  contextKey = "language"
	tokenKey     contextKey = "token"
	requestIDKey contextKey = "request_id"
)

// WithLanguage sets the language the interceptor sends as Accept-Language.
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, languageKey, lang)
}

// WithToken sets the bearer token the interceptor attaches.
// An empty token means the request goes out unauthenticated.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// WithRequestID propagates the inbound request id to the backend.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func stringFromContext(ctx context.Context, key contextKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}

// interceptor decorates every outgoing request with the JSON content type,
// the caller's language and, when present, the caller's bearer token.
// Responses pass through untouched: there is no retry and no refresh.
type interceptor struct {
	base            http.RoundTripper
	defaultLanguage string
}

// RoundTrip implements http.RoundTripper.
func (t *interceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	out := req.Clone(ctx)

	out.Header.Set("Content-Type", "application/json")
	out.Header.Set("Accept", "application/json")

	lang := stringFromContext(ctx, languageKey)
	if lang == "" {
		lang = t.defaultLanguage
	}
	out.Header.Set(HeaderAcceptLanguage, lang)

	if token := stringFromContext(ctx, tokenKey); token != "" {
		out.Header.Set(HeaderAuthorization, "Bearer "+token)
	} else {
		out.Header.Del(HeaderAuthorization)
	}

	if id := stringFromContext(ctx, requestIDKey); id != "" {
		out.Header.Set(HeaderRequestID, id)
	}

	return t.base.RoundTrip(out)
}

// newTransport builds the pooled transport under the interceptor.
func newTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: TLSHandshakeTimeout,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
}
