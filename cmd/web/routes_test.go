package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/urlio/urlio-web/internal/apiclient"
	"github.com/urlio/urlio-web/internal/config"
	"github.com/urlio/urlio-web/internal/i18n"
	"github.com/urlio/urlio-web/internal/metrics"
	"github.com/urlio/urlio-web/internal/render"
	"github.com/urlio/urlio-web/internal/session"
)

// fakeBackend records every call and answers from a route table keyed by
// "METHOD /path".
type fakeBackend struct {
	t   *testing.T
	srv *httptest.Server

	mu      sync.Mutex
	routes  map[string]http.HandlerFunc
	calls   map[string]int
	headers map[string]http.Header
	bodies  map[string]string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	f := &fakeBackend{
		t:       t,
		routes:  make(map[string]http.HandlerFunc),
		calls:   make(map[string]int),
		headers: make(map[string]http.Header),
		bodies:  make(map[string]string),
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.calls[key]++
	f.headers[key] = r.Header.Clone()
	f.bodies[key] = string(body)
	fn := f.routes[key]
	f.mu.Unlock()

	if fn == nil {
		writeBackendJSON(w, http.StatusNotFound, `{"detail":"Not Found"}`)
		return
	}
	fn(w, r)
}

func writeBackendJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (f *fakeBackend) json(key string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[key] = func(w http.ResponseWriter, r *http.Request) {
		writeBackendJSON(w, status, body)
	}
}

func (f *fakeBackend) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeBackend) header(key string) http.Header {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.headers[key]
}

func (f *fakeBackend) body(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[key]
}

type testApp struct {
	backend  *fakeBackend
	srv      *httptest.Server
	client   *http.Client
	recorder *metrics.InMemoryRecorder
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	backend := newFakeBackend(t)

	cfg := &config.Config{
		AppEnv:             "development",
		APIURL:             backend.srv.URL,
		ShortBaseURL:       "https://urlio.in",
		DefaultLanguage:    "tr",
		SessionBackend:     config.SessionBackendMemory,
		SessionTTL:         time.Hour,
		SessionCookieName:  "urlio_session",
		MaxRequestBodySize: 1 << 20,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recorder := metrics.NewInMemory()

	api, err := apiclient.New(apiclient.Options{BaseURL: cfg.APIURL, DefaultLanguage: cfg.DefaultLanguage, Recorder: recorder})
	if err != nil {
		t.Fatalf("apiclient.New: %v", err)
	}
	catalog, err := i18n.Load(cfg.DefaultLanguage)
	if err != nil {
		t.Fatalf("i18n.Load: %v", err)
	}
	renderer, err := render.New(catalog, logger)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	store := session.NewMemoryStore()
	sessions := session.NewManager(store, session.Options{CookieName: cfg.SessionCookieName, TTL: cfg.SessionTTL}, recorder, logger)

	r := setupRouter(routerDeps{
		cfg:      cfg,
		logger:   logger,
		api:      api,
		catalog:  catalog,
		renderer: renderer,
		store:    store,
		sessions: sessions,
		recorder: recorder,
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &testApp{backend: backend, srv: srv, client: client, recorder: recorder}
}

func (a *testApp) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := a.client.Get(a.srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return readResponse(t, resp)
}

func (a *testApp) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := a.client.PostForm(a.srv.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return readResponse(t, resp)
}

func readResponse(t *testing.T, resp *http.Response) (*http.Response, string) {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

const (
	userLogin  = `{"access_token":"tok-user","token_type":"bearer","user":{"id":7,"username":"ayse","email":"ayse@example.com","is_admin":false,"is_active":true}}`
	adminLogin = `{"access_token":"tok-admin","token_type":"bearer","user":{"id":1,"username":"root","email":"root@example.com","is_admin":true,"is_active":true}}`
)

func (a *testApp) login(t *testing.T, response string) *http.Response {
	t.Helper()
	a.backend.json("POST /auth/login", http.StatusOK, response)
	resp, _ := a.post(t, "/login", url.Values{"username": {"someone"}, "password": {"secret"}})
	return resp
}

func assertRedirect(t *testing.T, resp *http.Response, status int, location string) {
	t.Helper()
	if resp.StatusCode != status {
		t.Fatalf("expected status %d, got %d", status, resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != location {
		t.Fatalf("expected Location %q, got %q", location, got)
	}
}

func TestGuard_AnonymousRedirectsToLogin(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/dashboard", "/admin", "/dashboard/stats/abc", "/admin/users/3/links"} {
		resp, _ := app.get(t, path)
		assertRedirect(t, resp, http.StatusFound, "/login")
	}
	if app.backend.count("GET /user/urls") != 0 {
		t.Error("guarded pages must not call the backend for anonymous visitors")
	}
}

func TestLogin_UserFlow(t *testing.T) {
	app := newTestApp(t)

	resp := app.login(t, userLogin)
	assertRedirect(t, resp, http.StatusSeeOther, "/dashboard")

	var sent map[string]string
	if err := json.Unmarshal([]byte(app.backend.body("POST /auth/login")), &sent); err != nil {
		t.Fatalf("decode login body: %v", err)
	}
	if sent["username"] != "someone" || sent["password"] != "secret" {
		t.Errorf("unexpected login body %v", sent)
	}

	resp, _ = app.get(t, "/login")
	assertRedirect(t, resp, http.StatusFound, "/dashboard")

	resp, _ = app.get(t, "/admin")
	assertRedirect(t, resp, http.StatusFound, "/dashboard")
}

func TestLogin_AdminFlow(t *testing.T) {
	app := newTestApp(t)

	resp := app.login(t, adminLogin)
	assertRedirect(t, resp, http.StatusSeeOther, "/admin")

	resp, _ = app.get(t, "/register")
	assertRedirect(t, resp, http.StatusFound, "/admin")
}

func TestLogin_BackendErrorShowsMessage(t *testing.T) {
	app := newTestApp(t)
	app.backend.json("POST /auth/login", http.StatusUnauthorized,
		`{"detail":{"message":{"en":"Invalid credentials","tr":"Geçersiz kimlik bilgileri"}}}`)

	resp, body := app.post(t, "/login", url.Values{"username": {"ayse"}, "password": {"wrong"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Geçersiz kimlik bilgileri") {
		t.Error("expected the localized backend message")
	}
	if strings.Contains(body, "wrong") {
		t.Error("the password must never be echoed back")
	}

	resp, _ = app.get(t, "/dashboard")
	assertRedirect(t, resp, http.StatusFound, "/login")
}

func TestRegister_ShowsBackendMessageOnLogin(t *testing.T) {
	app := newTestApp(t)
	app.backend.json("POST /auth/register", http.StatusOK,
		`{"message":{"en":"Account created","tr":"Hesap oluşturuldu"},"user_id":9}`)

	_, body := app.post(t, "/register", url.Values{
		"username":           {"veli"},
		"email":              {"veli@example.com"},
		"password":           {"secret1"},
		"preferred_language": {"en"},
	})
	if !strings.Contains(body, "Hesap oluşturuldu") {
		t.Errorf("expected backend message, got %s", body)
	}
	if !strings.Contains(body, `action="/login"`) {
		t.Error("expected the login form after registering")
	}

	var sent map[string]string
	if err := json.Unmarshal([]byte(app.backend.body("POST /auth/register")), &sent); err != nil {
		t.Fatalf("decode register body: %v", err)
	}
	if sent["preferred_language"] != "en" || sent["email"] != "veli@example.com" {
		t.Errorf("unexpected register body %v", sent)
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	app := newTestApp(t)
	app.login(t, userLogin)

	resp, _ := app.post(t, "/logout", nil)
	assertRedirect(t, resp, http.StatusSeeOther, "/")

	resp, _ = app.get(t, "/dashboard")
	assertRedirect(t, resp, http.StatusFound, "/login")

	if snap := app.recorder.Snapshot(); snap.SessionsCreated != 1 || snap.SessionsCleared != 1 {
		t.Errorf("unexpected session counters %+v", snap)
	}
}

func TestDashboard_MountLoadsIndependently(t *testing.T) {
	app := newTestApp(t)
	app.login(t, userLogin)
	app.backend.json("GET /user/urls", http.StatusInternalServerError, `{"detail":"boom"}`)
	app.backend.json("GET /user/warnings", http.StatusOK,
		`[{"id":5,"message":"Please stop spamming","is_read":false,"created_at":"2024-03-01T10:00:00"}]`)

	resp, body := app.get(t, "/dashboard")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Linkleriniz yüklenemedi.") {
		t.Error("expected the links failure notice")
	}
	if !strings.Contains(body, "Please stop spamming") {
		t.Error("expected the blocking warning modal")
	}

	h := app.backend.header("GET /user/urls")
	if h.Get("Authorization") != "Bearer tok-user" {
		t.Errorf("Authorization = %q", h.Get("Authorization"))
	}
	if h.Get("Accept-Language") != "tr" {
		t.Errorf("Accept-Language = %q", h.Get("Accept-Language"))
	}
}

func TestDashboard_ShortenEmptySkipsBackend(t *testing.T) {
	app := newTestApp(t)
	app.login(t, userLogin)
	app.backend.json("GET /user/urls", http.StatusOK, `[]`)
	app.backend.json("GET /user/warnings", http.StatusOK, `[]`)

	_, body := app.post(t, "/dashboard/shorten", url.Values{"url": {"   "}})

	if !strings.Contains(body, "Lütfen bir URL girin.") {
		t.Error("expected the required-field message")
	}
	if app.backend.count("POST /user/shorten") != 0 || app.backend.count("POST /public/shorten") != 0 {
		t.Error("an empty URL must never reach the backend")
	}
}

func TestDashboard_ShortenPrependsLink(t *testing.T) {
	app := newTestApp(t)
	app.login(t, userLogin)
	app.backend.json("GET /user/urls", http.StatusOK,
		`[{"id":1,"short_code":"old111","short_url":"https://urlio.in/old111","original_url":"https://old.example","click_count":3}]`)
	app.backend.json("GET /user/warnings", http.StatusOK, `[]`)
	app.backend.json("POST /user/shorten", http.StatusOK,
		`{"id":2,"short_code":"new222","short_url":"https://urlio.in/new222","original_url":"https://new.example","message":{"en":"Shortened","tr":"Kısaltıldı"}}`)

	_, body := app.post(t, "/dashboard/shorten", url.Values{"url": {"https://new.example"}})

	if !strings.Contains(body, "Kısaltıldı") {
		t.Error("expected the localized success message")
	}
	newIdx := strings.Index(body, "https://urlio.in/new222")
	oldIdx := strings.Index(body, "https://urlio.in/old111")
	if newIdx < 0 || oldIdx < 0 || newIdx > oldIdx {
		t.Errorf("expected the new link before the old one (new=%d old=%d)", newIdx, oldIdx)
	}
	if app.backend.count("POST /public/shorten") != 0 {
		t.Error("an authenticated shorten must use the user endpoint only")
	}
	if got := app.backend.body("POST /user/shorten"); !strings.Contains(got, `"original_url":"https://new.example"`) {
		t.Errorf("unexpected shorten body %s", got)
	}
}

func TestHome_AnonymousShortenUsesPublicEndpoint(t *testing.T) {
	app := newTestApp(t)
	app.backend.json("POST /public/shorten", http.StatusOK,
		`{"short_code":"pub333","short_url":"https://urlio.in/pub333","original_url":"https://x.example","message":"ok"}`)

	_, body := app.post(t, "/shorten", url.Values{"url": {"https://x.example"}})

	if !strings.Contains(body, "https://urlio.in/pub333") {
		t.Error("expected the new short link")
	}
	if app.backend.count("POST /user/shorten") != 0 {
		t.Error("an anonymous shorten must use the public endpoint only")
	}
	if app.backend.header("POST /public/shorten").Get("Authorization") != "" {
		t.Error("anonymous calls must not carry a token")
	}
}

func TestDashboard_WarningAckFailureKeepsWarning(t *testing.T) {
	app := newTestApp(t)
	app.login(t, userLogin)
	app.backend.json("GET /user/urls", http.StatusOK, `[]`)
	app.backend.json("GET /user/warnings", http.StatusOK, `[{"id":5,"message":"Read the rules","is_read":false}]`)
	app.backend.json("POST /user/warnings/5/mark-read", http.StatusInternalServerError, `{"detail":"boom"}`)

	_, body := app.post(t, "/dashboard/warnings/5/read", nil)
	if !strings.Contains(body, "Read the rules") {
		t.Error("a failed acknowledgement must leave the warning visible")
	}

	app.backend.json("POST /user/warnings/5/mark-read", http.StatusOK, `{"success":true}`)
	_, body = app.post(t, "/dashboard/warnings/5/read", nil)
	if strings.Contains(body, "Read the rules") {
		t.Error("an accepted acknowledgement must remove the warning")
	}
}

func TestDashboard_StatsModal(t *testing.T) {
	app := newTestApp(t)
	app.login(t, userLogin)
	app.backend.json("GET /user/urls", http.StatusOK, `[]`)
	app.backend.json("GET /user/warnings", http.StatusOK, `[]`)
	app.backend.json("GET /user/stats/abc123", http.StatusOK,
		`{"short_code":"abc123","original_url":"https://x.example","click_count":12,"country_stats":{"TR":9,"DE":3},"recent_visits":[{"country":"TR","created_at":"2024-03-01T10:00:00"}]}`)

	_, body := app.get(t, "/dashboard/stats/abc123")
	if !strings.Contains(body, "TR: 9") || !strings.Contains(body, "DE: 3") {
		t.Errorf("expected country rows, got %s", body)
	}
	if strings.Index(body, "TR: 9") > strings.Index(body, "DE: 3") {
		t.Error("countries must be ordered by count")
	}

	app.get(t, "/dashboard/stats/abc123")
	if app.backend.count("GET /user/stats/abc123") != 2 {
		t.Error("stats must be fetched fresh on every open")
	}
}

func TestDashboard_QRDownload(t *testing.T) {
	app := newTestApp(t)
	app.login(t, userLogin)

	resp, body := app.get(t, "/dashboard/qr/abc123.png")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != `attachment; filename="urlio-in-qr-abc123.png"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(body, "\x89PNG") {
		t.Error("expected a PNG body")
	}
}

const adminSnapshot = `{"success":true,"data":{
	"statistics":{"total_users":2,"total_urls":5,"total_clicks":1200},
	"users":[{"id":7,"username":"ayse","email":"ayse@example.com","url_count":3,"total_clicks":1000,"is_active":true}],
	"flagged_urls":[]}}`

func TestAdmin_ForbiddenShowsTimedRedirect(t *testing.T) {
	app := newTestApp(t)
	app.login(t, adminLogin)
	app.backend.json("GET /admin/dashboard", http.StatusForbidden, `{"detail":"Admin required"}`)

	_, body := app.get(t, "/admin")
	if !strings.Contains(body, `content="2;url=/dashboard"`) {
		t.Errorf("expected a timed redirect to /dashboard, got %s", body)
	}
	if !strings.Contains(body, "Yönetici yetkisi gerekiyor.") {
		t.Error("expected the admin-required notice")
	}
}

func TestAdmin_OtherErrorShowsAccessDenied(t *testing.T) {
	app := newTestApp(t)
	app.login(t, adminLogin)
	app.backend.json("GET /admin/dashboard", http.StatusInternalServerError, `{"detail":"boom"}`)

	_, body := app.get(t, "/admin")
	if !strings.Contains(body, "Erişim reddedildi.") {
		t.Error("expected the access-denied notice")
	}
	if strings.Contains(body, "http-equiv=\"refresh\"") {
		t.Error("only a 403 triggers the timed redirect")
	}
}

func TestAdmin_ShortPasswordSkipsBackend(t *testing.T) {
	app := newTestApp(t)
	app.login(t, adminLogin)
	app.backend.json("GET /admin/dashboard", http.StatusOK, adminSnapshot)

	_, body := app.post(t, "/admin/password", url.Values{"new_password": {"12345"}})
	if !strings.Contains(body, "Şifre en az 6 karakter olmalıdır.") {
		t.Error("expected the min-length alert")
	}
	if app.backend.count("POST /admin/change-password") != 0 {
		t.Error("a short password must never reach the backend")
	}

	app.backend.json("POST /admin/change-password", http.StatusOK, `{"success":true,"message":"Password changed"}`)
	_, body = app.post(t, "/admin/password", url.Values{"new_password": {"123456"}})
	if !strings.Contains(body, "Password changed") {
		t.Error("expected the backend confirmation")
	}
	if got := app.backend.body("POST /admin/change-password"); got != `{"new_password":"123456"}` {
		t.Errorf("unexpected password body %s", got)
	}
}

func TestAdmin_EmptyWarningSkipsBackend(t *testing.T) {
	app := newTestApp(t)
	app.login(t, adminLogin)
	app.backend.json("GET /admin/dashboard", http.StatusOK, adminSnapshot)
	app.backend.json("GET /admin/users/7/urls", http.StatusOK, `{"urls":[{"id":3,"short_code":"abc","short_url":"https://urlio.in/abc","original_url":"https://x.example"}]}`)

	_, body := app.post(t, "/admin/users/7/warn", url.Values{"message": {"  "}})
	if !strings.Contains(body, "Lütfen bir uyarı mesajı yazın.") {
		t.Error("expected the required-message alert")
	}
	if app.backend.count("POST /admin/users/7/warn") != 0 {
		t.Error("an empty warning must never reach the backend")
	}

	app.backend.json("POST /admin/users/7/warn", http.StatusOK, `{"success":true,"message":"Warning sent"}`)
	_, body = app.post(t, "/admin/users/7/warn", url.Values{"message": {"Stop"}, "url_id": {"3"}})
	if !strings.Contains(body, "Warning sent") {
		t.Error("expected the backend confirmation")
	}
	var sent map[string]any
	if err := json.Unmarshal([]byte(app.backend.body("POST /admin/users/7/warn")), &sent); err != nil {
		t.Fatalf("decode warn body: %v", err)
	}
	if sent["message"] != "Stop" || sent["url_id"] != float64(3) || sent["user_id"] != float64(7) {
		t.Errorf("unexpected warn body %v", sent)
	}
}

func TestAdmin_ToggleRefetchesSnapshot(t *testing.T) {
	app := newTestApp(t)
	app.login(t, adminLogin)
	app.backend.json("GET /admin/dashboard", http.StatusOK, adminSnapshot)
	app.backend.json("POST /admin/users/7/toggle-status", http.StatusOK, `{"message":"Status updated","is_active":false}`)

	_, body := app.post(t, "/admin/users/7/toggle-status", nil)

	if app.backend.count("POST /admin/users/7/toggle-status") != 1 {
		t.Error("expected one toggle call")
	}
	if app.backend.count("GET /admin/dashboard") != 1 {
		t.Error("expected the snapshot to be refetched after the toggle")
	}
	// The refetched snapshot still says active; the page must follow it.
	if !strings.Contains(body, "Pasifleştir") {
		t.Error("the row must reflect the refetched snapshot, not a local flip")
	}
}

func TestAdmin_UserLinksModal(t *testing.T) {
	app := newTestApp(t)
	app.login(t, adminLogin)
	app.backend.json("GET /admin/dashboard", http.StatusOK, adminSnapshot)
	app.backend.json("GET /admin/users/7/urls", http.StatusOK,
		`{"urls":[{"id":3,"short_code":"xyz789","short_url":"https://urlio.in/xyz789","original_url":"https://x.example"}]}`)

	_, body := app.get(t, "/admin/users/7/links")
	if !strings.Contains(body, "ayse kullanıcısının linkleri") {
		t.Error("expected the modal title with the username")
	}
	if !strings.Contains(body, "/admin/links/3/flag") {
		t.Error("expected moderation actions per link")
	}
}

func TestRedirect_ForwardsShortCodeToBackend(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.get(t, "/abc123")
	assertRedirect(t, resp, http.StatusFound, app.backend.srv.URL+"/abc123")
	if !strings.Contains(body, "Yönlendiriliyor...") {
		t.Error("expected the redirecting body")
	}

	resp, body = app.get(t, "/a%2Fb")
	assertRedirect(t, resp, http.StatusFound, app.backend.srv.URL+"/a%2Fb")
	if !strings.Contains(body, `content="0;url=`+app.backend.srv.URL+`/a%2Fb"`) {
		t.Errorf("expected the refresh to carry the single-escaped code, got %s", body)
	}

	resp, _ = app.get(t, "/login")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("page routes must win over short codes, got %d", resp.StatusCode)
	}
}

func TestShare_LoopbackNeedsConfirmation(t *testing.T) {
	app := newTestApp(t)
	target := url.QueryEscape("http://localhost:8000/abc")

	resp, body := app.get(t, "/share?platform=facebook&url="+target)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "confirm=1") {
		t.Fatalf("expected a confirmation page, got %d", resp.StatusCode)
	}

	resp, _ = app.get(t, "/share?platform=facebook&url="+target+"&confirm=1")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected status 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); !strings.HasPrefix(loc, "https://www.facebook.com/sharer/sharer.php?") {
		t.Errorf("unexpected Location %q", loc)
	}

	resp, _ = app.get(t, "/share?platform=twitter&url="+target)
	if resp.StatusCode != http.StatusFound {
		t.Errorf("twitter accepts loopback links, got %d", resp.StatusCode)
	}

	resp, _ = app.get(t, "/share?platform=myspace&url="+target)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown platforms are rejected, got %d", resp.StatusCode)
	}
}

func TestLanguage_SwitchChangesPagesAndBackendHeader(t *testing.T) {
	app := newTestApp(t)

	resp, _ := app.post(t, "/language", url.Values{"language": {"en"}, "next": {"/login"}})
	assertRedirect(t, resp, http.StatusSeeOther, "/login")

	_, body := app.get(t, "/login")
	if !strings.Contains(body, `<html lang="en">`) {
		t.Error("expected English pages after switching")
	}

	app.backend.json("POST /public/shorten", http.StatusOK, `{"short_code":"a","short_url":"https://urlio.in/a","original_url":"https://x.example"}`)
	app.post(t, "/shorten", url.Values{"url": {"https://x.example"}})
	if got := app.backend.header("POST /public/shorten").Get("Accept-Language"); got != "en" {
		t.Errorf("Accept-Language = %q, want en", got)
	}

	resp, _ = app.post(t, "/language", url.Values{"language": {"de"}, "next": {"//evil.example"}})
	assertRedirect(t, resp, http.StatusSeeOther, "/")
	_, body = app.get(t, "/")
	if !strings.Contains(body, `<html lang="en">`) {
		t.Error("unsupported languages must leave the choice untouched")
	}
}

func TestProbesAndMetrics(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.get(t, "/healthz")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `"status":"ok"`) {
		t.Errorf("healthz: %d %s", resp.StatusCode, body)
	}

	resp, body = app.get(t, "/readyz")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `"session_store_memory":"ok"`) {
		t.Errorf("readyz: %d %s", resp.StatusCode, body)
	}

	app.get(t, "/dashboard")
	_, body = app.get(t, "/metrics")
	if !strings.Contains(body, `urlio_web_guard_redirects_total{target="/login"} 1`) {
		t.Errorf("expected the guard redirect counter, got %s", body)
	}
}

func TestNotFoundAndSecurityHeaders(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.get(t, "/a/b/c")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Sayfa bulunamadı.") {
		t.Error("expected the translated not-found page")
	}
	if resp.Header.Get("Content-Security-Policy") == "" || resp.Header.Get("X-Frame-Options") != "DENY" {
		t.Error("expected security headers on every page")
	}
}
