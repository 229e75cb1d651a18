package socialhttp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	core "github.com/open-rails/sociallogin/core"
	memorystore "github.com/open-rails/sociallogin/storage/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-access-secret")

type fixture struct {
	h        http.Handler
	settings *memorystore.Settings
	conns    *memorystore.Connections
	svc      *core.Service
	metrics  *Metrics
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	settings := memorystore.NewSettings()
	conns := memorystore.NewConnections()
	svc, err := core.NewService(core.Config{RequestTokenSecret: []byte("rt")}, settings, conns)
	require.NoError(t, err)
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	hs := NewService(svc, NewHMACVerifier(testSecret, AcceptConfig{Issuer: "https://host.example", Audience: "sociallogin"})).
		DisableRateLimiter().
		WithMetrics(m)
	return fixture{h: hs.Handler(), settings: settings, conns: conns, svc: svc, metrics: m}
}

func accessToken(t *testing.T, sub string, roles ...string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"iss":   "https://host.example",
		"aud":   "sociallogin",
		"sub":   sub,
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
		"roles": roles,
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return tok
}

func do(h http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestSaveAdmin_Success(t *testing.T) {
	f := newFixture(t)
	w := do(f.h, http.MethodPost, "/apps/sociallogin/settings/save-admin", accessToken(t, "root", "admin"), `{
		"new_user_group":"users",
		"disable_registration":"1",
		"allow_login_connect":0,
		"providers":{"github":{"appid":"X","secret":"S"}},
		"openid_providers":[{"title":"gitlab","url":"https://gitlab.example"}],
		"custom_oidc_providers":{"k":{"title":"corp","clientId":"c"}}
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"success":true}`, w.Body.String())

	ctx := context.Background()
	v, _ := f.settings.GetValue(ctx, "sociallogin", core.KeyDisableRegistration, "")
	require.Equal(t, "true", v)
	v, _ = f.settings.GetValue(ctx, "sociallogin", core.KeyCustomOIDCProviders, "")
	require.JSONEq(t, `[{"title":"corp","clientId":"c","authorizeUrl":"","tokenUrl":"","clientSecret":""}]`, v)
	require.Equal(t, 1.0, testutil.ToFloat64(f.metrics.saves.WithLabelValues("saved")))
}

func TestSaveAdmin_DuplicateTitle(t *testing.T) {
	f := newFixture(t)
	w := do(f.h, http.MethodPost, "/apps/sociallogin/settings/save-admin", accessToken(t, "root", "admin"),
		`{"openid_providers":[{"title":"foo"},{"title":"foo"}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"Duplicate provider title \"foo\""}`, w.Body.String())

	v, _ := f.settings.GetValue(context.Background(), "sociallogin", core.KeyOpenIDProviders, "unset")
	require.Equal(t, "unset", v)
	require.Equal(t, 1.0, testutil.ToFloat64(f.metrics.saves.WithLabelValues("rejected")))
}

func TestSaveAdmin_LocalizedMessage(t *testing.T) {
	f := newFixture(t)
	w := do(f.h, http.MethodPost, "/apps/sociallogin/settings/save-admin?lang=de", accessToken(t, "root", "admin"),
		`{"custom_oidc_providers":[{"title":"a b"}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"Ungültiger Anbieter-Titel \"a b\". Erlaubte Zeichen \"0-9a-z_.@-\""}`, w.Body.String())
}

func TestSaveAdmin_BadJSON(t *testing.T) {
	f := newFixture(t)
	tok := accessToken(t, "root", "admin")
	for _, body := range []string{`{`, `{"unknown":1}`, `{} {}`} {
		w := do(f.h, http.MethodPost, "/apps/sociallogin/settings/save-admin", tok, body)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
		require.JSONEq(t, `{"error":"invalid_request"}`, w.Body.String())
	}
}

func TestSaveAdmin_RequiresAdmin(t *testing.T) {
	f := newFixture(t)
	w := do(f.h, http.MethodPost, "/apps/sociallogin/settings/save-admin", accessToken(t, "alice"), `{}`)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.JSONEq(t, `{"error":"forbidden"}`, w.Body.String())

	w = do(f.h, http.MethodPost, "/apps/sociallogin/settings/save-admin", "", `{}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"error":"missing_token"}`, w.Body.String())
}

func TestAdminGET_ReturnsSavedSettings(t *testing.T) {
	f := newFixture(t)
	tok := accessToken(t, "root", "admin")
	w := do(f.h, http.MethodPost, "/apps/sociallogin/settings/save-admin", tok,
		`{"new_user_group":"g","providers":{"google":{"appid":"a","secret":"b"}}}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(f.h, http.MethodGet, "/apps/sociallogin/settings/admin", tok, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"new_user_group":"g","disable_registration":false,"allow_login_connect":false,
		"providers":{"google":{"appid":"a","secret":"b"}},"openid_providers":[],"custom_oidc_providers":[]}`, w.Body.String())
}

func TestPersonalGET_RendersProvidersAndConnections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.settings.SetValue(ctx, "sociallogin", core.KeyOAuthProviders, `{"github":{"appid":"X"},"google":{"appid":""}}`))
	require.NoError(t, f.settings.SetValue(ctx, "sociallogin", core.KeyOpenIDProviders, `[{"title":"gitlab"}]`))
	require.NoError(t, f.conns.Connect(ctx, "alice", "github-1234"))

	w := do(f.h, http.MethodGet, "/apps/sociallogin/settings/personal", accessToken(t, "alice"), "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	require.Contains(t, body, `href="/apps/sociallogin/oauth/github">Github</a>`)
	require.Contains(t, body, `href="/apps/sociallogin/openid/gitlab">Gitlab</a>`)
	require.NotContains(t, body, "Google")
	require.Contains(t, body, "/apps/sociallogin/disconnect-social/github-1234?requesttoken=")
}

func TestPersonalGET_CookieAuth(t *testing.T) {
	f := newFixture(t)
	r := httptest.NewRequest(http.MethodGet, "/apps/sociallogin/settings/personal", nil)
	r.AddCookie(&http.Cookie{Name: "access_token", Value: accessToken(t, "alice")})
	w := httptest.NewRecorder()
	f.h.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestDisconnectGET(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.conns.Connect(ctx, "alice", "github-1234"))
	tok, err := f.svc.RequestTokens().Issue("alice")
	require.NoError(t, err)

	w := do(f.h, http.MethodGet, "/apps/sociallogin/disconnect-social/github-1234?requesttoken="+url.QueryEscape(tok), accessToken(t, "alice"), "")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/settings/user/additional", w.Header().Get("Location"))

	logins, err := f.conns.ConnectedLogins(ctx, "alice")
	require.NoError(t, err)
	require.Empty(t, logins)

	// Absent login still redirects.
	w = do(f.h, http.MethodGet, "/apps/sociallogin/disconnect-social/nope?requesttoken="+url.QueryEscape(tok), accessToken(t, "alice"), "")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, 2.0, testutil.ToFloat64(f.metrics.disconnects.WithLabelValues("ok")))
}

func TestDisconnectGET_BadToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.conns.Connect(ctx, "alice", "github-1234"))
	bobTok, err := f.svc.RequestTokens().Issue("bob")
	require.NoError(t, err)

	for _, q := range []string{"", "?requesttoken=garbage", "?requesttoken=" + url.QueryEscape(bobTok)} {
		w := do(f.h, http.MethodGet, "/apps/sociallogin/disconnect-social/github-1234"+q, accessToken(t, "alice"), "")
		require.Equal(t, http.StatusForbidden, w.Code, q)
		require.JSONEq(t, `{"error":"invalid_request_token"}`, w.Body.String())
	}
	logins, _ := f.conns.ConnectedLogins(ctx, "alice")
	require.Equal(t, []string{"github-1234"}, logins)
}

func TestHandler_RateLimited(t *testing.T) {
	settings := memorystore.NewSettings()
	svc, err := core.NewService(core.Config{}, settings, memorystore.NewConnections())
	require.NoError(t, err)
	h := NewService(svc, NewHMACVerifier(testSecret, AcceptConfig{})).
		WithRateLimiter(denyAll{}).
		Handler()

	r := httptest.NewRequest(http.MethodGet, "/apps/sociallogin/settings/personal", nil)
	r.RemoteAddr = "10.0.0.7:1234" // private peer: unknown client, fail open
	r.Header.Set("Authorization", "Bearer "+accessToken(t, "alice"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	require.Equal(t, http.StatusOK, rec.Code)

	r = httptest.NewRequest(http.MethodGet, "/apps/sociallogin/settings/personal", nil)
	r.RemoteAddr = "203.0.113.9:1234"
	r.Header.Set("Authorization", "Bearer "+accessToken(t, "alice"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.JSONEq(t, `{"error":"rate_limited"}`, rec.Body.String())
}

type denyAll struct{}

func (denyAll) AllowNamed(string, string) (bool, error) { return false, nil }
