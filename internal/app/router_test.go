package app

import (
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novanode/client-portal/internal/access"
	dashboardhttp "github.com/novanode/client-portal/internal/dashboard/http"
	"github.com/novanode/client-portal/internal/dashboard/svg"
	"github.com/novanode/client-portal/internal/finance"
	"github.com/novanode/client-portal/internal/observability"
	"github.com/novanode/client-portal/internal/shared"
	"github.com/novanode/client-portal/internal/view"
	_ "github.com/novanode/client-portal/testing"
)

type lineRenderer struct{}

func (lineRenderer) Lines(width, height int, series []svg.Series, labels []string, opts svg.LineOpts) (template.HTML, error) {
	return svg.Lines(width, height, series, labels, opts)
}

type barRenderer struct{}

func (barRenderer) Bars(width, height int, values []float64, labels []string, opts svg.BarOpts) (template.HTML, error) {
	return svg.Bars(width, height, values, labels, opts)
}

var csrfPattern = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

type portal struct {
	server *httptest.Server
	client *http.Client
}

func newPortal(t *testing.T, variant string) portal {
	t.Helper()
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	cfg := &Config{AppEnv: "test", AppRequestTimeout: 5 * time.Second, Variant: variant, Client: "FitLife Gym", Location: "Hyderabad", Currency: "₹", Seed: 7}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := shared.NewSessionManager(redisClient, "portal_test", "session-secret", time.Hour, false)
	csrf := shared.NewCSRFManager("csrf-secret")
	templates, err := view.NewEngine(view.NewFormatter(cfg.Currency))
	require.NoError(t, err)
	authenticator, err := cfg.Authenticator()
	require.NoError(t, err)
	metrics := observability.NewMetrics()

	accessHandler := access.NewHandler(logger, access.NewGate(authenticator), templates, sessions, csrf, metrics, cfg.Subtitle())
	dashboardHandler := dashboardhttp.NewHandler(logger, templates, lineRenderer{}, barRenderer{}, finance.NewService(cfg.Currency), csrf, metrics, dashboardhttp.Options{
		FinanceEnabled: cfg.FinanceEnabled(),
		Subtitle:       cfg.Subtitle(),
		Seed:           cfg.Seed,
	})

	router := NewRouter(RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   sessions,
		CSRFManager:      csrf,
		AccessHandler:    accessHandler,
		DashboardHandler: dashboardHandler,
		Metrics:          metrics,
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return portal{server: server, client: client}
}

func (p portal) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	res, err := p.client.Get(p.server.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}

func (p portal) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	res, err := p.client.PostForm(p.server.URL+path, form)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}

func csrfToken(t *testing.T, body string) string {
	t.Helper()
	match := csrfPattern.FindStringSubmatch(body)
	require.Len(t, match, 2, "csrf token missing from page")
	return match[1]
}

func (p portal) unlock(t *testing.T, password string) *http.Response {
	t.Helper()
	_, body := p.get(t, "/access")
	res, _ := p.post(t, "/access", url.Values{"password": {password}, "csrf_token": {csrfToken(t, body)}})
	return res
}

func TestHealthz(t *testing.T) {
	p := newPortal(t, VariantFinance)
	res, body := p.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestRootRedirectsToDashboard(t *testing.T) {
	p := newPortal(t, VariantFinance)
	res, _ := p.get(t, "/")
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/dashboard", res.Header.Get("Location"))
}

func TestLockedDashboardRedirectsToGate(t *testing.T) {
	p := newPortal(t, VariantFinance)

	res, body := p.get(t, "/dashboard")
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/access", res.Header.Get("Location"))
	assert.NotContains(t, body, "Marketing Performance")

	res, body = p.get(t, "/access")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, access.Prompt)
	assert.Equal(t, "nosniff", res.Header.Get("X-Content-Type-Options"))
}

func TestWrongPasswordKeepsPortalLocked(t *testing.T) {
	p := newPortal(t, VariantFinance)

	res := p.unlock(t, "wrong")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = p.get(t, "/dashboard")
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
}

func TestUnlockShowsDashboard(t *testing.T) {
	p := newPortal(t, VariantFinance)

	res := p.unlock(t, FinanceVariantSecret)
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/dashboard", res.Header.Get("Location"))

	res, body := p.get(t, "/dashboard")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Access Granted")
	assert.Contains(t, body, "Marketing Performance")
	assert.Contains(t, body, "FitLife Gym - Hyderabad")
	assert.Contains(t, body, "<svg")

	res, body = p.get(t, "/dashboard?tab=finance")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "₹38,000")
}

func TestTransactionRequiresCSRF(t *testing.T) {
	p := newPortal(t, VariantFinance)
	require.Equal(t, http.StatusSeeOther, p.unlock(t, FinanceVariantSecret).StatusCode)

	form := url.Values{"date": {"2026-01-15"}, "type": {"Expense"}, "category": {"Ads"}, "amount": {"5000"}}
	res, _ := p.post(t, "/dashboard/transactions", form)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	_, page := p.get(t, "/dashboard?tab=finance")
	form.Set("csrf_token", csrfToken(t, page))
	res, _ = p.post(t, "/dashboard/transactions", form)
	require.Equal(t, http.StatusSeeOther, res.StatusCode)

	_, page = p.get(t, "/dashboard?tab=finance")
	assert.Contains(t, page, "Saved: ₹5000 for Ads (Expense)")
	assert.Contains(t, page, "₹47,000")
}

func TestLockedTransactionIsUnauthorized(t *testing.T) {
	p := newPortal(t, VariantFinance)
	_, page := p.get(t, "/access")

	res, body := p.post(t, "/dashboard/transactions", url.Values{"csrf_token": {csrfToken(t, page)}})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, body, "portal is locked")
}

func TestLockReturnsToGate(t *testing.T) {
	p := newPortal(t, VariantFinance)
	require.Equal(t, http.StatusSeeOther, p.unlock(t, FinanceVariantSecret).StatusCode)

	_, page := p.get(t, "/dashboard")
	res, _ := p.post(t, "/access/lock", url.Values{"csrf_token": {csrfToken(t, page)}})
	require.Equal(t, http.StatusSeeOther, res.StatusCode)

	res, _ = p.get(t, "/dashboard")
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
}

func TestMarketingVariant(t *testing.T) {
	p := newPortal(t, VariantMarketing)
	assert.Equal(t, http.StatusUnauthorized, p.unlock(t, FinanceVariantSecret).StatusCode)
	require.Equal(t, http.StatusSeeOther, p.unlock(t, MarketingVariantSecret).StatusCode)

	res, body := p.get(t, "/dashboard")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotContains(t, body, "Financial HQ")

	res, _ = p.get(t, "/dashboard?tab=finance")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestExportAndMetrics(t *testing.T) {
	p := newPortal(t, VariantFinance)
	require.Equal(t, http.StatusSeeOther, p.unlock(t, FinanceVariantSecret).StatusCode)

	res, body := p.get(t, "/dashboard/export.csv")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, strings.HasPrefix(body, "Date,Website_Visits,Signups,Source"))

	_, metrics := p.get(t, "/metrics")
	assert.Contains(t, metrics, `portal_access_attempts_total{result="granted"} 1`)
	assert.Contains(t, metrics, `route="/dashboard/export.csv"`)
}

func TestStaticAssetsAreCached(t *testing.T) {
	p := newPortal(t, VariantFinance)
	res, _ := p.get(t, "/static/css/app.css")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "public, max-age=3600", res.Header.Get("Cache-Control"))
	assert.Contains(t, res.Header.Get("Content-Type"), "text/css")
}
