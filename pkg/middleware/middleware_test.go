package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/iota-uz/iam-console/pkg/composables"
	"github.com/iota-uz/iam-console/pkg/configuration"
	"github.com/iota-uz/iam-console/pkg/intl"
	"github.com/iota-uz/iam-console/pkg/types"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestWithLogger(t *testing.T) {
	t.Parallel()
	mw := WithLogger(quietLogger(), DefaultLoggerOptions())

	t.Run("Should reuse the incoming request id", func(t *testing.T) {
		var seen string
		h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = composables.UseRequestID(r.Context())
			params, ok := composables.UseParams(r.Context())
			require.True(t, ok)
			assert.Equal(t, "10.0.0.1", params.IP)
			w.WriteHeader(http.StatusNoContent)
		}))
		req := httptest.NewRequest(http.MethodGet, "/iam/roles", nil)
		req.Header.Set("X-Request-ID", "req-1")
		req.Header.Set("X-Real-IP", "10.0.0.1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "req-1", seen)
		assert.Equal(t, "req-1", rec.Header().Get("X-Request-Id"))
	})

	t.Run("Should answer API panics with the JSON envelope", func(t *testing.T) {
		h := mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/iam/roles", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "INTERNAL_SERVER_ERROR", body["code"])
	})

	t.Run("Should answer page panics with plain text", func(t *testing.T) {
		h := mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/iam/roles", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Internal Server Error")
	})
}

type stubApp struct {
	bundle *i18n.Bundle
}

func (a stubApp) Bundle() *i18n.Bundle            { return a.bundle }
func (a stubApp) GetSupportedLanguages() []string { return []string{"en", "zh"} }
func (a stubApp) NavItems(*i18n.Localizer) []types.NavigationItem {
	return []types.NavigationItem{
		{Name: "Access", Children: []types.NavigationItem{{Name: "Roles", Href: "/iam/roles"}}},
		{Name: "Services", Href: "/iam/services"},
	}
}

func TestProvideLocalizer(t *testing.T) {
	t.Parallel()
	app := stubApp{bundle: i18n.NewBundle(language.English)}

	cases := []struct {
		name   string
		target string
		accept string
		want   language.Tag
	}{
		{name: "Should match Accept-Language", target: "/", accept: "zh-CN,zh;q=0.9", want: language.Chinese},
		{name: "Should prefer the lang query", target: "/?lang=en", accept: "zh", want: language.English},
		{name: "Should default to English", target: "/", accept: "fr", want: language.English},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got language.Tag
			h := ProvideLocalizer(app)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, ok := intl.UseLocalizer(r.Context())
				require.True(t, ok)
				got = intl.UseLocale(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			req.Header.Set("Accept-Language", tc.accept)
			h.ServeHTTP(httptest.NewRecorder(), req)
			base, _ := got.Base()
			wantBase, _ := tc.want.Base()
			assert.Equal(t, wantBase, base)
		})
	}
}

func TestWithPageContext(t *testing.T) {
	t.Parallel()
	app := stubApp{bundle: i18n.NewBundle(language.English)}
	var pageCtx *types.PageContext
	h := ProvideLocalizer(app)(WithPageContext(app)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageCtx = composables.UsePageCtx(r.Context())
	})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/iam/roles?page=2", nil))

	require.NotNil(t, pageCtx)
	require.Len(t, pageCtx.NavItems, 2)
	assert.Equal(t, "Roles", pageCtx.NavItems[0].Name)
	active, ok := pageCtx.ActiveNav()
	require.True(t, ok)
	assert.Equal(t, "/iam/roles", active.Href)
}

func TestOpsGuard(t *testing.T) {
	t.Parallel()
	conf := &configuration.Configuration{
		GoAppEnvironment: configuration.Production,
		RealIPHeader:     "X-Real-IP",
		OpsGuard: configuration.OpsGuardOptions{
			Enabled: true,
			Token:   "secret",
			CIDRs:   "10.1.0.0/16",
		},
	}
	h := OpsGuard(conf, "/debug/")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	serve := func(path string, headers map[string]string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "192.168.1.5:1234"
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve("/iam/roles", nil))
	assert.Equal(t, http.StatusNotFound, serve("/debug/prometheus", nil))
	assert.Equal(t, http.StatusOK, serve("/debug/prometheus", map[string]string{"Authorization": "Bearer secret"}))
	assert.Equal(t, http.StatusOK, serve("/debug/prometheus", map[string]string{"X-Real-IP": "10.1.2.3"}))
	assert.Equal(t, http.StatusNotFound, serve("/debug/prometheus", map[string]string{"X-Ops-Token": "wrong"}))
}

func TestRateLimit(t *testing.T) {
	t.Parallel()
	h := RateLimit(RateLimitConfig{
		RequestsPerPeriod: 1,
		KeyFunc:           func(*http.Request) string { return "fixed" },
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "RATE_LIMITED")
}
