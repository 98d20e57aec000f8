package spotlight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/iota-uz/iam-console/pkg/intl"
)

func withLocalizer(t *testing.T, ctx context.Context) context.Context {
	t.Helper()
	bundle := i18n.NewBundle(language.English)
	require.NoError(t, bundle.AddMessages(language.English,
		&i18n.Message{ID: "NavigationLinks.Roles", Other: "Roles"},
		&i18n.Message{ID: "NavigationLinks.Policies", Other: "Policies"},
		&i18n.Message{ID: "NavigationLinks.EmailTemplates", Other: "Email templates"},
	))
	return intl.WithLocalizer(ctx, i18n.NewLocalizer(bundle, "en"))
}

func newLinks() *QuickLinks {
	links := &QuickLinks{}
	links.Add(
		NewQuickLink(nil, "NavigationLinks.Roles", "/iam/roles"),
		NewQuickLink(nil, "NavigationLinks.Policies", "/iam/policies"),
		NewQuickLink(nil, "NavigationLinks.EmailTemplates", "/iam/email-templates"),
	)
	return links
}

func TestQuickLinks_Find(t *testing.T) {
	t.Parallel()
	ctx := withLocalizer(t, context.Background())
	links := newLinks()

	t.Run("Should match translated labels fuzzily", func(t *testing.T) {
		found := links.Find(ctx, "emtpl")
		require.Len(t, found, 1)
		assert.Equal(t, "/iam/email-templates", found[0].Link())
	})

	t.Run("Should ignore case", func(t *testing.T) {
		found := links.Find(ctx, "ROL")
		require.Len(t, found, 1)
		assert.Equal(t, "Roles", found[0].Label(ctx))
	})

	t.Run("Should return everything for an empty query", func(t *testing.T) {
		assert.Len(t, links.Find(ctx, ""), 3)
	})

	t.Run("Should return nothing when no label matches", func(t *testing.T) {
		assert.Empty(t, links.Find(ctx, "zzz"))
	})
}

func TestQuickLink_Render(t *testing.T) {
	t.Parallel()
	ctx := withLocalizer(t, context.Background())
	var sb strings.Builder
	require.NoError(t, NewQuickLink(nil, "NavigationLinks.Roles", "/iam/roles?a=1&b=2").Render(ctx, &sb))
	assert.Contains(t, sb.String(), `href="/iam/roles?a=1&amp;b=2"`)
	assert.Contains(t, sb.String(), "<span>Roles</span>")
}

func TestController_Search(t *testing.T) {
	t.Parallel()
	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(withLocalizer(t, req.Context())))
		})
	})
	NewController(newLinks()).Register(r)

	t.Run("Should answer with JSON", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/spotlight/search?q=pol", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var out []Result
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, []Result{{Label: "Policies", Link: "/iam/policies"}}, out)
	})

	t.Run("Should render HTML for htmx", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/spotlight/search?q=pol", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `href="/iam/policies"`)
	})
}
