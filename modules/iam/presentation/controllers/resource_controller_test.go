package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/iota-uz/iam-console/modules/iam"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/emailtemplate"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/role"
	"github.com/iota-uz/iam-console/modules/iam/infrastructure/persistence"
	"github.com/iota-uz/iam-console/pkg/application"
	"github.com/iota-uz/iam-console/pkg/configuration"
	"github.com/iota-uz/iam-console/pkg/httpapi"
)

func newRouter(t *testing.T) *mux.Router {
	t.Helper()
	app := application.New(&application.ApplicationOptions{})
	require.NoError(t, iam.NewModule(&iam.ModuleOptions{Storage: configuration.StorageMemory}).Register(app))
	r := mux.NewRouter()
	for _, c := range app.Controllers() {
		c.Register(r)
	}
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func hx(req *http.Request) *http.Request {
	req.Header.Set("HX-Request", "true")
	return req
}

func templateID(name string) string {
	return persistence.FixtureID(emailtemplate.Resource, name).String()
}

func TestResourceController_List(t *testing.T) {
	r := newRouter(t)

	t.Run("full page", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/iam/email-templates?search=welcome&status=active,draft&isSystem=regular", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "<!DOCTYPE html>")
		assert.Contains(t, body, "Welcome trial")
		assert.Contains(t, body, "Welcome partner")
		assert.NotContains(t, body, "Verify email")
		assert.Contains(t, body, `data-role="chips"`)
		assert.Contains(t, body, `data-role="filter-count">3<`)
	})

	t.Run("htmx fragment replaces the url with the canonical form", func(t *testing.T) {
		rec := serve(r, hx(httptest.NewRequest(http.MethodGet, "/iam/email-templates?page=abc&sortBy=bogus&sortOrder=sideways", nil)))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "<!DOCTYPE html>")
		assert.Contains(t, rec.Body.String(), `id="list-email-templates"`)
		assert.Equal(t, "/iam/email-templates", rec.Header().Get("HX-Replace-Url"))

		rec = serve(r, hx(httptest.NewRequest(http.MethodGet, "/iam/email-templates?search=welcome&page=1", nil)))
		assert.Equal(t, "/iam/email-templates?search=welcome", rec.Header().Get("HX-Replace-Url"))
	})

	t.Run("system rows get inert menu items", func(t *testing.T) {
		rec := serve(r, hx(httptest.NewRequest(http.MethodGet, "/iam/email-templates?isSystem=system", nil)))
		body := rec.Body.String()
		assert.Contains(t, body, `aria-disabled="true" data-action="delete"`)
		assert.NotContains(t, body, `hx-get="/iam/email-templates/`+templateID("verify-email")+`/delete"`)
	})

	t.Run("huge page number is clamped", func(t *testing.T) {
		rec := serve(r, hx(httptest.NewRequest(http.MethodGet, "/iam/email-templates?page=1844674407370955162", nil)))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `data-state="empty"`)

		rec = serve(r, httptest.NewRequest(http.MethodGet, "/api/iam/email-templates?page=1844674407370955162", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var page httpapi.PageEnvelope[emailtemplate.EmailTemplate]
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
		assert.Equal(t, 12, page.Total)
		assert.Empty(t, page.Rows)
	})

	t.Run("empty result offers to clear filters", func(t *testing.T) {
		rec := serve(r, hx(httptest.NewRequest(http.MethodGet, "/iam/email-templates?search=nothing-matches-this", nil)))
		assert.Contains(t, rec.Body.String(), `data-state="empty"`)
	})
}

func TestResourceController_RowActions(t *testing.T) {
	r := newRouter(t)
	base := "/iam/email-templates/"

	t.Run("dialog for an allowed transition", func(t *testing.T) {
		rec := serve(r, hx(httptest.NewRequest(http.MethodGet, base+templateID("welcome")+"/status?status=inactive", nil)))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `role="dialog"`)
		assert.Contains(t, rec.Body.String(), `name="status" value="inactive"`)
	})

	t.Run("dialog for a transition outside the lifecycle", func(t *testing.T) {
		rec := serve(r, hx(httptest.NewRequest(http.MethodGet, base+templateID("welcome")+"/status?status=draft", nil)))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Header().Get("HX-Trigger"), `"variant":"error"`)
	})

	t.Run("confirm from the list re-renders it", func(t *testing.T) {
		form := url.Values{"status": {"inactive"}, "return": {"/iam/email-templates?search=welcome"}}
		req := hx(httptest.NewRequest(http.MethodPost, base+templateID("welcome")+"/status", strings.NewReader(form.Encode())))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := serve(r, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "#list-email-templates", rec.Header().Get("HX-Retarget"))
		assert.Equal(t, "/iam/email-templates?search=welcome", rec.Header().Get("HX-Replace-Url"))
		assert.Contains(t, rec.Header().Get("HX-Trigger"), `"variant":"success"`)
	})

	t.Run("protected rows cannot be deleted", func(t *testing.T) {
		req := hx(httptest.NewRequest(http.MethodPost, base+templateID("verify-email")+"/delete", nil))
		rec := serve(r, req)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Header().Get("HX-Trigger"), "notify")
	})

	t.Run("delete from the details page redirects to the list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, base+templateID("invite-guest")+"/delete", nil)
		rec := serve(r, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/iam/email-templates", rec.Header().Get("Location"))

		rec = serve(r, httptest.NewRequest(http.MethodGet, base+templateID("invite-guest"), nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid status form renders the edit tab", func(t *testing.T) {
		form := url.Values{"status": {"INACTIVE"}}
		req := httptest.NewRequest(http.MethodPost, base+templateID("welcome-trial")+"/status", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := serve(r, req)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), `role="alert"`)
	})
}

func TestResourceController_Details(t *testing.T) {
	r := newRouter(t)
	rec := serve(r, httptest.NewRequest(http.MethodGet, "/iam/email-templates/"+templateID("mfa-code")+"?tab=edit", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-state="protected"`)

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/iam/email-templates/not-a-uuid", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResourceController_Export(t *testing.T) {
	r := newRouter(t)
	rec := serve(r, httptest.NewRequest(http.MethodGet, "/iam/notifications/export?channel=email", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "notifications-")

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Title", rows[0][0])
}

func TestResourceAPIController(t *testing.T) {
	r := newRouter(t)

	t.Run("list uses the params contract", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/api/iam/roles?is_system=true&sort_by=name&sort_order=asc", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var page httpapi.PageEnvelope[role.Role]
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
		assert.Equal(t, 2, page.Total)
		require.Len(t, page.Rows, 2)
		assert.Equal(t, "admin", page.Rows[0].Name)
		assert.Equal(t, "member", page.Rows[1].Name)
	})

	t.Run("status change", func(t *testing.T) {
		id := persistence.FixtureID(role.Resource, "guest").String()
		req := httptest.NewRequest(http.MethodPatch, "/api/iam/roles/"+id+"/status", strings.NewReader(`{"status":"active"}`))
		rec := serve(r, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var got role.Role
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "active", got.Status)
	})

	t.Run("errors use the envelope", func(t *testing.T) {
		admin := persistence.FixtureID(role.Resource, "admin").String()
		cases := []struct {
			name   string
			method string
			path   string
			body   string
			status int
			code   string
		}{
			{"protected", http.MethodDelete, "/api/iam/roles/" + admin, "", http.StatusConflict, "PROTECTED"},
			{"missing", http.MethodDelete, "/api/iam/roles/" + persistence.FixtureID(role.Resource, "nobody").String(), "", http.StatusNotFound, "NOT_FOUND"},
			{"malformed body", http.MethodPatch, "/api/iam/roles/" + admin + "/status", "{", http.StatusBadRequest, "INVALID_REQUEST"},
			{"empty status", http.MethodPatch, "/api/iam/roles/" + admin + "/status", `{"status":""}`, http.StatusBadRequest, "FIELD_INVALID"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				rec := serve(r, httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body)))
				require.Equal(t, tc.status, rec.Code)
				var env httpapi.ErrorEnvelope
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
				assert.Equal(t, tc.code, env.Code)
				assert.Equal(t, tc.path, env.Meta["path"])
			})
		}
	})
}
