package server

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/iota-uz/iam-console/components/base"
	"github.com/iota-uz/iam-console/components/layout"
	"github.com/iota-uz/iam-console/pkg/application"
	"github.com/iota-uz/iam-console/pkg/composables"
	"github.com/iota-uz/iam-console/pkg/htmx"
	"github.com/iota-uz/iam-console/pkg/httpapi"
	"github.com/iota-uz/iam-console/pkg/intl"
	"github.com/iota-uz/iam-console/pkg/middleware"
	"github.com/iota-uz/iam-console/pkg/routing"
)

func errorMeta(r *http.Request) map[string]string {
	meta := map[string]string{"path": r.URL.Path}
	if id := composables.UseRequestID(r.Context()); id != "" {
		meta["request_id"] = id
	}
	return meta
}

func errorPage(messageID string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := base.NewWriter(out)
		w.Raw(`<div class="py-24 text-center" data-state="error"><p class="text-lg text-gray-600">`)
		w.Text(intl.T(ctx, messageID))
		w.Raw(`</p><a class="mt-4 inline-block text-blue-600" href="/">`)
		w.Text(intl.T(ctx, "Layout.Brand"))
		w.Raw("</a></div>")
		return w.Err()
	})
}

// errorHandler answers API paths with the JSON envelope, ops paths with plain text and
// everything else with the layout.
func errorHandler(app application.Application, classifier *routing.Classifier, status int, code, messageID string) http.HandlerFunc {
	page := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if htmx.IsHxRequest(r) {
			http.Error(w, intl.T(r.Context(), messageID), status)
			return
		}
		templ.Handler(
			layout.Authenticated(layout.Props{
				Title:     intl.T(r.Context(), messageID),
				Languages: app.GetSupportedLanguages(),
			}, errorPage(messageID)),
			templ.WithStatus(status),
		).ServeHTTP(w, r)
	})
	html := middleware.ProvideLocalizer(app)(middleware.WithPageContext(app)(page))

	return func(w http.ResponseWriter, r *http.Request) {
		switch classifier.ClassifyPath(r.URL.Path) {
		case routing.RouteClassAPI:
			_ = httpapi.WriteError(w, status, code, strings.ToLower(http.StatusText(status)), errorMeta(r))
		case routing.RouteClassOps, routing.RouteClassStatic:
			http.Error(w, http.StatusText(status), status)
		default:
			html.ServeHTTP(w, r)
		}
	}
}

func NotFound(app application.Application, classifier *routing.Classifier) http.HandlerFunc {
	return errorHandler(app, classifier, http.StatusNotFound, "NOT_FOUND", "Errors.PageNotFound")
}

func MethodNotAllowed(app application.Application, classifier *routing.Classifier) http.HandlerFunc {
	return errorHandler(app, classifier, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Errors.MethodNotAllowed")
}

// homeController sends the root path to the first navigation entry.
type homeController struct {
	target string
}

func (c *homeController) Key() string {
	return "/"
}

func (c *homeController) Register(r *mux.Router) {
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, c.target, http.StatusFound)
	}).Methods(http.MethodGet)
}
