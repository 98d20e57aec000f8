package spotlight

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/iam-console/pkg/htmx"
	"github.com/iota-uz/iam-console/pkg/httpapi"
)

type Result struct {
	Label string `json:"label"`
	Link  string `json:"link"`
}

type Controller struct {
	links    *QuickLinks
	basePath string
}

func NewController(links *QuickLinks) *Controller {
	return &Controller{links: links, basePath: "/spotlight"}
}

func (c *Controller) Key() string {
	return c.basePath
}

func (c *Controller) Register(r *mux.Router) {
	r.HandleFunc(c.basePath+"/search", c.Search).Methods(http.MethodGet)
}

// Search answers htmx requests with rendered entries and everything else with JSON.
func (c *Controller) Search(w http.ResponseWriter, r *http.Request) {
	found := c.links.Find(r.Context(), r.URL.Query().Get("q"))
	if htmx.IsHxRequest(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		for _, link := range found {
			if err := link.Render(r.Context(), w); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}
		return
	}
	out := make([]Result, 0, len(found))
	for _, link := range found {
		out = append(out, Result{Label: link.Label(r.Context()), Link: link.Link()})
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, out)
}
