package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/iam-console/modules/iam/domain/resource"
	"github.com/iota-uz/iam-console/modules/iam/presentation/controllers/dtos"
	"github.com/iota-uz/iam-console/pkg/application"
	"github.com/iota-uz/iam-console/pkg/composables"
	"github.com/iota-uz/iam-console/pkg/httpapi"
	"github.com/iota-uz/iam-console/pkg/listing"
	"github.com/iota-uz/iam-console/pkg/serrors"
)

// ResourceAPIController exposes one entity as JSON under /api/iam/{slug}. List takes
// the transport form of listing.Params.
type ResourceAPIController[E resource.Entity[E]] struct {
	res      Resource[E]
	basePath string
}

func NewResourceAPIController[E resource.Entity[E]](res Resource[E]) application.Controller {
	return &ResourceAPIController[E]{
		res:      res,
		basePath: "/api/iam/" + res.Slug,
	}
}

func (c *ResourceAPIController[E]) Key() string {
	return c.basePath
}

func (c *ResourceAPIController[E]) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{id}/status", c.UpdateStatus).Methods(http.MethodPatch)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func (c *ResourceAPIController[E]) meta(r *http.Request) map[string]string {
	meta := map[string]string{"path": r.URL.Path}
	if id := composables.UseRequestID(r.Context()); id != "" {
		meta["request_id"] = id
	}
	return meta
}

func (c *ResourceAPIController[E]) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if code, _ := serrors.Code(err); statusCodes.Status(code) == http.StatusInternalServerError {
		composables.UseLogger(r.Context()).WithError(err).Error("api request failed")
	}
	_ = httpapi.WriteServiceError(w, statusCodes, err, c.meta(r))
}

func (c *ResourceAPIController[E]) List(w http.ResponseWriter, r *http.Request) {
	params := listing.DecodeParams(c.res.Service.Descriptor(), r.URL.Query())
	page, err := c.res.fetcher().Fetch(r.Context(), params)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	rows := page.Rows
	if rows == nil {
		rows = []E{}
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, httpapi.PageEnvelope[E]{Rows: rows, Total: page.Total})
}

func (c *ResourceAPIController[E]) Get(w http.ResponseWriter, r *http.Request) {
	row, err := c.res.Service.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, row)
}

func (c *ResourceAPIController[E]) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var dto dtos.StatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		c.writeError(w, r, errInvalidRequest)
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		meta := c.meta(r)
		for field, msg := range errs {
			meta[field] = msg
		}
		_ = httpapi.WriteError(w, http.StatusBadRequest, "FIELD_INVALID", "validation failed", meta)
		return
	}
	id := mux.Vars(r)["id"]
	if err := c.res.Service.UpdateStatus(r.Context(), id, dto.Status); err != nil {
		c.writeError(w, r, err)
		return
	}
	row, err := c.res.Service.GetByID(r.Context(), id)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, row)
}

func (c *ResourceAPIController[E]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.res.Service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		c.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
