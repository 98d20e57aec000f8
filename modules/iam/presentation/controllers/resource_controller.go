package controllers

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/iota-uz/iam-console/components/table"
	"github.com/iota-uz/iam-console/modules/iam/domain/resource"
	"github.com/iota-uz/iam-console/modules/iam/presentation/controllers/dtos"
	"github.com/iota-uz/iam-console/modules/iam/presentation/templates"
	"github.com/iota-uz/iam-console/pkg/application"
	"github.com/iota-uz/iam-console/pkg/composables"
	"github.com/iota-uz/iam-console/pkg/htmx"
	"github.com/iota-uz/iam-console/pkg/intl"
	"github.com/iota-uz/iam-console/pkg/listing"
	"github.com/iota-uz/iam-console/pkg/middleware"
	"github.com/iota-uz/iam-console/pkg/serrors"
)

type ResourceControllerOptions struct {
	// BasePath defaults to /iam/{slug}.
	BasePath     string
	FetchTimeout time.Duration
}

// ResourceController serves the list, details and row action pages of one entity.
type ResourceController[E resource.Entity[E]] struct {
	app          application.Application
	res          Resource[E]
	basePath     string
	fetchTimeout time.Duration
}

func NewResourceController[E resource.Entity[E]](
	app application.Application,
	res Resource[E],
	opts *ResourceControllerOptions,
) application.Controller {
	c := &ResourceController[E]{
		app:          app,
		res:          res,
		basePath:     "/iam/" + res.Slug,
		fetchTimeout: defaultFetchTimeout,
	}
	if opts != nil {
		if opts.BasePath != "" {
			c.basePath = opts.BasePath
		}
		if opts.FetchTimeout > 0 {
			c.fetchTimeout = opts.FetchTimeout
		}
	}
	return c
}

func (c *ResourceController[E]) Key() string {
	return c.basePath
}

func (c *ResourceController[E]) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(
		middleware.ProvideLocalizer(c.app),
		middleware.WithPageContext(c.app),
	)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/export", c.Export).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Details).Methods(http.MethodGet)
	router.HandleFunc("/{id}/status", c.StatusDialog).Methods(http.MethodGet)
	router.HandleFunc("/{id}/status", c.ConfirmStatus).Methods(http.MethodPost)
	router.HandleFunc("/{id}/delete", c.DeleteDialog).Methods(http.MethodGet)
	router.HandleFunc("/{id}/delete", c.ConfirmDelete).Methods(http.MethodPost)
}

func (c *ResourceController[E]) listID() string {
	return "list-" + c.res.Slug
}

func (c *ResourceController[E]) pageFor(ctx context.Context) templates.PageProps {
	return templates.PageProps{
		Title:     intl.T(ctx, c.res.Title),
		Languages: c.app.GetSupportedLanguages(),
	}
}

// load runs a listing controller over rawQuery and waits for its first page. Fetch
// failures end up in View.Err.
func (c *ResourceController[E]) load(ctx context.Context, rawQuery string) listing.View[E] {
	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()
	logger := composables.UseLogger(ctx)
	ctrl := listing.NewController(
		c.res.Service.Descriptor(),
		c.res.fetcher(),
		listing.NewMemoryURL(rawQuery),
		listing.WithLogger(logger),
	)
	if err := ctrl.Initialize(ctx); err != nil {
		return listing.View[E]{Err: err}
	}
	view, err := ctrl.Wait(ctx)
	if err != nil {
		logger.WithError(err).Warn("failed to load list")
		view.Err = err
	}
	return view
}

func (c *ResourceController[E]) props(view listing.View[E]) table.Props[E] {
	return table.Props[E]{
		ID:       c.listID(),
		BasePath: c.basePath,
		Desc:     c.res.Service.Descriptor(),
		Columns:  c.res.Columns,
		View:     view,
	}
}

// renderList answers htmx requests with the table fragment and the canonical URL, and
// everything else with the full page.
func (c *ResourceController[E]) renderList(w http.ResponseWriter, r *http.Request, view listing.View[E]) {
	props := c.props(view)
	if htmx.IsHxRequest(r) {
		htmx.SetReplaceURL(w, props.Href(view.State))
		templ.Handler(table.Table(props)).ServeHTTP(w, r)
		return
	}
	exportHref := c.basePath + "/export"
	if q := listing.EncodeURL(props.Desc, view.State).Encode(); q != "" {
		exportHref += "?" + q
	}
	templ.Handler(
		templates.ListPage(c.pageFor(r.Context()), props, exportHref),
		templ.WithStreaming(),
	).ServeHTTP(w, r)
}

func (c *ResourceController[E]) List(w http.ResponseWriter, r *http.Request) {
	c.renderList(w, r, c.load(r.Context(), r.URL.RawQuery))
}

func (c *ResourceController[E]) Details(w http.ResponseWriter, r *http.Request) {
	row, ok := c.row(w, r)
	if !ok {
		return
	}
	c.renderDetails(w, r, row, http.StatusOK, nil)
}

func (c *ResourceController[E]) renderDetails(w http.ResponseWriter, r *http.Request, row E, status int, errs map[string]string) {
	tab := r.URL.Query().Get("tab")
	if tab != templates.TabEdit {
		tab = templates.TabOverview
	}
	if errs != nil {
		tab = templates.TabEdit
	}
	var transitions []listing.StatusTransition
	if !row.Protected() {
		transitions = c.res.Service.Descriptor().Transitions(row.RowStatus())
	}
	templ.Handler(templates.DetailsPage(templates.DetailsProps{
		Page:        c.pageFor(r.Context()),
		BasePath:    c.basePath,
		Record:      row,
		Fields:      c.res.Fields,
		Tab:         tab,
		Transitions: transitions,
		Errors:      errs,
	}), templ.WithStatus(status)).ServeHTTP(w, r)
}

// row loads the record named in the route and writes the error response when that
// fails.
func (c *ResourceController[E]) row(w http.ResponseWriter, r *http.Request) (E, bool) {
	row, err := c.res.Service.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		var zero E
		c.fail(w, r, err)
		return zero, false
	}
	return row, true
}

func (c *ResourceController[E]) fail(w http.ResponseWriter, r *http.Request, err error) {
	err = domainError(err)
	code, _ := serrors.Code(err)
	status := statusCodes.Status(code)
	if status == http.StatusInternalServerError {
		composables.UseLogger(r.Context()).WithError(err).Error("request failed")
	}
	if htmx.IsHxRequest(r) {
		hxNotifier{ctx: r.Context(), w: w}.Error(err)
	}
	http.Error(w, errorMessage(r.Context(), err), status)
}

// returnURL is the list URL the dialog was opened from, or "" outside of a list.
func (c *ResourceController[E]) returnURL(r *http.Request) string {
	q, ok := listQuery(c.basePath, r.Header.Get("HX-Current-URL"))
	if !ok {
		return ""
	}
	if q == "" {
		return c.basePath
	}
	return c.basePath + "?" + q
}

func (c *ResourceController[E]) openDialog(w http.ResponseWriter, r *http.Request, action string, open func(*listing.RowActions) error) {
	row, ok := c.row(w, r)
	if !ok {
		return
	}
	actions := listing.NewRowActions(c.res.Service.Descriptor(), row, c.res.Service, nil)
	if err := open(actions); err != nil {
		c.fail(w, r, err)
		return
	}
	templ.Handler(table.ConfirmDialog(table.DialogProps{
		Dialog: actions.Dialog(),
		Action: action,
		Return: c.returnURL(r),
	})).ServeHTTP(w, r)
}

func (c *ResourceController[E]) StatusDialog(w http.ResponseWriter, r *http.Request) {
	status := composables.GetLastQueryParam(r, "status")
	c.openDialog(w, r, r.URL.Path, func(a *listing.RowActions) error {
		return a.OpenStatusDialog(status)
	})
}

func (c *ResourceController[E]) DeleteDialog(w http.ResponseWriter, r *http.Request) {
	c.openDialog(w, r, r.URL.Path, func(a *listing.RowActions) error {
		return a.OpenDeleteDialog()
	})
}

func (c *ResourceController[E]) ConfirmStatus(w http.ResponseWriter, r *http.Request) {
	dto, err := composables.UseForm(&dtos.StatusDTO{}, r)
	if err != nil {
		c.fail(w, r, errInvalidRequest)
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		if htmx.IsHxRequest(r) {
			c.fail(w, r, errInvalidRequest)
			return
		}
		row, found := c.row(w, r)
		if found {
			c.renderDetails(w, r, row, http.StatusUnprocessableEntity, errs)
		}
		return
	}
	c.confirm(w, r, dto.Return, false, func(a *listing.RowActions) error {
		return a.OpenStatusDialog(dto.Status)
	})
}

func (c *ResourceController[E]) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	dto, err := composables.UseForm(&dtos.DeleteDTO{}, r)
	if err != nil {
		c.fail(w, r, errInvalidRequest)
		return
	}
	c.confirm(w, r, dto.Return, true, func(a *listing.RowActions) error {
		return a.OpenDeleteDialog()
	})
}

// confirm runs a row action. On failure htmx clients get the dialog back with the error
// so they can retry or cancel; on success the list they came from is re-rendered.
func (c *ResourceController[E]) confirm(
	w http.ResponseWriter,
	r *http.Request,
	ret string,
	deleting bool,
	open func(*listing.RowActions) error,
) {
	ctx := r.Context()
	row, ok := c.row(w, r)
	if !ok {
		return
	}
	notifier := hxNotifier{ctx: ctx, w: w}
	actions := listing.NewRowActions(c.res.Service.Descriptor(), row, c.res.Service, notifier)
	if err := open(actions); err != nil {
		c.fail(w, r, err)
		return
	}
	if err := actions.Confirm(ctx); err != nil {
		if !htmx.IsHxRequest(r) {
			c.fail(w, r, err)
			return
		}
		templ.Handler(table.ConfirmDialog(table.DialogProps{
			Dialog: actions.Dialog(),
			Action: r.URL.Path,
			Return: ret,
			Error:  errorMessage(ctx, domainError(err)),
		})).ServeHTTP(w, r)
		return
	}

	next := c.basePath + "/" + url.PathEscape(row.RowID())
	if deleting {
		next = c.basePath
	}
	if query, fromList := listQuery(c.basePath, ret); fromList {
		if htmx.IsHxRequest(r) {
			htmx.Retarget(w, "#"+c.listID(), "outerHTML")
			c.renderList(w, r, c.load(ctx, query))
			return
		}
		next = ret
	}
	if htmx.IsHxRequest(r) {
		htmx.Redirect(w, next)
		return
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}
