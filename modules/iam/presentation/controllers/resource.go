package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iota-uz/iam-console/components/table"
	"github.com/iota-uz/iam-console/modules/iam/domain/resource"
	"github.com/iota-uz/iam-console/modules/iam/services"
	"github.com/iota-uz/iam-console/pkg/composables"
	"github.com/iota-uz/iam-console/pkg/htmx"
	"github.com/iota-uz/iam-console/pkg/httpapi"
	"github.com/iota-uz/iam-console/pkg/intl"
	"github.com/iota-uz/iam-console/pkg/listing"
	"github.com/iota-uz/iam-console/pkg/serrors"
)

const defaultFetchTimeout = 10 * time.Second

// Resource bundles what the controllers of one entity need.
type Resource[E resource.Entity[E]] struct {
	// Slug is the URL segment, e.g. "email-templates".
	Slug string
	// Title is a message ID.
	Title   string
	Service *services.ResourceService[E]
	// Fetcher serves list pages, usually a cache in front of Service.
	Fetcher listing.Fetcher[E]
	Columns []table.Column
	Fields  []table.Column
}

func (r Resource[E]) fetcher() listing.Fetcher[E] {
	if r.Fetcher != nil {
		return r.Fetcher
	}
	return r.Service
}

var statusCodes = httpapi.StatusCodes{
	resource.ErrNotFound.Code:      http.StatusNotFound,
	resource.ErrProtected.Code:     http.StatusConflict,
	resource.ErrInvalidStatus.Code: http.StatusUnprocessableEntity,
	"FIELD_REQUIRED":               http.StatusBadRequest,
	"FIELD_INVALID":                http.StatusBadRequest,
	"INVALID_REQUEST":              http.StatusBadRequest,
}

var errInvalidRequest = serrors.NewError("INVALID_REQUEST", "invalid request", "Errors.InvalidRequest")

// domainError maps row action guard errors onto the domain errors.
func domainError(err error) error {
	switch {
	case errors.Is(err, listing.ErrProtectedRow):
		return resource.ErrProtected
	case errors.Is(err, listing.ErrInvalidTransition):
		return resource.ErrInvalidStatus
	}
	return err
}

func errorMessage(ctx context.Context, err error) string {
	var be serrors.BaseError
	if errors.As(err, &be) {
		l, _ := intl.UseLocalizer(ctx)
		return be.Localize(l)
	}
	return intl.T(ctx, "Errors.Internal")
}

type notification struct {
	Variant string `json:"variant"`
	Message string `json:"message"`
}

// hxNotifier reports row action outcomes as "notify" events in the HX-Trigger header.
type hxNotifier struct {
	ctx context.Context
	w   http.ResponseWriter
}

func (n hxNotifier) Success(message string) {
	n.send("success", message)
}

func (n hxNotifier) Error(err error) {
	n.send("error", errorMessage(n.ctx, domainError(err)))
}

func (n hxNotifier) send(variant, message string) {
	if err := htmx.SetTrigger(n.w, "notify", notification{Variant: variant, Message: message}); err != nil {
		composables.UseLogger(n.ctx).WithError(err).Warn("failed to set notify trigger")
	}
}

// listQuery returns the raw query of a list URL under basePath. Anything else yields
// ok == false.
func listQuery(basePath, raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || strings.TrimSuffix(u.Path, "/") != basePath {
		return "", false
	}
	return u.RawQuery, true
}
