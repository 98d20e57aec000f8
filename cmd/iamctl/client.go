package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-resty/resty/v2"

	"github.com/iota-uz/iam-console/pkg/httpapi"
	"github.com/iota-uz/iam-console/pkg/listing"
)

// remoteRow is one row of the JSON list endpoint.
type remoteRow map[string]any

func (r remoteRow) str(key string) string {
	if v, ok := r[key]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}

func (r remoteRow) RowID() string { return r.str("id") }

func (r remoteRow) RowLabel() string {
	for _, key := range []string{"display_name", "name", "title"} {
		if v := r.str(key); v != "" {
			return v
		}
	}
	return r.RowID()
}

func (r remoteRow) RowStatus() string { return r.str("status") }

// protectionFlags are the JSON fields that mark a row as read-only.
var protectionFlags = []string{"is_system", "is_default"}

func (r remoteRow) Protected() bool {
	for _, key := range protectionFlags {
		if b, _ := r[key].(bool); b {
			return true
		}
	}
	return false
}

func (r remoteRow) Value(column string) any { return r[column] }

type apiClient struct {
	http *resty.Client
}

func newAPIClient(baseURL string, timeout time.Duration, debug bool) *apiClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		SetDebug(debug)
	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return r != nil && r.StatusCode() >= http.StatusInternalServerError
	})
	return &apiClient{http: client}
}

// fetcher lists slug through the JSON API. Params go over the wire unchanged.
func (c *apiClient) fetcher(slug string) listing.Fetcher[remoteRow] {
	return listing.FetcherFunc[remoteRow](func(ctx context.Context, params listing.Params) (listing.Page[remoteRow], error) {
		var page httpapi.PageEnvelope[remoteRow]
		var apiErr httpapi.ErrorEnvelope
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParamsFromValues(params.Values()).
			SetResult(&page).
			SetError(&apiErr).
			Get("/api/iam/" + slug)
		if err != nil {
			return listing.Page[remoteRow]{}, errors.Wrapf(err, "list %s", slug)
		}
		if resp.IsError() {
			if apiErr.Code == "" {
				return listing.Page[remoteRow]{}, errors.Errorf("list %s: unexpected status %d", slug, resp.StatusCode())
			}
			return listing.Page[remoteRow]{}, errors.Wrapf(&apiErr, "list %s", slug)
		}
		return listing.Page[remoteRow]{Rows: page.Rows, Total: page.Total}, nil
	})
}
