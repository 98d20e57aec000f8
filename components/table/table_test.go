package table_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iam-console/components/table"
	"github.com/iota-uz/iam-console/pkg/listing"
)

type item struct {
	id, name, status string
	system           bool
}

func (i item) RowID() string     { return i.id }
func (i item) RowLabel() string  { return i.name }
func (i item) RowStatus() string { return i.status }
func (i item) Protected() bool   { return i.system }

func (i item) Value(column string) any {
	switch column {
	case "name":
		return i.name
	case "status":
		return i.status
	}
	return nil
}

func descriptor() *listing.Descriptor {
	return &listing.Descriptor{
		Name:         "items",
		SearchParam:  "search",
		SearchFields: []string{"name"},
		Filters: []listing.FilterField{{
			Key:   "status",
			Param: "status",
			Label: "Status",
			Kind:  listing.FilterMulti,
			Options: []listing.Option{
				{Value: "active", Label: "Active"},
				{Value: "inactive", Label: "Inactive"},
			},
		}},
		Sortable:        []string{"name", "created_at"},
		DefaultSort:     listing.SortSpec{{Field: "created_at", Desc: true}},
		DefaultPageSize: 2,
		MaxPageSize:     10,
		PageReset:       listing.ResetPageOnChange,
		StatusTransitions: []listing.StatusTransition{
			{From: "active", To: "inactive", Label: "Deactivate"},
			{From: "inactive", To: "active", Label: "Activate"},
		},
	}
}

func props(view listing.View[item]) table.Props[item] {
	return table.Props[item]{
		ID:       "list-items",
		BasePath: "/items",
		Desc:     descriptor(),
		Columns: []table.Column{
			{Key: "name", Label: "Name"},
			{Key: "status", Label: "Status"},
		},
		View: view,
	}
}

func render(t *testing.T, p table.Props[item]) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, table.Table(p).Render(context.Background(), &buf))
	return buf.String()
}

func TestTable_Rows(t *testing.T) {
	state := listing.DefaultState(descriptor())
	state.Sorting = listing.SortSpec{{Field: "name"}}
	html := render(t, props(listing.View[item]{
		Rows:  []item{{id: "a", name: "Alpha", status: "active"}, {id: "b", name: "Beta", status: "inactive", system: true}},
		Total: 5,
		State: state,
	}))

	assert.Contains(t, html, `id="list-items"`)
	assert.Contains(t, html, `data-id="a"`)
	assert.Contains(t, html, `aria-sort="ascending"`)
	// the next click on an ascending header sorts descending
	assert.Contains(t, html, `href="/items?sortBy=name&amp;sortOrder=desc"`)
	assert.Contains(t, html, `hx-get="/items/a/status?status=inactive"`)
	assert.NotContains(t, html, `hx-get="/items/b/delete"`)
	assert.Contains(t, html, `aria-current="page">1<`)
	assert.Contains(t, html, `href="/items?page=3&amp;sortBy=name&amp;sortOrder=asc"`)
	assert.Contains(t, html, `id="list-items-dialog"`)
}

func TestTable_States(t *testing.T) {
	desc := descriptor()

	t.Run("empty without filters", func(t *testing.T) {
		html := render(t, props(listing.View[item]{State: listing.DefaultState(desc)}))
		assert.Contains(t, html, `data-state="empty"`)
		assert.Contains(t, html, "Listing.Empty")
		assert.NotContains(t, html, "Listing.NoMatches")
	})

	t.Run("empty with filters links to the cleared list", func(t *testing.T) {
		state := listing.DefaultState(desc)
		state.Search = "zzz"
		state.Filters["status"] = listing.FilterValue{List: []string{"active"}}
		state.Pagination.PageIndex = 2
		html := render(t, props(listing.View[item]{State: state}))
		assert.Contains(t, html, "Listing.NoMatches")
		assert.Contains(t, html, `href="/items"`)
		assert.Contains(t, html, `data-role="chips"`)
	})

	t.Run("error offers a retry of the same state", func(t *testing.T) {
		state := listing.DefaultState(desc)
		state.Search = "al"
		html := render(t, props(listing.View[item]{State: state, Err: errors.New("boom")}))
		assert.Contains(t, html, `data-state="error"`)
		assert.Contains(t, html, `href="/items?search=al"`)
		assert.NotContains(t, html, "<table")
	})
}

func TestConfirmDialog(t *testing.T) {
	row := item{id: "a", name: "Alpha", status: "active"}
	actions := listing.NewRowActions(descriptor(), row, nil, nil)
	require.NoError(t, actions.OpenDeleteDialog())

	var buf bytes.Buffer
	err := table.ConfirmDialog(table.DialogProps{
		Dialog: actions.Dialog(),
		Action: "/items/a/delete",
		Return: "/items?search=al",
		Error:  "it went wrong",
	}).Render(context.Background(), &buf)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, `role="dialog"`)
	assert.Contains(t, html, `hx-post="/items/a/delete"`)
	assert.Contains(t, html, `value="/items?search=al"`)
	assert.Contains(t, html, "it went wrong")
}
