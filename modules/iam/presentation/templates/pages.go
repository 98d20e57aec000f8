package templates

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/iota-uz/iam-console/components/base"
	"github.com/iota-uz/iam-console/components/layout"
	"github.com/iota-uz/iam-console/components/table"
	"github.com/iota-uz/iam-console/pkg/intl"
	"github.com/iota-uz/iam-console/pkg/listing"
)

const (
	TabOverview = "overview"
	TabEdit     = "edit"
)

type PageProps struct {
	Title     string
	Languages []string
}

// ListPage is the full page around a list fragment.
func ListPage[E listing.Record](p PageProps, list table.Props[E], exportHref string) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := base.NewWriter(out)
		w.Raw(`<div class="mb-4 flex justify-end">`)
		w.Open("a", "rounded border px-3 py-1.5 text-sm")
		w.Attr("href", exportHref)
		w.Attr("download", "")
		w.Raw(">")
		w.Text(intl.T(ctx, "Listing.Export"))
		w.Raw("</a></div>")
		w.Render(ctx, table.Table(list))
		return w.Err()
	})
	return layout.Authenticated(layout.Props{Title: p.Title, Languages: p.Languages}, content)
}

type DetailsProps struct {
	Page     PageProps
	BasePath string
	Record   listing.Record
	Fields   []table.Column
	Tab      string
	// Transitions are the status changes offered on the edit tab.
	Transitions []listing.StatusTransition
	Errors      map[string]string
}

func (p DetailsProps) rowPath() string {
	return p.BasePath + "/" + url.PathEscape(p.Record.RowID())
}

// DetailsPage shows one record with an overview tab and an edit tab for its status.
func DetailsPage(p DetailsProps) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := base.NewWriter(out)
		w.Raw(`<div class="mb-4 flex items-center gap-4 border-b">`)
		for _, tab := range []string{TabOverview, TabEdit} {
			w.Open("a", "-mb-px border-b-2 border-transparent px-3 py-2", tabClass(tab == p.Tab))
			w.Attr("href", p.rowPath()+"?tab="+tab)
			w.Raw(">")
			w.Text(intl.T(ctx, "Details.Tabs."+tab))
			w.Raw("</a>")
		}
		w.Raw(`<a class="ml-auto text-sm text-gray-500"`)
		w.Attr("href", p.BasePath)
		w.Raw(">")
		w.Text(intl.T(ctx, "Details.Back"))
		w.Raw("</a></div>")
		if p.Tab == TabEdit {
			w.Render(ctx, editTab(p))
		} else {
			w.Render(ctx, overviewTab(p))
		}
		return w.Err()
	})
	title := p.Page.Title + " · " + p.Record.RowLabel()
	return layout.Authenticated(layout.Props{Title: title, Languages: p.Page.Languages}, content)
}

func tabClass(active bool) string {
	if active {
		return "border-blue-600 font-medium text-blue-700"
	}
	return "text-gray-500"
}

func overviewTab(p DetailsProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := base.NewWriter(out)
		w.Raw(`<dl class="grid grid-cols-3 gap-x-6 gap-y-3 rounded-lg border bg-white p-6">`)
		for _, f := range p.Fields {
			v := p.Record.Value(f.Key)
			text := ""
			switch {
			case f.Format != nil:
				text = f.Format(ctx, v)
			case v != nil:
				text = fmt.Sprint(v)
			}
			w.Raw(`<dt class="text-sm text-gray-500">`)
			w.Text(intl.T(ctx, f.Label))
			w.Raw(`</dt><dd class="col-span-2">`)
			w.Text(text)
			w.Raw("</dd>")
		}
		w.Raw("</dl>")
		return w.Err()
	})
}

func editTab(p DetailsProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := base.NewWriter(out)
		w.Raw(`<div class="rounded-lg border bg-white p-6">`)
		if p.Record.Protected() {
			w.Raw(`<p class="text-gray-500" data-state="protected">`)
			w.Text(intl.T(ctx, "Errors.Protected"))
			w.Raw("</p></div>")
			return w.Err()
		}
		if len(p.Transitions) == 0 {
			w.Raw(`<p class="text-gray-500">`)
			w.Text(intl.T(ctx, "Details.NoTransitions"))
			w.Raw("</p></div>")
			return w.Err()
		}
		w.Raw(`<form method="post" class="flex items-end gap-3"`)
		w.Attr("action", p.rowPath()+"/status")
		w.Raw(`><label class="flex flex-col gap-1 text-sm">`)
		w.Text(intl.T(ctx, "Resources.Fields.Status"))
		w.Raw(`<select name="status" class="rounded border px-2 py-1.5">`)
		for _, t := range p.Transitions {
			w.Raw("<option")
			w.Attr("value", t.To)
			w.Raw(">")
			w.Text(t.Label)
			w.Raw("</option>")
		}
		w.Raw("</select></label>")
		if msg, ok := p.Errors["Status"]; ok {
			w.Raw(`<p class="text-sm text-red-600" role="alert">`)
			w.Text(msg)
			w.Raw("</p>")
		}
		w.Raw(`<button type="submit" class="rounded bg-blue-600 px-4 py-2 text-white">`)
		w.Text(intl.T(ctx, "Listing.Confirm"))
		w.Raw("</button></form></div>")
		return w.Err()
	})
}
