// Package table renders list pages: the toolbar, the data table with row menus,
// pagination and the confirmation dialog. Every link and form targets the table
// container through htmx, so a list page only ever swaps its own fragment.
package table

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/iota-uz/iam-console/components/base"
	"github.com/iota-uz/iam-console/pkg/intl"
	"github.com/iota-uz/iam-console/pkg/listing"
)

type Column struct {
	// Key is passed to Record.Value and used as the sort field.
	Key string
	// Label is a message ID.
	Label  string
	Class  string
	Format func(ctx context.Context, v any) string
}

// Props describes one rendered list.
type Props[E listing.Record] struct {
	ID       string
	BasePath string
	Desc     *listing.Descriptor
	Columns  []Column
	View     listing.View[E]
}

// Href returns the list URL for s in canonical form.
func (p Props[E]) Href(s listing.State) string {
	q := listing.EncodeURL(p.Desc, s).Encode()
	if q == "" {
		return p.BasePath
	}
	return p.BasePath + "?" + q
}

func (p Props[E]) target() string {
	return "#" + p.ID
}

// withFilters applies a filter change the same way the listing controller does.
func (p Props[E]) withFilters(filters listing.FilterState, search string) listing.State {
	s := p.View.State.Clone()
	s.Filters = filters
	s.Search = search
	if p.Desc.PageReset == listing.ResetPageOnChange {
		s.Pagination.PageIndex = 0
	}
	return s
}

// Table renders the whole list fragment.
func Table[E listing.Record](p Props[E]) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := base.NewWriter(out)
		w.Open("div", "flex flex-col gap-4")
		w.Attr("id", p.ID)
		w.Raw(">")
		w.Render(ctx, Toolbar(p))
		switch {
		case p.View.Err != nil:
			w.Render(ctx, ErrorState(p))
		case len(p.View.Rows) == 0:
			w.Render(ctx, EmptyState(p))
		default:
			w.Render(ctx, grid(p))
			w.Render(ctx, Pagination(p))
		}
		w.Raw(`<div id="`, p.ID, `-dialog"></div></div>`)
		return w.Err()
	})
}

func grid[E listing.Record](p Props[E]) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := base.NewWriter(out)
		w.Raw(`<div class="overflow-x-auto rounded-lg border border-gray-200">`)
		w.Open("table", "min-w-full divide-y divide-gray-200 text-sm")
		w.Raw("><thead><tr>")
		for _, col := range p.Columns {
			w.Render(ctx, header(p, col))
		}
		w.Raw(`<th class="w-12"></th></tr></thead><tbody class="divide-y divide-gray-100">`)
		for _, row := range p.View.Rows {
			w.Raw("<tr")
			w.Attr("data-id", row.RowID())
			w.Raw(">")
			for _, col := range p.Columns {
				w.Open("td", "px-4 py-2", col.Class)
				w.Raw(">")
				w.Text(cell(ctx, col, row))
				w.Raw("</td>")
			}
			w.Raw(`<td class="px-2 py-2 text-right">`)
			w.Render(ctx, RowMenu(p.BasePath, p.ID, p.Desc, row))
			w.Raw("</td></tr>")
		}
		w.Raw("</tbody></table></div>")
		return w.Err()
	})
}

func cell(ctx context.Context, col Column, row listing.Record) string {
	v := row.Value(col.Key)
	if col.Format != nil {
		return col.Format(ctx, v)
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// header renders a column header. Sortable headers cycle asc, desc and back to the
// default order.
func header[E listing.Record](p Props[E], col Column) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := base.NewWriter(out)
		w.Raw(`<th class="px-4 py-2 text-left font-medium text-gray-600"`)
		if !p.Desc.IsSortable(col.Key) {
			w.Raw(">")
			w.Text(intl.T(ctx, col.Label))
			w.Raw("</th>")
			return w.Err()
		}
		s := p.View.State.Clone()
		sorted := len(s.Sorting) > 0 && s.Sorting[0].Field == col.Key
		var current listing.SortField
		if sorted {
			current = s.Sorting[0]
		}
		indicator := ""
		switch {
		case !sorted:
			s.Sorting = listing.SortSpec{{Field: col.Key}}
		case !current.Desc:
			s.Sorting = listing.SortSpec{{Field: col.Key, Desc: true}}
			indicator = "▲"
		default:
			indicator = "▼"
			s.Sorting = p.Desc.Sort()
			if s.Sorting.Equal(listing.SortSpec{current}) {
				s.Sorting = listing.SortSpec{{Field: col.Key}}
			}
		}
		if sorted {
			order := "ascending"
			if current.Desc {
				order = "descending"
			}
			w.Attr("aria-sort", order)
		}
		w.Raw(">")
		w.Render(ctx, link(p.Href(s), p.target(), "inline-flex items-center gap-1 hover:text-gray-900", intl.T(ctx, col.Label)+" "+indicator))
		w.Raw("</th>")
		return w.Err()
	})
}

func link(href, target, class, text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := base.NewWriter(out)
		w.Open("a", class)
		w.Attr("href", href)
		w.Attr("hx-get", href)
		w.Attr("hx-target", target)
		w.Attr("hx-swap", "outerHTML")
		w.Raw(">")
		w.Text(text)
		w.Raw("</a>")
		return w.Err()
	})
}

// Pagination renders the page summary and previous/next controls.
func Pagination[E listing.Record](p Props[E]) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := base.NewWriter(out)
		page := p.View.State.Pagination.PageIndex + 1
		pages := p.View.PageCount()
		w.Raw(`<nav class="flex items-center justify-between text-sm text-gray-600" aria-label="pagination"><span>`)
		w.Text(intl.T(ctx, "Listing.PageOf", map[string]any{
			"Page":  page,
			"Pages": pages,
			"Total": p.View.Total,
		}))
		w.Raw(`</span><div class="flex gap-2">`)
		btn := "rounded border px-3 py-1"
		if page > 1 {
			s := p.View.State.Clone()
			s.Pagination.PageIndex--
			w.Render(ctx, link(p.Href(s), p.target(), btn, intl.T(ctx, "Listing.Previous")))
		}
		for i := max(1, page-2); i <= min(pages, page+2); i++ {
			if i == page {
				w.Raw(`<span class="rounded border bg-gray-100 px-3 py-1" aria-current="page">`, strconv.Itoa(i), "</span>")
				continue
			}
			s := p.View.State.Clone()
			s.Pagination.PageIndex = i - 1
			w.Render(ctx, link(p.Href(s), p.target(), btn, strconv.Itoa(i)))
		}
		if page < pages {
			s := p.View.State.Clone()
			s.Pagination.PageIndex++
			w.Render(ctx, link(p.Href(s), p.target(), btn, intl.T(ctx, "Listing.Next")))
		}
		w.Raw("</div></nav>")
		return w.Err()
	})
}

func EmptyState[E listing.Record](p Props[E]) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := base.NewWriter(out)
		w.Raw(`<div class="rounded-lg border border-dashed p-10 text-center text-gray-500" data-state="empty"><p>`)
		filtered := p.View.State.Search != "" || listing.ActiveFilterCount(p.Desc, p.View.State.Filters) > 0
		if filtered {
			w.Text(intl.T(ctx, "Listing.NoMatches"))
			w.Raw("</p>")
			reset := p.withFilters(listing.DefaultFilters(p.Desc), "")
			w.Render(ctx, link(p.Href(reset), p.target(), "mt-2 inline-block text-blue-600", intl.T(ctx, "Listing.ClearFilters")))
		} else {
			w.Text(intl.T(ctx, "Listing.Empty"))
			w.Raw("</p>")
		}
		w.Raw("</div>")
		return w.Err()
	})
}

func ErrorState[E listing.Record](p Props[E]) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := base.NewWriter(out)
		w.Raw(`<div class="rounded-lg border border-red-200 bg-red-50 p-6 text-red-700" role="alert" data-state="error"><p>`)
		w.Text(intl.T(ctx, "Listing.LoadFailed"))
		w.Raw("</p>")
		w.Render(ctx, link(p.Href(p.View.State), p.target(), "mt-2 inline-block underline", intl.T(ctx, "Listing.Retry")))
		w.Raw("</div>")
		return w.Err()
	})
}
