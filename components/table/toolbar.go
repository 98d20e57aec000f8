package table

import (
	"context"
	"io"
	"slices"
	"strconv"

	"github.com/a-h/templ"

	"github.com/iota-uz/iam-console/components/base"
	"github.com/iota-uz/iam-console/pkg/intl"
	"github.com/iota-uz/iam-console/pkg/listing"
)

// label translates id and falls back to the given text when there is no message.
func label(ctx context.Context, id, fallback string) string {
	if v := intl.T(ctx, id); v != id {
		return v
	}
	return fallback
}

func filterLabel(ctx context.Context, f listing.FilterField) string {
	return label(ctx, "Listing.Filters."+f.Key, f.Label)
}

func optionLabel(ctx context.Context, f listing.FilterField, value string) string {
	return label(ctx, "Listing.Options."+value, f.OptionLabel(value))
}

// Toolbar renders the search box, one control per filter, the active filter count and
// the removable chips. The form omits the page so any change starts from page one.
func Toolbar[E listing.Record](p Props[E]) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := base.NewWriter(out)
		s := p.View.State
		w.Open("form", "flex flex-wrap items-center gap-3")
		w.Attr("action", p.BasePath)
		w.Attr("method", "get")
		w.Attr("hx-get", p.BasePath)
		w.Attr("hx-target", p.target())
		w.Attr("hx-swap", "outerHTML")
		w.Attr("hx-trigger", "input changed delay:300ms from:input[type=search], change")
		w.Raw(">")

		w.Open("input", "w-64 rounded border px-3 py-1.5")
		w.Attr("type", "search")
		w.Attr("name", p.Desc.SearchParam)
		w.Attr("value", s.Search)
		w.Attr("placeholder", intl.T(ctx, "Listing.Search"))
		w.Raw(">")

		for _, f := range p.Desc.Filters {
			w.Render(ctx, filterControl(f, s.Filters[f.Key]))
		}

		if len(s.Sorting) > 0 {
			hidden(w, listing.ParamSortBy, s.Sorting[0].Field)
			hidden(w, listing.ParamSortOrder, s.Sorting.Order())
		}
		if s.Pagination.PageSize != p.Desc.PageSize() {
			hidden(w, listing.ParamLimit, strconv.Itoa(s.Pagination.PageSize))
		}

		if n := listing.ActiveFilterCount(p.Desc, s.Filters); n > 0 || s.Search != "" {
			if n > 0 {
				w.Raw(`<span class="rounded-full bg-blue-100 px-2 text-xs text-blue-700" data-role="filter-count">`, strconv.Itoa(n), "</span>")
			}
			reset := p.withFilters(listing.DefaultFilters(p.Desc), "")
			w.Render(ctx, link(p.Href(reset), p.target(), "text-sm text-gray-500 hover:underline", intl.T(ctx, "Listing.ClearFilters")))
		}
		w.Raw("</form>")
		w.Render(ctx, Chips(p))
		return w.Err()
	})
}

func hidden(w *base.Writer, name, value string) {
	w.Raw(`<input type="hidden"`)
	w.Attr("name", name)
	w.Attr("value", value)
	w.Raw(">")
}

func filterControl(f listing.FilterField, v listing.FilterValue) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := base.NewWriter(out)
		switch f.Kind {
		case listing.FilterMulti:
			w.Raw(`<details class="relative"><summary class="cursor-pointer rounded border px-3 py-1.5">`)
			w.Text(filterLabel(ctx, f))
			if len(v.List) > 0 {
				w.Raw(` <span class="rounded-full bg-gray-200 px-1.5 text-xs">`, strconv.Itoa(len(v.List)), "</span>")
			}
			w.Raw(`</summary><div class="absolute z-10 mt-1 flex flex-col gap-1 rounded border bg-white p-2 shadow">`)
			for _, o := range f.Options {
				w.Raw(`<label class="flex items-center gap-2"><input type="checkbox"`)
				w.Attr("name", f.Key)
				w.Attr("value", o.Value)
				w.AttrIf(slices.Contains(v.List, o.Value), "checked")
				w.Raw(">")
				w.Text(optionLabel(ctx, f, o.Value))
				w.Raw("</label>")
			}
			w.Raw("</div></details>")
		case listing.FilterTriState:
			w.Open("select", "rounded border px-2 py-1.5")
			w.Attr("name", f.Key)
			w.Attr("aria-label", filterLabel(ctx, f))
			w.Raw(">")
			current := v.Value
			if current == "" {
				current = f.TriState.All
			}
			for _, opt := range []string{f.TriState.All, f.TriState.True, f.TriState.False} {
				w.Raw("<option")
				w.Attr("value", opt)
				w.AttrIf(opt == current, "selected")
				w.Raw(">")
				if opt == f.TriState.All {
					w.Text(filterLabel(ctx, f) + ": " + intl.T(ctx, "Listing.All"))
				} else {
					w.Text(optionLabel(ctx, f, opt))
				}
				w.Raw("</option>")
			}
			w.Raw("</select>")
		default:
			w.Open("input", "w-48 rounded border px-3 py-1.5")
			w.Attr("type", "text")
			w.Attr("name", f.Key)
			w.Attr("value", v.Value)
			w.Attr("placeholder", filterLabel(ctx, f))
			w.Raw(">")
		}
		return w.Err()
	})
}

// Chips renders one removable chip per active filter value.
func Chips[E listing.Record](p Props[E]) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		chips := listing.ActiveChips(p.Desc, p.View.State.Filters)
		if len(chips) == 0 {
			return nil
		}
		w := base.NewWriter(out)
		w.Raw(`<ul class="flex flex-wrap gap-2" data-role="chips">`)
		for _, chip := range chips {
			f, _ := p.Desc.Filter(chip.Key)
			next := p.withFilters(listing.WithoutChip(p.Desc, p.View.State.Filters, chip), p.View.State.Search)
			text := filterLabel(ctx, f) + ": " + chip.Label
			if f.Kind != listing.FilterText {
				text = filterLabel(ctx, f) + ": " + optionLabel(ctx, f, chip.Value)
			}
			w.Raw(`<li class="rounded-full bg-gray-100 px-3 py-1 text-sm">`)
			w.Render(ctx, link(p.Href(next), p.target(), "", text+" ×"))
			w.Raw("</li>")
		}
		w.Raw("</ul>")
		return w.Err()
	})
}
