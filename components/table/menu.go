package table

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/iota-uz/iam-console/components/base"
	"github.com/iota-uz/iam-console/pkg/intl"
	"github.com/iota-uz/iam-console/pkg/listing"
)

// DialogID is the container confirm dialogs of a list are swapped into.
func DialogID(listID string) string {
	return listID + "-dialog"
}

// RowMenu renders the per-row action dropdown. Disabled items stay visible but inert.
func RowMenu(basePath, listID string, desc *listing.Descriptor, row listing.Row) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := base.NewWriter(out)
		rowPath := basePath + "/" + url.PathEscape(row.RowID())
		w.Raw(`<details class="relative inline-block text-left"><summary class="cursor-pointer list-none px-2" aria-label="`)
		w.Text(intl.T(ctx, "Listing.Actions"))
		w.Raw(`">⋯</summary><ul class="absolute right-0 z-10 mt-1 w-44 rounded border bg-white py-1 shadow" role="menu">`)
		for _, item := range listing.NewRowActions(desc, row, nil, nil).Menu() {
			text := label(ctx, "Listing.Menu."+string(item.Action), item.Label)
			if item.Action == listing.ActionStatus {
				text = label(ctx, "Listing.Transitions."+item.Label, item.Label)
			}
			w.Raw(`<li role="menuitem">`)
			if item.Disabled {
				w.Raw(`<span class="block cursor-not-allowed px-3 py-1 text-gray-400" aria-disabled="true"`)
				w.Attr("data-action", string(item.Action))
				w.Raw(">")
				w.Text(text)
				w.Raw("</span></li>")
				continue
			}
			cls := "block w-full px-3 py-1 text-left hover:bg-gray-50"
			switch item.Action {
			case listing.ActionView:
				w.Open("a", cls)
				w.Attr("href", rowPath)
			case listing.ActionEdit:
				w.Open("a", cls)
				w.Attr("href", rowPath+"?tab=edit")
			case listing.ActionStatus:
				w.Open("button", cls)
				w.Attr("type", "button")
				w.Attr("hx-get", rowPath+"/status?status="+url.QueryEscape(item.Status))
				w.Attr("hx-target", "#"+DialogID(listID))
			case listing.ActionDelete:
				w.Open("button", cls, "text-red-600")
				w.Attr("type", "button")
				w.Attr("hx-get", rowPath+"/delete")
				w.Attr("hx-target", "#"+DialogID(listID))
			}
			w.Attr("data-action", string(item.Action))
			w.Raw(">")
			w.Text(text)
			if item.Action == listing.ActionView || item.Action == listing.ActionEdit {
				w.Raw("</a></li>")
			} else {
				w.Raw("</button></li>")
			}
		}
		w.Raw("</ul></details>")
		return w.Err()
	})
}

// DialogProps describes one open confirm dialog.
type DialogProps struct {
	Dialog listing.Dialog
	// Action is the URL the confirmation is posted to.
	Action string
	// Return is the list URL to re-render after a successful mutation.
	Return string
	// Error replaces the dialog error text, typically with a translated message.
	Error string
}

// ConfirmDialog renders an open dialog. A closed dialog renders nothing.
func ConfirmDialog(p DialogProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		d := p.Dialog
		if !d.Open {
			return nil
		}
		w := base.NewWriter(out)
		w.Raw(`<div class="fixed inset-0 z-50 flex items-center justify-center bg-black/40" role="dialog" aria-modal="true">`)
		w.Raw(`<div class="w-full max-w-md rounded-lg bg-white p-6 shadow-xl"><h2 class="text-lg font-semibold">`)
		w.Text(d.Title)
		w.Raw(`</h2><p class="mt-2 text-sm text-gray-600">`)
		w.Text(d.Description)
		w.Raw("</p>")
		if msg := p.Error; msg != "" || d.Err != nil {
			if msg == "" {
				msg = d.Err.Error()
			}
			w.Raw(`<p class="mt-3 rounded bg-red-50 p-2 text-sm text-red-700" role="alert">`)
			w.Text(msg)
			w.Raw("</p>")
		}
		w.Raw(`<form class="mt-6 flex justify-end gap-2"`)
		w.Attr("hx-post", p.Action)
		w.Attr("hx-target", "closest [role=dialog]")
		w.Attr("hx-swap", "outerHTML")
		w.Attr("hx-disabled-elt", "find button")
		w.Raw(">")
		if d.TargetStatus != "" {
			hidden(w, "status", d.TargetStatus)
		}
		if p.Return != "" {
			hidden(w, "return", p.Return)
		}
		w.Raw(`<button type="button" class="rounded border px-4 py-2" hx-on:click="this.closest('[role=dialog]').remove()">`)
		w.Text(intl.T(ctx, "Listing.Cancel"))
		w.Raw("</button>")
		confirmCls := "rounded bg-blue-600 px-4 py-2 text-white"
		if d.Kind == listing.DeleteDialogOpen {
			confirmCls = base.Classes(confirmCls, "bg-red-600")
		}
		w.Open("button", confirmCls)
		w.Attr("type", "submit")
		w.Raw(">")
		w.Text(intl.T(ctx, "Listing.Confirm"))
		w.Raw("</button></form></div></div>")
		return w.Err()
	})
}
