// Package layout renders the authenticated console shell around page content.
package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/iota-uz/iam-console/components/base"
	"github.com/iota-uz/iam-console/pkg/composables"
	"github.com/iota-uz/iam-console/pkg/intl"
	"github.com/iota-uz/iam-console/pkg/types"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// toastScript shows the "notify" events sent in HX-Trigger headers.
const toastScript = `document.body.addEventListener("notify", function (e) {
  var t = document.createElement("div");
  t.className = "toast toast-" + e.detail.variant;
  t.setAttribute("role", "status");
  t.textContent = e.detail.message;
  document.getElementById("toasts").appendChild(t);
  setTimeout(function () { t.remove(); }, 4000);
});`

type Props struct {
	Title string
	// Languages are the codes offered in the language switcher.
	Languages []string
}

// Authenticated wraps content in the console shell: sidebar navigation, spotlight
// search, language switcher and the toast area.
func Authenticated(p Props, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		pageCtx := composables.UsePageCtx(ctx)
		w := base.NewWriter(out)
		w.Raw("<!DOCTYPE html><html")
		w.Attr("lang", pageCtx.Locale.String())
		w.Raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		w.Text(p.Title)
		w.Raw("</title><script")
		w.Attr("src", htmxSrc)
		w.Raw(`></script></head><body class="flex min-h-screen bg-gray-50 text-gray-900">`)

		w.Raw(`<aside class="w-64 shrink-0 border-r bg-white p-4"><div class="mb-6 text-lg font-semibold">`)
		w.Text(pageCtx.T("Layout.Brand"))
		w.Raw("</div>")
		w.Render(ctx, Nav(pageCtx))
		w.Raw("</aside>")

		w.Raw(`<main class="flex-1 p-6"><header class="mb-6 flex items-center justify-between gap-4"><h1 class="text-2xl font-semibold">`)
		w.Text(p.Title)
		w.Raw("</h1>")
		w.Render(ctx, spotlight(pageCtx))
		w.Render(ctx, languages(pageCtx, p.Languages))
		w.Raw("</header>")
		w.Render(ctx, content)
		w.Raw(`</main><div id="toasts" class="fixed bottom-4 right-4 flex flex-col gap-2"></div><script>`)
		w.Raw(toastScript)
		w.Raw("</script></body></html>")
		return w.Err()
	})
}

// Nav renders the navigation tree. Groups render their children indented.
func Nav(pageCtx *types.PageContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := base.NewWriter(out)
		w.Raw(`<nav><ul class="flex flex-col gap-1">`)
		for _, item := range pageCtx.NavItems {
			navItem(ctx, w, pageCtx, item)
		}
		w.Raw("</ul></nav>")
		return w.Err()
	})
}

func navItem(ctx context.Context, w *base.Writer, pageCtx *types.PageContext, item types.NavigationItem) {
	active := pageCtx.URL != nil && item.IsActive(pageCtx.URL.Path)
	w.Raw("<li>")
	if item.Href != "" {
		w.Open("a", "flex items-center gap-2 rounded px-3 py-2 hover:bg-gray-100", activeClass(active))
		w.Attr("href", item.Href)
		w.AttrIf(active, `aria-current="page"`)
	} else {
		w.Open("span", "flex items-center gap-2 px-3 py-2 text-xs uppercase text-gray-500")
	}
	w.Raw(">")
	w.Render(ctx, item.Icon)
	w.Text(item.Name)
	if item.Href != "" {
		w.Raw("</a>")
	} else {
		w.Raw("</span>")
	}
	if len(item.Children) > 0 {
		w.Raw(`<ul class="ml-4 flex flex-col gap-1">`)
		for _, child := range item.Children {
			navItem(ctx, w, pageCtx, child)
		}
		w.Raw("</ul>")
	}
	w.Raw("</li>")
}

func activeClass(active bool) string {
	if active {
		return "bg-blue-50 font-medium text-blue-700"
	}
	return ""
}

func spotlight(pageCtx *types.PageContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := base.NewWriter(out)
		w.Raw(`<div class="relative"><input type="search" name="q" class="w-72 rounded border px-3 py-1.5"`)
		w.Attr("placeholder", pageCtx.T("Layout.Spotlight"))
		w.Attr("hx-get", "/spotlight/search")
		w.Attr("hx-trigger", "input changed delay:200ms")
		w.Attr("hx-target", "#spotlight-results")
		w.Raw(`><div id="spotlight-results" class="absolute z-20 mt-1 w-72 bg-white"></div></div>`)
		return w.Err()
	})
}

func languages(pageCtx *types.PageContext, codes []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		if len(codes) < 2 {
			return nil
		}
		w := base.NewWriter(out)
		w.Raw(`<div class="flex gap-2 text-sm">`)
		for _, lang := range intl.Languages(codes) {
			w.Open("a", "text-gray-500 hover:text-gray-900", activeClass(pageCtx.Locale == lang.Tag))
			w.Attr("href", "?lang="+lang.Code)
			w.Raw(">")
			w.Text(lang.Label)
			w.Raw("</a>")
		}
		w.Raw("</div>")
		return w.Err()
	})
}
