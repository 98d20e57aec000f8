package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/iota-uz/iam-console/pkg/composables"
	"github.com/iota-uz/iam-console/pkg/intl"
	"github.com/iota-uz/iam-console/pkg/types"
)

type NavProvider interface {
	NavItems(localizer *i18n.Localizer) []types.NavigationItem
}

// enabledNavItems drops empty groups and collapses single-child groups into their child.
func enabledNavItems(items []types.NavigationItem) []types.NavigationItem {
	var out []types.NavigationItem
	for _, item := range items {
		if len(item.Children) == 0 {
			out = append(out, item)
			continue
		}
		children := enabledNavItems(item.Children)
		switch len(children) {
		case 0:
		case 1:
			out = append(out, children[0])
		default:
			item.Children = children
			out = append(out, item)
		}
	}
	return out
}

// WithPageContext must run after ProvideLocalizer.
func WithPageContext(nav NavProvider) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				localizer, found := intl.UseLocalizer(r.Context())
				if !found {
					panic(intl.ErrNoLocalizer)
				}
				pageCtx := &types.PageContext{
					URL:       r.URL,
					Localizer: localizer,
					Locale:    intl.UseLocale(r.Context()),
					NavItems:  enabledNavItems(nav.NavItems(localizer)),
				}
				next.ServeHTTP(w, r.WithContext(composables.WithPageCtx(r.Context(), pageCtx)))
			},
		)
	}
}
