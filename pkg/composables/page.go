package composables

import (
	"context"
	"net/url"

	"github.com/iota-uz/iam-console/pkg/constants"
	"github.com/iota-uz/iam-console/pkg/intl"
	"github.com/iota-uz/iam-console/pkg/types"
)

func WithPageCtx(ctx context.Context, pageCtx *types.PageContext) context.Context {
	return context.WithValue(ctx, constants.PageContextKey, pageCtx)
}

// UsePageCtx returns the page context set by the page context middleware. Outside of
// it a context built from the localizer and locale in ctx is returned.
func UsePageCtx(ctx context.Context) *types.PageContext {
	if pageCtx, ok := ctx.Value(constants.PageContextKey).(*types.PageContext); ok {
		return pageCtx
	}
	localizer, _ := intl.UseLocalizer(ctx)
	return &types.PageContext{
		Locale:    intl.UseLocale(ctx),
		URL:       &url.URL{},
		Localizer: localizer,
	}
}
