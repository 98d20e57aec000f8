package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/iota-uz/iam-console/pkg/intl"
)

// Application is the subset of the application needed to build localizers.
type Application interface {
	Bundle() *i18n.Bundle
	GetSupportedLanguages() []string
}

// requestLocale prefers an explicit ?lang= over the Accept-Language header.
func requestLocale(r *http.Request, supported []language.Tag) language.Tag {
	var candidates []language.Tag
	if lang := r.URL.Query().Get("lang"); lang != "" {
		if tag, err := language.Parse(lang); err == nil {
			candidates = []language.Tag{tag}
		}
	}
	if candidates == nil {
		candidates, _, _ = language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	}
	return intl.Match(language.English, supported, candidates)
}

// ProvideLocalizer stores a localizer and the negotiated locale in the request context.
func ProvideLocalizer(app Application) mux.MiddlewareFunc {
	bundle := app.Bundle()
	supported := intl.Tags(app.GetSupportedLanguages())
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := requestLocale(r, supported)
			ctx := intl.WithLocalizer(r.Context(), i18n.NewLocalizer(bundle, locale.String()))
			next.ServeHTTP(w, r.WithContext(intl.WithLocale(ctx, locale)))
		})
	}
}
