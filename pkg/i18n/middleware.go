package i18n

import "net/http"

// LocaleQueryParam overrides the Accept-Language header when present.
const LocaleQueryParam = "locale"

// Middleware negotiates the request locale against cat and stores it in the
// request context.
func Middleware(cat *Catalog) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := cat.Match(r.URL.Query().Get(LocaleQueryParam), r.Header.Get("Accept-Language"))
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), locale)))
		})
	}
}
