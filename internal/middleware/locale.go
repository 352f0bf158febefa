package middleware

import (
	"context"
	"net/http"
	"strings"

	"institutonuevovallarta.mx/inva-web/internal/i18n"
)

const (
	langCookie = "hl"
	langQuery  = "hl"
)

// VaryLocale sets Vary header for Accept-Language on dynamic responses
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// append to existing Vary if any
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r)
	})
}

// Locale resolves the chrome language: ?hl= (persisted to the hl cookie),
// then the hl cookie, then Accept-Language. Unsupported values are ignored.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), ctxKeyLocaleFB, bundle.Fallback())

			lang := ""
			if q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(langQuery))); q != "" && bundle.IsSupported(q) {
				lang = q
				http.SetCookie(w, &http.Cookie{
					Name:     langCookie,
					Value:    q,
					Path:     "/",
					MaxAge:   365 * 24 * 60 * 60,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			if lang == "" {
				if c, err := r.Cookie(langCookie); err == nil && bundle.IsSupported(c.Value) {
					lang = strings.ToLower(strings.TrimSpace(c.Value))
				}
			}
			if lang == "" {
				lang = bundle.Resolve(r.Header.Get("Accept-Language"))
			}

			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(WithLang(ctx, lang)))
		})
	}
}

// Lang returns the resolved language, the bundle fallback, or "es".
func Lang(r *http.Request) string {
	if lang, ok := LangFromContext(r.Context()); ok {
		return lang
	}
	if v := r.Context().Value(ctxKeyLocaleFB); v != nil {
		if fb, ok := v.(string); ok && fb != "" {
			return fb
		}
	}
	return "es"
}
