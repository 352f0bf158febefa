package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"institutonuevovallarta.mx/inva-web/internal/i18n"
)

func newBundle(t *testing.T) *i18n.Bundle {
	t.Helper()
	b, err := i18n.Load(i18n.Embedded(), "es", []string{"es", "en"})
	require.NoError(t, err)
	return b
}

func langEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(Lang(r)))
	})
}

func TestLocalePrecedence(t *testing.T) {
	t.Parallel()

	bundle := newBundle(t)
	handler := Locale(bundle)(langEcho())

	tests := []struct {
		name       string
		target     string
		cookie     string
		accept     string
		want       string
		wantCookie bool
	}{
		{name: "fallback", target: "/", want: "es"},
		{name: "accept language", target: "/", accept: "en-US,en;q=0.9", want: "en"},
		{name: "cookie beats header", target: "/", cookie: "es", accept: "en", want: "es"},
		{name: "query beats cookie", target: "/?hl=en", cookie: "es", want: "en", wantCookie: true},
		{name: "unsupported query ignored", target: "/?hl=fr", accept: "en", want: "en"},
		{name: "unsupported cookie ignored", target: "/", cookie: "de", want: "es"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "hl", Value: tc.cookie})
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tc.want, rec.Body.String())
			require.Equal(t, tc.want, rec.Header().Get("Content-Language"))
			var set bool
			for _, c := range rec.Result().Cookies() {
				if c.Name == "hl" {
					set = true
					require.Equal(t, tc.want, c.Value)
				}
			}
			require.Equal(t, tc.wantCookie, set)
		})
	}
}

func TestLangWithoutMiddleware(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Equal(t, "es", Lang(req))
}

func TestVaryLocale(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	VaryLocale(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Contains(t, rec.Header().Values("Vary"), "Accept-Language")
}

func TestRequireHTMX(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, HTMXInfoFromContext(r.Context()).IsBoosted)
		w.WriteHeader(http.StatusNoContent)
	})
	handler := HTMX(RequireHTMX(ok))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fragments/nav", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/fragments/nav", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Boosted", "true")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Contains(t, rec.Header().Values("Vary"), "HX-Request")
}

func TestAssetsWithCache(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"css/app.css": {Data: []byte("body{}")},
	}
	handler := AssetsWithCache(fsys, "")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/css/app.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "body{}", rec.Body.String())
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	require.Contains(t, rec.Header().Get("Cache-Control"), "max-age=604800")

	req := httptest.NewRequest(http.MethodGet, "/css/app.css", nil)
	req.Header.Set("If-None-Match", `"other", `+etag)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotModified, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/css/", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing.js", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
