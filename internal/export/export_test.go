package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"institutonuevovallarta.mx/inva-web/internal/assets"
	"institutonuevovallarta.mx/inva-web/internal/cms"
	"institutonuevovallarta.mx/inva-web/internal/i18n"
	"institutonuevovallarta.mx/inva-web/internal/site"
	"institutonuevovallarta.mx/inva-web/public"
	"institutonuevovallarta.mx/inva-web/templates"
)

func newSite(t *testing.T) *site.Site {
	t.Helper()
	store, err := cms.LoadEmbedded()
	require.NoError(t, err)
	bundle, err := i18n.Load(i18n.Embedded(), "es", []string{"es", "en"})
	require.NoError(t, err)
	s, err := site.New(site.Options{
		Store:     store,
		Bundle:    bundle,
		Templates: templates.FS,
		Assets:    assets.New(""),
		BaseURL:   "https://www.institutonuevovallarta.mx",
		Location:  time.UTC,
	})
	require.NoError(t, err)
	return s
}

func TestPageFile(t *testing.T) {
	t.Parallel()

	require.Equal(t, "index.html", PageFile("/"))
	require.Equal(t, "conocenos/index.html", PageFile("/conocenos"))
	require.Equal(t, "oferta/index.html", PageFile("/oferta/"))
}

func TestRunWritesEveryRoute(t *testing.T) {
	t.Parallel()

	static, err := public.StaticFS()
	require.NoError(t, err)
	out := t.TempDir()

	res, err := Run(context.Background(), Options{
		Site:   newSite(t),
		OutDir: out,
		Static: static,
		Media:  fstest.MapFS{"logo.jpg": {Data: []byte("jpeg")}},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"index.html", "conocenos/index.html", "oferta/index.html", "contacto/index.html"}, res.Pages)
	require.Contains(t, res.Files, "static/js/nav.js")
	require.Contains(t, res.Files, "media/logo.jpg")

	for _, rt := range site.Routes {
		raw, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(PageFile(rt.Path))))
		require.NoError(t, err)
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(raw)))
		require.NoError(t, err)
		name, _ := doc.Find("[data-page]").Attr("data-page")
		require.Equal(t, rt.Name, name)
		canonical, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
		require.Equal(t, "https://www.institutonuevovallarta.mx"+rt.Path, canonical)

		require.NotContains(t, string(raw), "/fragments/nav", rt.Path)
		require.NotContains(t, string(raw), "?hl=", rt.Path)
		require.Equal(t, 1, doc.Find("button#nav-toggle[data-menu-toggle]").Length(), rt.Path)
		menu := doc.Find("#mobile-menu")
		require.Equal(t, 1, menu.Length(), rt.Path)
		_, hidden := menu.Attr("hidden")
		require.True(t, hidden, rt.Path)
		require.Equal(t, 4, menu.Find("[data-mobile-link]").Length(), rt.Path)
		require.Equal(t, 0, menu.Find("[hx-get]").Length(), rt.Path)
	}

	sitemap, err := os.ReadFile(filepath.Join(out, "sitemap.xml"))
	require.NoError(t, err)
	require.Contains(t, string(sitemap), "<loc>https://www.institutonuevovallarta.mx/contacto</loc>")

	robots, err := os.ReadFile(filepath.Join(out, "robots.txt"))
	require.NoError(t, err)
	require.Contains(t, string(robots), "Sitemap: https://www.institutonuevovallarta.mx/sitemap.xml")
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{Site: newSite(t), OutDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunValidatesOptions(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), Options{OutDir: t.TempDir()})
	require.Error(t, err)
	_, err = Run(context.Background(), Options{Site: newSite(t)})
	require.Error(t, err)
}
