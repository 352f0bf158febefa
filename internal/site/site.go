// Package site wires the page builders, the navigation state machine and the
// templates into HTTP handlers.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"institutonuevovallarta.mx/inva-web/internal/assets"
	"institutonuevovallarta.mx/inva-web/internal/cms"
	"institutonuevovallarta.mx/inva-web/internal/format"
	"institutonuevovallarta.mx/inva-web/internal/handlers"
	"institutonuevovallarta.mx/inva-web/internal/i18n"
	"institutonuevovallarta.mx/inva-web/internal/middleware"
	"institutonuevovallarta.mx/inva-web/internal/nav"
	"institutonuevovallarta.mx/inva-web/internal/observability"
	"institutonuevovallarta.mx/inva-web/internal/requestctx"
	"institutonuevovallarta.mx/inva-web/internal/seo"
)

// Options configures a Site.
type Options struct {
	Store        *cms.Store
	Bundle       *i18n.Bundle
	Templates    fs.FS
	TemplatesDir string
	DevMode      bool
	Assets       assets.Registry
	BaseURL      string
	Analytics    handlers.Analytics
	Metrics      *observability.Collector
	Location     *time.Location
	Now          func() time.Time
}

// Site serves the four marketing pages and their supporting endpoints.
type Site struct {
	store     *cms.Store
	bundle    *i18n.Bundle
	renderer  *Renderer
	assets    assets.Registry
	baseURL   string
	analytics handlers.Analytics
	metrics   *observability.Collector
	devMode   bool
	loc       *time.Location
	now       func() time.Time
}

// New validates opts and parses the templates.
func New(opts Options) (*Site, error) {
	if opts.Store == nil {
		return nil, errors.New("site: content store is required")
	}
	if opts.Bundle == nil {
		return nil, errors.New("site: i18n bundle is required")
	}
	s := &Site{
		store:     opts.Store,
		bundle:    opts.Bundle,
		assets:    opts.Assets,
		baseURL:   opts.BaseURL,
		analytics: opts.Analytics,
		metrics:   opts.Metrics,
		devMode:   opts.DevMode,
		loc:       opts.Location,
		now:       opts.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.loc == nil {
		s.loc = defaultLocation()
	}
	r, err := NewRenderer(opts.Templates, opts.TemplatesDir, opts.DevMode, s.funcs())
	if err != nil {
		return nil, err
	}
	pages, err := r.Pages()
	if err != nil {
		return nil, err
	}
	if err := checkRouteTemplates(pages); err != nil {
		return nil, err
	}
	s.renderer = r
	return s, nil
}

// checkRouteTemplates fails when a route has no page template.
func checkRouteTemplates(pages []string) error {
	have := make(map[string]bool, len(pages))
	for _, name := range pages {
		have[name] = true
	}
	var missing []string
	for _, rt := range Routes {
		if !have[rt.Name] {
			missing = append(missing, rt.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("site: no page template for %s", strings.Join(missing, ", "))
	}
	return nil
}

func defaultLocation() *time.Location {
	if loc, err := time.LoadLocation("America/Mexico_City"); err == nil {
		return loc
	}
	return time.UTC
}

func (s *Site) funcs() template.FuncMap {
	return template.FuncMap{
		"t":        s.bundle.T,
		"asset":    s.assets.Ref,
		"phone":    format.Phone,
		"href":     safeHref,
		"navURL":   navFragmentURL,
		"menuHref": menuHref,
	}
}

// BaseURL returns the canonical origin used for absolute links.
func (s *Site) BaseURL() string { return s.baseURL }

// DefaultLang returns the fallback chrome language.
func (s *Site) DefaultLang() string { return s.bundle.Fallback() }

// Register mounts the page routes, the nav fragment, sitemap and robots.
func (s *Site) Register(r chi.Router) {
	for _, rt := range Routes {
		r.Get(rt.Path, s.PageHandler(rt))
	}
	r.With(middleware.RequireHTMX).Get("/fragments/nav", s.NavFragment)
	r.Get("/sitemap.xml", s.Sitemap)
	r.Get("/robots.txt", s.Robots)
}

// PageRequest carries the per-request inputs of a page render.
type PageRequest struct {
	Lang     string
	MenuOpen bool
	// Static renders for hosting without this server: the menu toggles in
	// the browser and no link points at the nav fragment or ?hl switches.
	Static bool
}

// RenderPage builds and renders rt into w. Nothing is written to w unless
// the whole document rendered successfully.
func (s *Site) RenderPage(ctx context.Context, w io.Writer, rt Route, req PageRequest) error {
	bar := nav.NewBar(rt.Path)
	bar.Mount(nil)
	defer bar.Unmount()
	if req.MenuOpen {
		bar.ToggleMenu()
	}

	view, err := rt.Build(s.store)
	if err != nil {
		return err
	}

	data := s.pageData(req, rt.Path, bar, view)
	var buf bytes.Buffer
	if err := s.renderer.Page(&buf, view.Name, data); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}

// PageHandler serves rt.
func (s *Site) PageHandler(rt Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestctx.Logger(r.Context())
		req := PageRequest{
			Lang:     middleware.Lang(r),
			MenuOpen: r.URL.Query().Get("menu") == "open",
		}

		var buf bytes.Buffer
		if err := s.RenderPage(r.Context(), &buf, rt, req); err != nil {
			logger.Error("render page", zap.String("page", rt.Name), zap.Error(err))
			http.Error(w, s.bundle.T(req.Lang, "error.internal"), http.StatusInternalServerError)
			return
		}

		h := w.Header()
		h.Set("Content-Type", "text/html; charset=utf-8")
		if middleware.HTMXInfoFromContext(r.Context()).IsBoosted {
			h.Set("HX-Reswap", scrollResetSwap)
		}
		if s.devMode {
			h.Set("Cache-Control", "no-store")
		}
		w.WriteHeader(http.StatusOK)
		if r.Method != http.MethodHead {
			_, _ = buf.WriteTo(w)
		}
		s.metrics.RecordPageView(rt.Name)
		observability.AnnotatePage(r.Context(), rt.Name)
	}
}

// scrollResetSwap swaps the body and scrolls the window to the top.
const scrollResetSwap = "innerHTML show:window:top"

func (s *Site) pageData(req PageRequest, path string, bar *nav.Bar, view handlers.PageView) handlers.PageData {
	lang := req.Lang
	if lang == "" {
		lang = s.bundle.Fallback()
	}
	site := s.store.Site()
	image := view.Content.SEO.Image
	if image == "" {
		image = "hero"
	}
	meta := view.Meta.
		WithURL(s.baseURL, path).
		WithImage(s.baseURL, s.assets.Ref(image))

	org := seo.EducationalOrganization(site.Name, seo.AbsURL(s.baseURL, "/"),
		seo.AbsURL(s.baseURL, s.assets.URL("logo")), "+52"+site.Phone, seo.Address{
			Street:     site.Address.Street,
			Locality:   site.Address.Locality,
			Region:     site.Address.Region,
			PostalCode: site.Address.PostalCode,
			Country:    site.Address.Country,
		})
	web := seo.WebSite(site.Name, seo.AbsURL(s.baseURL, "/"), "es")
	jsonld := []template.JS{template.JS(seo.JSON(org)), template.JS(seo.JSON(web))}
	if crumbs := s.breadcrumbs(path); crumbs != nil {
		jsonld = append(jsonld, template.JS(seo.JSON(crumbs)))
	}

	var langs []handlers.LangOption
	if !req.Static {
		langs = s.langOptions(lang, path)
	}

	return handlers.PageData{
		Lang:      lang,
		Langs:     langs,
		SEO:       meta,
		JSONLD:    jsonld,
		Analytics: s.analytics,
		DevMode:   s.devMode,
		Path:      path,
		Nav:       bar.View(),
		Footer: handlers.FooterData{
			Links: nav.FooterLinks(),
			Year:  format.Year(s.now(), s.loc),
		},
		Site:        site,
		Contact:     handlers.ContactFromSite(site),
		Assets:      s.assets,
		ScrollReset: true,
		Static:      req.Static,
		Page:        view,
	}
}

// breadcrumbs is the Inicio > page trail for every route but home. Names use
// the content language.
func (s *Site) breadcrumbs(path string) map[string]any {
	it, ok := nav.Lookup(path)
	if !ok || path == nav.PathHome {
		return nil
	}
	lang := s.bundle.Fallback()
	return seo.BreadcrumbList([]seo.BreadcrumbItem{
		{Name: s.bundle.T(lang, "nav.home"), Item: seo.AbsURL(s.baseURL, nav.PathHome)},
		{Name: s.bundle.T(lang, it.LabelKey), Item: seo.AbsURL(s.baseURL, path)},
	})
}

func (s *Site) langOptions(current, path string) []handlers.LangOption {
	langs := s.bundle.Supported()
	out := make([]handlers.LangOption, 0, len(langs))
	for _, l := range langs {
		out = append(out, handlers.LangOption{
			Lang:   l,
			Href:   path + "?" + url.Values{"hl": {l}}.Encode(),
			Active: l == current,
		})
	}
	return out
}
