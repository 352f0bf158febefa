package handlers

import (
	"fmt"
	"html/template"

	"institutonuevovallarta.mx/inva-web/internal/assets"
	"institutonuevovallarta.mx/inva-web/internal/cms"
	"institutonuevovallarta.mx/inva-web/internal/format"
	"institutonuevovallarta.mx/inva-web/internal/nav"
	"institutonuevovallarta.mx/inva-web/internal/seo"
)

// PageView is what a page builder produces: the page identity, its
// content and the metadata the layout applies to the document head.
type PageView struct {
	Name    string
	Path    string
	Meta    seo.Meta
	Content cms.Page
}

// Builder turns loaded content into a page view.
type Builder func(store *cms.Store) (PageView, error)

// BuildHome builds the landing page.
func BuildHome(store *cms.Store) (PageView, error) {
	return buildPage(store, "home", nav.PathHome)
}

// BuildAbout builds the "Conócenos" page.
func BuildAbout(store *cms.Store) (PageView, error) {
	return buildPage(store, "about", nav.PathAbout)
}

// BuildOffer builds the programs page.
func BuildOffer(store *cms.Store) (PageView, error) {
	return buildPage(store, "offer", nav.PathOffer)
}

// BuildContact builds the contact page.
func BuildContact(store *cms.Store) (PageView, error) {
	return buildPage(store, "contact", nav.PathContact)
}

func buildPage(store *cms.Store, name, path string) (PageView, error) {
	page, err := store.Page(name)
	if err != nil {
		return PageView{}, fmt.Errorf("build %s page: %w", name, err)
	}
	return PageView{
		Name:    name,
		Path:    path,
		Meta:    seo.Page(page.SEO.Title, page.SEO.Description),
		Content: page,
	}, nil
}

// FooterData is the footer render model.
type FooterData struct {
	Links []nav.FooterLink
	Year  int
}

// Contact carries the ready-to-render contact details.
type Contact struct {
	Phone       string // display form, e.g. "322 244 0506"
	TelURL      template.URL
	WhatsAppURL string
	StreetLine  string
	CityLine    string
	MapEmbedURL string
	SocialLinks []cms.Link
	Credit      cms.Link
}

// LangOption is an entry of the language switcher.
type LangOption struct {
	Lang   string
	Href   string
	Active bool
}

// PageData is the view model for every page using the shared layout.
type PageData struct {
	Lang      string
	Langs     []LangOption
	SEO       seo.Meta
	JSONLD    []template.JS
	Analytics Analytics
	DevMode   bool

	Path   string
	Nav    nav.View
	Footer FooterData

	Site    cms.Site
	Contact Contact
	Assets  assets.Registry

	// ScrollReset marks full document loads whose scroll position must be reset.
	ScrollReset bool
	// Static drops the links that need the server: nav fragment and ?hl.
	Static bool

	Page PageView
}

// ContactFromSite derives the contact block from the site details. The
// WhatsApp chat link is built from the school phone.
func ContactFromSite(site cms.Site) Contact {
	return Contact{
		Phone:       format.Phone(site.Phone),
		TelURL:      template.URL(site.TelURL()),
		WhatsAppURL: format.WhatsAppURL(site.Phone),
		StreetLine:  site.Address.StreetLine(),
		CityLine:    site.Address.CityLine(),
		MapEmbedURL: site.MapEmbedURL,
		SocialLinks: site.Social,
		Credit:      site.Credit,
	}
}
