package cms

import (
	"html/template"
	"strings"
)

// Site carries the school details shared by every page.
type Site struct {
	Name        string  `yaml:"name"`
	ShortName   string  `yaml:"short_name"`
	Phone       string  `yaml:"phone"`
	Address     Address `yaml:"address"`
	MapEmbedURL string  `yaml:"map_embed_url"`
	Social      []Link  `yaml:"social"`
	Credit      Link    `yaml:"credit"`
	Theme       Theme   `yaml:"theme"`
}

// TelURL returns the tel: link for the school phone.
func (s Site) TelURL() string {
	if s.Phone == "" {
		return ""
	}
	return "tel:" + s.Phone
}

// Address is the campus postal address.
type Address struct {
	Street       string `yaml:"street"`
	Neighborhood string `yaml:"neighborhood"`
	PostalCode   string `yaml:"postal_code"`
	Locality     string `yaml:"locality"`
	Region       string `yaml:"region"`
	Country      string `yaml:"country"`
}

// StreetLine renders "Street, Neighborhood,".
func (a Address) StreetLine() string {
	parts := nonEmpty(a.Street, a.Neighborhood)
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ", ") + ","
}

// CityLine renders "PostalCode Locality, Region".
func (a Address) CityLine() string {
	city := strings.Join(nonEmpty(a.PostalCode, a.Locality), " ")
	return strings.Join(nonEmpty(city, a.Region), ", ")
}

// Theme holds the brand palette fed to the stylesheet config.
type Theme struct {
	BrandLight string `yaml:"brand_light"`
	Brand      string `yaml:"brand"`
	BrandDark  string `yaml:"brand_dark"`
	Accent     string `yaml:"accent"`
	Font       string `yaml:"font"`
}

// Link is a labelled destination.
type Link struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// External reports whether the link leaves the site.
func (l Link) External() bool {
	return strings.HasPrefix(l.Href, "http://") || strings.HasPrefix(l.Href, "https://")
}

// SEO is the page metadata as authored.
type SEO struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

// Badge is a short highlighted statement.
type Badge struct {
	Label string `yaml:"label"`
	Text  string `yaml:"text"`
}

// Card is a block inside a section. Image holds an asset reference.
type Card struct {
	Eyebrow  string `yaml:"eyebrow"`
	Title    string `yaml:"title"`
	Text     string `yaml:"text"`
	Image    string `yaml:"image"`
	Alt      string `yaml:"alt"`
	Href     string `yaml:"href"`
	LinkText string `yaml:"link_text"`
	Icon     string `yaml:"icon"`
	Variant  string `yaml:"variant"`
}

// External reports whether the card links off-site.
func (c Card) External() bool {
	return Link{Href: c.Href}.External()
}

// Testimonial is a family quote.
type Testimonial struct {
	Quote  string `yaml:"quote"`
	Author string `yaml:"author"`
}

// Section is a keyed content block of a page.
type Section struct {
	Key          string        `yaml:"key"`
	Eyebrow      string        `yaml:"eyebrow"`
	Title        string        `yaml:"title"`
	Accent       string        `yaml:"accent"`
	Text         string        `yaml:"text"`
	Image        string        `yaml:"image"`
	Alt          string        `yaml:"alt"`
	Cards        []Card        `yaml:"cards"`
	Testimonials []Testimonial `yaml:"testimonials"`
}

// Page is one marketing page.
type Page struct {
	Slug     string    `yaml:"slug"`
	SEO      SEO       `yaml:"seo"`
	Eyebrow  string    `yaml:"eyebrow"`
	Title    string    `yaml:"title"`
	Accent   string    `yaml:"accent"`
	Lead     string    `yaml:"lead"`
	Image    string    `yaml:"image"`
	Alt      string    `yaml:"alt"`
	Badge    Badge     `yaml:"badge"`
	CTAs     []Link    `yaml:"ctas"`
	Tags     []string  `yaml:"tags"`
	Quote    string    `yaml:"quote"`
	Sections []Section `yaml:"sections"`

	// Body is the sanitized HTML rendering of the markdown below the front matter.
	Body template.HTML `yaml:"-"`
}

// Section returns the section registered under key, or a zero Section.
func (p Page) Section(key string) Section {
	for _, s := range p.Sections {
		if s.Key == key {
			return s
		}
	}
	return Section{}
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
