package nav

// Route paths served by the site. The set is closed.
const (
	PathHome    = "/"
	PathAbout   = "/conocenos"
	PathOffer   = "/oferta"
	PathContact = "/contacto"
)

// Item represents a top-level navigation item.
type Item struct {
	Path     string // e.g. "/oferta"
	LabelKey string // i18n key, e.g. "nav.offer"
	Contact  bool   // rendered as the call-to-action pill
}

// Main is the primary navigation definition, in display order.
var Main = []Item{
	{Path: PathHome, LabelKey: "nav.home"},
	{Path: PathAbout, LabelKey: "nav.about"},
	{Path: PathOffer, LabelKey: "nav.offer"},
	{Path: PathContact, LabelKey: "nav.contact", Contact: true},
}

// Lookup returns the navigation item registered for path.
func Lookup(path string) (Item, bool) {
	for _, it := range Main {
		if it.Path == path {
			return it, true
		}
	}
	return Item{}, false
}

// IsActive reports whether the item at itemPath is the current route.
// Only exact matches count: "/" is never active on "/oferta".
func IsActive(itemPath, currentPath string) bool {
	return itemPath == currentPath
}

// FooterLink is a footer navigation entry.
type FooterLink struct {
	Href     string
	LabelKey string
}

// footerOrder lists the footer labels and the route each one points at.
var footerOrder = []struct {
	labelKey string
	path     string
}{
	{"footer.nav.home", PathHome},
	{"footer.nav.about", PathAbout},
	{"footer.nav.offer", PathOffer},
	{"footer.nav.contact", PathContact},
}

// FooterLinks resolves the footer entries against the route table.
func FooterLinks() []FooterLink {
	links := make([]FooterLink, 0, len(footerOrder))
	for _, entry := range footerOrder {
		it, ok := Lookup(entry.path)
		if !ok {
			continue
		}
		links = append(links, FooterLink{Href: it.Path, LabelKey: entry.labelKey})
	}
	return links
}
