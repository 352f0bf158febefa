package site

import (
	"institutonuevovallarta.mx/inva-web/internal/handlers"
	"institutonuevovallarta.mx/inva-web/internal/nav"
)

// Route binds a literal path to the page builder that serves it.
type Route struct {
	Path  string
	Name  string
	Build handlers.Builder
}

// Routes is the closed set of page routes, in navigation order.
var Routes = []Route{
	{Path: nav.PathHome, Name: "home", Build: handlers.BuildHome},
	{Path: nav.PathAbout, Name: "about", Build: handlers.BuildAbout},
	{Path: nav.PathOffer, Name: "offer", Build: handlers.BuildOffer},
	{Path: nav.PathContact, Name: "contact", Build: handlers.BuildContact},
}

// Paths lists the route paths in navigation order.
func Paths() []string {
	out := make([]string, 0, len(Routes))
	for _, rt := range Routes {
		out = append(out, rt.Path)
	}
	return out
}
