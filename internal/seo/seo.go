// Package seo builds per-page document metadata and the structured data
// embedded in every page head.
package seo

import "strings"

// SiteName is appended to every page title.
const SiteName = "Instituto Nuevo Vallarta"

// OpenGraph holds the og:* properties of a page.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
}

// Meta is the head metadata of a single page. Page builders return it and
// the layout applies it; nothing stores it globally.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	OG          OpenGraph
}

// Page returns the metadata for a page titled title.
func Page(title, description string) Meta {
	return Meta{
		Title:       title + " | " + SiteName,
		Description: description,
		OG: OpenGraph{
			Title:       title,
			Description: description,
			Type:        "website",
			SiteName:    SiteName,
		},
	}
}

// WithURL sets the canonical and og:url from baseURL and path.
func (m Meta) WithURL(baseURL, path string) Meta {
	u := AbsURL(baseURL, path)
	m.Canonical = u
	m.OG.URL = u
	return m
}

// WithImage sets og:image, resolving relative paths against baseURL.
func (m Meta) WithImage(baseURL, image string) Meta {
	if image == "" {
		return m
	}
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		m.OG.Image = image
		return m
	}
	m.OG.Image = AbsURL(baseURL, image)
	return m
}

// AbsURL joins baseURL and path with exactly one slash between them.
func AbsURL(baseURL, path string) string {
	base := strings.TrimRight(baseURL, "/")
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
