package site

import (
	"html/template"
	"net/url"
	"strings"
)

// safeHref passes through site-relative paths and http(s), mailto and tel
// links. Anything else collapses to "#".
func safeHref(raw string) template.URL {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return "#"
	case strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//"):
		return template.URL(raw)
	case strings.HasPrefix(raw, "#"):
		return template.URL(raw)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "#"
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "mailto", "tel":
		return template.URL(raw)
	}
	return "#"
}

// navFragmentURL builds the htmx request that replays a nav event.
func navFragmentURL(path string, menuOpen bool, event, to string) string {
	q := url.Values{}
	q.Set("path", path)
	if menuOpen {
		q.Set("menu", "open")
	} else {
		q.Set("menu", "closed")
	}
	q.Set("event", event)
	if to != "" {
		q.Set("to", to)
	}
	return "/fragments/nav?" + q.Encode()
}

// menuHref is the no-script fallback of the menu toggle.
func menuHref(path string, menuOpen bool) string {
	if menuOpen {
		return path
	}
	return path + "?menu=open"
}
