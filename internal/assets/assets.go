// Package assets maps logical image names to the URLs they are served from.
package assets

import (
	"strconv"
	"strings"
)

// DefaultPrefix is the URL prefix media files are mounted under.
const DefaultPrefix = "/media/"

var singles = map[string]string{
	"logo":  "logo.jpg",
	"hero":  "hero.jpg",
	"offer": "ofrecemos.jpg",
	"zyro":  "zyro.webp",
	"flyer": "pre_escolar_primaria.jpg",
}

var lists = map[string][]string{
	"amco":      {"amco_1.jpg", "amco_2.jpg", "amco_3.jpg"},
	"gallery":   {"gallery_1.jpg", "gallery_2.jpg", "gallery_3.jpg", "gallery_4.jpg"},
	"conocenos": {"conocenos_1.jpg", "conocenos_2.jpg", "conocenos_3.jpg"},
}

// Registry resolves image names against a media prefix.
type Registry struct {
	prefix string
}

// New returns a registry rooted at prefix. An empty prefix uses DefaultPrefix.
func New(prefix string) Registry {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return Registry{prefix: prefix}
}

// Prefix returns the media prefix, always ending in "/".
func (r Registry) Prefix() string {
	if r.prefix == "" {
		return DefaultPrefix
	}
	return r.prefix
}

// Lookup returns the URL of a single image.
func (r Registry) Lookup(name string) (string, bool) {
	file, ok := singles[name]
	if !ok {
		return "", false
	}
	return r.Prefix() + file, true
}

// URL is Lookup for templates: unknown names yield "".
func (r Registry) URL(name string) string {
	u, _ := r.Lookup(name)
	return u
}

// List returns the URLs of an image list, or nil for unknown names.
func (r Registry) List(name string) []string {
	files, ok := lists[name]
	if !ok {
		return nil
	}
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = r.Prefix() + f
	}
	return out
}

// Ref resolves a content reference: a single name ("hero") or a list
// element ("amco.1"). Unknown or out-of-range references yield "".
func (r Registry) Ref(ref string) string {
	ref = strings.TrimSpace(ref)
	name, idx, ok := strings.Cut(ref, ".")
	if !ok {
		return r.URL(ref)
	}
	i, err := strconv.Atoi(idx)
	if err != nil || i < 0 {
		return ""
	}
	list := r.List(name)
	if i >= len(list) {
		return ""
	}
	return list[i]
}

// Files returns every file name known to the registry.
func Files() []string {
	out := make([]string, 0, len(singles)+10)
	for _, f := range singles {
		out = append(out, f)
	}
	for _, fs := range lists {
		out = append(out, fs...)
	}
	return out
}
