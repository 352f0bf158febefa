package cms

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a content resource cannot be located.
var ErrNotFound = errors.New("cms: not found")

//go:embed content
var embedded embed.FS

// Embedded returns the content tree compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "content")
	if err != nil {
		panic(err)
	}
	return sub
}

const (
	siteFile = "site.yaml"
	pagesDir = "pages"
)

// Store holds the parsed site content. It is read-only after Load.
type Store struct {
	site  Site
	pages map[string]Page
}

// Load parses site.yaml and every pages/*.md file from fsys.
func Load(fsys fs.FS) (*Store, error) {
	if fsys == nil {
		return nil, errors.New("cms: nil filesystem")
	}
	raw, err := fs.ReadFile(fsys, siteFile)
	if err != nil {
		return nil, fmt.Errorf("cms: read %s: %w", siteFile, err)
	}
	var site Site
	if err := yaml.Unmarshal(raw, &site); err != nil {
		return nil, fmt.Errorf("cms: parse %s: %w", siteFile, err)
	}
	if strings.TrimSpace(site.Name) == "" {
		return nil, fmt.Errorf("cms: %s: name is required", siteFile)
	}

	entries, err := fs.ReadDir(fsys, pagesDir)
	if err != nil {
		return nil, fmt.Errorf("cms: read %s: %w", pagesDir, err)
	}
	md := newMarkdown()
	s := &Store{site: site, pages: map[string]Page{}}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		file := path.Join(pagesDir, entry.Name())
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("cms: read %s: %w", file, err)
		}
		page, err := parsePage(md, strings.TrimSuffix(entry.Name(), ".md"), data)
		if err != nil {
			return nil, fmt.Errorf("cms: %s: %w", file, err)
		}
		s.pages[page.Slug] = page
	}
	return s, nil
}

var (
	embeddedOnce  sync.Once
	embeddedStore *Store
	embeddedErr   error
)

// LoadEmbedded parses the embedded content once and returns the shared store.
func LoadEmbedded() (*Store, error) {
	embeddedOnce.Do(func() {
		embeddedStore, embeddedErr = Load(Embedded())
	})
	return embeddedStore, embeddedErr
}

// Site returns the school-wide details.
func (s *Store) Site() Site {
	if s == nil {
		return Site{}
	}
	return s.site
}

// Page returns the page registered under slug.
func (s *Store) Page(slug string) (Page, error) {
	slug = sanitizeSlug(slug)
	if s == nil || slug == "" {
		return Page{}, ErrNotFound
	}
	p, ok := s.pages[slug]
	if !ok {
		return Page{}, ErrNotFound
	}
	return p, nil
}

// Slugs lists the loaded pages in lexical order.
func (s *Store) Slugs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.pages))
	for k := range s.pages {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func parsePage(md *markdown, slug string, data []byte) (Page, error) {
	fm, body := splitFrontMatter(string(data))
	var page Page
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &page); err != nil {
			return Page{}, fmt.Errorf("parse front matter: %w", err)
		}
	}
	page.Slug = firstNonEmpty(sanitizeSlug(page.Slug), slug)
	page.SEO.Title = strings.TrimSpace(page.SEO.Title)
	page.SEO.Description = strings.TrimSpace(page.SEO.Description)
	if page.SEO.Title == "" || page.SEO.Description == "" {
		return Page{}, errors.New("seo title and description are required")
	}
	if strings.TrimSpace(body) != "" {
		html, err := md.render(body)
		if err != nil {
			return Page{}, fmt.Errorf("render body: %w", err)
		}
		page.Body = template.HTML(html)
	}
	return page, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 {
		return "", ""
	}
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" {
		return ""
	}
	if strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
