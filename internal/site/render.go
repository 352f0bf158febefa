package site

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
)

// Renderer executes the page and partial templates. In dev mode the
// templates are reparsed from disk on every call.
type Renderer struct {
	fsys  fs.FS
	dev   bool
	funcs template.FuncMap
	cache *templateSet
}

type templateSet struct {
	partials *template.Template
	pages    map[string]*template.Template
}

// NewRenderer parses the templates in fsys. When dev is set and dir is not
// empty, templates are read from dir instead and reparsed per render.
func NewRenderer(fsys fs.FS, dir string, dev bool, funcs template.FuncMap) (*Renderer, error) {
	if dev && strings.TrimSpace(dir) != "" {
		fsys = os.DirFS(dir)
	}
	if fsys == nil {
		return nil, errors.New("site: nil template filesystem")
	}
	r := &Renderer{fsys: fsys, dev: dev, funcs: funcs}
	set, err := parseTemplates(fsys, funcs)
	if err != nil {
		return nil, err
	}
	if !dev {
		r.cache = set
	}
	return r, nil
}

func (r *Renderer) templates() (*templateSet, error) {
	if r.cache != nil {
		return r.cache, nil
	}
	return parseTemplates(r.fsys, r.funcs)
}

// Page renders the full document for the named page.
func (r *Renderer) Page(w io.Writer, name string, data any) error {
	set, err := r.templates()
	if err != nil {
		return err
	}
	t, ok := set.pages[name]
	if !ok {
		return fmt.Errorf("site: no template for page %q", name)
	}
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("site: execute page %s: %w", name, err)
	}
	return nil
}

// Partial renders a named partial, e.g. "nav".
func (r *Renderer) Partial(w io.Writer, name string, data any) error {
	set, err := r.templates()
	if err != nil {
		return err
	}
	if set.partials.Lookup(name) == nil {
		return fmt.Errorf("site: no partial %q", name)
	}
	if err := set.partials.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("site: execute partial %s: %w", name, err)
	}
	return nil
}

// Pages lists the names of the parsed page templates.
func (r *Renderer) Pages() ([]string, error) {
	set, err := r.templates()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(set.pages))
	for name := range set.pages {
		out = append(out, name)
	}
	return out, nil
}

func parseTemplates(fsys fs.FS, funcs template.FuncMap) (*templateSet, error) {
	shared, err := template.New("_root").Funcs(funcs).ParseFS(fsys, "layouts/*.tmpl", "partials/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("site: parse layouts: %w", err)
	}
	files, err := fs.Glob(fsys, "pages/*.tmpl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("site: no page templates found")
	}
	set := &templateSet{partials: shared, pages: map[string]*template.Template{}}
	for _, file := range files {
		t, err := shared.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(fsys, file); err != nil {
			return nil, fmt.Errorf("site: parse %s: %w", file, err)
		}
		set.pages[strings.TrimSuffix(path.Base(file), ".tmpl")] = t
	}
	return set, nil
}
