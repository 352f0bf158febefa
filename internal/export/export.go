// Package export renders the site into a directory of static files.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"institutonuevovallarta.mx/inva-web/internal/seo"
	"institutonuevovallarta.mx/inva-web/internal/site"
)

// Options configures Run.
type Options struct {
	Site   *site.Site
	OutDir string
	// Static is copied under static/.
	Static fs.FS
	// Media is copied under media/ when set.
	Media       fs.FS
	Concurrency int
	Logger      *zap.Logger
}

// Result lists the written files relative to OutDir, pages first.
type Result struct {
	Pages []string
	Files []string
}

// Run renders every page route plus sitemap.xml and robots.txt and copies the
// assets. Pages render concurrently.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.Site == nil {
		return Result{}, errors.New("export: site is required")
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return Result{}, errors.New("export: output directory is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("export: create %s: %w", opts.OutDir, err)
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = 4
	}

	pages := make([]string, len(site.Routes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, rt := range site.Routes {
		i, rt := i, rt
		g.Go(func() error {
			var buf bytes.Buffer
			req := site.PageRequest{Lang: opts.Site.DefaultLang(), Static: true}
			if err := opts.Site.RenderPage(gctx, &buf, rt, req); err != nil {
				return fmt.Errorf("export: render %s: %w", rt.Path, err)
			}
			rel := PageFile(rt.Path)
			if err := writeFile(opts.OutDir, rel, buf.Bytes()); err != nil {
				return err
			}
			pages[i] = rel
			logger.Debug("page exported", zap.String("path", rt.Path), zap.String("file", rel))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Pages: pages}

	sitemap, err := seo.Sitemap(opts.Site.BaseURL(), site.Paths())
	if err != nil {
		return Result{}, fmt.Errorf("export: sitemap: %w", err)
	}
	if err := writeFile(opts.OutDir, "sitemap.xml", sitemap); err != nil {
		return Result{}, err
	}
	if err := writeFile(opts.OutDir, "robots.txt", seo.Robots(opts.Site.BaseURL())); err != nil {
		return Result{}, err
	}
	res.Files = append(res.Files, "sitemap.xml", "robots.txt")

	for _, tree := range []struct {
		prefix string
		fsys   fs.FS
	}{
		{"static", opts.Static},
		{"media", opts.Media},
	} {
		if tree.fsys == nil {
			continue
		}
		copied, err := copyTree(ctx, tree.fsys, opts.OutDir, tree.prefix)
		if err != nil {
			return Result{}, err
		}
		res.Files = append(res.Files, copied...)
	}

	logger.Info("export complete",
		zap.String("out", opts.OutDir),
		zap.Int("pages", len(res.Pages)),
		zap.Int("files", len(res.Files)),
	)
	return res, nil
}

// PageFile maps a route path to its index.html location, e.g. "/oferta" to
// "oferta/index.html".
func PageFile(routePath string) string {
	trimmed := strings.Trim(routePath, "/")
	if trimmed == "" {
		return "index.html"
	}
	return path.Join(trimmed, "index.html")
}

func copyTree(ctx context.Context, fsys fs.FS, outDir, prefix string) ([]string, error) {
	var copied []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		f, err := fsys.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return err
		}
		rel := path.Join(prefix, p)
		if err := writeFile(outDir, rel, data); err != nil {
			return err
		}
		copied = append(copied, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("export: copy %s: %w", prefix, err)
	}
	return copied, nil
}

func writeFile(outDir, rel string, data []byte) error {
	dst := filepath.Join(outDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("export: mkdir for %s: %w", rel, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", rel, err)
	}
	return nil
}
