package main

import (
	"os"

	"github.com/spf13/cobra"

	"institutonuevovallarta.mx/inva-web/internal/export"
	"institutonuevovallarta.mx/inva-web/public"
)

func newExportCmd() *cobra.Command {
	var (
		outDir      string
		concurrency int
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the site into a directory of static files",
		Long: `Renders every page, sitemap.xml and robots.txt, and copies the static
and media assets into the output directory.

Example:
  inva-web export --out dist`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, _, err := newSite(cfg, nil)
			if err != nil {
				return err
			}
			static, err := public.StaticFS()
			if err != nil {
				return err
			}
			opts := export.Options{
				Site:        s,
				OutDir:      outDir,
				Static:      static,
				Concurrency: concurrency,
				Logger:      logger,
			}
			if info, err := os.Stat(cfg.Site.MediaDir); err == nil && info.IsDir() {
				opts.Media = os.DirFS(cfg.Site.MediaDir)
			}
			res, err := export.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			cmd.Printf("exported %d pages and %d files to %s\n", len(res.Pages), len(res.Files), outDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "dist", "output directory")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "pages rendered in parallel")
	return cmd
}
