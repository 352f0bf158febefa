package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"institutonuevovallarta.mx/inva-web/internal/assets"
	"institutonuevovallarta.mx/inva-web/internal/cms"
	"institutonuevovallarta.mx/inva-web/internal/config"
	"institutonuevovallarta.mx/inva-web/internal/handlers"
	"institutonuevovallarta.mx/inva-web/internal/i18n"
	"institutonuevovallarta.mx/inva-web/internal/observability"
	"institutonuevovallarta.mx/inva-web/internal/site"
	"institutonuevovallarta.mx/inva-web/templates"
)

var (
	envFile string

	cfg    config.Config
	logger *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "inva-web",
		Short: "Instituto Nuevo Vallarta website",
		Long: `Serves the Instituto Nuevo Vallarta marketing site.

Run without a subcommand to start the HTTP server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.WithEnvFile(envFile))
			if err != nil {
				return err
			}
			cfg = loaded
			logger, err = observability.NewLogger(cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("initialise logger: %w", err)
			}
			logger = logger.Named("web")
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: runServe,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with local overrides")

	root.AddCommand(newServeCmd(), newExportCmd(), newRoutesCmd())
	return root
}

// newSite loads content and translations and parses the templates.
func newSite(c config.Config, metrics *observability.Collector) (*site.Site, *i18n.Bundle, error) {
	store, err := cms.LoadEmbedded()
	if err != nil {
		return nil, nil, fmt.Errorf("load content: %w", err)
	}
	bundle, err := i18n.Load(i18n.Embedded(), c.I18n.DefaultLang, c.I18n.Supported)
	if err != nil {
		return nil, nil, fmt.Errorf("load i18n: %w", err)
	}
	s, err := site.New(site.Options{
		Store:        store,
		Bundle:       bundle,
		Templates:    templates.FS,
		TemplatesDir: c.Site.TemplatesDir,
		DevMode:      c.Site.DevMode,
		Assets:       assets.New(assets.DefaultPrefix),
		BaseURL:      c.Site.BaseURL,
		Analytics:    handlers.AnalyticsFromConfig(c.Analytics),
		Metrics:      metrics,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("build site: %w", err)
	}
	return s, bundle, nil
}
