package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"institutonuevovallarta.mx/inva-web/internal/httpserver"
	"institutonuevovallarta.mx/inva-web/internal/observability"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}
	cmd.Flags().String("addr", "", "listen address (overrides INVA_WEB_ADDR)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := cfg.Server.Addr
	if f := cmd.Flags().Lookup("addr"); f != nil && f.Value.String() != "" {
		addr = f.Value.String()
	}

	metrics := observability.NewCollector("inva_web")
	s, bundle, err := newSite(cfg, metrics)
	if err != nil {
		return err
	}
	srv, err := httpserver.New(httpserver.Config{
		Address:       addr,
		ReadTimeout:   cfg.Server.ReadTimeout,
		WriteTimeout:  cfg.Server.WriteTimeout,
		IdleTimeout:   cfg.Server.IdleTimeout,
		Site:          s,
		Bundle:        bundle,
		Logger:        logger,
		Metrics:       metrics,
		ExposeMetrics: cfg.Telemetry.MetricsEnabled,
		GCPProject:    cfg.Telemetry.GCPProject,
		MediaDir:      cfg.Site.MediaDir,
		Production:    cfg.IsProduction(),
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web listening",
			zap.String("addr", addr),
			zap.String("env", cfg.Site.Environment),
			zap.Bool("dev_mode", cfg.Site.DevMode),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}
