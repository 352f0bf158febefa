package httpserver

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"institutonuevovallarta.mx/inva-web/internal/i18n"
	custommw "institutonuevovallarta.mx/inva-web/internal/middleware"
	"institutonuevovallarta.mx/inva-web/internal/observability"
	"institutonuevovallarta.mx/inva-web/internal/site"
	"institutonuevovallarta.mx/inva-web/public"
)

const (
	staticMaxAge = "public, max-age=604800, stale-while-revalidate=86400"
	mediaMaxAge  = "public, max-age=2592000"
	// Outside prod, assets revalidate against their ETag on every load.
	revalidate = "no-cache"
)

const (
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 15 * time.Second
	defaultIdleTimeout  = 60 * time.Second
)

// Config holds runtime options for the site HTTP server.
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	Site   *site.Site
	Bundle *i18n.Bundle
	Logger *zap.Logger
	// Metrics feeds the request metrics. /metrics is mounted only when ExposeMetrics is set.
	Metrics       *observability.Collector
	ExposeMetrics bool
	GCPProject    string
	MediaDir      string
	// Production enables long-lived caching of static and media files.
	Production bool
}

// New constructs the HTTP server with middleware stack and embedded assets.
func New(cfg Config) (*http.Server, error) {
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       durationOr(cfg.ReadTimeout, defaultReadTimeout),
		WriteTimeout:      durationOr(cfg.WriteTimeout, defaultWriteTimeout),
		IdleTimeout:       durationOr(cfg.IdleTimeout, defaultIdleTimeout),
	}, nil
}

// NewHandler builds the router without binding an address.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Site == nil {
		return nil, errors.New("httpserver: site is required")
	}
	if cfg.Bundle == nil {
		return nil, errors.New("httpserver: i18n bundle is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	// RealIP trusts X-Forwarded-For; deploy behind a proxy that overwrites it.
	router.Use(chimw.RealIP)
	router.Use(observability.InjectLoggerMiddleware(logger))
	router.Use(observability.TraceMiddleware(cfg.GCPProject))
	router.Use(observability.RequestLoggerMiddleware(cfg.Metrics))
	router.Use(observability.RecoveryMiddleware(logger))
	router.Use(chimw.GetHead)
	router.Use(chimw.Compress(5))
	router.Use(chimw.Timeout(handlerTimeout(cfg.WriteTimeout)))

	router.Get("/healthz", healthz)
	if cfg.ExposeMetrics && cfg.Metrics != nil {
		router.Handle("/metrics", cfg.Metrics.Handler())
	}

	staticContent, err := public.StaticFS()
	if err != nil {
		return nil, fmt.Errorf("httpserver: embed static: %w", err)
	}
	staticCache, mediaCache := revalidate, revalidate
	if cfg.Production {
		staticCache, mediaCache = staticMaxAge, mediaMaxAge
	}
	router.Handle("/static/*", http.StripPrefix("/static", custommw.AssetsWithCache(staticContent, staticCache)))
	router.Handle("/media/*", http.StripPrefix("/media", custommw.AssetsWithCache(mediaFS(cfg.MediaDir, logger), mediaCache)))

	router.Group(func(r chi.Router) {
		r.Use(custommw.HTMX)
		r.Use(custommw.Locale(cfg.Bundle))
		r.Use(custommw.VaryLocale)
		cfg.Site.Register(r)
	})
	return router, nil
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// mediaFS returns nil when dir is missing so /media/* answers 404.
func mediaFS(dir string, logger *zap.Logger) fs.FS {
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		logger.Warn("media directory unavailable", zap.String("dir", dir), zap.Error(err))
		return nil
	}
	return os.DirFS(dir)
}

// handlerTimeout cancels page work a tenth of the write timeout before the
// server write deadline.
func handlerTimeout(write time.Duration) time.Duration {
	write = durationOr(write, defaultWriteTimeout)
	return write - write/10
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}
