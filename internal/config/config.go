package config

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile         = ".env"
	defaultPort            = "8080"
	defaultEnvironment     = "local"
	defaultTemplatesDir    = "templates"
	defaultMediaDir        = "media"
	defaultBaseURL         = "http://localhost:8080"
	defaultLang            = "es"
	defaultLogLevel        = "info"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

var defaultLangs = []string{"es", "en"}

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Site      SiteConfig
	I18n      I18nConfig
	Logging   LoggingConfig
	Telemetry TelemetryConfig
	Analytics AnalyticsConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Addr            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// SiteConfig controls rendering and asset locations.
type SiteConfig struct {
	Environment  string
	DevMode      bool
	TemplatesDir string
	MediaDir     string
	BaseURL      string
}

// I18nConfig lists the chrome label languages.
type I18nConfig struct {
	DefaultLang string
	Supported   []string
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level string
}

// TelemetryConfig toggles metrics exposure and trace correlation.
type TelemetryConfig struct {
	MetricsEnabled bool
	GCPProject     string
}

// AnalyticsConfig holds client instrumentation ids surfaced to templates.
type AnalyticsConfig struct {
	GA4MeasurementID string
	GTMContainerID   string
}

// IsProduction reports whether the site runs in the prod environment.
func (c Config) IsProduction() bool { return c.Site.Environment == "prod" }

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.LookupEnv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

type lookupFunc func(string) (string, bool)

// Load assembles the configuration by combining defaults, .env overrides,
// environment variables, and explicit maps (in increasing precedence).
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	// Port: INVA_WEB_PORT, then Cloud Run's PORT.
	port := stringWithDefault(lookup, defaultPort, "INVA_WEB_PORT", "PORT")

	cfg := Config{
		Server: ServerConfig{
			Port:            port,
			Addr:            stringWithDefault(lookup, ":"+port, "INVA_WEB_ADDR"),
			ReadTimeout:     durationWithDefault(lookup, "INVA_WEB_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:    durationWithDefault(lookup, "INVA_WEB_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:     durationWithDefault(lookup, "INVA_WEB_IDLE_TIMEOUT", defaultIdleTimeout),
			ShutdownTimeout: durationWithDefault(lookup, "INVA_WEB_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		},
		Site: SiteConfig{
			Environment:  strings.ToLower(stringWithDefault(lookup, defaultEnvironment, "INVA_WEB_ENV")),
			DevMode:      boolWithDefault(lookup, false, "INVA_WEB_DEV", "DEV"),
			TemplatesDir: stringWithDefault(lookup, defaultTemplatesDir, "INVA_WEB_TEMPLATES_DIR"),
			MediaDir:     stringWithDefault(lookup, defaultMediaDir, "INVA_WEB_MEDIA_DIR"),
			BaseURL:      strings.TrimRight(stringWithDefault(lookup, defaultBaseURL, "INVA_WEB_BASE_URL"), "/"),
		},
		I18n: I18nConfig{
			DefaultLang: strings.ToLower(stringWithDefault(lookup, defaultLang, "INVA_WEB_DEFAULT_LANG")),
			Supported:   csvWithDefault(lookup, "INVA_WEB_LANGS", defaultLangs),
		},
		Logging: LoggingConfig{
			Level: stringWithDefault(lookup, defaultLogLevel, "INVA_WEB_LOG_LEVEL", "LOG_LEVEL"),
		},
		Telemetry: TelemetryConfig{
			MetricsEnabled: boolWithDefault(lookup, true, "INVA_WEB_METRICS"),
			GCPProject:     stringWithDefault(lookup, "", "INVA_WEB_GCP_PROJECT"),
		},
		Analytics: AnalyticsConfig{
			GA4MeasurementID: stringWithDefault(lookup, "", "INVA_WEB_GA_MEASUREMENT_ID"),
			GTMContainerID:   stringWithDefault(lookup, "", "INVA_WEB_GTM_CONTAINER_ID"),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var invalid []string

	if n, err := strconv.Atoi(cfg.Server.Port); err != nil || n <= 0 || n > 65535 {
		invalid = append(invalid, "Server.Port")
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		invalid = append(invalid, "Server.Addr")
	}
	if cfg.Server.ReadTimeout <= 0 {
		invalid = append(invalid, "Server.ReadTimeout")
	}
	if cfg.Server.WriteTimeout <= 0 {
		invalid = append(invalid, "Server.WriteTimeout")
	}
	if cfg.Site.Environment != "local" && cfg.Site.Environment != "prod" {
		invalid = append(invalid, "Site.Environment")
	}
	if u, err := url.Parse(cfg.Site.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		invalid = append(invalid, "Site.BaseURL")
	}
	if len(cfg.I18n.Supported) == 0 {
		invalid = append(invalid, "I18n.Supported")
	} else if !contains(cfg.I18n.Supported, cfg.I18n.DefaultLang) {
		invalid = append(invalid, "I18n.DefaultLang")
	}

	if len(invalid) > 0 {
		return &ValidationError{fields: invalid}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

// stringWithDefault returns the first non-empty value among keys.
func stringWithDefault(lookup lookupFunc, fallback string, keys ...string) string {
	for _, key := range keys {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return fallback
}

func durationWithDefault(lookup lookupFunc, key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func boolWithDefault(lookup lookupFunc, fallback bool, keys ...string) bool {
	for _, key := range keys {
		value, ok := lookup(key)
		if !ok || value == "" {
			continue
		}
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}

func csvWithDefault(lookup lookupFunc, key string, fallback []string) []string {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		out := make([]string, len(fallback))
		copy(out, fallback)
		return out
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.ToLower(strings.TrimSpace(part)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
