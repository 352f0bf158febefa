package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Site.Environment != "local" || cfg.IsProduction() {
		t.Errorf("expected local environment, got %s", cfg.Site.Environment)
	}
	if cfg.Site.MediaDir != "media" {
		t.Errorf("unexpected media dir: %s", cfg.Site.MediaDir)
	}
	if cfg.I18n.DefaultLang != "es" {
		t.Errorf("expected default lang es, got %s", cfg.I18n.DefaultLang)
	}
	if len(cfg.I18n.Supported) != 2 {
		t.Errorf("expected two supported langs, got %v", cfg.I18n.Supported)
	}
	if !cfg.Telemetry.MetricsEnabled {
		t.Errorf("expected metrics enabled by default")
	}
}

func TestLoadCloudRunPortFallback(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{"PORT": "9000"}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("expected addr :9000, got %s", cfg.Server.Addr)
	}

	cfg, err = Load(WithEnvMap(map[string]string{"PORT": "9000", "INVA_WEB_PORT": "9100"}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "9100" {
		t.Errorf("INVA_WEB_PORT must win over PORT, got %s", cfg.Server.Port)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"INVA_WEB_ENV":               "PROD",
		"INVA_WEB_DEV":               "1",
		"INVA_WEB_BASE_URL":          "https://example.edu.mx/",
		"INVA_WEB_LANGS":             "es, EN",
		"INVA_WEB_DEFAULT_LANG":      "en",
		"INVA_WEB_METRICS":           "off",
		"INVA_WEB_WRITE_TIMEOUT":     "20s",
		"INVA_WEB_GA_MEASUREMENT_ID": "G-TEST",
	}
	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.IsProduction() {
		t.Errorf("expected prod environment")
	}
	if !cfg.Site.DevMode {
		t.Errorf("expected dev mode")
	}
	if cfg.Site.BaseURL != "https://example.edu.mx" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.Site.BaseURL)
	}
	if cfg.I18n.DefaultLang != "en" || cfg.I18n.Supported[1] != "en" {
		t.Errorf("unexpected i18n config: %+v", cfg.I18n)
	}
	if cfg.Telemetry.MetricsEnabled {
		t.Errorf("expected metrics disabled")
	}
	if cfg.Server.WriteTimeout != 20*time.Second {
		t.Errorf("unexpected write timeout %s", cfg.Server.WriteTimeout)
	}
	if cfg.Analytics.GA4MeasurementID != "G-TEST" {
		t.Errorf("unexpected GA id %s", cfg.Analytics.GA4MeasurementID)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# local overrides\nexport INVA_WEB_MEDIA_DIR=\"/srv/media\"\nINVA_WEB_LOG_LEVEL=debug\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}

	cfg, err := Load(WithEnvFile(path), WithoutSystemEnv(), WithEnvMap(map[string]string{"INVA_WEB_LOG_LEVEL": "warn"}))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Site.MediaDir != "/srv/media" {
		t.Errorf("expected media dir from .env, got %s", cfg.Site.MediaDir)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("explicit map must win over .env, got %s", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	env := map[string]string{
		"INVA_WEB_PORT":         "http",
		"INVA_WEB_DEFAULT_LANG": "fr",
		"INVA_WEB_BASE_URL":     "ftp://example",
	}
	_, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := map[string]bool{"Server.Port": false, "I18n.DefaultLang": false, "Site.BaseURL": false}
	for _, f := range vErr.Fields() {
		if _, ok := want[f]; ok {
			want[f] = true
		}
	}
	for field, seen := range want {
		if !seen {
			t.Errorf("expected %s in invalid fields %v", field, vErr.Fields())
		}
	}
}
