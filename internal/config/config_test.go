package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/verdict/internal/config"
	"github.com/JaimeStill/verdict/pkg/storage"
)

const baseConfig = `
tenant = "base-tenant"
version = "1.0.0"
shutdown_timeout = "30s"

[server]
host = "0.0.0.0"
port = 8000
read_timeout = "15s"
write_timeout = "30s"
shutdown_timeout = "10s"

[storage]
backend = "filesystem"
model_dir = "artifacts"

[api]
max_body_size = "32KB"

[api.cors]
enabled = false

[logging]
level = "debug"
format = "json"
`

const overlayConfig = `
[server]
port = 9090

[storage]
model_dir = "/app/models"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Tenant != "base-tenant" {
		t.Errorf("tenant: got %s, want base-tenant", cfg.Tenant)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("server port: got %d, want 8000", cfg.Server.Port)
	}
	if cfg.Storage.ModelDir != "artifacts" {
		t.Errorf("model_dir: got %s, want artifacts", cfg.Storage.ModelDir)
	}
	if got := cfg.API.MaxBodySizeBytes(); got != 32*1024 {
		t.Errorf("max body size: got %d, want %d", got, 32*1024)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("logging format: got %s, want json", cfg.Logging.Format)
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("shutdown timeout: got %v, want 30s", cfg.ShutdownTimeoutDuration())
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	chdir(t, dir)

	t.Setenv(config.EnvVerdictEnv, "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Env() != "staging" {
		t.Errorf("env: got %s, want staging", cfg.Env())
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want 9090 (from overlay)", cfg.Server.Port)
	}
	if cfg.Storage.ModelDir != "/app/models" {
		t.Errorf("model_dir: got %s, want /app/models (from overlay)", cfg.Storage.ModelDir)
	}
	if cfg.Tenant != "base-tenant" {
		t.Errorf("tenant: got %s, want base-tenant (from base)", cfg.Tenant)
	}
}

func TestLoadEnvVarOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	chdir(t, dir)

	t.Setenv("TENANT_NAME", "acme")
	t.Setenv("VERDICT_VERSION", "2.0.0")
	t.Setenv("VERDICT_SERVER_PORT", "3000")
	t.Setenv("VERDICT_MODEL_DIR", "/tmp/models")
	t.Setenv("VERDICT_LOG_LEVEL", "warn")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Tenant != "acme" {
		t.Errorf("tenant: got %s, want acme", cfg.Tenant)
	}
	if cfg.Version != "2.0.0" {
		t.Errorf("version: got %s, want 2.0.0", cfg.Version)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("server port: got %d, want 3000", cfg.Server.Port)
	}
	if cfg.Storage.ModelDir != "/tmp/models" {
		t.Errorf("model_dir: got %s, want /tmp/models", cfg.Storage.ModelDir)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("log level: got %s, want warn", cfg.Logging.Level)
	}
}

func TestLoadNoConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load without config.toml failed: %v", err)
	}

	if cfg.Tenant != config.DefaultTenant {
		t.Errorf("tenant default: got %s, want %s", cfg.Tenant, config.DefaultTenant)
	}
	if cfg.Version != "1.0.0" {
		t.Errorf("version default: got %s, want 1.0.0", cfg.Version)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("server port default: got %d, want 8000", cfg.Server.Port)
	}
	if cfg.Storage.Backend != storage.BackendFilesystem {
		t.Errorf("storage backend default: got %s, want %s", cfg.Storage.Backend, storage.BackendFilesystem)
	}
	if cfg.Storage.ModelDir != "models" {
		t.Errorf("model_dir default: got %s, want models", cfg.Storage.ModelDir)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("logging defaults: got %s/%s, want info/text", cfg.Logging.Level, cfg.Logging.Format)
	}
	if cfg.API.OpenAPI.Title == "" {
		t.Error("openapi title should default")
	}
	if got := cfg.API.MaxBodySizeBytes(); got != 0 {
		t.Errorf("max body size default: got %d, want 0 (unlimited)", got)
	}
}

func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad shutdown timeout", map[string]string{"VERDICT_SHUTDOWN_TIMEOUT": "soon"}, "shutdown_timeout"},
		{"bad port", map[string]string{"VERDICT_SERVER_PORT": "70000"}, "port"},
		{"unknown backend", map[string]string{"VERDICT_STORAGE_BACKEND": "s3"}, "storage"},
		{"azure without connection", map[string]string{"VERDICT_STORAGE_BACKEND": "azure"}, "connection_string"},
		{"bad log format", map[string]string{"VERDICT_LOG_FORMAT": "xml"}, "logging"},
		{"bad body size", map[string]string{"VERDICT_API_MAX_BODY_SIZE": "lots"}, "max_body_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, "tenant = ")
	chdir(t, dir)

	if _, err := config.Load(); err == nil {
		t.Error("expected parse error, got nil")
	}
}

func TestServerBaseURL(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"0.0.0.0", "http://localhost:8000"},
		{"", "http://localhost:8000"},
		{"api.internal", "http://api.internal:8000"},
	}

	for _, tt := range tests {
		c := config.ServerConfig{Host: tt.host, Port: 8000}
		if got := c.BaseURL(); got != tt.want {
			t.Errorf("BaseURL(%q): got %s, want %s", tt.host, got, tt.want)
		}
	}
}
