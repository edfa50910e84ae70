package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "GOOGLE_API_KEY", "COVERAPP_CONFIG", "COVERAPP_IMAGE_MODEL", "COVERAPP_PRESETS_FILE",
		"COVERAPP_LOG_LEVEL", "COVERAPP_ALLOWED_ORIGINS", "COVERAPP_GENERATE_TIMEOUT",
		"COVERAPP_RATE_INTERVAL", "COVERAPP_CACHE_TTL", "COVERAPP_RATE_BURST",
		"COVERAPP_MAX_UPLOAD_BYTES", "COVERAPP_MAX_PIXELS", "COVERAPP_STRICT_EXTRACT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if cfg.GenerationEnabled() {
		t.Error("generation enabled without an API key")
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "coverapp.toml")
	data := `
port = "9000"
image_model = "file-model"
generate_timeout = "45s"
strict_extract = true
allowed_origins = ["https://covers.example"]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORT", "9100")
	t.Setenv("GOOGLE_API_KEY", "secret")
	t.Setenv("COVERAPP_RATE_BURST", "5")
	t.Setenv("COVERAPP_MAX_PIXELS", "2000000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.Port = "9100"
	want.ImageModel = "file-model"
	want.GenerateTimeout = 45 * time.Second
	want.StrictExtract = true
	want.AllowedOrigins = []string{"https://covers.example"}
	want.GoogleAPIKey = "secret"
	want.RateBurst = 5
	want.MaxPixels = 2000000
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if !cfg.GenerationEnabled() {
		t.Error("generation disabled with an API key")
	}
}

func TestLoadConfigEnvPath(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "c.toml")
	if err := os.WriteFile(path, []byte(`log_level = "debug"`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COVERAPP_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
	}{
		{name: "bad port", env: map[string]string{"PORT": "http"}},
		{name: "bad duration", env: map[string]string{"COVERAPP_RATE_INTERVAL": "soon"}},
		{name: "bad bool", env: map[string]string{"COVERAPP_STRICT_EXTRACT": "maybe"}},
		{name: "zero upload", env: map[string]string{"COVERAPP_MAX_UPLOAD_BYTES": "0"}},
		{name: "zero pixels", env: map[string]string{"COVERAPP_MAX_PIXELS": "0"}},
		{name: "pixels past engine cap", env: map[string]string{"COVERAPP_MAX_PIXELS": "1000000000000"}},
		{name: "missing file", file: "does-not-exist.toml"},
		{name: "bad origin", env: map[string]string{"COVERAPP_ALLOWED_ORIGINS": "localhost:3000"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = filepath.Join(t.TempDir(), tt.file)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() = nil error")
			}
		})
	}
}

func TestAllowedOriginsFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("COVERAPP_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"https://a.example", "https://b.example"}
	if diff := cmp.Diff(want, cfg.AllowedOrigins); diff != "" {
		t.Errorf("AllowedOrigins mismatch (-want +got):\n%s", diff)
	}
}
