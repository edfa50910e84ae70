// Package config loads server settings from defaults, an optional TOML
// file, a .env file and the environment, in that order of precedence
// (later wins).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/youruser/coverapp/internal/cover"
)

const (
	DefaultPort            = "8080"
	DefaultImageModel      = "gemini-2.0-flash-preview-image-generation"
	DefaultGenerateTimeout = 90 * time.Second
	DefaultRateInterval    = 2 * time.Second
	DefaultRateBurst       = 2
	DefaultCacheTTL        = 30 * time.Minute
	DefaultMaxUploadBytes  = 32 << 20
	DefaultMaxPixels       = 50_000_000
	DefaultLogLevel        = "info"
)

// DefaultAllowedOrigins are the dev-server origins of the cover designer UI.
var DefaultAllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

// Config holds the server settings.
type Config struct {
	Port           string   `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`

	GoogleAPIKey    string        `toml:"google_api_key"`
	ImageModel      string        `toml:"image_model"`
	GenerateTimeout time.Duration `toml:"generate_timeout"`
	RateInterval    time.Duration `toml:"rate_interval"`
	RateBurst       int           `toml:"rate_burst"`
	CacheTTL        time.Duration `toml:"cache_ttl"`

	MaxUploadBytes int64  `toml:"max_upload_bytes"`
	MaxPixels      int64  `toml:"max_pixels"`
	StrictExtract  bool   `toml:"strict_extract"`
	PresetsFile    string `toml:"presets_file"`
	LogLevel       string `toml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Port:            DefaultPort,
		AllowedOrigins:  append([]string(nil), DefaultAllowedOrigins...),
		ImageModel:      DefaultImageModel,
		GenerateTimeout: DefaultGenerateTimeout,
		RateInterval:    DefaultRateInterval,
		RateBurst:       DefaultRateBurst,
		CacheTTL:        DefaultCacheTTL,
		MaxUploadBytes:  DefaultMaxUploadBytes,
		MaxPixels:       DefaultMaxPixels,
		LogLevel:        DefaultLogLevel,
	}
}

// Load builds the configuration. path names an optional TOML file; when
// empty, COVERAPP_CONFIG is consulted. A missing .env file is ignored.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("COVERAPP_CONFIG")
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("reading .env: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	str("PORT", &cfg.Port)
	str("GOOGLE_API_KEY", &cfg.GoogleAPIKey)
	str("COVERAPP_IMAGE_MODEL", &cfg.ImageModel)
	str("COVERAPP_PRESETS_FILE", &cfg.PresetsFile)
	str("COVERAPP_LOG_LEVEL", &cfg.LogLevel)

	if v := os.Getenv("COVERAPP_ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	durations := map[string]*time.Duration{
		"COVERAPP_GENERATE_TIMEOUT": &cfg.GenerateTimeout,
		"COVERAPP_RATE_INTERVAL":    &cfg.RateInterval,
		"COVERAPP_CACHE_TTL":        &cfg.CacheTTL,
	}
	for key, dst := range durations {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = d
		}
	}

	if v := os.Getenv("COVERAPP_RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("COVERAPP_RATE_BURST: %w", err)
		}
		cfg.RateBurst = n
	}
	sizes := map[string]*int64{
		"COVERAPP_MAX_UPLOAD_BYTES": &cfg.MaxUploadBytes,
		"COVERAPP_MAX_PIXELS":       &cfg.MaxPixels,
	}
	for key, dst := range sizes {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = n
		}
	}
	if v := os.Getenv("COVERAPP_STRICT_EXTRACT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("COVERAPP_STRICT_EXTRACT: %w", err)
		}
		cfg.StrictExtract = b
	}
	return nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if p, err := strconv.Atoi(c.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", c.MaxUploadBytes)
	}
	if c.MaxPixels <= 0 || c.MaxPixels > cover.MaxPixels {
		return fmt.Errorf("max_pixels must be between 1 and %d, got %d", cover.MaxPixels, c.MaxPixels)
	}
	if c.GenerateTimeout <= 0 {
		return fmt.Errorf("generate_timeout must be positive, got %s", c.GenerateTimeout)
	}
	for _, o := range c.AllowedOrigins {
		if !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("allowed origin %q must start with http:// or https://", o)
		}
	}
	if c.RateBurst <= 0 {
		return fmt.Errorf("rate_burst must be positive, got %d", c.RateBurst)
	}
	return nil
}

// GenerationEnabled reports whether an API key is configured.
func (c Config) GenerationEnabled() bool { return c.GoogleAPIKey != "" }
