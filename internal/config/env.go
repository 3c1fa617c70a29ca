package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EnvProvider = "ANSWERGPT_PROVIDER"
	EnvModel    = "ANSWERGPT_MODEL"
	EnvAPIKey   = "ANSWERGPT_API_KEY"
	EnvBaseURL  = "ANSWERGPT_BASE_URL"
	EnvVariant  = "ANSWERGPT_VARIANT"
	EnvTimeout  = "ANSWERGPT_TIMEOUT_SECONDS"
)

// ApplyEnv loads ./.env if present, then overlays ANSWERGPT_* variables on cfg.
// When no key is configured, the provider's conventional variable (OPENAI_API_KEY, ...) is used.
func ApplyEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	file := *cfg
	file.overlay = nil
	applyEnv(cfg)
	applied := *cfg
	applied.overlay = nil
	cfg.overlay = &envOverlay{file: file, applied: applied}
	return nil
}

func applyEnv(cfg *Config) {

	if v := os.Getenv(EnvProvider); v != "" {
		if v != cfg.Provider {
			// A different provider does not inherit the file's model.
			cfg.Model = ""
		}
		cfg.Provider = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvVariant); v != "" {
		cfg.Variant = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutSeconds = n
		}
	}

	p := GetProvider(cfg.Provider)
	if p == nil {
		return
	}
	if cfg.APIKey == "" && p.EnvKey != "" {
		cfg.APIKey = os.Getenv(p.EnvKey)
	}
	if cfg.Model == "" {
		cfg.Model = p.DefaultModel
	}
}

// keyFromEnv reports whether key is the value of ANSWERGPT_API_KEY or of the
// provider's conventional variable.
func keyFromEnv(provider, key string) bool {
	if key == "" {
		return false
	}
	if key == os.Getenv(EnvAPIKey) {
		return true
	}
	p := GetProvider(provider)
	return p != nil && p.EnvKey != "" && key == os.Getenv(p.EnvKey)
}
