package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appName = "answergpt"

	defaultTimeoutSeconds = 120
)

type Config struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key,omitempty"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url,omitempty"`

	// Variant selects the form: "kind" (chat/email + four tones) or "verbosity" (0..6 dial + two tones).
	Variant  string   `yaml:"variant"`
	Defaults Defaults `yaml:"defaults"`

	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
	MaxTokens      int `yaml:"max_tokens,omitempty"`

	Log LogConfig `yaml:"log"`

	// overlay is set by ApplyEnv so Save can leave environment values out of the file.
	overlay *envOverlay
}

// envOverlay holds the config as read from disk and as left by ApplyEnv.
type envOverlay struct {
	file    Config
	applied Config
}

// Defaults pre-fill the form.
type Defaults struct {
	Tone  string `yaml:"tone,omitempty"`
	Kind  string `yaml:"kind,omitempty"`
	Level int    `yaml:"level"`
}

type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	// File receives the logs; "-" means stderr, empty means the default file in the config dir.
	File string `yaml:"file,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Provider: "openai",
		Model:    "gpt-3.5-turbo",
		Variant:  "kind",
		Defaults: Defaults{
			Tone:  "Professional",
			Kind:  "Chat",
			Level: 3,
		},
		TimeoutSeconds: defaultTimeoutSeconds,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ConfigDir honours ANSWERGPT_CONFIG_DIR, otherwise ~/.config/answergpt.
func ConfigDir() (string, error) {
	if dir := os.Getenv("ANSWERGPT_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func LogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName+".log"), nil
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config file. It returns nil, nil when no file exists yet.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault loads the config file and overlays the environment.
// found is false when no config file exists and the first-run setup should be shown.
func LoadOrDefault() (cfg *Config, found bool, err error) {
	cfg, err = Load()
	if err != nil {
		return nil, false, err
	}
	found = cfg != nil
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, false, err
	}
	return cfg, found, nil
}

func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c.persisted())
	if err != nil {
		return err
	}

	// The file may hold an API key.
	return os.WriteFile(path, data, 0600)
}

// persisted is the config as it should be written: the file's own values plus the
// user's edits. Fields still holding what ApplyEnv put there revert to the file's
// value, and a key read from the environment is never written.
func (c *Config) persisted() *Config {
	out := *c
	out.overlay = nil

	file := &out
	if c.overlay != nil {
		file = &c.overlay.file
		applied := &c.overlay.applied
		if out.Provider == applied.Provider {
			out.Provider = file.Provider
		}
		if out.Model == applied.Model {
			out.Model = file.Model
		}
		if out.BaseURL == applied.BaseURL {
			out.BaseURL = file.BaseURL
		}
		if out.Variant == applied.Variant {
			out.Variant = file.Variant
		}
		if out.TimeoutSeconds == applied.TimeoutSeconds {
			out.TimeoutSeconds = file.TimeoutSeconds
		}
	}

	if keyFromEnv(c.Provider, out.APIKey) && out.APIKey != file.APIKey {
		out.APIKey = ""
		if file.Provider == out.Provider {
			out.APIKey = file.APIKey
		}
	}
	return &out
}

func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks the provider selection. Form defaults are checked against the variant by the caller.
func (c *Config) Validate() error {
	p := GetProvider(c.Provider)
	if p == nil {
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if p.NeedsBaseURL && c.BaseURL == "" {
		return fmt.Errorf("provider %q requires base_url", c.Provider)
	}
	return nil
}

// WithRequest returns a copy pointed at the model and key chosen for one submission.
// Empty values keep the configured ones.
func (c *Config) WithRequest(model, apiKey string) *Config {
	cp := *c
	if model != "" {
		cp.Model = model
	}
	if apiKey != "" {
		cp.APIKey = apiKey
	}
	return &cp
}
