package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/doniai/doniai-cli/internal/api"
)

// EnvPrefix marks environment overrides, e.g. DONIAI_BASE_URL.
const EnvPrefix = "DONIAI_"

// ErrNotFound is returned by Load when no config file exists yet.
var ErrNotFound = errors.New("config not found")

// Config holds CLI configuration stored at ~/.doniai/config.
type Config struct {
	BaseURL  string `koanf:"base_url" yaml:"base_url"`
	Session  string `koanf:"session" yaml:"session"`
	Username string `koanf:"username" yaml:"username"`
	Email    string `koanf:"email" yaml:"email,omitempty"`
	UserID   uint   `koanf:"user_id" yaml:"user_id"`
	VimKeys  bool   `koanf:"vim_keys" yaml:"vim_keys"`
}

// Default returns an anonymous config pointed at the default server.
func Default() *Config {
	return &Config{BaseURL: api.DefaultBaseURL}
}

// Dir returns the directory holding config, the local store and logs.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".doniai")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config")
}

// StorePath returns the local sqlite store path.
func StorePath() string {
	return filepath.Join(Dir(), "doniai.db")
}

// LogPath returns the debug log path.
func LogPath() string {
	return filepath.Join(Dir(), "debug.log")
}

// Load reads the config file, then overlays DONIAI_* environment
// variables. Returns an error if the file is missing or insecure.
func Load() (*Config, error) {
	path := Path()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("config not readable: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return fromKoanf(k)
}

// fromKoanf overlays the environment on k and unmarshals the result.
func fromKoanf(k *koanf.Koanf) (*Config, error) {
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = api.DefaultBaseURL
	}
	return cfg, nil
}

// LoadOrDefault is Load, falling back to Default plus environment overrides
// when no file exists yet.
func LoadOrDefault() (*Config, error) {
	cfg, err := Load()
	if errors.Is(err, ErrNotFound) {
		return fromKoanf(koanf.New("."))
	}
	return cfg, err
}

// LoggedIn reports whether a session is stored.
func (c *Config) LoggedIn() bool {
	return c != nil && c.Session != ""
}

// Client builds an API client for this config.
func (c *Config) Client() *api.Client {
	return api.NewClient(c.BaseURL, c.Session)
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Chmod(path, 0600)
}
