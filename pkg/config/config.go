// Package config is a narrow read-only lookup for configuration values and
// secrets. Values come from the process environment, optionally backed by a
// YAML profile file; the environment always wins. Secrets are held in
// memory only and must never be logged by callers.
package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a key is absent from both the environment
// and the profile.
var ErrNotFound = errors.New("key not found")

// Config resolves keys against the environment and an optional profile.
// It is read-only after construction and safe for concurrent use.
type Config struct {
	values map[string]string
}

// New creates a Config backed only by the process environment.
func New() *Config {
	return &Config{}
}

// Load reads a YAML profile of string key-value pairs and returns a Config
// that falls back to it when a key is not set in the environment.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return nil, fmt.Errorf("config: load profile: %w", err)
	}

	values := map[string]string{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("config: parse profile: %w", err)
	}

	return &Config{values: values}, nil
}

// Get returns the value for key, environment first, then the profile.
func (c *Config) Get(key string) (string, error) {
	if v, ok := os.LookupEnv(key); ok {
		return v, nil
	}

	if v, ok := c.values[key]; ok {
		return v, nil
	}

	return "", fmt.Errorf("config: %s: %w", key, ErrNotFound)
}

// GetSecret returns the secret value for key. Resolution is the same as
// Get; the separate entry point marks call sites that handle sensitive
// values so they are kept out of logs and error text.
func (c *Config) GetSecret(key string) (string, error) {
	return c.Get(key)
}

// LoadDotEnv loads environment variables from path. Missing files are
// ignored so a .env file stays optional.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

var (
	globalMu sync.RWMutex
	global   *Config
)

// Global returns the process-wide Config, creating an environment-only one
// on first use. Adapters resolve their API keys through it.
func Global() *Config {
	globalMu.RLock()
	g := global
	globalMu.RUnlock()

	if g != nil {
		return g
	}

	globalMu.Lock()
	defer globalMu.Unlock()

	if global == nil {
		global = New()
	}
	return global
}

// SetGlobal installs cfg as the process-wide Config. Hosts that load a
// profile file call this once during startup, before adapters are built.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()

	global = cfg
}
