package config

import (
	"fmt"
	"time"

	"github.com/certifyai/certify/internal/client"
)

// Config holds the complete application configuration
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Backend BackendConfig `yaml:"backend" json:"backend"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Vault   VaultConfig   `yaml:"vault" json:"vault"`
}

// BackendConfig configures the analysis backend connection
type BackendConfig struct {
	BaseURL string        `yaml:"base_url" json:"base_url"` // fixed backend address
	Timeout time.Duration `yaml:"timeout" json:"timeout"`   // request timeout
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`               // default verbosity
}

// VaultConfig configures where the server stores completed analyses
type VaultConfig struct {
	Backend     string `yaml:"backend" json:"backend"`           // local|postgres
	LocalPath   string `yaml:"local_path" json:"local_path"`     // directory for local vault
	DatabaseURL string `yaml:"database_url" json:"database_url"` // postgres connection string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Backend: BackendConfig{
			BaseURL: client.DefaultBaseURL,
			Timeout: client.DefaultTimeout,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
		},
		Vault: VaultConfig{
			Backend:   "local",
			LocalPath: "~/.local/share/certify/vault",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateBackendConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return c.validateVaultConfig()
}

func (c *Config) validateBackendConfig() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend base_url must not be empty")
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend timeout must be positive")
	}
	return nil
}

func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"text":     true,
			"json":     true,
			"markdown": true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: text, json, markdown)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}

func (c *Config) validateVaultConfig() error {
	switch c.Vault.Backend {
	case "", "local", "postgres":
	default:
		return fmt.Errorf("invalid vault backend: %s (must be local or postgres)", c.Vault.Backend)
	}
	if c.Vault.Backend == "postgres" && c.Vault.DatabaseURL == "" {
		return fmt.Errorf("vault database_url is required for the postgres backend")
	}
	return nil
}

// ClientConfig builds the analysis client configuration.
func (c *Config) ClientConfig() *client.Config {
	return &client.Config{
		BaseURL: c.Backend.BaseURL,
		Timeout: c.Backend.Timeout,
	}
}
