package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.certify.yaml",               // Project-specific config (highest priority)
	"~/.config/certify/config.yaml", // User config
	"/etc/certify/config.yaml",      // System config (lowest priority)
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.certify.yaml
// 4. ~/.config/certify/config.yaml
// 5. /etc/certify/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Load from standard paths, lowest priority first
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if fileExists(expandedPath) {
				if err := l.loadFromFile(config, expandedPath); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
				}
			}
		}
	}

	l.applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file and merges it with existing config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() before reaching here
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	mergeConfigs(config, &fileConfig)
	return nil
}

// applyEnvOverrides applies CERTIFY_* environment variable overrides
func (l *Loader) applyEnvOverrides(config *Config) {
	if v := os.Getenv("CERTIFY_BACKEND_URL"); v != "" {
		config.Backend.BaseURL = v
	}
	if v := os.Getenv("CERTIFY_BACKEND_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.Backend.Timeout = d
		}
	}
	if v := os.Getenv("CERTIFY_OUTPUT_FORMAT"); v != "" {
		config.Output.DefaultFormat = v
	}
	if v := os.Getenv("CERTIFY_COLOR_MODE"); v != "" {
		config.Output.ColorMode = v
	}
	if v := os.Getenv("CERTIFY_VAULT"); v != "" {
		config.Vault.Backend = v
	}
	if v := os.Getenv("CERTIFY_VAULT_PATH"); v != "" {
		config.Vault.LocalPath = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.Vault.DatabaseURL = v
	}
}

// mergeConfigs merges non-zero fields from src into dst
func mergeConfigs(dst, src *Config) {
	if src.Version != "" {
		dst.Version = src.Version
	}
	if src.Backend.BaseURL != "" {
		dst.Backend.BaseURL = src.Backend.BaseURL
	}
	if src.Backend.Timeout != 0 {
		dst.Backend.Timeout = src.Backend.Timeout
	}
	if src.Output.DefaultFormat != "" {
		dst.Output.DefaultFormat = src.Output.DefaultFormat
	}
	if src.Output.ColorMode != "" {
		dst.Output.ColorMode = src.Output.ColorMode
	}
	if src.Output.Verbose {
		dst.Output.Verbose = true
	}
	if src.Vault.Backend != "" {
		dst.Vault.Backend = src.Vault.Backend
	}
	if src.Vault.LocalPath != "" {
		dst.Vault.LocalPath = src.Vault.LocalPath
	}
	if src.Vault.DatabaseURL != "" {
		dst.Vault.DatabaseURL = src.Vault.DatabaseURL
	}
}

// validateConfigPath rejects paths that escape the filesystem locations a
// config file may live in
func validateConfigPath(path string) error {
	if path == "" {
		return fmt.Errorf("path must not be empty")
	}
	if strings.Contains(path, "..") {
		return fmt.Errorf("path must not contain '..'")
	}
	ext := filepath.Ext(path)
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must be .yaml or .yml, got %q", ext)
	}
	return nil
}

// expandPath expands a leading ~ to the user's home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
