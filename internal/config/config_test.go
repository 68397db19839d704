package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate, got %v", err)
	}
	if cfg.Backend.BaseURL != "http://localhost:5000" {
		t.Errorf("default base URL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 60*time.Second {
		t.Errorf("default timeout = %v", cfg.Backend.Timeout)
	}
	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("default format = %q", cfg.Output.DefaultFormat)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty base URL",
			mutate:  func(c *Config) { c.Backend.BaseURL = "" },
			wantErr: true,
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Backend.Timeout = -time.Second },
			wantErr: true,
		},
		{
			name:    "invalid output format",
			mutate:  func(c *Config) { c.Output.DefaultFormat = "xml" },
			wantErr: true,
		},
		{
			name:    "invalid color mode",
			mutate:  func(c *Config) { c.Output.ColorMode = "sometimes" },
			wantErr: true,
		},
		{
			name:    "invalid vault backend",
			mutate:  func(c *Config) { c.Vault.Backend = "s3" },
			wantErr: true,
		},
		{
			name: "postgres vault without database URL",
			mutate: func(c *Config) {
				c.Vault.Backend = "postgres"
				c.Vault.DatabaseURL = ""
			},
			wantErr: true,
		},
		{
			name: "postgres vault with database URL",
			mutate: func(c *Config) {
				c.Vault.Backend = "postgres"
				c.Vault.DatabaseURL = "postgres://localhost/certify"
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClientConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend.BaseURL = "http://backend:9000"
	cfg.Backend.Timeout = 10 * time.Second

	cc := cfg.ClientConfig()
	if cc.BaseURL != "http://backend:9000" || cc.Timeout != 10*time.Second {
		t.Errorf("ClientConfig() = %+v", cc)
	}
}
