package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/certifyai/certify/internal/config"
	"github.com/certifyai/certify/internal/emoji"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newConfigCommand creates the config command with subcommands
func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage certify configuration",
		Long: `Manage certify configuration files and settings.

The config command provides subcommands for initializing, viewing,
validating, and managing configuration files.`,
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())
	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigPathCommand())

	return configCmd
}

// newConfigInitCommand creates the config init subcommand
func newConfigInitCommand() *cobra.Command {
	var (
		outputPath string
		minimal    bool
		force      bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new configuration file",
		Long: `Initialize a new certify configuration file with default values.

By default, creates a full configuration file with all options and comments.
Use --minimal for a compact configuration with only essential settings.`,
		Example: `  # Create full config in current directory
  certify config init

  # Create minimal config
  certify config init --minimal

  # Create config at specific path
  certify config init --output ~/.config/certify/config.yaml

  # Overwrite existing config
  certify config init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				outputPath = ".certify.yaml"
			}

			if !force && fileExists(outputPath) {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", outputPath)
			}

			dir := filepath.Dir(outputPath)
			if dir != "." && dir != "/" {
				if err := os.MkdirAll(dir, 0o750); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}

			var content string
			if minimal {
				content = config.MinimalSampleConfig()
			} else {
				content = config.SampleConfig()
			}

			if err := os.WriteFile(outputPath, []byte(content), 0o600); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			fmt.Printf("%s Configuration file created at: %s\n", emoji.GetEmoji("success"), outputPath)
			return nil
		},
	}

	initCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path for config file (default: .certify.yaml)")
	initCmd.Flags().BoolVarP(&minimal, "minimal", "m", false, "create minimal configuration")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing config file")

	return initCmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	var (
		format     string
		configPath string
	)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the current effective configuration after loading from all sources.

Shows the merged configuration from all sources including defaults,
config files, and environment variable overrides.`,
		Example: `  # Show config in YAML format
  certify config show

  # Show config in JSON format
  certify config show --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader()
			cfg, err := loader.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			switch format {
			case "json":
				data, err := json.MarshalIndent(cfg, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal config to JSON: %w", err)
				}
				fmt.Println(string(data))
			case "yaml":
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("failed to marshal config to YAML: %w", err)
				}
				fmt.Print(string(data))
			default:
				return fmt.Errorf("unsupported format: %s (use json or yaml)", format)
			}

			return nil
		},
	}

	showCmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, json)")
	showCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")

	return showCmd
}

// newConfigValidateCommand creates the config validate subcommand
func newConfigValidateCommand() *cobra.Command {
	var configPath string

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validate a certify configuration file for syntax and semantic errors.

Checks the configuration file for valid YAML syntax, known output formats,
and a usable backend address.`,
		Example: `  # Validate current config
  certify config validate

  # Validate specific config file
  certify config validate --config /path/to/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader()
			cfg, err := loader.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("%s Configuration validation failed:\n", emoji.GetEmoji("error"))
				fmt.Printf("   %v\n", err)
				return err
			}

			fmt.Printf("%s Configuration is valid\n", emoji.GetEmoji("success"))

			fmt.Printf("   Version: %s\n", cfg.Version)
			fmt.Printf("   Backend: %s\n", cfg.Backend.BaseURL)
			fmt.Printf("   Output Format: %s\n", cfg.Output.DefaultFormat)
			fmt.Printf("   Vault Backend: %s\n", cfg.Vault.Backend)

			return nil
		},
	}

	validateCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")

	return validateCmd
}

// newConfigPathCommand creates the config path subcommand
func newConfigPathCommand() *cobra.Command {
	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show configuration file search paths",
		Long: `Display the list of paths certify searches for configuration files.

Shows the search order and indicates which files exist.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s Configuration file search paths (in priority order):\n\n", emoji.GetEmoji("folder"))

			for i, path := range config.GetConfigPaths() {
				exists := emoji.GetEmoji("error") + " (not found)"
				if fileExists(path) {
					exists = emoji.GetEmoji("success") + " (exists)"
				}
				fmt.Printf("  %d. %s %s\n", i+1, path, exists)
			}
			fmt.Println()

			if currentConfig, found := config.FindConfigFile(); found {
				fmt.Printf("%s Current config file: %s\n", emoji.GetEmoji("target"), currentConfig)
			} else {
				fmt.Printf("%s No config file found, using defaults\n", emoji.GetEmoji("info"))
			}

			fmt.Printf("%s Environment variables with the CERTIFY_ prefix override file settings\n", emoji.GetEmoji("hint"))
		},
	}

	return pathCmd
}

// Helper function to check if file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
