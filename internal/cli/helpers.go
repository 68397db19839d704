package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/certifyai/certify/internal/config"
	"github.com/certifyai/certify/internal/logger"
)

var (
	globalConfig *config.Config
	configOnce   sync.Once
)

// GetGlobalConfig loads the configuration once per process, honoring the
// --config flag. A broken config file degrades to defaults with a warning
// rather than blocking every command.
func GetGlobalConfig() *config.Config {
	configOnce.Do(func() {
		loader := config.NewLoader()
		cfg, err := loader.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v (using defaults)\n", err)
			cfg = config.DefaultConfig()
		}
		globalConfig = cfg
	})
	return globalConfig
}

// GetLogger returns a logger whose verbosity follows the --verbose flag
func GetLogger(component string) *logger.Logger {
	return logger.New(component, isVerbose)
}

// getOutputFormat resolves the effective output format, flag first
func getOutputFormat() string {
	if outputFmt != "" {
		return outputFmt
	}
	return GetGlobalConfig().Output.DefaultFormat
}

// colorEnabled resolves the effective color setting from the --no-color
// flag and the configured color mode
func colorEnabled() bool {
	if noColor {
		return false
	}
	switch GetGlobalConfig().Output.ColorMode {
	case "never":
		return false
	default:
		return true
	}
}
