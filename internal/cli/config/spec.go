package config

import "time"

// DefaultConfigFile is the config path used when --config is not given.
const DefaultConfigFile = "config.toml"

// EnvPrefix is the environment variable prefix for overrides, e.g.
// TELEMETRY_CLI_HUB_URL overrides hub-url.
const EnvPrefix = "TELEMETRY_CLI_"

// CLIConfig is the configuration for telemetry-cli.
type CLIConfig struct {
	// APIKey authenticates against the hub. Secret.
	APIKey string `koanf:"api-key" yaml:"api-key"`

	// HubURL is the hub base URL; commands go to <HubURL>/command.
	HubURL string `koanf:"hub-url" yaml:"hub-url"`

	// Timeout bounds each hub request.
	Timeout time.Duration `koanf:"timeout" yaml:"timeout"`

	// LogLevel is the CLI diagnostic log level (debug, info, warn, error).
	LogLevel string `koanf:"log-level" yaml:"log-level"`

	// CAFile is an optional PEM bundle trusted for https hubs in addition
	// to the system roots.
	CAFile string `koanf:"ca-file" yaml:"ca-file"`
}

// Default returns the default CLI configuration. The credential fields have
// no defaults.
func Default() *CLIConfig {
	return &CLIConfig{
		Timeout:  30 * time.Second,
		LogLevel: "warn",
	}
}
