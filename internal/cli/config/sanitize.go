package config

import "github.com/moonblokz/telemetry-cli/internal/telemetry/logger"

// Sanitize returns a copy of the config with the API key masked.
func Sanitize(cfg *CLIConfig) *CLIConfig {
	sanitized := *cfg
	sanitized.APIKey = logger.MaskSecret(sanitized.APIKey)
	return &sanitized
}
