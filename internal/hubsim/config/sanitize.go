package config

import "github.com/moonblokz/telemetry-cli/internal/telemetry/logger"

// Sanitize returns a copy of the config with secrets masked.
func Sanitize(cfg *HubConfig) *HubConfig {
	sanitized := *cfg

	if sanitized.API.Key != "" {
		sanitized.API.Key = logger.MaskSecret(sanitized.API.Key)
	}
	if sanitized.MQTT.Password != "" {
		sanitized.MQTT.Password = logger.MaskSecret(sanitized.MQTT.Password)
	}

	return &sanitized
}
