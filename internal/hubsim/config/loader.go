package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/moonblokz/telemetry-cli/internal/core/domain"
	"github.com/moonblokz/telemetry-cli/internal/infra/confloader"
)

// Load merges defaults, the optional file at path, the environment and
// overrides (dotted keys, e.g. "listen"), then verifies the result.
func Load(path string, overrides map[string]any) (*HubConfig, error) {
	opts := []confloader.Option{
		confloader.WithEnvPrefix(EnvPrefix),
		confloader.WithEnvSeparator("."),
		confloader.WithOverrides(overrides),
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, domain.ErrConfigInvalid.WithDetails("cannot read config file " + path).WithCause(err)
		}
		opts = append(opts, confloader.WithConfigFile(path))
	}

	cfg := Default()
	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, domain.ErrConfigInvalid.WithDetails(fmt.Sprintf("parse %s", path)).WithCause(err)
	}

	Normalize(cfg)
	if err := Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize trims whitespace and lowercases enumerations.
func Normalize(cfg *HubConfig) {
	cfg.Listen = strings.TrimSpace(cfg.Listen)
	cfg.TLS.Cert = strings.TrimSpace(cfg.TLS.Cert)
	cfg.TLS.Key = strings.TrimSpace(cfg.TLS.Key)
	cfg.API.Key = strings.TrimSpace(cfg.API.Key)
	cfg.API.Hash = strings.TrimSpace(cfg.API.Hash)
	cfg.MQTT.Broker = strings.TrimSpace(cfg.MQTT.Broker)
	cfg.MQTT.Topic = strings.Trim(strings.TrimSpace(cfg.MQTT.Topic), "/")
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
}
