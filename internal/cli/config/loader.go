package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/moonblokz/telemetry-cli/internal/core/domain"
	"github.com/moonblokz/telemetry-cli/internal/infra/confloader"
)

// Load reads, normalizes and verifies the CLI configuration at path.
// An empty path means DefaultConfigFile.
func Load(path string) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	if _, err := os.Stat(path); err != nil {
		return nil, domain.ErrConfigInvalid.WithDetails("cannot read config file " + path).WithCause(err)
	}

	cfg := Default()
	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithEnvPrefix(EnvPrefix),
		confloader.WithEnvSeparator("-"),
	)
	if err := loader.Load(cfg); err != nil {
		return nil, domain.ErrConfigInvalid.WithDetails(fmt.Sprintf("parse %s", path)).WithCause(err)
	}

	Normalize(cfg)
	if err := Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize trims whitespace and the trailing slash of the hub URL.
func Normalize(cfg *CLIConfig) {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.HubURL = strings.TrimRight(strings.TrimSpace(cfg.HubURL), "/")
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.CAFile = strings.TrimSpace(cfg.CAFile)
}
