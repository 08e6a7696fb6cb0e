package config

import (
	"net/url"
	"os"

	"github.com/moonblokz/telemetry-cli/internal/core/domain"
	"github.com/moonblokz/telemetry-cli/internal/telemetry/logger"
)

// Verify validates the configuration.
func Verify(cfg *CLIConfig) error {
	if cfg.APIKey == "" {
		return domain.ErrConfigInvalid.ForField("api-key", "required")
	}
	if err := verifyHubURL(cfg.HubURL); err != nil {
		return err
	}
	if cfg.Timeout <= 0 {
		return domain.ErrConfigInvalid.ForField("timeout", "must be positive")
	}
	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		return domain.ErrConfigInvalid.ForField("log-level", err.Error())
	}
	if cfg.CAFile != "" {
		if _, err := os.Stat(cfg.CAFile); err != nil {
			return domain.ErrConfigInvalid.ForField("ca-file", "cannot read "+cfg.CAFile).WithCause(err)
		}
	}
	return nil
}

func verifyHubURL(raw string) error {
	if raw == "" {
		return domain.ErrConfigInvalid.ForField("hub-url", "required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return domain.ErrConfigInvalid.ForField("hub-url", "malformed URL").WithCause(err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.ErrConfigInvalid.ForField("hub-url", "must be an absolute http or https URL")
	}
	return nil
}
