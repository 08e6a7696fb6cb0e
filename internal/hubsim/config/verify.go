package config

import (
	"net"

	"github.com/moonblokz/telemetry-cli/internal/core/domain"
	"github.com/moonblokz/telemetry-cli/internal/hubsim/apikey"
	"github.com/moonblokz/telemetry-cli/internal/telemetry/logger"
)

// Verify validates the configuration.
func Verify(cfg *HubConfig) error {
	if _, _, err := net.SplitHostPort(cfg.Listen); err != nil {
		return domain.ErrConfigInvalid.ForField("listen", "must be host:port").WithCause(err)
	}
	if (cfg.TLS.Cert == "") != (cfg.TLS.Key == "") {
		return domain.ErrConfigInvalid.ForField("tls", "tls.cert and tls.key must be set together")
	}
	if err := verifyAPI(&cfg.API); err != nil {
		return err
	}
	if cfg.Rate.Limit < 0 {
		return domain.ErrConfigInvalid.ForField("rate.limit", "must not be negative")
	}
	if cfg.Rate.Limit > 0 && cfg.Rate.Burst < 1 {
		return domain.ErrConfigInvalid.ForField("rate.burst", "must be at least 1")
	}
	if cfg.Retention <= 0 {
		return domain.ErrConfigInvalid.ForField("retention", "must be positive")
	}
	if err := verifyMQTT(&cfg.MQTT); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyAPI(cfg *APISection) error {
	if cfg.Key == "" && cfg.Hash == "" {
		return domain.ErrConfigInvalid.ForField("api.key", "api.key or api.hash is required")
	}
	if cfg.Hash != "" {
		if _, _, err := apikey.ParseHash(cfg.Hash); err != nil {
			return domain.ErrConfigInvalid.ForField("api.hash", err.Error())
		}
	}
	return nil
}

func verifyMQTT(cfg *MQTTSection) error {
	if !cfg.Enabled() {
		return nil
	}
	if cfg.Topic == "" {
		return domain.ErrConfigInvalid.ForField("mqtt.topic", "required when mqtt.broker is set")
	}
	if cfg.QoS < 0 || cfg.QoS > 2 {
		return domain.ErrConfigInvalid.ForField("mqtt.qos", "must be 0, 1 or 2")
	}
	if cfg.Timeout <= 0 {
		return domain.ErrConfigInvalid.ForField("mqtt.timeout", "must be positive")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	if _, err := logger.ParseLevel(cfg.Level); err != nil {
		return domain.ErrConfigInvalid.ForField("log.level", err.Error())
	}
	if cfg.Format != "json" && cfg.Format != "text" {
		return domain.ErrConfigInvalid.ForField("log.format", "must be json or text")
	}
	return nil
}
