package config

import "time"

// EnvPrefix is the environment variable prefix for overrides.
const EnvPrefix = "TELEMETRY_HUB_"

// HubConfig is the root configuration of the hub simulator.
type HubConfig struct {
	// Listen is the HTTP listen address.
	Listen string `koanf:"listen" yaml:"listen"`

	TLS TLSSection `koanf:"tls" yaml:"tls"`

	API  APISection  `koanf:"api" yaml:"api"`
	Rate RateSection `koanf:"rate" yaml:"rate"`

	// Proxy describes the reverse proxy in front of the simulator, if any.
	Proxy ProxySection `koanf:"proxy" yaml:"proxy"`

	// Retention is how long accepted commands are kept for /commands.
	Retention time.Duration `koanf:"retention" yaml:"retention"`

	MQTT MQTTSection `koanf:"mqtt" yaml:"mqtt"`
	Log  LogSection  `koanf:"log" yaml:"log"`
}

// APISection holds the accepted API key. Hash, an argon2id hash as printed
// by "telemetry-hubsim hash-key", takes precedence over Key.
type APISection struct {
	Key  string `koanf:"key" yaml:"key"`
	Hash string `koanf:"hash" yaml:"hash"`
}

// TLSSection enables HTTPS. The certificate pair is reloaded when either
// file changes on disk.
type TLSSection struct {
	Cert string `koanf:"cert" yaml:"cert"`
	Key  string `koanf:"key" yaml:"key"`
}

// Enabled reports whether a certificate pair is configured.
func (t TLSSection) Enabled() bool {
	return t.Cert != "" && t.Key != ""
}

// RateSection configures the per-client request limiter. Limit is in
// requests per second; zero disables limiting.
type RateSection struct {
	Limit float64 `koanf:"limit" yaml:"limit"`
	Burst int     `koanf:"burst" yaml:"burst"`
}

// ProxySection controls whether X-Forwarded-For and X-Real-IP identify the
// client for rate limiting. Leave Trusted off unless a proxy overwrites
// those headers.
type ProxySection struct {
	Trusted bool `koanf:"trusted" yaml:"trusted"`
}

// MQTTSection configures the probe relay. An empty Broker disables it.
type MQTTSection struct {
	Broker   string        `koanf:"broker" yaml:"broker"`
	Topic    string        `koanf:"topic" yaml:"topic"`
	Client   string        `koanf:"client" yaml:"client"`
	Username string        `koanf:"username" yaml:"username"`
	Password string        `koanf:"password" yaml:"password"`
	QoS      int           `koanf:"qos" yaml:"qos"`
	Timeout  time.Duration `koanf:"timeout" yaml:"timeout"`
}

// Enabled reports whether a broker is configured.
func (m MQTTSection) Enabled() bool {
	return m.Broker != ""
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}
