package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moonblokz/telemetry-cli/internal/core/domain"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func validConfig() *HubConfig {
	cfg := Default()
	cfg.API.Key = "secret"
	return cfg
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Listen != DefaultListen {
		t.Errorf("Listen = %q, want %q", cfg.Listen, DefaultListen)
	}
	if cfg.Rate.Limit != DefaultRateLimit || cfg.Rate.Burst != DefaultRateBurst {
		t.Errorf("Rate = %+v", cfg.Rate)
	}
	if cfg.Retention != DefaultRetention {
		t.Errorf("Retention = %v, want %v", cfg.Retention, DefaultRetention)
	}
	if cfg.MQTT.Enabled() {
		t.Error("MQTT relay should be disabled by default")
	}
	if cfg.Proxy.Trusted {
		t.Error("forwarding headers should not be trusted by default")
	}
	if cfg.Log.Level != DefaultLogLevel || cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "hub.toml", `
listen = "0.0.0.0:9090"
retention = "10m"

[api]
key = "secret"

[mqtt]
broker = "tcp://localhost:1883"
topic = "/lab/probes/"
qos = 0
`)

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Listen != "0.0.0.0:9090" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if cfg.Retention != 10*time.Minute {
		t.Errorf("Retention = %v, want 10m", cfg.Retention)
	}
	if !cfg.MQTT.Enabled() || cfg.MQTT.Topic != "lab/probes" || cfg.MQTT.QoS != 0 {
		t.Errorf("MQTT = %+v", cfg.MQTT)
	}
	if cfg.MQTT.Client != DefaultMQTTClient {
		t.Errorf("MQTT.Client = %q, want default kept", cfg.MQTT.Client)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "hub.yaml", `
api:
  key: yaml-key
log:
  level: DEBUG
  format: text
`)

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.Key != "yaml-key" || cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("TELEMETRY_HUB_API_KEY", "env-key")
	t.Setenv("TELEMETRY_HUB_MQTT_BROKER", "tcp://broker:1883")
	t.Setenv("TELEMETRY_HUB_RATE_LIMIT", "5")
	t.Setenv("TELEMETRY_HUB_PROXY_TRUSTED", "true")

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.Key != "env-key" {
		t.Errorf("API.Key = %q", cfg.API.Key)
	}
	if cfg.MQTT.Broker != "tcp://broker:1883" {
		t.Errorf("MQTT.Broker = %q", cfg.MQTT.Broker)
	}
	if cfg.Rate.Limit != 5 {
		t.Errorf("Rate.Limit = %v, want 5", cfg.Rate.Limit)
	}
	if !cfg.Proxy.Trusted {
		t.Error("Proxy.Trusted should be set from the environment")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TELEMETRY_HUB_API_KEY", "env-key")
	t.Setenv("TELEMETRY_HUB_LISTEN", "0.0.0.0:9000")

	cfg, err := Load("", map[string]any{"listen": "127.0.0.1:9100"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Listen != "127.0.0.1:9100" {
		t.Errorf("Listen = %q, want the override", cfg.Listen)
	}

	_, err = Load("", map[string]any{"listen": "localhost"})
	if domain.FieldOf(err) != "listen" {
		t.Errorf("Load() with bad listen override error = %v, want field listen", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name      string
		path      func(t *testing.T) string
		wantField string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.toml") },
		},
		{
			name: "malformed toml",
			path: func(t *testing.T) string { return writeConfig(t, "hub.toml", "listen = [") },
		},
		{
			name:      "no key",
			path:      func(t *testing.T) string { return writeConfig(t, "hub.toml", `listen = "127.0.0.1:1"`) },
			wantField: "api.key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.path(t), nil)
			if !errors.Is(err, domain.ErrConfigInvalid) {
				t.Fatalf("Load() = (%+v, %v), want ErrConfigInvalid", cfg, err)
			}
			if tt.wantField != "" && domain.FieldOf(err) != tt.wantField {
				t.Errorf("FieldOf() = %q, want %q", domain.FieldOf(err), tt.wantField)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*HubConfig)
		wantField string
	}{
		{"valid", func(*HubConfig) {}, ""},
		{"hash only", func(c *HubConfig) {
			c.API.Key = ""
			c.API.Hash = "$argon2id$v=19$m=16384,t=2,p=2$c2FsdHNhbHRzYWx0c2FsdA$aGFzaA"
		}, ""},
		{"rate disabled", func(c *HubConfig) { c.Rate.Limit = 0; c.Rate.Burst = 0 }, ""},
		{"tls pair", func(c *HubConfig) { c.TLS.Cert = "hub.crt"; c.TLS.Key = "hub.key" }, ""},
		{"tls cert only", func(c *HubConfig) { c.TLS.Cert = "hub.crt" }, "tls"},
		{"tls key only", func(c *HubConfig) { c.TLS.Key = "hub.key" }, "tls"},
		{"bad listen", func(c *HubConfig) { c.Listen = "localhost" }, "listen"},
		{"bad hash", func(c *HubConfig) { c.API.Hash = "plain" }, "api.hash"},
		{"negative rate", func(c *HubConfig) { c.Rate.Limit = -1 }, "rate.limit"},
		{"zero burst", func(c *HubConfig) { c.Rate.Burst = 0 }, "rate.burst"},
		{"zero retention", func(c *HubConfig) { c.Retention = 0 }, "retention"},
		{"mqtt no topic", func(c *HubConfig) { c.MQTT.Broker = "tcp://b:1883"; c.MQTT.Topic = "" }, "mqtt.topic"},
		{"mqtt bad qos", func(c *HubConfig) { c.MQTT.Broker = "tcp://b:1883"; c.MQTT.QoS = 3 }, "mqtt.qos"},
		{"mqtt disabled ignores qos", func(c *HubConfig) { c.MQTT.QoS = 3 }, ""},
		{"bad level", func(c *HubConfig) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *HubConfig) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := Verify(cfg)

			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Verify() error = %v", err)
				}
				return
			}
			if domain.FieldOf(err) != tt.wantField {
				t.Errorf("Verify() error = %v, want field %q", err, tt.wantField)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	cfg := validConfig()
	cfg.API.Key = "super-secret-key"
	cfg.MQTT.Password = "broker-password"

	sanitized := Sanitize(cfg)

	if cfg.API.Key != "super-secret-key" {
		t.Error("original config should not be modified")
	}
	if sanitized.API.Key == cfg.API.Key || sanitized.MQTT.Password == cfg.MQTT.Password {
		t.Errorf("secrets not masked: %+v", sanitized)
	}
	if sanitized.Listen != cfg.Listen {
		t.Error("non-secret fields should be kept")
	}

	empty := Sanitize(Default())
	if empty.API.Key != "" || empty.MQTT.Password != "" {
		t.Error("empty secrets should stay empty")
	}
}
