package confloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	APIKey  string        `koanf:"api-key"`
	HubURL  string        `koanf:"hub-url"`
	Timeout time.Duration `koanf:"timeout"`
	MQTT    struct {
		Broker string `koanf:"broker"`
		Topic  string `koanf:"topic"`
	} `koanf:"mqtt"`
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l == nil {
		t.Fatal("NewLoader() returned nil")
	}
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}
	if l.envSep != DefaultEnvSeparator {
		t.Errorf("envSep = %q, want %q", l.envSep, DefaultEnvSeparator)
	}
}

func TestNewLoader_WithOptions(t *testing.T) {
	l := NewLoader(
		WithEnvPrefix("TEST_"),
		WithEnvSeparator("-"),
		WithConfigFile("/path/to/config.toml"),
	)

	if l.envPrefix != "TEST_" {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, "TEST_")
	}
	if l.envSep != "-" {
		t.Errorf("envSep = %q, want %q", l.envSep, "-")
	}
	if l.filePath != "/path/to/config.toml" {
		t.Errorf("filePath = %q, want %q", l.filePath, "/path/to/config.toml")
	}
}

func TestLoader_LoadFile_TOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
api-key = "secret-key"
hub-url = "http://localhost:8080"

[mqtt]
broker = "tcp://localhost:1883"
`)

	l := NewLoader()
	if err := l.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	var cfg testConfig
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cfg.APIKey != "secret-key" {
		t.Errorf("api-key = %q, want %q", cfg.APIKey, "secret-key")
	}
	if cfg.MQTT.Broker != "tcp://localhost:1883" {
		t.Errorf("mqtt.broker = %q, want %q", cfg.MQTT.Broker, "tcp://localhost:1883")
	}
}

func TestLoader_LoadFile_YAML(t *testing.T) {
	path := writeFile(t, "config.yml", `
hub-url: "http://hub:9000"
mqtt:
  topic: probes
`)

	l := NewLoader()
	if err := l.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	var cfg testConfig
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cfg.HubURL != "http://hub:9000" {
		t.Errorf("hub-url = %q, want %q", cfg.HubURL, "http://hub:9000")
	}
	if cfg.MQTT.Topic != "probes" {
		t.Errorf("mqtt.topic = %q, want %q", cfg.MQTT.Topic, "probes")
	}
}

func TestLoader_LoadFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "not found",
			path: func(t *testing.T) string { return "/nonexistent/config.toml" },
		},
		{
			name: "unsupported extension",
			path: func(t *testing.T) string { return writeFile(t, "config.ini", "a=b") },
		},
		{
			name: "malformed toml",
			path: func(t *testing.T) string { return writeFile(t, "config.toml", "api-key = ") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoader()
			if err := l.LoadFile(tt.path(t)); err == nil {
				t.Error("LoadFile() should return error")
			}
		})
	}
}

func TestLoader_LoadFile_Empty(t *testing.T) {
	l := NewLoader()
	if err := l.LoadFile(""); err != nil {
		t.Errorf("LoadFile(\"\") should not error, got: %v", err)
	}
}

func TestParserFor(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"config.toml", false},
		{"CONFIG.TOML", false},
		{"config.yaml", false},
		{"config.yml", false},
		{"config.json", true},
		{"config", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, err := ParserFor(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParserFor(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && p == nil {
				t.Errorf("ParserFor(%q) returned nil parser", tt.path)
			}
		})
	}
}

func TestLoader_LoadEnv_NestedKeys(t *testing.T) {
	t.Setenv("TELEMETRY_MQTT_BROKER", "tcp://broker:1883")

	l := NewLoader()
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	var cfg testConfig
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cfg.MQTT.Broker != "tcp://broker:1883" {
		t.Errorf("mqtt.broker = %q, want %q", cfg.MQTT.Broker, "tcp://broker:1883")
	}
}

func TestLoader_LoadEnv_KebabKeys(t *testing.T) {
	t.Setenv("MYAPP_HUB_URL", "http://env-hub")

	l := NewLoader(WithEnvPrefix("MYAPP_"), WithEnvSeparator("-"))
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	var cfg testConfig
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cfg.HubURL != "http://env-hub" {
		t.Errorf("hub-url = %q, want %q", cfg.HubURL, "http://env-hub")
	}
}

func TestLoader_LoadMap(t *testing.T) {
	l := NewLoader()

	if err := l.LoadMap(map[string]any{"hub-url": "http://map", "mqtt.topic": "lab"}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	var cfg testConfig
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cfg.HubURL != "http://map" {
		t.Errorf("HubURL = %q, want %q", cfg.HubURL, "http://map")
	}
	if cfg.MQTT.Topic != "lab" {
		t.Errorf("MQTT.Topic = %q, want %q", cfg.MQTT.Topic, "lab")
	}
}

func TestLoader_Load_Priority(t *testing.T) {
	path := writeFile(t, "config.toml", `
api-key = "from-file"
hub-url = "http://file"
`)

	t.Setenv("PRIO_API_KEY", "from-env")

	l := NewLoader(WithConfigFile(path), WithEnvPrefix("PRIO_"), WithEnvSeparator("-"))

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.APIKey != "from-env" {
		t.Errorf("APIKey = %q, want %q (env should override file)", cfg.APIKey, "from-env")
	}
	if cfg.HubURL != "http://file" {
		t.Errorf("HubURL = %q, want %q", cfg.HubURL, "http://file")
	}
}

func TestLoader_Load_KeepsDefaults(t *testing.T) {
	path := writeFile(t, "config.toml", `
hub-url = "http://file"
timeout = "5s"
`)

	cfg := testConfig{APIKey: "default"}
	l := NewLoader(WithConfigFile(path), WithEnvPrefix("UNUSED_PREFIX_"))
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.APIKey != "default" {
		t.Errorf("APIKey = %q, want default kept", cfg.APIKey)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
}

func TestLoader_Load_OverridesWin(t *testing.T) {
	path := writeFile(t, "config.toml", `
hub-url = "http://file"
[mqtt]
topic = "from-file"
`)
	t.Setenv("OVR_HUB_URL", "http://env")

	l := NewLoader(
		WithConfigFile(path),
		WithEnvPrefix("OVR_"),
		WithEnvSeparator("-"),
		WithOverrides(map[string]any{"hub-url": "http://flag"}),
	)

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HubURL != "http://flag" {
		t.Errorf("HubURL = %q, want override over env and file", cfg.HubURL)
	}
	if cfg.MQTT.Topic != "from-file" {
		t.Errorf("MQTT.Topic = %q, want untouched file value", cfg.MQTT.Topic)
	}
}

func TestTOMLParser_RoundTrip(t *testing.T) {
	p := TOML()
	out, err := p.Marshal(map[string]any{"hub-url": "http://x", "mqtt": map[string]any{"topic": "t"}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	m, err := p.Unmarshal(out)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if m["hub-url"] != "http://x" {
		t.Errorf("hub-url = %v", m["hub-url"])
	}
	mqtt, ok := m["mqtt"].(map[string]any)
	if !ok || mqtt["topic"] != "t" {
		t.Errorf("mqtt = %#v", m["mqtt"])
	}
}
