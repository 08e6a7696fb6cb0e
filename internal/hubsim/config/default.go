package config

import "time"

// Default configuration values.
const (
	DefaultListen    = "127.0.0.1:8080"
	DefaultRateLimit = 50
	DefaultRateBurst = 100
	DefaultRetention = time.Hour

	DefaultMQTTTopic   = "moonblokz/probes"
	DefaultMQTTClient  = "telemetry-hubsim"
	DefaultMQTTQoS     = 1
	DefaultMQTTTimeout = 5 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default hub simulator configuration.
func Default() *HubConfig {
	return &HubConfig{
		Listen: DefaultListen,
		Rate: RateSection{
			Limit: DefaultRateLimit,
			Burst: DefaultRateBurst,
		},
		Retention: DefaultRetention,
		MQTT: MQTTSection{
			Topic:   DefaultMQTTTopic,
			Client:  DefaultMQTTClient,
			QoS:     DefaultMQTTQoS,
			Timeout: DefaultMQTTTimeout,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
