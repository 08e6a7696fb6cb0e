// Package config defines the telemetry-hubsim configuration.
//
// Sources are merged in order: defaults, the config file (TOML or YAML,
// optional) and TELEMETRY_HUB_* environment variables, where "_" separates
// nesting levels (TELEMETRY_HUB_MQTT_BROKER sets mqtt.broker).
package config
