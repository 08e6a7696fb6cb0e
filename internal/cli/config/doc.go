// Package config provides CLI configuration for the telemetry CLI.
//
//   - spec.go: CLIConfig struct and defaults
//   - loader.go: loading from TOML/YAML plus TELEMETRY_CLI_* overrides
//   - verify.go: startup validation
//   - sanitize.go: secret masking for display
//
// A missing file, a parse failure or a missing api-key/hub-url is fatal at
// startup.
package config
