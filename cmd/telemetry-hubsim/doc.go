// Package main provides the entry point for telemetry-hubsim.
//
// telemetry-hubsim is a local stand-in for the telemetry hub. It accepts
// the command documents telemetry-cli sends, keeps recent ones for
// inspection and can relay them to probes over MQTT. Setting tls.cert and
// tls.key serves HTTPS, picking up renewed certificates without a restart.
//
//	telemetry-hubsim serve --config hub.toml
//	telemetry-hubsim hash-key 'my-api-key'
package main
