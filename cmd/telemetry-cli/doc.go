// Package main provides the entry point for telemetry-cli.
//
// telemetry-cli sends control commands to field probes through a telemetry
// hub. It runs interactively by default or sends a single command:
//
//	telemetry-cli --config config.toml
//	telemetry-cli --command 'set_log_level(node_id=21, log_level=DEBUG)'
//	telemetry-cli parse -o yaml 'start_measurement(node_id=21, sequence=42)'
package main
