// Package hubsim groups the packages of telemetry-hubsim, a local stand-in
// for the telemetry hub. It accepts the documents telemetry-cli sends, keeps
// the recent ones in memory and optionally relays them to probes over MQTT.
//
//   - apikey: argon2id key hashing and verification
//   - config: simulator configuration
//   - server: HTTP server and middleware chain
//   - handler: endpoint handlers
//   - store: TTL store of accepted commands
//   - relay: MQTT relay to probes
package hubsim
