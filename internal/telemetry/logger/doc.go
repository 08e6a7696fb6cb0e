// Package logger provides structured logging for the telemetry CLI and the
// hub simulator.
//
//   - logger.go: slog-backed Logger, level control, process default
//   - context.go: context-aware logging with request IDs
//   - redact.go: sensitive data redaction
//
// API keys and their argon2 hashes never reach the output: attributes
// whose key looks sensitive are replaced, and known secret formats are
// masked wherever they appear.
package logger
