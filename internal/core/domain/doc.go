// Package domain defines the core domain models for the telemetry CLI.
//
// Domain models are pure values without any IO dependencies or framework
// coupling. This package contains:
//
//   - Command: the closed set of operator commands (one type per variant)
//   - LogLevel: the probe log level enumeration
//   - Document: the canonical transport form of a command
//   - Errors: structured error codes shared by the parser and hub client
//
// Commands are built by package parser and never mutated afterwards.
package domain
