// Package command defines the telemetry-cli application using urfave/cli/v2.
//
// Without --command the CLI runs an interactive session against the hub
// configured in the config file; with --command it sends one invocation and
// exits. The parse subcommand prints the canonical document of an invocation
// without contacting the hub and needs no configuration.
package command
