// Package repl implements the interactive mode of telemetry-cli.
//
// Each line is parsed and, unless it is a quit word, sent to the hub through
// a Sender. Parse and transport errors are reported and the loop continues;
// an authentication failure ends the session with that error.
package repl
