package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/moonblokz/telemetry-cli/internal/cli/connection"
	"github.com/moonblokz/telemetry-cli/internal/cli/repl"
	"github.com/moonblokz/telemetry-cli/internal/core/domain"
	"github.com/moonblokz/telemetry-cli/internal/core/parser"
	"github.com/moonblokz/telemetry-cli/internal/telemetry/logger"
)

// runSingle parses and sends one invocation.
func runSingle(c *cli.Context, sender repl.Sender, line string) error {
	stderr := c.App.ErrWriter

	cmd, err := parser.Parse(line)
	if err != nil {
		fmt.Fprintf(stderr, "Parse error: %v\n", err)
		return exitFailure()
	}

	if domain.IsQuit(cmd) {
		fmt.Fprintln(stderr, "quit command is only valid in interactive mode")
		return exitFailure()
	}

	if err := sender.SendCommand(c.Context, cmd); err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure()
	}

	fmt.Fprintln(c.App.Writer, "OK")
	return nil
}

// runInteractive runs the REPL, reloading credentials when the config file
// changes.
func runInteractive(c *cli.Context, flags *GlobalFlags, client *connection.HubClient) error {
	log := logger.Default()

	w, err := watchConfig(flags.Config, client, flags.Verbose, log)
	if err != nil {
		log.Warn("config reload disabled", "path", flags.Config, "error", err)
	} else {
		defer w.Stop()
	}

	r := repl.New(client,
		repl.WithIO(c.App.Reader, c.App.Writer, c.App.ErrWriter),
		repl.WithLogger(log),
	)

	if err := r.Run(c.Context); err != nil {
		if domain.IsAuthError(err) {
			return exitFailure()
		}
		return cli.Exit(err.Error(), 1)
	}
	return nil
}
