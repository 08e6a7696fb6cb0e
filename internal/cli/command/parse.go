package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/moonblokz/telemetry-cli/internal/cli/output"
	"github.com/moonblokz/telemetry-cli/internal/core/parser"
	"github.com/moonblokz/telemetry-cli/internal/infra/buildinfo"
)

// ParseCommand returns the parse subcommand.
func ParseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Print the canonical document of an invocation without sending it",
		ArgsUsage: "<invocation>",
		Action:    parseAction,
	}
}

func parseAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("parse requires an invocation, e.g. parse 'update_node(node_id=1)'", 1)
	}

	format, err := output.ParseFormat(c.String(flagOutput))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	// Arguments are rejoined so unquoted invocations containing spaces work.
	line := strings.Join(c.Args().Slice(), " ")

	doc, err := parser.ParseDocument(line)
	if err != nil {
		fmt.Fprintf(c.App.ErrWriter, "Parse error: %v\n", err)
		return exitFailure()
	}

	return output.NewFormatter(format).Format(c.App.Writer, doc)
}

// VersionCommand returns the version subcommand.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show build information",
		Action: func(c *cli.Context) error {
			format, err := output.ParseFormat(c.String(flagOutput))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return output.NewFormatter(format).Format(c.App.Writer, buildinfo.Get())
		},
	}
}
