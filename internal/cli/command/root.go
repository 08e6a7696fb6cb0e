package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/moonblokz/telemetry-cli/internal/cli/config"
	"github.com/moonblokz/telemetry-cli/internal/cli/connection"
	"github.com/moonblokz/telemetry-cli/internal/infra/buildinfo"
	"github.com/moonblokz/telemetry-cli/internal/infra/tlsroots"
	"github.com/moonblokz/telemetry-cli/internal/telemetry/logger"
)

const (
	flagConfig  = "config"
	flagCommand = "command"
	flagVerbose = "verbose"
	flagOutput  = "output"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "telemetry-cli",
		Usage:   "Send commands to probes via the telemetry hub",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			ParseCommand(),
			VersionCommand(),
		},
		Before: setupLogger,
		Action: rootAction,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"c"},
			Usage:   "Path to the configuration file",
			EnvVars: []string{"TELEMETRY_CLI_CONFIG"},
			Value:   config.DefaultConfigFile,
		},
		&cli.StringFlag{
			Name:    flagCommand,
			Aliases: []string{"e"},
			Usage:   "Single command to send and exit",
		},
		&cli.BoolFlag{
			Name:    flagVerbose,
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
		&cli.StringFlag{
			Name:    flagOutput,
			Aliases: []string{"o"},
			Usage:   "Output format for parse and version: json, yaml, table",
			Value:   "json",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Config  string
	Command string
	Verbose bool
	Output  string
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Config:  c.String(flagConfig),
		Command: c.String(flagCommand),
		Verbose: c.Bool(flagVerbose),
		Output:  c.String(flagOutput),
	}
}

// setupLogger installs the CLI logger on stderr. --verbose forces debug;
// otherwise the level starts at warn and follows log-level once the config
// is loaded.
func setupLogger(c *cli.Context) error {
	cfg := logger.CLIConfig()
	cfg.Output = c.App.ErrWriter
	if c.Bool(flagVerbose) {
		cfg.Level = "debug"
	}

	l, err := logger.New(cfg)
	if err != nil {
		return err
	}
	logger.SetDefault(l)
	return nil
}

func rootAction(c *cli.Context) error {
	flags := ParseGlobalFlags(c)
	log := logger.Default()

	if c.Args().Present() {
		return cli.Exit(fmt.Sprintf("unexpected argument %q (use --command or the parse subcommand)", c.Args().First()), 1)
	}

	cfg, err := config.Load(flags.Config)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to load configuration from %s: %v", flags.Config, err), 1)
	}
	if !flags.Verbose {
		logger.SetLevel(cfg.LogLevel)
	}
	log.Debug("configuration loaded", "path", flags.Config, "settings", config.Sanitize(cfg))

	tlsConfig, err := tlsroots.ClientConfig(cfg.CAFile)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to load CA file %s: %v", cfg.CAFile, err), 1)
	}

	client := connection.NewHubClient(cfg.HubURL, cfg.APIKey,
		connection.WithTimeout(cfg.Timeout),
		connection.WithTLSConfig(tlsConfig),
		connection.WithLogger(log),
	)

	if c.IsSet(flagCommand) {
		return runSingle(c, client, flags.Command)
	}
	return runInteractive(c, flags, client)
}

// exitFailure ends the process with status 1 after the caller has already
// reported the problem.
func exitFailure() error {
	return cli.Exit("", 1)
}
