package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/moonblokz/telemetry-cli/internal/core/domain"
	"github.com/moonblokz/telemetry-cli/internal/core/parser"
	"github.com/moonblokz/telemetry-cli/internal/telemetry/logger"
)

const (
	// Prompt is printed before every line is read.
	Prompt = "> "

	bannerTitle = "MoonBlokz Telemetry CLI - Interactive Mode"
	bannerHint  = "Type 'quit', 'exit', or 'bye' to exit"
	goodbye     = "Goodbye!"
	authHint    = "Authentication failed. Please check your API key in the config file."
)

// Sender delivers a parsed command to the hub.
type Sender interface {
	SendCommand(ctx context.Context, cmd domain.Command) error
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	errOutput io.Writer
	sender    Sender
	completer *Completer
	logger    logger.Logger
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO replaces stdin, stdout and stderr.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(r *REPL) {
		r.input = in
		r.output = out
		r.errOutput = errOut
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(r *REPL) {
		r.logger = l
	}
}

// New creates a REPL that sends commands through sender.
func New(sender Sender, opts ...Option) *REPL {
	r := &REPL{
		input:     os.Stdin,
		output:    os.Stdout,
		errOutput: os.Stderr,
		sender:    sender,
		completer: NewCompleter(),
		logger:    logger.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts the REPL loop. It returns nil on a quit word, end of input or
// context cancellation, and the transport error on authentication failure.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.output, bannerTitle)
	fmt.Fprintln(r.output, bannerHint)
	fmt.Fprintln(r.output)

	scanner := bufio.NewScanner(r.input)

	for {
		fmt.Fprint(r.output, Prompt)

		if !scanner.Scan() {
			fmt.Fprintln(r.output)
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			return nil
		}

		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		done, err := r.execute(ctx, line)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// execute handles one line. done reports a quit word.
func (r *REPL) execute(ctx context.Context, line string) (done bool, err error) {
	cmd, err := parser.Parse(line)
	if err != nil {
		fmt.Fprintf(r.errOutput, "Parse error: %v\n", err)
		if errors.Is(err, domain.ErrUnknownCommand) {
			r.suggest(line)
		}
		return false, nil
	}

	if domain.IsQuit(cmd) {
		fmt.Fprintln(r.output, goodbye)
		return true, nil
	}

	if err := r.sender.SendCommand(ctx, cmd); err != nil {
		r.logger.Debug("send failed", "command", cmd.Name(), "code", domain.GetErrorCode(err))
		fmt.Fprintln(r.errOutput, err)
		if domain.IsAuthError(err) {
			fmt.Fprintln(r.errOutput, authHint)
			return true, err
		}
		return false, nil
	}

	fmt.Fprintln(r.output, "OK")
	return false, nil
}

func (r *REPL) suggest(line string) {
	inv, err := parser.Tokenize(line)
	if err != nil {
		return
	}
	if s := r.completer.Suggest(inv.Name); len(s) > 0 {
		fmt.Fprintf(r.errOutput, "Did you mean: %s\n", strings.Join(s, ", "))
	}
}
