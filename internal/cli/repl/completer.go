package repl

import (
	"strings"

	"github.com/moonblokz/telemetry-cli/internal/core/domain"
	"github.com/moonblokz/telemetry-cli/internal/core/parser"
)

// Completer provides command name completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer over the transportable commands and the
// quit words.
func NewCompleter() *Completer {
	commands := make([]string, 0, len(domain.CommandNames)+len(parser.QuitWords))
	commands = append(commands, domain.CommandNames...)
	commands = append(commands, parser.QuitWords...)
	return &Completer{commands: commands}
}

// Complete returns the command names starting with prefix (case-insensitive).
func (c *Completer) Complete(prefix string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))

	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}

// Suggest proposes replacements for an unknown command name. It tries
// progressively shorter underscore-separated prefixes of name, so that
// "set_loglevel" still finds the set_* family.
func (c *Completer) Suggest(name string) []string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}

	for prefix := name; prefix != ""; {
		if got := c.Complete(prefix); len(got) > 0 {
			return got
		}
		i := strings.LastIndex(prefix, "_")
		if i <= 0 {
			break
		}
		prefix = prefix[:i+1]
		if got := c.Complete(prefix); len(got) > 0 {
			return got
		}
		prefix = prefix[:i]
	}
	return nil
}
