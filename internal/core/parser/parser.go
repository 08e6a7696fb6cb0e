package parser

import (
	"strings"

	"github.com/moonblokz/telemetry-cli/internal/core/domain"
)

// QuitWords end an interactive session. They are matched against the whole
// trimmed line, case-insensitively, before any other parsing.
var QuitWords = []string{"quit", "exit", "bye"}

// Parse tokenizes and builds one command line.
func Parse(line string) (domain.Command, error) {
	s := strings.TrimSpace(line)
	if isQuitWord(s) {
		return domain.Quit{}, nil
	}

	inv, err := Tokenize(s)
	if err != nil {
		return nil, err
	}
	return Build(inv)
}

// ParseDocument parses a line and converts the result to its canonical
// document. Quit yields domain.ErrNonTransportable.
func ParseDocument(line string) (*domain.Document, error) {
	cmd, err := Parse(line)
	if err != nil {
		return nil, err
	}
	return domain.ToDocument(cmd)
}

func isQuitWord(s string) bool {
	for _, w := range QuitWords {
		if strings.EqualFold(s, w) {
			return true
		}
	}
	return false
}
