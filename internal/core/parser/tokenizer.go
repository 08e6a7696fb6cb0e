package parser

import (
	"strings"
	"unicode"

	"github.com/moonblokz/telemetry-cli/internal/core/domain"
)

// Invocation is the tokenized form of one command line.
type Invocation struct {
	// Name is the command name as typed, trimmed but not case-folded.
	Name string

	// Params holds the key/value pairs in scan order.
	Params ParamList

	// HasBody reports whether the line had a parenthesized parameter block,
	// even an empty one.
	HasBody bool
}

// scanState is the state of the parameter body scanner.
type scanState int

const (
	stateReadingKey scanState = iota
	stateReadingValue
	stateReadingValueQuoted
)

// String returns a string representation of the state.
func (s scanState) String() string {
	switch s {
	case stateReadingKey:
		return "READING_KEY"
	case stateReadingValue:
		return "READING_VALUE"
	case stateReadingValueQuoted:
		return "READING_VALUE_QUOTED"
	default:
		return "UNKNOWN"
	}
}

// Tokenize splits a line into a command name and its parameter list.
//
// Everything before the first "(" is the name. When a "(" is present the
// line must end with ")", and everything in between is the body.
func Tokenize(line string) (*Invocation, error) {
	s := strings.TrimSpace(line)

	open := strings.IndexByte(s, '(')
	if open < 0 {
		return &Invocation{Name: s}, nil
	}

	if !strings.HasSuffix(s, ")") {
		return nil, domain.ErrMalformedInvocation.WithDetails("missing closing parenthesis")
	}

	return &Invocation{
		Name:    strings.TrimSpace(s[:open]),
		Params:  scanParams(s[open+1 : len(s)-1]),
		HasBody: true,
	}, nil
}

// scanParams runs the key/value state machine over a parameter body.
//
// In key state "=" moves to value state and every other character is part
// of the key; whitespace before the first key character is dropped. In
// value state "," commits the pair and '"' enters quoted state, where every
// character (commas included) is literal until the closing quote. Quotes
// are kept in the value. Keys and values are trimmed on commit.
func scanParams(body string) ParamList {
	var (
		params ParamList
		key    strings.Builder
		value  strings.Builder
		state  = stateReadingKey
	)

	commit := func() {
		params = append(params, Param{
			Key:   strings.TrimSpace(key.String()),
			Value: strings.TrimSpace(value.String()),
		})
		key.Reset()
		value.Reset()
	}

	for _, r := range body {
		switch state {
		case stateReadingKey:
			switch {
			case r == '=':
				state = stateReadingValue
			case key.Len() == 0 && unicode.IsSpace(r):
				// leading whitespace
			default:
				key.WriteRune(r)
			}

		case stateReadingValue:
			switch r {
			case ',':
				commit()
				state = stateReadingKey
			case '"':
				value.WriteRune(r)
				state = stateReadingValueQuoted
			default:
				value.WriteRune(r)
			}

		case stateReadingValueQuoted:
			value.WriteRune(r)
			if r == '"' {
				state = stateReadingValue
			}
		}
	}

	if key.Len() > 0 || value.Len() > 0 {
		commit()
	}

	return params
}
