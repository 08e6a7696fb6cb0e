// Package parser turns one line of operator input into a domain.Command.
//
// The grammar is deliberately small:
//
//	invocation = name [ "(" params ")" ]
//	params     = [ pair { "," pair } ]
//	pair       = key "=" value
//
// Values are raw text. Double quotes inside a value protect commas and are
// kept verbatim. Command names and parameter keys match case-insensitively.
// The words quit, exit and bye end an interactive session.
//
// Parsing is a pure function of the input: no IO, no shared state.
package parser
