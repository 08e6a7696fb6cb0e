// Package output renders CLI results as json, yaml or a plain-text table.
//
// The table formatter understands canonical command documents and renders
// them as one PARAMETER/VALUE row per field, with the command name first.
package output
