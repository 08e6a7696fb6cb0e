// Package confloader provides configuration loading mechanism.
//
// This package implements a configuration loader that supports multiple
// sources and formats using koanf as the underlying library.
//
// Features:
//
//   - Multiple Sources: Files, environment variables, maps
//   - Multiple Formats: TOML and YAML, chosen by file extension
//   - Watch Support: Notification on config file changes
//   - Type Safety: Unmarshaling into typed structs
//
// Priority (highest to lowest):
//
//  1. Environment variables
//  2. Configuration files
//  3. Values already present in the target struct
package confloader
