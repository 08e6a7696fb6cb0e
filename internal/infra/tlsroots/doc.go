// Package tlsroots manages TLS material for hub connections.
//
//   - roots.go: trust pools for the CLI, system roots plus a custom CA file
//   - watcher.go: serving certificate for the hub simulator, reloaded via
//     fsnotify when the files change
package tlsroots
