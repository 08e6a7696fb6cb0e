// Package server provides the hub simulator HTTP server and its
// middleware chain.
//
// Every route runs Recover, RequestID, RateLimit (when enabled) and Audit.
// The command routes add Auth, which checks the X-Api-Key header.
package server
