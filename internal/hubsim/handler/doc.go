// Package handler implements the hub simulator endpoints.
//
//	POST /command          accept a command document
//	GET  /commands         list retained commands, newest first
//	GET  /commands/{id}    fetch one retained command
//	GET  /health           liveness
//	GET  /metrics          Prometheus metrics
//
// JSON responses share the Response envelope. POST /command answers 200
// only when the document was stored and, if a relay is configured,
// published.
package handler
