// Package metric provides Prometheus metrics for the hub simulator.
//
//   - prometheus.go: registry, typed recorders and the /metrics handler
//   - collector.go: scrape-time collectors backed by callbacks
//
// Metrics include command counts by outcome, relay results, HTTP request
// counts and latencies, authentication and rate-limit rejections.
package metric
