// Package relay forwards accepted commands to probes over MQTT.
//
// Each document is published as JSON to
//
//	<prefix>/<node id>/command
//
// or to <prefix>/all/command when the document names no node.
package relay
