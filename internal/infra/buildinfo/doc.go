// Package buildinfo provides build information for the telemetry binaries.
//
// Values are injected via ldflags:
//
//	go build -ldflags "-X github.com/moonblokz/telemetry-cli/internal/infra/buildinfo.Version=v1.2.0"
//
// The version is shown by --version and sent in the User-Agent header.
package buildinfo
