package domain

import (
	"fmt"
	"strings"
	"time"
)

// Command names as they appear on the command line and on the wire.
const (
	NameSetUpdateInterval = "set_update_interval"
	NameSetLogLevel       = "set_log_level"
	NameSetLogFilter      = "set_log_filter"
	NameCommand           = "command"
	NameUpdateNode        = "update_node"
	NameUpdateProbe       = "update_probe"
	NameRebootProbe       = "reboot_probe"
	NameStartMeasurement  = "start_measurement"
	NameQuit              = "quit"
)

// CommandNames lists every transportable command name in a stable order.
var CommandNames = []string{
	NameSetUpdateInterval,
	NameSetLogLevel,
	NameSetLogFilter,
	NameCommand,
	NameUpdateNode,
	NameUpdateProbe,
	NameRebootProbe,
	NameStartMeasurement,
}

// IsTransportableName reports whether name is one of CommandNames.
func IsTransportableName(name string) bool {
	for _, n := range CommandNames {
		if n == name {
			return true
		}
	}
	return false
}

// Command is one operator intent.
//
// The set of implementations is closed: only the types in this file
// satisfy it. Consumers switch on the concrete type.
type Command interface {
	// Name returns the canonical lowercase command name.
	Name() string

	isCommand()
}

// SetUpdateInterval reconfigures the measurement schedule of every probe.
// It never targets a single node.
type SetUpdateInterval struct {
	StartTime      time.Time // UTC
	EndTime        time.Time // UTC
	ActivePeriod   uint64    // seconds
	InactivePeriod uint64    // seconds
}

// SetLogLevel changes the log level of one probe or all probes.
type SetLogLevel struct {
	NodeID   *uint32
	LogLevel LogLevel
}

// SetLogFilter installs a free-text log filter.
type SetLogFilter struct {
	NodeID    *uint32
	LogFilter string
}

// Passthrough carries a free-text command to a probe unchanged.
// It is the "command" variant.
type Passthrough struct {
	NodeID  *uint32
	Command string
}

// UpdateNode asks a node to update itself.
type UpdateNode struct {
	NodeID *uint32
}

// UpdateProbe asks a probe to update its firmware.
type UpdateProbe struct {
	NodeID *uint32
}

// RebootProbe restarts a probe.
type RebootProbe struct {
	NodeID *uint32
}

// StartMeasurement starts a numbered measurement on exactly one node.
type StartMeasurement struct {
	NodeID   uint32
	Sequence uint32
}

// Quit ends an interactive session. It is never sent to the hub.
type Quit struct{}

func (SetUpdateInterval) Name() string { return NameSetUpdateInterval }
func (SetLogLevel) Name() string       { return NameSetLogLevel }
func (SetLogFilter) Name() string      { return NameSetLogFilter }
func (Passthrough) Name() string       { return NameCommand }
func (UpdateNode) Name() string        { return NameUpdateNode }
func (UpdateProbe) Name() string       { return NameUpdateProbe }
func (RebootProbe) Name() string       { return NameRebootProbe }
func (StartMeasurement) Name() string  { return NameStartMeasurement }
func (Quit) Name() string              { return NameQuit }

func (SetUpdateInterval) isCommand() {}
func (SetLogLevel) isCommand()       {}
func (SetLogFilter) isCommand()      {}
func (Passthrough) isCommand()       {}
func (UpdateNode) isCommand()        {}
func (UpdateProbe) isCommand()       {}
func (RebootProbe) isCommand()       {}
func (StartMeasurement) isCommand()  {}
func (Quit) isCommand()              {}

// IsQuit reports whether cmd is the Quit sentinel.
func IsQuit(cmd Command) bool {
	_, ok := cmd.(Quit)
	return ok
}

// NodeID returns a pointer to a copy of id, for populating optional fields.
func NodeID(id uint32) *uint32 {
	return &id
}

// ============================================================================
// Log Level
// ============================================================================

// LogLevel is a probe log level. Values are always upper case.
type LogLevel string

const (
	LogLevelTrace LogLevel = "TRACE"
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)

// LogLevels lists the accepted levels from most to least verbose.
var LogLevels = []LogLevel{
	LogLevelTrace,
	LogLevelDebug,
	LogLevelInfo,
	LogLevelWarn,
	LogLevelError,
}

// ParseLogLevel upper-cases s and checks it against LogLevels.
func ParseLogLevel(s string) (LogLevel, error) {
	lvl := LogLevel(strings.ToUpper(s))
	for _, l := range LogLevels {
		if l == lvl {
			return lvl, nil
		}
	}
	return "", fmt.Errorf("unknown log level %q", s)
}

// String implements fmt.Stringer.
func (l LogLevel) String() string {
	return string(l)
}
