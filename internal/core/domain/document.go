package domain

import (
	"encoding/json"
	"time"
)

// Parameter keys of the canonical document.
//
// KeyNodeID contains a space where every other key uses an underscore.
// Deployed hubs read it under this spelling, so it must not be changed
// without a coordinated hub release.
const (
	KeyNodeID         = "node id"
	KeyStartTime      = "start_time"
	KeyEndTime        = "end_time"
	KeyActivePeriod   = "active_period"
	KeyInactivePeriod = "inactive_period"
	KeyLogLevel       = "log_level"
	KeyLogFilter      = "log_filter"
	KeyCommand        = "command"
	KeySequence       = "sequence"
)

// Wire layouts for timestamps: RFC 3339 with an explicit numeric offset,
// always +00:00 because values are kept in UTC. Fractional seconds use 0, 3,
// 6 or 9 digits, the shortest that holds the value.
const (
	timestampLayout      = "2006-01-02T15:04:05-07:00"
	timestampLayoutMilli = "2006-01-02T15:04:05.000-07:00"
	timestampLayoutMicro = "2006-01-02T15:04:05.000000-07:00"
	timestampLayoutNano  = "2006-01-02T15:04:05.000000000-07:00"
)

// Document is the canonical transport form of a command.
type Document struct {
	Command    string         `json:"command" yaml:"command"`
	Parameters map[string]any `json:"parameters" yaml:"parameters"`
}

// Marshal encodes the document as compact JSON.
// Parameter keys are emitted in sorted order, so output is deterministic.
func (d *Document) Marshal() ([]byte, error) {
	return json.Marshal(d)
}

// ToDocument converts a command into its canonical document.
// Quit has no transport form and yields ErrNonTransportable.
func ToDocument(cmd Command) (*Document, error) {
	params := make(map[string]any)

	switch c := cmd.(type) {
	case SetUpdateInterval:
		params[KeyStartTime] = FormatTimestamp(c.StartTime)
		params[KeyEndTime] = FormatTimestamp(c.EndTime)
		params[KeyActivePeriod] = c.ActivePeriod
		params[KeyInactivePeriod] = c.InactivePeriod
	case SetLogLevel:
		putNodeID(params, c.NodeID)
		params[KeyLogLevel] = c.LogLevel.String()
	case SetLogFilter:
		putNodeID(params, c.NodeID)
		params[KeyLogFilter] = c.LogFilter
	case Passthrough:
		putNodeID(params, c.NodeID)
		params[KeyCommand] = c.Command
	case UpdateNode:
		putNodeID(params, c.NodeID)
	case UpdateProbe:
		putNodeID(params, c.NodeID)
	case RebootProbe:
		putNodeID(params, c.NodeID)
	case StartMeasurement:
		params[KeyNodeID] = c.NodeID
		params[KeySequence] = c.Sequence
	case Quit:
		return nil, ErrNonTransportable
	default:
		return nil, ErrNonTransportable.WithDetails("unsupported command type")
	}

	return &Document{
		Command:    cmd.Name(),
		Parameters: params,
	}, nil
}

// NodeIDOf returns the target node carried by a document, if any.
func (d *Document) NodeIDOf() (uint32, bool) {
	switch v := d.Parameters[KeyNodeID].(type) {
	case uint32:
		return v, true
	case float64:
		// Decoded from JSON.
		if v < 0 || v > float64(^uint32(0)) || v != float64(uint32(v)) {
			return 0, false
		}
		return uint32(v), true
	default:
		return 0, false
	}
}

func putNodeID(params map[string]any, id *uint32) {
	if id != nil {
		params[KeyNodeID] = *id
	}
}

// FormatTimestamp renders t in UTC in the wire form.
func FormatTimestamp(t time.Time) string {
	t = t.UTC()
	switch ns := t.Nanosecond(); {
	case ns == 0:
		return t.Format(timestampLayout)
	case ns%1_000_000 == 0:
		return t.Format(timestampLayoutMilli)
	case ns%1_000 == 0:
		return t.Format(timestampLayoutMicro)
	default:
		return t.Format(timestampLayoutNano)
	}
}
