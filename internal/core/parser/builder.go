package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/moonblokz/telemetry-cli/internal/core/domain"
)

// Parameter names accepted on the command line.
const (
	ParamNodeID         = "node_id"
	ParamStartTime      = "start_time"
	ParamEndTime        = "end_time"
	ParamActivePeriod   = "active_period"
	ParamInactivePeriod = "inactive_period"
	ParamLogLevel       = "log_level"
	ParamLogFilter      = "log_filter"
	ParamCommand        = "command"
	ParamSequence       = "sequence"
)

const (
	reasonUint32 = "must be a non-negative 32-bit integer"
	reasonUint64 = "must be a non-negative 64-bit integer"
)

// Build resolves an invocation to a command variant, validating and
// coercing every parameter the variant uses. Parameters a variant does not
// know are ignored.
func Build(inv *Invocation) (domain.Command, error) {
	name := strings.ToLower(inv.Name)
	p := inv.Params

	switch name {
	case domain.NameSetUpdateInterval:
		if !inv.HasBody {
			return nil, missingBlock(name)
		}
		return buildSetUpdateInterval(p)

	case domain.NameSetLogLevel:
		if !inv.HasBody {
			return nil, missingBlock(name)
		}
		nodeID, err := optionalNodeID(p)
		if err != nil {
			return nil, err
		}
		raw, err := required(p, ParamLogLevel)
		if err != nil {
			return nil, err
		}
		level, err := domain.ParseLogLevel(raw)
		if err != nil {
			return nil, domain.ErrInvalidField.ForField(ParamLogLevel, "must be one of "+levelList())
		}
		return domain.SetLogLevel{NodeID: nodeID, LogLevel: level}, nil

	case domain.NameSetLogFilter:
		if !inv.HasBody {
			return nil, missingBlock(name)
		}
		nodeID, err := optionalNodeID(p)
		if err != nil {
			return nil, err
		}
		filter, err := required(p, ParamLogFilter)
		if err != nil {
			return nil, err
		}
		return domain.SetLogFilter{NodeID: nodeID, LogFilter: filter}, nil

	case domain.NameCommand:
		if !inv.HasBody {
			return nil, missingBlock(name)
		}
		nodeID, err := optionalNodeID(p)
		if err != nil {
			return nil, err
		}
		text, err := required(p, ParamCommand)
		if err != nil {
			return nil, err
		}
		return domain.Passthrough{NodeID: nodeID, Command: text}, nil

	case domain.NameUpdateNode:
		nodeID, err := optionalNodeID(p)
		if err != nil {
			return nil, err
		}
		return domain.UpdateNode{NodeID: nodeID}, nil

	case domain.NameUpdateProbe:
		nodeID, err := optionalNodeID(p)
		if err != nil {
			return nil, err
		}
		return domain.UpdateProbe{NodeID: nodeID}, nil

	case domain.NameRebootProbe:
		nodeID, err := optionalNodeID(p)
		if err != nil {
			return nil, err
		}
		return domain.RebootProbe{NodeID: nodeID}, nil

	case domain.NameStartMeasurement:
		if !inv.HasBody {
			return nil, missingBlock(name)
		}
		raw, ok := p.Lookup(ParamNodeID)
		if !ok {
			return nil, domain.ErrMissingField.ForField(ParamNodeID, "node_id is required for start_measurement")
		}
		nodeID, err := parseUint32(ParamNodeID, raw)
		if err != nil {
			return nil, err
		}
		raw, err = required(p, ParamSequence)
		if err != nil {
			return nil, err
		}
		seq, err := parseUint32(ParamSequence, raw)
		if err != nil {
			return nil, err
		}
		return domain.StartMeasurement{NodeID: nodeID, Sequence: seq}, nil

	default:
		return nil, domain.ErrUnknownCommand.WithDetails(inv.Name)
	}
}

func buildSetUpdateInterval(p ParamList) (domain.Command, error) {
	if p.Has(ParamNodeID) {
		return nil, domain.ErrInvalidField.ForField(ParamNodeID,
			"set_update_interval applies to all probes and does not accept node_id")
	}

	// Every field must be present before any is parsed.
	for _, key := range []string{ParamStartTime, ParamEndTime, ParamActivePeriod, ParamInactivePeriod} {
		if _, err := required(p, key); err != nil {
			return nil, err
		}
	}

	var cmd domain.SetUpdateInterval
	var err error

	if cmd.StartTime, err = requiredTimestamp(p, ParamStartTime); err != nil {
		return nil, err
	}
	if cmd.EndTime, err = requiredTimestamp(p, ParamEndTime); err != nil {
		return nil, err
	}
	if cmd.ActivePeriod, err = requiredUint64(p, ParamActivePeriod); err != nil {
		return nil, err
	}
	if cmd.InactivePeriod, err = requiredUint64(p, ParamInactivePeriod); err != nil {
		return nil, err
	}

	return cmd, nil
}

// ============================================================================
// Field helpers
// ============================================================================

func missingBlock(name string) error {
	return domain.ErrMissingParameterBlock.WithDetails(name)
}

func required(p ParamList, key string) (string, error) {
	v, ok := p.Lookup(key)
	if !ok {
		return "", domain.ErrMissingField.ForField(key, "")
	}
	return v, nil
}

func optionalNodeID(p ParamList) (*uint32, error) {
	raw, ok := p.Lookup(ParamNodeID)
	if !ok {
		return nil, nil
	}
	id, err := parseUint32(ParamNodeID, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func requiredTimestamp(p ParamList, key string) (time.Time, error) {
	raw, err := required(p, key)
	if err != nil {
		return time.Time{}, err
	}
	t, err := ParseTimestamp(raw)
	if err != nil {
		return time.Time{}, domain.ErrInvalidField.ForField(key, err.Error())
	}
	return t, nil
}

func requiredUint64(p ParamList, key string) (uint64, error) {
	raw, err := required(p, key)
	if err != nil {
		return 0, err
	}
	n, perr := strconv.ParseUint(strings.TrimPrefix(raw, "+"), 10, 64)
	if perr != nil {
		return 0, domain.ErrInvalidField.ForField(key, reasonUint64).WithCause(perr)
	}
	return n, nil
}

// parseUint32 accepts decimal digits with an optional leading "+".
func parseUint32(key, raw string) (uint32, error) {
	n, err := strconv.ParseUint(strings.TrimPrefix(raw, "+"), 10, 32)
	if err != nil {
		return 0, domain.ErrInvalidField.ForField(key, reasonUint32).WithCause(err)
	}
	return uint32(n), nil
}

func levelList() string {
	names := make([]string, len(domain.LogLevels))
	for i, l := range domain.LogLevels {
		names[i] = l.String()
	}
	return strings.Join(names, ", ")
}
