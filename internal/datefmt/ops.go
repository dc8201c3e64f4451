package datefmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aescanero/dago-node-render/internal/zones"
)

var (
	// ErrUnknownOperation is returned for an operation name outside the
	// supported set
	ErrUnknownOperation = errors.New("unknown date operation")

	// ErrInvalidOperand is returned when an operation argument cannot be
	// parsed
	ErrInvalidOperand = errors.New("invalid date operation argument")
)

// OpKind names a supported date manipulation
type OpKind string

const (
	// OpSet overwrites calendar fields, e.g. "hour=9,minute=0"
	OpSet OpKind = "set"
	// OpAdd moves forward, e.g. "2 days"
	OpAdd OpKind = "add"
	// OpSubtract moves backward, e.g. "3 hours"
	OpSubtract OpKind = "subtract"
	// OpTimezone converts to another zone, e.g. "+05:30" or "Europe/Paris"
	OpTimezone OpKind = "tz"
)

// OpOrder is the order in which operations taken from an unordered set of
// named options are applied
var OpOrder = []OpKind{OpSet, OpAdd, OpSubtract, OpTimezone}

// Operation is one validated date manipulation
type Operation struct {
	Kind OpKind

	// Fields holds the calendar fields to overwrite (OpSet)
	Fields map[string]int

	// Amount and Unit describe a shift (OpAdd, OpSubtract)
	Amount int
	Unit   Unit

	// Location is the target zone (OpTimezone)
	Location *time.Location
}

var setFields = map[string]bool{
	"year": true, "month": true, "day": true,
	"hour": true, "minute": true, "second": true, "millisecond": true,
}

// ParseOperation validates name and arg and builds an Operation
func ParseOperation(name, arg string) (Operation, error) {
	kind := OpKind(strings.ToLower(strings.TrimSpace(name)))
	arg = strings.TrimSpace(arg)

	switch kind {
	case OpSet:
		fields, err := parseFields(arg)
		if err != nil {
			return Operation{}, err
		}
		return Operation{Kind: OpSet, Fields: fields}, nil

	case OpAdd, OpSubtract:
		amount, unit, err := parseShift(arg)
		if err != nil {
			return Operation{}, err
		}
		return Operation{Kind: kind, Amount: amount, Unit: unit}, nil

	case OpTimezone, "timezone":
		loc, err := parseZone(arg)
		if err != nil {
			return Operation{}, err
		}
		return Operation{Kind: OpTimezone, Location: loc}, nil

	default:
		return Operation{}, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
}

// Apply runs the operations against t in order
func Apply(t time.Time, ops []Operation) time.Time {
	for _, op := range ops {
		t = op.apply(t)
	}
	return t
}

func (op Operation) apply(t time.Time) time.Time {
	switch op.Kind {
	case OpSet:
		return setTime(t, op.Fields)
	case OpAdd:
		return AddUnits(t, op.Amount, op.Unit)
	case OpSubtract:
		return AddUnits(t, -op.Amount, op.Unit)
	case OpTimezone:
		return t.In(op.Location)
	}
	return t
}

func parseFields(arg string) (map[string]int, error) {
	if arg == "" {
		return nil, fmt.Errorf("%w: empty field list", ErrInvalidOperand)
	}

	fields := make(map[string]int)
	for _, part := range strings.Split(arg, ",") {
		key, val, ok := strings.Cut(part, "=")
		if !ok {
			key, val, ok = strings.Cut(part, ":")
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if !ok || !setFields[key] {
			return nil, fmt.Errorf("%w: %q", ErrInvalidOperand, part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidOperand, part)
		}
		fields[key] = n
	}
	return fields, nil
}

func parseShift(arg string) (int, Unit, error) {
	parts := strings.Fields(arg)
	if len(parts) == 0 || len(parts) > 2 {
		return 0, "", fmt.Errorf("%w: %q", ErrInvalidOperand, arg)
	}

	amount, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", fmt.Errorf("%w: %q", ErrInvalidOperand, arg)
	}

	unit := UnitDay
	if len(parts) == 2 {
		u, ok := ParseUnit(parts[1])
		if !ok {
			return 0, "", fmt.Errorf("%w: unit %q", ErrInvalidOperand, parts[1])
		}
		unit = u
	}
	return amount, unit, nil
}

func parseZone(arg string) (*time.Location, error) {
	if zones.Resolve(arg) != zones.UTC {
		return zones.Location(arg), nil
	}
	loc, err := time.LoadLocation(arg)
	if err != nil {
		return nil, fmt.Errorf("%w: zone %q", ErrInvalidOperand, arg)
	}
	return loc, nil
}

func setTime(t time.Time, fields map[string]int) time.Time {
	year, month, day := t.Date()
	hour, minute, second := t.Clock()
	nsec := t.Nanosecond()

	if v, ok := fields["year"]; ok {
		year = v
	}
	if v, ok := fields["month"]; ok {
		month = time.Month(v)
	}
	if v, ok := fields["day"]; ok {
		day = v
	}
	if v, ok := fields["hour"]; ok {
		hour = v
	}
	if v, ok := fields["minute"]; ok {
		minute = v
	}
	if v, ok := fields["second"]; ok {
		second = v
	}
	if v, ok := fields["millisecond"]; ok {
		nsec = v * int(time.Millisecond)
	}

	return time.Date(year, month, day, hour, minute, second, nsec, t.Location())
}
