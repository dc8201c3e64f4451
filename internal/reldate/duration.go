package reldate

import (
	"strings"
	"time"
)

// Duration is a span expressed in mixed units
type Duration struct {
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
}

// TotalSeconds returns the span in seconds
func (d Duration) TotalSeconds() int64 {
	return d.Days*86400 + d.Hours*3600 + d.Minutes*60 + d.Seconds
}

// Std converts the span to a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d.TotalSeconds()) * time.Second
}

// Output modes for ConvertToSec
const (
	ModeSeconds   = "seconds"
	ModeTimestamp = "timestamp"
	ModeUnix      = "unix"
	ModeCapped    = "capped"
)

// ConvertToSec converts d according to mode:
//   - seconds (default): the span in seconds
//   - timestamp: epoch milliseconds of now + d
//   - unix: epoch seconds of now + d
//   - capped: the span in seconds, at most max (max <= 0 disables the cap)
func (e *Engine) ConvertToSec(d Duration, mode string, max int64) int64 {
	total := d.TotalSeconds()

	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeTimestamp:
		return e.now().Add(d.Std()).UnixMilli()
	case ModeUnix:
		return e.now().Add(d.Std()).Unix()
	case ModeCapped:
		if max > 0 && total > max {
			return max
		}
		return total
	default:
		return total
	}
}

// TimestampFromNow renders now + d as RFC 3339
func (e *Engine) TimestampFromNow(d Duration) string {
	return e.now().Add(d.Std()).Format(time.RFC3339)
}
