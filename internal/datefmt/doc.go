// Package datefmt renders dates for notification templates.
//
// Three families of formatting are provided:
//   - Tiered formatting (short, medium, long, custom) with locale-aware
//     month names and field ordering: FormatDate, FormatDateTime, FormatDay
//   - Pattern formatting with moment-style tokens: FormatTime
//   - Declarative manipulation through a fixed set of operations
//     (set, add, subtract, tz) applied before pattern formatting
//
// Zones are always resolved through the zones package, so callers may pass
// either a fixed offset such as "+05:30" or nothing at all (UTC).
//
// Example usage:
//
//	datefmt.FormatDate("2024-03-05T10:00:00Z", "long", "en-us", "+05:30")
//	// March 5, 2024
//
//	ops := []datefmt.Operation{}
//	op, _ := datefmt.ParseOperation("add", "2 days")
//	ops = append(ops, op)
//	datefmt.FormatTime("2024-03-05", "dddd, MMMM D", "fr-fr", ops)
//	// jeudi, mars 7
//
// Invalid input never fails: it renders as InvalidDate.
package datefmt
