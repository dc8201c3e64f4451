// Package helpers binds the notification template helpers to Handlebars.
//
// A Registry maps helper names to Go functions. Registration overwrites an
// existing binding of the same name. The template engine copies the
// registry onto every template it compiles, so the registry itself never
// touches raymond's global helper table.
//
// Example usage:
//
//	reg := helpers.Default(helpers.Options{Logger: logger})
//	tpl, _ := raymond.Parse(reg.Normalize(`{{formatDate sent_at "long"}}`))
//	tpl.RegisterHelpers(reg.Map())
//
// raymond calls a helper only with its exact parameter count. Helpers
// registered with RegisterOptional take trailing positional arguments that
// a template may omit; Normalize pads such calls with empty strings before
// parsing, and the helper then falls back to the hash option of the same
// name and finally to the configured default:
//
//	{{formatDate sent_at "short" "en-gb" "+05:30"}}
//	{{formatDate sent_at "short" timezone="+05:30"}}
//
// Helpers read the root render context through the "root" private data
// variable, which the engine sets on every render:
//
//	{{isOnesignal device_token}}{{onesignal_selector}}{{onesignal_token}}
//
// Value helpers:
//   - formatDate, formatDateTime, formatDay, formatTime - dates and times
//   - relativeDay, relativeDate, dateDiff, ct-formatDate - relative dates
//   - convert_to_sec, timestamp_from_now - durations
//   - sumAll, flatten - nested structures
//   - numberToWord, formatNumber, math - numbers
//   - generateNotifyId - deterministic notification ids
//   - isExpo, isFCM, isOnesignal - push token selectors
//   - eq, ne, lt, gt, lte, gte, and, or - comparisons
//   - uppercase, lowercase, trim, split, replace, remove, default, ...
//
// Block helpers:
//   - compare, ifEquals, ifMatches, ifStartsWith, ct-dateDiff, ifExpr
//   - switch, case (with switch-default as a value helper)
//   - raw-helper, getNumberFromText
//
// Helpers degrade instead of failing: an input they cannot handle is
// rendered unchanged or as empty text and the condition is logged at debug
// level. Unknown date operations in formatTime are the exception and fail
// the render.
package helpers
