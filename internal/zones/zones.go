// Package zones maps fixed UTC offsets to canonical zone identifiers.
//
// Callers frequently hand over an offset such as "+05:30" instead of a
// zone name. The table below picks one representative zone per offset;
// anything that is not one of the known offsets resolves to UTC.
package zones

import (
	"sort"
	"time"

	// Zone data is embedded so lookups do not depend on the host.
	_ "time/tzdata"
)

// UTC is returned for any input that is not a known offset
const UTC = "UTC"

var offsetZones = map[string]string{
	"+00:00": "Greenwich",
	"+01:00": "Africa/Algiers",
	"+02:00": "Africa/Johannesburg",
	"+03:00": "Asia/Baghdad",
	"+03:30": "Asia/Tehran",
	"+04:00": "Europe/Saratov",
	"+04:30": "Asia/Kabul",
	"+05:00": "Asia/Karachi",
	"+05:30": "Asia/Calcutta",
	"+05:45": "Asia/Kathmandu",
	"+06:00": "Asia/Dhaka",
	"+06:30": "Asia/Yangon",
	"+07:00": "Asia/Bangkok",
	"+08:00": "Asia/Hong_Kong",
	"+08:45": "Australia/Eucla",
	"+09:00": "Asia/Tokyo",
	"+09:30": "Australia/Adelaide",
	"+10:00": "Australia/Melbourne",
	"+10:30": "Australia/LHI",
	"+11:00": "Antarctica/Casey",
	"+12:00": "Pacific/Auckland",
	"+12:45": "Pacific/Chatham",
	"+13:00": "Pacific/Apia",
	"+14:00": "Pacific/Kiritimati",
	"-01:00": "Atlantic/Cape_Verde",
	"-02:00": "America/Godthab",
	"-02:30": "America/St_Johns",
	"-03:00": "Canada/Atlantic",
	"-04:00": "America/Anguilla",
	"-05:00": "America/Chicago",
	"-06:00": "America/Denver",
	"-07:00": "US/Pacific",
	"-08:00": "US/Alaska",
	"-09:00": "America/Adak",
	"-09:30": "Pacific/Marquesas",
	"-10:00": "US/Hawaii",
	"-11:00": "Pacific/Midway",
	"-12:00": "Etc/GMT+12",
}

// Resolve returns the zone id for a known offset, or UTC
func Resolve(offset string) string {
	if zone, ok := offsetZones[offset]; ok {
		return zone
	}
	return UTC
}

// Location resolves the offset and loads the zone. A zone that cannot be
// loaded degrades to time.UTC.
func Location(offset string) *time.Location {
	loc, err := time.LoadLocation(Resolve(offset))
	if err != nil {
		return time.UTC
	}
	return loc
}

// Offsets returns the known offsets in sorted order
func Offsets() []string {
	offsets := make([]string, 0, len(offsetZones))
	for offset := range offsetZones {
		offsets = append(offsets, offset)
	}
	sort.Strings(offsets)
	return offsets
}
