package zones

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_KnownOffsets(t *testing.T) {
	expected := map[string]string{
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

	require.Len(t, Offsets(), 38)
	for offset, zone := range expected {
		assert.Equal(t, zone, Resolve(offset), offset)
	}
}

func TestResolve_Unknown(t *testing.T) {
	for _, in := range []string{"", "UTC", "+5:30", "+05:31", "Asia/Tokyo", "-13:00", " +01:00"} {
		assert.Equal(t, UTC, Resolve(in), in)
	}
}

func TestLocation(t *testing.T) {
	loc := Location("+09:00")
	assert.Equal(t, "Asia/Tokyo", loc.String())

	assert.Equal(t, time.UTC.String(), Location("nowhere").String())
}

func TestLocation_AllOffsetsLoad(t *testing.T) {
	for _, offset := range Offsets() {
		loc := Location(offset)
		assert.Equal(t, Resolve(offset), loc.String(), offset)
	}
}

func TestOffsets_Sorted(t *testing.T) {
	offsets := Offsets()
	for i := 1; i < len(offsets); i++ {
		assert.Less(t, offsets[i-1], offsets[i])
	}
}
