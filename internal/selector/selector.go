// Package selector extracts push provider tokens from annotated strings.
//
// Device tokens arrive as free text following a "<tag>:<payload>"
// convention, for example "expo_token:ExponentPushToken[xxx]". The payload
// may itself contain colons and newlines; everything after the first
// marker is kept.
package selector

import "strings"

// Markers recognised in device token strings
const (
	ExpoMarker              = "expo_token:"
	FCMMarker               = "fcm_token:"
	OneSignalPlayerMarker   = "onesignal_player_id:"
	OneSignalExternalMarker = "onesignal_external_id:"
)

// Root context keys written by the onesignal helper
const (
	OneSignalSelectorKey = "onesignal_selector"
	OneSignalTokenKey    = "onesignal_token"
)

// After returns the text after the first occurrence of marker, or s
// unchanged when the marker is absent.
func After(s, marker string) string {
	if _, rest, ok := strings.Cut(s, marker); ok {
		return rest
	}
	return s
}

// Expo extracts an Expo push token
func Expo(s string) string {
	return After(s, ExpoMarker)
}

// FCM extracts a Firebase Cloud Messaging token
func FCM(s string) string {
	return After(s, FCMMarker)
}

// OneSignal returns the selector marker and the token. The earliest of the
// player id and external id markers wins. Without a marker the selector
// defaults to the external id and the whole string is the token.
func OneSignal(s string) (selector, token string) {
	best := -1
	for _, marker := range []string{OneSignalPlayerMarker, OneSignalExternalMarker} {
		i := strings.Index(s, marker)
		if i < 0 || (best >= 0 && i >= best) {
			continue
		}
		best = i
		selector = marker
	}

	if best < 0 {
		return OneSignalExternalMarker, s
	}
	return selector, s[best+len(selector):]
}
