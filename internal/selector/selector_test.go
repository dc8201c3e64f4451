package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpo(t *testing.T) {
	assert.Equal(t, "ABC123", Expo("prefix expo_token:ABC123"))
	assert.Equal(t, "ExponentPushToken[a:b]", Expo("expo_token:ExponentPushToken[a:b]"))
	assert.Equal(t, "line1\nline2", Expo("expo_token:line1\nline2"))
	assert.Equal(t, "x expo_token:y", Expo("expo_token:x expo_token:y"))
	assert.Equal(t, "no marker here", Expo("no marker here"))
	assert.Equal(t, "", Expo(""))
}

func TestFCM(t *testing.T) {
	assert.Equal(t, "tok:en", FCM("fcm_token:tok:en"))
	assert.Equal(t, "expo_token:abc", FCM("expo_token:abc"))
}

func TestOneSignal(t *testing.T) {
	tests := []struct {
		name         string
		in           string
		wantSelector string
		wantToken    string
	}{
		{"player id", "onesignal_player_id:XYZ", OneSignalPlayerMarker, "XYZ"},
		{"external id", "onesignal_external_id:user-1", OneSignalExternalMarker, "user-1"},
		{"prefixed", "device onesignal_player_id:A:B", OneSignalPlayerMarker, "A:B"},
		{"earliest wins", "onesignal_external_id:u onesignal_player_id:p", OneSignalExternalMarker, "u onesignal_player_id:p"},
		{"plain", "plain", OneSignalExternalMarker, "plain"},
		{"empty", "", OneSignalExternalMarker, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selector, token := OneSignal(tt.in)
			assert.Equal(t, tt.wantSelector, selector)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}
