package prefs

import "fmt"

// Key layout lives in one place so collisions stay visible.

// CheckinDayKey holds the user's preferred weekly check-in day (0-6).
func CheckinDayKey(userID int) string {
	return fmt.Sprintf("checkin-day::%d", userID)
}

// BodyScanKey caches the last body-scan estimate for a user.
func BodyScanKey(userID int) string {
	return fmt.Sprintf("body-scan::%d", userID)
}

// PhotoIndexKey holds the progress-photo listing cursor for a user.
func PhotoIndexKey(userID int) string {
	return fmt.Sprintf("photo-index::%d", userID)
}
