package checkins

import (
	"time"
)

// CurrentStreak counts the consecutive run of daily check-in days
// ending today or yesterday, bucketed into days in the given location.
// A run ending yesterday still counts: the user just has not checked
// in yet today.
func CurrentStreak(checkinTimes []time.Time, now time.Time, location *time.Location) (streak int, completedToday bool) {
	if location == nil {
		location = time.UTC
	}

	days := make(map[string]struct{}, len(checkinTimes))
	for _, t := range checkinTimes {
		days[t.In(location).Format("2006-01-02")] = struct{}{}
	}

	localNow := now.In(location)
	today := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, location)

	_, completedToday = days[today.Format("2006-01-02")]

	cursor := today
	if !completedToday {
		cursor = today.AddDate(0, 0, -1)
		if _, ok := days[cursor.Format("2006-01-02")]; !ok {
			return 0, false
		}
	}

	for {
		if _, ok := days[cursor.Format("2006-01-02")]; !ok {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}

	return streak, completedToday
}
