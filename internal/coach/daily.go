package coach

import (
	"fmt"
	"math/rand"
)

type TrainingStatus string

const (
	TrainingStatusTrained TrainingStatus = "trained"
	TrainingStatusOffDay  TrainingStatus = "off_day"
)

func ParseTrainingStatus(s string) (TrainingStatus, error) {
	switch TrainingStatus(s) {
	case TrainingStatusTrained:
		return TrainingStatusTrained, nil
	case TrainingStatusOffDay:
		return TrainingStatusOffDay, nil
	}
	return "", fmt.Errorf("invalid training status: %q", s)
}

type SleepQuality string

const (
	SleepQualityGood SleepQuality = "good"
	SleepQualityOkay SleepQuality = "okay"
	SleepQualityPoor SleepQuality = "poor"
)

func ParseSleepQuality(s string) (SleepQuality, error) {
	switch SleepQuality(s) {
	case SleepQualityGood:
		return SleepQualityGood, nil
	case SleepQualityOkay:
		return SleepQualityOkay, nil
	case SleepQualityPoor:
		return SleepQualityPoor, nil
	}
	return "", fmt.Errorf("invalid sleep quality: %q", s)
}

// DailyAnswers is the 3-question daily check-in payload.
type DailyAnswers struct {
	HitMacros bool           `json:"hitMacros"`
	Training  TrainingStatus `json:"trainingStatus"`
	Sleep     SleepQuality   `json:"sleepQuality"`
}

var (
	dailyRepliesPerfect = []string{
		"Perfect day yesterday! Keep that energy going today.",
		"You're crushing it! Consistency like this builds champions.",
		"Elite habits! Your future self is thanking you right now.",
		"All boxes checked! This is how transformations happen.",
	}
	dailyRepliesMacrosAndTraining = []string{
		"Great work on training and nutrition! Prioritize sleep tonight.",
		"Two out of three ain't bad! Rest up and keep building.",
		"Solid effort! Better sleep = better gains tomorrow.",
	}
	dailyRepliesMacrosOnly = []string{
		"Nutrition on point! Rest day recovery is important too.",
		"Macros hit! Even rest days are progress days.",
		"Great job fueling right! Your body's recovering.",
	}
	dailyRepliesTrainingOnly = []string{
		"Great workout! Let's dial in those macros today.",
		"Training done! Fuel that body right and watch the gains come.",
		"Good session! Remember: nutrition amplifies your hard work.",
	}
	dailyRepliesRestart = []string{
		"New day, fresh start! Let's make today count.",
		"Every day is a chance to build momentum. Let's go!",
		"Progress isn't always perfect. Keep showing up!",
		"One day at a time. You've got this!",
	}
)

// DailyReply picks a short motivational reply for the daily check-in
// answers. No generation backend involved, replies come from fixed
// pools keyed on the answers.
func DailyReply(answers DailyAnswers) string {
	trained := answers.Training == TrainingStatusTrained
	goodSleep := answers.Sleep == SleepQualityGood

	var pool []string
	switch {
	case answers.HitMacros && trained && goodSleep:
		pool = dailyRepliesPerfect
	case answers.HitMacros && trained:
		pool = dailyRepliesMacrosAndTraining
	case answers.HitMacros:
		pool = dailyRepliesMacrosOnly
	case trained:
		pool = dailyRepliesTrainingOnly
	default:
		pool = dailyRepliesRestart
	}

	return pool[rand.Intn(len(pool))]
}
