package coach

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	defaultWorkoutMinutes = 45
	minWorkoutMinutes     = 10
	maxWorkoutMinutes     = 120
)

var workoutKeywords = []string{
	"workout",
	"routine",
	"session",
}

var workoutActions = []string{
	"build",
	"create",
	"make",
	"generate",
	"design",
	"plan",
}

// scan order matters: the first matching keyword claims its group
var muscleKeywords = []struct {
	keyword string
	group   string
}{
	{"glute", "glutes"},
	{"glutes", "glutes"},
	{"booty", "glutes"},
	{"hamstring", "hamstrings"},
	{"hamstrings", "hamstrings"},
	{"quad", "quads"},
	{"quads", "quads"},
	{"leg", "legs"},
	{"legs", "legs"},
	{"calf", "calves"},
	{"calves", "calves"},
	{"chest", "chest"},
	{"pec", "chest"},
	{"pecs", "chest"},
	{"back", "back"},
	{"lat", "back"},
	{"lats", "back"},
	{"shoulder", "shoulders"},
	{"shoulders", "shoulders"},
	{"delt", "shoulders"},
	{"delts", "shoulders"},
	{"biceps", "biceps"},
	{"triceps", "triceps"},
	{"arms", "arms"},
	{"core", "core"},
	{"abs", "core"},
	{"upper", "upper body"},
	{"lower", "lower body"},
	{"push", "push"},
	{"pull", "pull"},
	{"full body", "full body"},
	{"hiit", "hiit"},
}

var durationPattern = regexp.MustCompile(`(\d{2,3})\s*(min|mins|minute|minutes)`)

// WorkoutRequest is the structured form of "build me a leg workout".
type WorkoutRequest struct {
	Focus           string   `json:"focus"`
	MuscleGroups    []string `json:"muscleGroups"`
	DurationMinutes int      `json:"durationMinutes"`
}

// IsWorkoutRequest reports whether a chat message asks for a workout
// to be generated rather than for advice.
func IsWorkoutRequest(text string) bool {
	lowered := strings.ToLower(text)
	if containsAny(lowered, workoutKeywords) && containsAny(lowered, workoutActions) {
		return true
	}
	if strings.Contains(lowered, "workout") && mentionsMuscle(lowered) {
		return true
	}
	if containsAny(lowered, workoutActions) && mentionsMuscle(lowered) {
		return true
	}
	return false
}

// ParseWorkoutRequest extracts focus, muscle groups and duration from
// a workout-request message. Duration defaults to 45 minutes and is
// clamped to [10, 120].
func ParseWorkoutRequest(text string) WorkoutRequest {
	lowered := strings.ToLower(text)

	duration := defaultWorkoutMinutes
	if match := durationPattern.FindStringSubmatch(lowered); match != nil {
		if parsed, err := strconv.Atoi(match[1]); err == nil {
			duration = parsed
			if duration < minWorkoutMinutes {
				duration = minWorkoutMinutes
			}
			if duration > maxWorkoutMinutes {
				duration = maxWorkoutMinutes
			}
		}
	}

	var groups []string
	for _, mk := range muscleKeywords {
		if strings.Contains(lowered, mk.keyword) && !containsString(groups, mk.group) {
			groups = append(groups, mk.group)
		}
	}
	if len(groups) == 0 {
		groups = []string{"full body"}
	}

	focus := strings.TrimSpace(text)
	if focus == "" {
		focus = "custom workout"
	}

	return WorkoutRequest{
		Focus:           focus,
		MuscleGroups:    groups,
		DurationMinutes: duration,
	}
}

func mentionsMuscle(lowered string) bool {
	for _, mk := range muscleKeywords {
		if strings.Contains(lowered, mk.keyword) {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
