package recap

import (
	"strings"
)

// lines mentioning any of these are dropped entirely, not edited
var blockedFragments = []string{
	"cardio",
	"lighting",
	"camera",
	"same angle",
	"retake",
	"re-take",
	"repeat photo",
}

// clinical/anatomical wording that never belongs in a photo note
var technicalFragments = []string{
	"alignment",
	"symmetry",
	"asymmetry",
	"posture",
	"tilt",
	"rotation",
	"pelvic",
	"scap",
	"lordosis",
	"kyphosis",
	"imbalance",
	"structural",
}

// SanitizeList trims, casualizes and filters coach-text lines.
// Per item: trim -> drop if empty -> casualize -> drop if blocked.
func SanitizeList(items []string) []string {
	var out []string
	for _, item := range items {
		line := strings.TrimSpace(item)
		if line == "" {
			continue
		}
		line = casualizeLine(line)
		if isBlockedLine(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

// SanitizePhotoNotes is SanitizeList with an additional drop of
// lines containing clinical/anatomical wording.
func SanitizePhotoNotes(items []string) []string {
	var out []string
	for _, item := range items {
		line := strings.TrimSpace(item)
		if line == "" {
			continue
		}
		line = casualizeLine(line)
		if isBlockedLine(line) {
			continue
		}
		if containsTechnicalLanguage(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

// SanitizeFocus keeps focus areas as-is, only dropping empty and
// clinically worded entries. No casualization, no blocklist.
func SanitizeFocus(items []string) []string {
	var out []string
	for _, item := range items {
		line := strings.TrimSpace(item)
		if line == "" {
			continue
		}
		if containsTechnicalLanguage(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

// SanitizeSummary splits the summary into sentence fragments, runs
// them through the line filters and rejoins the survivors.
// Empty result means the summary was unusable.
func SanitizeSummary(summary string) string {
	if strings.TrimSpace(summary) == "" {
		return ""
	}

	var fragments []string
	for _, line := range strings.Split(summary, "\n") {
		for _, fragment := range splitSentenceFragments(line) {
			fragment = strings.TrimSpace(fragment)
			if fragment == "" {
				continue
			}
			fragment = casualizeLine(fragment)
			if isBlockedLine(fragment) {
				continue
			}
			fragments = append(fragments, fragment)
		}
	}

	if len(fragments) == 0 {
		return ""
	}
	return strings.Join(fragments, ". ")
}

func splitSentenceFragments(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
}

// casualizeLine rewrites clinical or snake_cased coach wording into
// casual phrasing. The replacement order is deliberate and must not
// be reordered: the anatomical softening runs on the rejoined line.
func casualizeLine(line string) string {
	out := strings.ReplaceAll(line, "_", " ")

	out = strings.ReplaceAll(out, "calorie intake", "calories")
	out = strings.ReplaceAll(out, "calories intake", "calories")
	out = strings.ReplaceAll(out, "body fat", "leanness")
	out = strings.ReplaceAll(out, "development", "size")

	// "chest - appears fuller" reads better as "chest looks fuller";
	// only the first hyphen separator is collapsed
	if strings.Contains(out, " - ") {
		parts := strings.SplitN(out, " - ", 2)
		right := strings.ReplaceAll(parts[1], "appears", "looks")
		right = strings.ReplaceAll(right, "showing", "looks")
		out = parts[0] + " " + right
	}

	out = strings.ReplaceAll(out, "rear deltoid", "rear shoulders")
	out = strings.ReplaceAll(out, "deltoid", "shoulders")
	out = strings.ReplaceAll(out, "lat engagement", "upper back activation")
	out = strings.ReplaceAll(out, "lats", "upper back")

	return strings.TrimSpace(out)
}

func isBlockedLine(line string) bool {
	lower := strings.ToLower(line)
	for _, fragment := range blockedFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

func containsTechnicalLanguage(line string) bool {
	lower := strings.ToLower(line)
	for _, fragment := range technicalFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}
