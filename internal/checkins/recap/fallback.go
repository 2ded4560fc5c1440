package recap

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Goal is the user's current coaching goal. Stored as-is in the users
// table and on check-in records.
type Goal string

const (
	GoalLoseWeight     Goal = "loseWeight"
	GoalLoseWeightFast Goal = "loseWeightFast"
	GoalGainWeight     Goal = "gainWeight"
	GoalMaintain       Goal = "maintain"
)

func ParseGoal(s string) (Goal, error) {
	switch Goal(strings.TrimSpace(s)) {
	case GoalLoseWeight:
		return GoalLoseWeight, nil
	case GoalLoseWeightFast:
		return GoalLoseWeightFast, nil
	case GoalGainWeight:
		return GoalGainWeight, nil
	case GoalMaintain:
		return GoalMaintain, nil
	}
	return "", fmt.Errorf("invalid goal: %q", s)
}

func (g Goal) IsValid() bool {
	_, err := ParseGoal(string(g))
	return err == nil
}

// weight-delta bands, in pounds
const (
	deltaNoiseband    = 0.1
	maintainSteadyMax = 0.6
	maintainSwingMin  = 0.8
)

const maxFallbackLines = 3

// CheckinSnapshot is the slice of a check-in record the fallback
// generator needs. Weight is nil when the user skipped the scale.
type CheckinSnapshot struct {
	Weight *float64
	Photos []string
	Date   time.Time
}

// FallbackInput collects everything the generator branches on.
type FallbackInput struct {
	Goal                 Goal
	Current              CheckinSnapshot
	Previous             *CheckinSnapshot
	ComparisonPhotoCount int
	ComparisonSource     string
	// focus areas carried over from the last recap, already sanitized
	FocusAreas []string
}

// CheckinRecapFallback mirrors CheckinRecap's shape so the UI can use
// either interchangeably, plus the cardio card content which only
// exists on the fallback side.
type CheckinRecapFallback struct {
	Improvements     []string `json:"improvements"`
	NeedsWork        []string `json:"needs_work"`
	PhotoNotes       []string `json:"photo_notes"`
	PhotoFocus       []string `json:"photo_focus"`
	Targets          []string `json:"targets"`
	Summary          string   `json:"summary"`
	CardioSummary    string   `json:"cardio_summary,omitempty"`
	CardioPlan       []string `json:"cardio_plan,omitempty"`
	ComparisonSource string   `json:"comparison_source,omitempty"`
}

// NewFallback deterministically synthesizes recap content from the
// check-in numbers. It is used whenever the sanitized coach recap came
// out empty. Targets and Summary are never empty.
func NewFallback(in FallbackInput) CheckinRecapFallback {
	var delta *float64
	if in.Current.Weight != nil && in.Previous != nil && in.Previous.Weight != nil {
		d := *in.Current.Weight - *in.Previous.Weight
		delta = &d
	}

	hasPhotos := len(in.Current.Photos) > 0
	targets := fallbackTargets(in.Goal, in.FocusAreas)

	return CheckinRecapFallback{
		Improvements:     fallbackImprovements(in.Goal, delta, hasPhotos, in.Current.Weight != nil),
		NeedsWork:        fallbackNeedsWork(in.Goal, delta, hasPhotos),
		PhotoNotes:       fallbackPhotoNotes(in.Goal, delta, hasPhotos, in.ComparisonPhotoCount),
		PhotoFocus:       in.FocusAreas,
		Targets:          targets,
		Summary:          fallbackSummary(in.Goal, delta, targets),
		CardioSummary:    cardioSummary(in.Goal),
		CardioPlan:       cardioPlan(in.Goal),
		ComparisonSource: in.ComparisonSource,
	}
}

// Recap re-shapes the fallback into a CheckinRecap so helpers written
// against the recap type (highlights, rendering) work on both.
func (f CheckinRecapFallback) Recap() CheckinRecap {
	return CheckinRecap{
		Improvements:     f.Improvements,
		NeedsWork:        f.NeedsWork,
		PhotoNotes:       f.PhotoNotes,
		PhotoFocus:       f.PhotoFocus,
		Targets:          f.Targets,
		Summary:          f.Summary,
		ComparisonSource: f.ComparisonSource,
	}
}

func (f CheckinRecapFallback) Highlights() []string {
	return f.Recap().Highlights()
}

func fallbackImprovements(goal Goal, delta *float64, hasPhotos, hasWeight bool) []string {
	var lines []string

	if delta != nil {
		d := *delta
		switch goal {
		case GoalLoseWeight, GoalLoseWeightFast:
			if d < -deltaNoiseband {
				lines = append(lines, fmt.Sprintf("Scale down %s lb since last check-in.", formatLb(d)))
			}
		case GoalGainWeight:
			if d > deltaNoiseband {
				lines = append(lines, fmt.Sprintf("Scale up %s lb since last check-in.", formatLb(d)))
			}
		case GoalMaintain:
			if math.Abs(d) <= maintainSteadyMax {
				lines = append(lines, "Weight holding steady, right where you want it.")
			}
		}
	}

	if hasPhotos {
		lines = append(lines, "Photos logged, keeping the visual record going.")
	}
	if hasWeight {
		lines = append(lines, "Weight logged, consistency is building.")
	}
	if len(lines) == 0 {
		lines = append(lines, "Checked in again, that consistency is what matters.")
	}

	return dedupeCap(lines, maxFallbackLines)
}

func fallbackNeedsWork(goal Goal, delta *float64, hasPhotos bool) []string {
	var lines []string

	if delta != nil {
		d := *delta
		switch goal {
		case GoalLoseWeight, GoalLoseWeightFast:
			if d >= deltaNoiseband {
				lines = append(lines, fmt.Sprintf("Scale up %s lb; let's tighten up calories this week.", formatLb(d)))
			}
		case GoalGainWeight:
			if d <= -deltaNoiseband {
				lines = append(lines, fmt.Sprintf("Scale down %s lb; add a bit more food to keep building.", formatLb(d)))
			}
		case GoalMaintain:
			if math.Abs(d) > maintainSwingMin {
				lines = append(lines, fmt.Sprintf("Weight swung %s lb; aim for steadier intake.", formatLb(d)))
			}
		}
	}

	if !hasPhotos {
		lines = append(lines, "No photos this time; add them next check-in to track visual progress.")
	}
	if len(lines) == 0 {
		lines = append(lines, "Nothing major to fix; keep stacking consistent weeks.")
	}

	return dedupeCap(lines, maxFallbackLines)
}

func fallbackPhotoNotes(goal Goal, delta *float64, hasPhotos bool, comparisonPhotoCount int) []string {
	if !hasPhotos {
		return []string{
			"No photos with this check-in.",
			"Add a couple next time so we can compare week to week.",
		}
	}
	if comparisonPhotoCount == 0 {
		return []string{
			"First photo set saved as your baseline.",
			"Future check-ins will compare against these.",
		}
	}

	switch goal {
	case GoalLoseWeight, GoalLoseWeightFast:
		if delta != nil && *delta < -deltaNoiseband {
			return []string{
				"Midsection looks a touch tighter than the last set.",
				"Keep the same poses so changes stay easy to spot.",
			}
		}
		return []string{
			"Hard to call a visual change this week.",
			"Leanness changes show up over a few weeks, keep logging.",
		}
	case GoalGainWeight:
		if delta != nil && *delta > deltaNoiseband {
			return []string{
				"Shoulders and arms look a bit fuller this week.",
				"Upper back is starting to fill out the frame.",
			}
		}
		return []string{
			"Size changes take a few weeks to show, keep the photos coming.",
			"Frame looks consistent with the last set.",
		}
	default:
		return []string{
			"Look steady week over week.",
			"Nice consistency in the photos.",
		}
	}
}

func fallbackTargets(goal Goal, focusAreas []string) []string {
	var lines []string
	for i, area := range focusAreas {
		if i == 2 {
			break
		}
		area = strings.TrimSpace(area)
		if area == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("Add one extra set for %s this week.", area))
	}

	switch goal {
	case GoalLoseWeight:
		lines = append(lines, "Keep a small calorie deficit and protein high every day.")
	case GoalLoseWeightFast:
		lines = append(lines, "Hold the deficit tight this week, no off-plan meals.")
	case GoalGainWeight:
		lines = append(lines, "Add one extra serving of carbs around training.")
	case GoalMaintain:
		lines = append(lines, "Keep calories at maintenance and training intensity steady.")
	default:
		lines = append(lines, "Keep training consistent and food on plan.")
	}

	lines = append(lines, "Sleep 7+ hours a night.")
	lines = append(lines, "Get your steps in every day, even on rest days.")

	return dedupeCap(lines, maxFallbackLines)
}

func fallbackSummary(goal Goal, delta *float64, targets []string) string {
	trend := trendSentence(goal, delta)
	if len(targets) == 0 {
		return trend
	}
	return trend + " Next week: " + targets[0]
}

func trendSentence(goal Goal, delta *float64) string {
	if delta == nil {
		return "Solid check-in logged."
	}
	d := *delta

	switch goal {
	case GoalLoseWeight, GoalLoseWeightFast:
		switch {
		case d < -deltaNoiseband:
			return fmt.Sprintf("Down %s lb this week, trend is moving your way.", formatLb(d))
		case d > deltaNoiseband:
			return fmt.Sprintf("Up %s lb this week, time to tighten things up.", formatLb(d))
		default:
			return "Weight held flat this week."
		}
	case GoalGainWeight:
		switch {
		case d > deltaNoiseband:
			return fmt.Sprintf("Up %s lb this week, building is on track.", formatLb(d))
		case d < -deltaNoiseband:
			return fmt.Sprintf("Down %s lb this week, let's push food a bit more.", formatLb(d))
		default:
			return "Weight held flat this week."
		}
	case GoalMaintain:
		switch {
		case math.Abs(d) <= maintainSteadyMax:
			return "Weight steady this week, exactly the goal."
		case math.Abs(d) > maintainSwingMin:
			return fmt.Sprintf("Weight moved %s lb this week, keep intake steadier.", formatLb(d))
		default:
			return "Weight close to steady this week."
		}
	}
	return "Solid check-in logged."
}

func cardioSummary(goal Goal) string {
	switch goal {
	case GoalLoseWeight:
		return "Keep conditioning easy and consistent, it supports the deficit."
	case GoalLoseWeightFast:
		return "A bit more conditioning this week to speed things along."
	case GoalGainWeight:
		return "Minimal conditioning, save the energy for building."
	default:
		return "A couple of easy sessions keep the engine ticking."
	}
}

func cardioPlan(goal Goal) []string {
	switch goal {
	case GoalLoseWeight:
		return []string{
			"2 easy sessions, 20-30 min each.",
			"One brisk walk on a rest day.",
		}
	case GoalLoseWeightFast:
		return []string{
			"3 sessions this week, 25-35 min each.",
			"Keep intensity easy so recovery holds up.",
		}
	case GoalGainWeight:
		return nil
	default:
		return []string{
			"1-2 easy sessions, whatever you enjoy.",
		}
	}
}

// CheckinComparisonText describes what the photo comparison was made
// against, for the one-liner under the photo card.
func CheckinComparisonText(source string) string {
	switch source {
	case ComparisonSourcePreviousCheckin:
		return "Compared with your previous check-in photos."
	case ComparisonSourceStartingPhotos:
		return "Compared with your starting photos."
	default:
		return "No comparison photos this time."
	}
}

// formatLb renders a weight delta magnitude to one decimal, direction
// is carried by the surrounding phrase.
func formatLb(delta float64) string {
	return strconv.FormatFloat(math.Abs(delta), 'f', 1, 64)
}

func dedupeCap(lines []string, limit int) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
		if len(out) == limit {
			break
		}
	}
	return out
}
