// Package recap turns loosely structured coach-generated check-in
// summaries into clean display content. The coach text arrives as free
// prose, as JSON, or as JSON wrapped in prose/fences; the pipeline
// defensively parses it, strips raw JSON and markdown leakage, filters
// clinically worded lines, and, when nothing usable survives,
// deterministically synthesizes a fallback recap from the check-in
// numbers. Nothing in this package performs I/O or panics on bad
// input: every failure degrades to an empty-but-valid recap.
package recap

import (
	"strings"
)

// comparison photo provenance, as reported by the progress vertical
const (
	ComparisonSourcePreviousCheckin = "previous_checkin"
	ComparisonSourceStartingPhotos  = "starting_photos"
	ComparisonSourceNone            = "none"
)

// StructuredSummary is the pre-parsed coach summary shape, when the
// generation backend already returned structured JSON. All fields are
// optional and default to empty.
type StructuredSummary struct {
	Improvements []string
	NeedsWork    []string
	PhotoNotes   []string
	PhotoFocus   []string
	Targets      []string
	Summary      string
}

func (s *StructuredSummary) hasContent() bool {
	return len(s.Improvements) > 0 ||
		len(s.NeedsWork) > 0 ||
		len(s.PhotoNotes) > 0 ||
		len(s.PhotoFocus) > 0 ||
		len(s.Targets) > 0 ||
		strings.TrimSpace(s.Summary) != ""
}

// Meta carries check-in metadata that travels next to the coach text.
type Meta struct {
	ComparisonSource string `json:"comparison_source,omitempty"`
}

// CheckinRecap is the sanitized recap shown after a weekly check-in.
// An all-empty value (no lists, no summary) signals that the coach
// text was absent or unusable and the fallback should be used.
type CheckinRecap struct {
	Improvements     []string `json:"improvements"`
	NeedsWork        []string `json:"needs_work"`
	PhotoNotes       []string `json:"photo_notes"`
	PhotoFocus       []string `json:"photo_focus"`
	Targets          []string `json:"targets"`
	Summary          string   `json:"summary,omitempty"`
	ComparisonSource string   `json:"comparison_source,omitempty"`
}

// IsEmpty reports whether nothing displayable survived sanitization.
// PhotoFocus does not count: it steers the fallback, it is not shown
// on its own.
func (r CheckinRecap) IsEmpty() bool {
	return len(r.Improvements) == 0 &&
		len(r.NeedsWork) == 0 &&
		len(r.PhotoNotes) == 0 &&
		len(r.Targets) == 0 &&
		r.Summary == ""
}

// NewCheckinRecap builds a sanitized recap from whatever the coach
// backend supplied. Resolution order, first satisfying branch wins:
//
//  1. a pre-parsed summary, or the JSON object mined out of raw text
//     that looks like JSON, is sanitized and adopted if anything of it
//     survives;
//  2. text that looks like JSON but decoded/sanitized to nothing is
//     NOT mined as prose - the recap stays empty;
//  3. a pre-parsed summary with content is adopted directly when raw
//     was never JSON-shaped;
//  4. remaining non-empty raw text goes through the line-based prose
//     parser.
func NewCheckinRecap(raw string, parsed *StructuredSummary, meta *Meta) CheckinRecap {
	var out CheckinRecap
	if meta != nil {
		out.ComparisonSource = meta.ComparisonSource
	}

	rawIsJson := IsLikelyJSON(raw)

	candidate := parsed
	if candidate == nil && rawIsJson {
		candidate = ParseRawSummary(raw)
	}

	// focus areas always come from the candidate, independent of
	// which branch below produces the displayed lists
	if candidate != nil {
		out.PhotoFocus = SanitizeFocus(candidate.PhotoFocus)
	}

	if candidate != nil {
		improvements := SanitizeList(candidate.Improvements)
		needsWork := SanitizeList(candidate.NeedsWork)
		photoNotes := SanitizePhotoNotes(candidate.PhotoNotes)
		targets := SanitizeList(candidate.Targets)
		summary := SanitizeSummary(candidate.Summary)

		if len(improvements) > 0 || len(needsWork) > 0 || len(photoNotes) > 0 ||
			len(targets) > 0 || summary != "" {
			out.Improvements = improvements
			out.NeedsWork = needsWork
			out.PhotoNotes = photoNotes
			out.Targets = targets
			out.Summary = summary
			return out
		}
	}

	if rawIsJson {
		// JSON-looking text that produced nothing usable must not be
		// mined as prose - leaked keys would end up on screen
		return out
	}

	if parsed != nil && parsed.hasContent() {
		out.Improvements = SanitizeList(parsed.Improvements)
		out.NeedsWork = SanitizeList(parsed.NeedsWork)
		out.PhotoNotes = SanitizePhotoNotes(parsed.PhotoNotes)
		out.Targets = SanitizeList(parsed.Targets)
		out.Summary = SanitizeSummary(parsed.Summary)
		return out
	}

	if strings.TrimSpace(raw) == "" {
		return out
	}

	sections := parseProse(raw)
	out.Improvements = SanitizeList(sections.improvements)
	out.NeedsWork = SanitizeList(sections.needsWork)
	out.PhotoNotes = SanitizePhotoNotes(sections.photoNotes)
	out.Targets = SanitizeList(sections.targets)

	summarySource := sections.summary
	if len(summarySource) == 0 {
		summarySource = sections.extras
	}
	out.Summary = SanitizeSummary(strings.Join(summarySource, "\n"))

	return out
}

type proseSections struct {
	improvements []string
	needsWork    []string
	photoNotes   []string
	targets      []string
	summary      []string
	// lines seen before any section header was opened
	extras []string
}

// parseProse walks the raw coach text line by line, opening sections
// on known header lines and collecting bullet-stripped content into
// whichever section is active.
func parseProse(raw string) proseSections {
	var sections proseSections
	var current *[]string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if target := sectionForHeader(line, &sections); target != nil {
			current = target
			continue
		}

		content := strings.TrimSpace(strings.TrimLeft(line, "-•* "))
		if content == "" {
			continue
		}

		if current != nil {
			*current = append(*current, content)
		} else {
			sections.extras = append(sections.extras, content)
		}
	}

	return sections
}

func sectionForHeader(line string, sections *proseSections) *[]string {
	lower := strings.ToLower(line)
	switch {
	case strings.HasPrefix(lower, "improvements"),
		strings.HasPrefix(lower, "improved"),
		strings.HasPrefix(lower, "what improved"):
		return &sections.improvements
	case strings.HasPrefix(lower, "needs work"),
		strings.HasPrefix(lower, "needs"),
		strings.HasPrefix(lower, "still needs"):
		return &sections.needsWork
	case strings.HasPrefix(lower, "photo comparison"),
		strings.HasPrefix(lower, "photo notes"),
		strings.HasPrefix(lower, "photo analysis"),
		strings.HasPrefix(lower, "visual changes"):
		return &sections.photoNotes
	case strings.HasPrefix(lower, "next week"),
		strings.HasPrefix(lower, "next-week"),
		strings.HasPrefix(lower, "targets"):
		return &sections.targets
	case strings.HasPrefix(lower, "coach recap"),
		lower == "recap",
		strings.HasPrefix(lower, "summary"):
		return &sections.summary
	}
	return nil
}
