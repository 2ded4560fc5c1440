package recap

import "strings"

const maxHighlights = 3

// residual JSON key fragments that occasionally survive sanitization
// when the coach text nested JSON inside prose
var leakedKeyFragments = []string{
	"improvements",
	"needs work",
	"targets",
	"summary",
}

// Highlights picks up to three display lines for the compact recap
// card. Lists are preferred in fixed order; the summary is a last
// resort and only its first line is used.
func (r CheckinRecap) Highlights() []string {
	candidates := make([]string, 0,
		len(r.Improvements)+len(r.NeedsWork)+len(r.PhotoNotes)+len(r.Targets))
	candidates = append(candidates, r.Improvements...)
	candidates = append(candidates, r.NeedsWork...)
	candidates = append(candidates, r.PhotoNotes...)
	candidates = append(candidates, r.Targets...)

	highlights := make([]string, 0, maxHighlights)
	for _, line := range candidates {
		if looksLikeLeakedJSON(line) {
			continue
		}
		highlights = append(highlights, line)
		if len(highlights) == maxHighlights {
			break
		}
	}
	if len(highlights) > 0 {
		return highlights
	}

	if r.Summary == "" || IsLikelyJSON(r.Summary) {
		return []string{}
	}
	firstLine := strings.TrimSpace(strings.SplitN(r.Summary, "\n", 2)[0])
	if firstLine == "" ||
		strings.Contains(firstLine, "improvements") ||
		strings.Contains(firstLine, "```") {
		return []string{}
	}
	return []string{firstLine}
}

func looksLikeLeakedJSON(line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return true
	}
	if strings.Contains(trimmed, "```") {
		return true
	}
	for _, fragment := range leakedKeyFragments {
		if strings.Contains(trimmed, fragment) {
			return true
		}
	}
	return false
}
