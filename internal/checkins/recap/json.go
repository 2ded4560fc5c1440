package recap

import (
	"encoding/json"
	"strings"
)

// key literals the coach generation backend is known to emit; kept
// in sync with the structured summary fields. The substring check is
// deliberately imprecise (no real parsing) and both false positives
// and false negatives are accepted.
var likelyJSONKeys = []string{
	`"improvements":`,
	`"needs work":`,
	`"needs_work":`,
	`"photo notes":`,
	`"photo_notes":`,
	`"targets":`,
	`"summary":`,
}

// IsLikelyJSON reports whether the coach text looks like JSON rather
// than prose. It is a heuristic gate, not a validator.
func IsLikelyJSON(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}

	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return true
	}

	// fenced model output, e.g. ```json\n{...}\n```
	if strings.HasPrefix(trimmed, "```") && strings.Contains(trimmed, "{") {
		return true
	}

	for _, key := range likelyJSONKeys {
		if strings.Contains(trimmed, key) {
			return true
		}
	}

	return false
}

// ParseRawSummary pulls the JSON object embedded in the raw coach
// text and decodes it. Any failure yields nil: the caller treats
// that as "no structured data", never as an error.
func ParseRawSummary(raw string) *StructuredSummary {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil
	}

	var summary StructuredSummary
	if err := json.Unmarshal([]byte(raw[start:end+1]), &summary); err != nil {
		return nil
	}

	return &summary
}

// UnmarshalJSON decodes a structured summary, accepting both the
// snake_case and the space-separated key variants the generation
// backend has been seen emitting. A type mismatch on any known key
// fails the whole decode.
func (s *StructuredSummary) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var err error
	if s.Improvements, err = stringListField(fields, "improvements"); err != nil {
		return err
	}
	if s.NeedsWork, err = stringListField(fields, "needs_work", "needs work"); err != nil {
		return err
	}
	if s.PhotoNotes, err = stringListField(fields, "photo_notes", "photo notes"); err != nil {
		return err
	}
	if s.PhotoFocus, err = stringListField(fields, "photo_focus", "photo focus"); err != nil {
		return err
	}
	if s.Targets, err = stringListField(fields, "targets"); err != nil {
		return err
	}

	if raw, ok := fields["summary"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &s.Summary); err != nil {
			return err
		}
	}

	return nil
}

func stringListField(fields map[string]json.RawMessage, keys ...string) ([]string, error) {
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok || string(raw) == "null" {
			continue
		}
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	return nil, nil
}
