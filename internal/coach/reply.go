// Package coach holds the chat-facing coach logic: reply normalization,
// workout-request parsing, daily check-in replies and the motivational
// line pool. Generation itself lives in coach/generator.
package coach

import (
	"regexp"
	"strings"
)

const (
	maxReplySentences = 2
	maxReplyWords     = 18
)

var (
	headingMarkers  = regexp.MustCompile(`(?m)^(?:#{1,6}\s+)+`)
	bulletMarkers   = regexp.MustCompile(`(?m)^\s*(?:[-*•]\s+)+`)
	numberedMarkers = regexp.MustCompile(`(?m)^\s*(?:\d+[.)]\s+)+`)
	boldMarkers     = regexp.MustCompile(`\*\*([^*]*)\*\*`)
	italicMarkers   = regexp.MustCompile(`\*([^*]*)\*`)
)

// StripMarkdown removes the markdown the model sneaks into chat
// replies despite the prompt rules. It never fails and running it
// twice changes nothing.
func StripMarkdown(text string) string {
	out := strings.ReplaceAll(text, "```", "")
	out = strings.ReplaceAll(out, "`", "")
	out = headingMarkers.ReplaceAllString(out, "")
	out = bulletMarkers.ReplaceAllString(out, "")
	out = numberedMarkers.ReplaceAllString(out, "")
	out = boldMarkers.ReplaceAllString(out, "$1")
	out = italicMarkers.ReplaceAllString(out, "$1")
	return strings.TrimSpace(out)
}

// TrimReply enforces the coach voice: collapse whitespace, keep at
// most two sentences, hard-cap at 18 words.
func TrimReply(text string) string {
	cleaned := strings.Join(strings.Fields(strings.ReplaceAll(text, "\n", " ")), " ")
	if cleaned == "" {
		return cleaned
	}

	sentences := splitAfterPunctuation(cleaned)
	if len(sentences) > maxReplySentences {
		sentences = sentences[:maxReplySentences]
	}
	trimmed := strings.Join(sentences, " ")

	words := strings.Fields(trimmed)
	if len(words) > maxReplyWords {
		trimmed = strings.TrimRight(strings.Join(words[:maxReplyWords], " "), ".,!?")
	}
	return trimmed
}

// splitAfterPunctuation splits on whitespace that follows sentence
// punctuation, keeping the punctuation on the left part.
func splitAfterPunctuation(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text)-1; i++ {
		c := text[i]
		if (c == '.' || c == '!' || c == '?') && text[i+1] == ' ' {
			sentences = append(sentences, text[start:i+1])
			j := i + 1
			for j < len(text) && text[j] == ' ' {
				j++
			}
			start = j
			i = j - 1
		}
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}
