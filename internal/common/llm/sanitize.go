package llm

import (
	"strings"
	"unicode"
)

// Sanitize strips the wrapping that generative backends tend to put around
// a JSON answer: markdown fences, a leading "json" language tag and any
// prose before the first '{' or after the last '}'. Text without a brace
// pair is returned as cleaned so far. Sanitize never fails.
func Sanitize(raw string) string {
	text := strings.TrimSpace(raw)

	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	if len(text) >= 4 && strings.EqualFold(text[:4], "json") {
		text = strings.TrimLeftFunc(text[4:], unicode.IsSpace)
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 {
		return text
	}
	if end < start {
		return ""
	}
	return text[start : end+1]
}
