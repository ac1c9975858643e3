package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "  \n\t ", ""},
		{"plain object", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"language tag without fence", "JSON\n  {\"a\": 1}", `{"a": 1}`},
		{"leading prose", `Here you go: {"a": 1}`, `{"a": 1}`},
		{"trailing prose", `{"a": 1} hope this helps!`, `{"a": 1}`},
		{"nested braces", `x {"a": {"b": 2}} y`, `{"a": {"b": 2}}`},
		{"no braces", "no json here", "no json here"},
		{"only opening brace", "{ not closed", "{ not closed"},
		{"closing before opening", "} and {", ""},
		{"fence inside value removed", "{\"code\": \"```x```\"}", `{"code": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.raw))
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"no json here",
		"```json\n{\"a\": 1}\n```",
		"Sure! ```json {\"k\": [1, 2, {\"z\": null}]} ``` done",
		"json {\"a\": \"json\"}",
		"   {\"a\": 1}   ",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
	}
}

func TestSanitize_RecoversFencedDocumentWithProse(t *testing.T) {
	original := map[string]any{
		"title":    "Spring sale",
		"keywords": []any{"shoes", "running shoes"},
		"score":    float64(87),
		"nested":   map[string]any{"ok": true},
	}
	dumped, err := json.Marshal(original)
	require.NoError(t, err)

	raw := "Sure, here is the JSON:\n```json\n" + string(dumped) + "\n```\nLet me know if you need more."

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(Sanitize(raw)), &decoded))
	assert.Equal(t, original, decoded)
}
