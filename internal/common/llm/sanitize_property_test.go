package llm

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
)

// jsonObject draws a small flat object whose keys and string values cannot
// contain braces or backticks.
func jsonObject() *rapid.Generator[string] {
	return rapid.Custom(func(rt *rapid.T) string {
		doc := map[string]interface{}{}
		n := rapid.IntRange(0, 4).Draw(rt, "fields")
		for i := 0; i < n; i++ {
			key := rapid.StringMatching(`[a-z_]{1,10}`).Draw(rt, "key")
			if rapid.Bool().Draw(rt, "numeric") {
				doc[key] = rapid.IntRange(-1000, 1000).Draw(rt, "number")
			} else {
				doc[key] = rapid.StringMatching(`[A-Za-z0-9 .,:-]{0,20}`).Draw(rt, "text")
			}
		}
		data, err := json.Marshal(doc)
		require.NoError(rt, err)
		return string(data)
	})
}

func TestProperty_SanitizeRecoversWrappedObject(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		doc := jsonObject().Draw(rt, "doc")
		before := rapid.StringMatching(`[A-Za-z .,:!\n]{0,30}`).Draw(rt, "before")
		after := rapid.StringMatching(`[A-Za-z .,:!\n]{0,30}`).Draw(rt, "after")

		wrapped := before + doc + after
		if rapid.Bool().Draw(rt, "fenced") {
			wrapped = before + "```json\n" + doc + "\n```" + after
		}

		assert.Equal(rt, doc, Sanitize(wrapped))
	})
}

func TestProperty_SanitizeIsStableOnBracedOutput(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		raw := rapid.StringMatching("[a-z{}` \\n]{0,40}").Draw(rt, "raw")

		once := Sanitize(raw)
		if !strings.Contains(once, "{") || !strings.Contains(once, "}") {
			return
		}
		assert.True(rt, strings.HasPrefix(once, "{"), once)
		assert.True(rt, strings.HasSuffix(once, "}"), once)
		assert.Equal(rt, once, Sanitize(once))
	})
}

func TestProperty_GenerateNeverFailsOnText(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		reply := rapid.String().Draw(rt, "reply")
		gen := NewGenerator(&fakeBackend{reply: reply}, 0, logger.NewNoOpLogger())

		result, err := gen.GenerateStructured(context.Background(), NewRequest("x"))
		require.NoError(rt, err)
		require.NotNil(rt, result)
		if result.IsParseFailure() {
			assert.Equal(rt, ErrorMarker, result.Object()["error"])
			assert.Equal(rt, reply, result.Object()["raw_response"])
		}
	})
}
