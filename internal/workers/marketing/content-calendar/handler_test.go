package contentcalendar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhavi-28/SEO-Agent/internal/common/llm"
	"github.com/janhavi-28/SEO-Agent/internal/common/llm/llmtest"
	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
	"github.com/janhavi-28/SEO-Agent/internal/models"
)

const calendar = `{
	"overview": "Four weeks of launch content",
	"weeks": [
		{"week_number": 1, "posts": [
			{"platform": "Instagram", "title": "Teaser", "description": "Shoe silhouette, \"coming soon\"", "suggested_format": "Reel"},
			{"platform": "TikTok", "title": "Behind the scenes"}
		]},
		{"posts": [{"platform": "Instagram", "title": "Launch day", "description": "Hero shot", "suggested_format": "Carousel"}]},
		"not a week"
	]
}`

func validInput() *Input {
	return &Input{models.CampaignBrief{
		BusinessInfo: "Acme",
		CampaignGoal: "Launch",
		ProductInfo:  "Eco trainers",
		Audience:     "Gen Z",
		Platforms:    []string{"Instagram", "TikTok"},
	}}
}

func TestExecute_DefaultsAndPrompt(t *testing.T) {
	gen := llmtest.NewGenerator(calendar)
	handler := NewHandler(DefaultConfig(), gen, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "Four weeks of launch content", output.ContentCalendar.Object()["overview"])

	prompt := gen.LastPrompt()
	assert.Contains(t, prompt, "You are an AI content strategist creating a posting calendar.")
	assert.Contains(t, prompt, "Platforms: Instagram, TikTok\nDuration (weeks): 4\nPosts per week: 3")
	assert.Contains(t, prompt, `"suggested_format": ""`)
}

func TestExecute_RejectsOversizedCalendar(t *testing.T) {
	gen := llmtest.NewGenerator(calendar)
	handler := NewHandler(DefaultConfig(), gen, logger.NewTestLogger(t))

	input := validInput()
	input.DurationWeeks = 500

	_, err := handler.Execute(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, 0, gen.Calls())
}

func TestToCSV(t *testing.T) {
	data, err := ToCSV(llm.NewResult(calendar))
	require.NoError(t, err)

	expected := "week,platform,title,description,suggested_format\n" +
		"1,Instagram,Teaser,\"Shoe silhouette, \"\"coming soon\"\"\",Reel\n" +
		"1,TikTok,Behind the scenes,,\n" +
		"2,Instagram,Launch day,Hero shot,Carousel\n"
	assert.Equal(t, expected, string(data))
}

func TestToCSV_EmptyAndFailed(t *testing.T) {
	data, err := ToCSV(llm.NewResult(`{"overview": "nothing yet"}`))
	require.NoError(t, err)
	assert.Equal(t, "week,platform,title,description,suggested_format\n", string(data))

	_, err = ToCSV(llm.NewResult("no json here"))
	assert.ErrorIs(t, err, llm.ErrParseFailure)
}
