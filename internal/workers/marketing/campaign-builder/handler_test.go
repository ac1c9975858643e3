package campaignbuilder

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/janhavi-28/SEO-Agent/internal/common/errors"
	"github.com/janhavi-28/SEO-Agent/internal/common/llm"
	"github.com/janhavi-28/SEO-Agent/internal/common/llm/llmtest"
	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
	"github.com/janhavi-28/SEO-Agent/internal/models"
)

func validInput() *Input {
	budget := 1500.0
	return &Input{CampaignBrief: models.CampaignBrief{
		BusinessInfo: "Acme makes eco running shoes",
		CampaignGoal: "Launch awareness",
		ProductInfo:  "Lightweight recycled trainers",
		Audience:     "Gen Z runners",
		Platforms:    []string{"Instagram", "TikTok"},
		Budget:       &budget,
	}}
}

func TestExecute_BuildsWorkflowPrompt(t *testing.T) {
	gen := llmtest.NewGenerator("```json\n{\"1_business_understanding\": {\"summary\": \"eco shoes\"}}\n```")
	handler := NewHandler(DefaultConfig(), gen, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), validInput())
	require.NoError(t, err)
	require.Equal(t, 1, gen.Calls())

	assert.False(t, output.Campaign.IsParseFailure())
	assert.Equal(t, "eco shoes", output.Campaign.Object()["1_business_understanding"].(map[string]interface{})["summary"])

	req, _ := gen.LastRequest()
	assert.Equal(t, llm.DefaultBehaviorInstruction, req.Behavior())
	assert.Equal(t, llm.DefaultWorkflowTemplate().Keys(), req.Template().Keys())

	prompt := gen.LastPrompt()
	assert.Contains(t, prompt, "Platforms to Use: Instagram, TikTok")
	assert.Contains(t, prompt, "Campaign Duration (weeks): 4")
	assert.Contains(t, prompt, "Posts per Week: 3")
	assert.Contains(t, prompt, "Monthly Budget: 1500")
	assert.Contains(t, prompt, "Website URL: not specified")
	assert.Contains(t, prompt, "7. Final Recommendations (budget split, platform priority, risks, next steps)")
	assert.Contains(t, prompt, "Follow the JSON format EXACTLY like the template.")
}

func TestExecute_ParseFailurePassesThrough(t *testing.T) {
	gen := llmtest.NewGenerator("Sorry, I cannot help with that.")
	handler := NewHandler(DefaultConfig(), gen, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), validInput())
	require.NoError(t, err)
	assert.True(t, output.Campaign.IsParseFailure())

	data, err := json.Marshal(output)
	require.NoError(t, err)
	assert.JSONEq(t, `{"campaign": {"error": "❌ Failed to parse Gemini response as JSON", "raw_response": "Sorry, I cannot help with that."}}`, string(data))
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		field  string
	}{
		{"missing business", func(in *Input) { in.BusinessInfo = "" }, "business_info"},
		{"no platforms", func(in *Input) { in.Platforms = nil }, "platforms"},
		{"negative duration", func(in *Input) { in.DurationWeeks = -2 }, "duration_weeks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := llmtest.NewGenerator("{}")
			handler := NewHandler(DefaultConfig(), gen, logger.NewTestLogger(t))

			input := validInput()
			tt.mutate(input)

			_, err := handler.Execute(context.Background(), input)
			stdErr, ok := apperrors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrCodeInvalidInput, stdErr.Code)
			assert.Contains(t, stdErr.Details, tt.field)
			assert.Equal(t, 0, gen.Calls())
		})
	}
}

func TestExecute_BackendErrorPropagates(t *testing.T) {
	gen := llmtest.NewGenerator("")
	gen.Err = apperrors.NewGenAIQuotaExceededError(nil)
	handler := NewHandler(DefaultConfig(), gen, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), validInput())
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeGenAIQuotaExceeded, stdErr.Code)
}
