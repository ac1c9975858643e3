package keywordresearch

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/janhavi-28/SEO-Agent/internal/common/llm/llmtest"
	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
	"github.com/janhavi-28/SEO-Agent/internal/common/serp"
	"github.com/janhavi-28/SEO-Agent/internal/models"
)

type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Search(ctx context.Context, query string, n int) ([]serp.Result, error) {
	args := m.Called(ctx, query, n)
	results, _ := args.Get(0).([]serp.Result)
	return results, args.Error(1)
}

const keywords = `{"core_keywords": ["eco running shoes"], "long_tail_keywords": [], "competitor_themes": ["sustainability"]}`

func validInput() *Input {
	return &Input{models.KeywordRequest{
		BusinessInfo: "Acme",
		ProductInfo:  "eco running shoes",
		Audience:     "gen z runners",
		SeedKeywords: []string{"vegan sneakers", "recycled trainers"},
	}}
}

func TestExecute_EmbedsSnippets(t *testing.T) {
	searcher := new(MockSearcher)
	searcher.On("Search", mock.Anything, "eco running shoes gen z runners", 5).Return([]serp.Result{
		{Title: "Best eco shoes 2024", Snippet: "Our top picks"},
		{Title: "Recycled trainers", Snippet: "Made from bottles"},
	}, nil)
	gen := llmtest.NewGenerator(keywords)
	handler := NewHandler(DefaultConfig(), gen, searcher, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), validInput())
	require.NoError(t, err)

	searcher.AssertExpectations(t)
	assert.Len(t, output.KeywordResearch.SerpSamples, 2)
	assert.Equal(t, []interface{}{"eco running shoes"}, output.KeywordResearch.AIKeywords.Object()["core_keywords"])

	prompt := gen.LastPrompt()
	assert.Contains(t, prompt, "You are an SEO keyword strategist.")
	assert.Contains(t, prompt, "Seed keywords: vegan sneakers, recycled trainers")
	assert.Contains(t, prompt, "Top SERP snippets:\nBest eco shoes 2024 - Our top picks\nRecycled trainers - Made from bottles")
}

func TestExecute_SearchFailureDegrades(t *testing.T) {
	searcher := new(MockSearcher)
	searcher.On("Search", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("serpapi down"))
	gen := llmtest.NewGenerator(keywords)
	handler := NewHandler(DefaultConfig(), gen, searcher, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, 1, gen.Calls())

	data, err := json.Marshal(output)
	require.NoError(t, err)
	assert.JSONEq(t, `{"keyword_research": {"serp_samples": [], "ai_keywords": `+keywords+`}}`, string(data))
}

func TestExecute_SearchDisabledStillGenerates(t *testing.T) {
	client := serp.NewClient(&serp.Config{}, logger.NewTestLogger(t))
	gen := llmtest.NewGenerator(keywords)
	handler := NewHandler(DefaultConfig(), gen, client, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), validInput())
	require.NoError(t, err)
	assert.Empty(t, output.KeywordResearch.SerpSamples)
	assert.Contains(t, gen.LastPrompt(), "Top SERP snippets:")
}

func TestExecute_InvalidInput(t *testing.T) {
	gen := llmtest.NewGenerator(keywords)
	searcher := new(MockSearcher)
	handler := NewHandler(DefaultConfig(), gen, searcher, logger.NewTestLogger(t))

	input := validInput()
	input.Audience = ""

	_, err := handler.Execute(context.Background(), input)
	require.Error(t, err)
	searcher.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 0, gen.Calls())
}
