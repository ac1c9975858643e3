package keywordresearch

import (
	"context"

	"github.com/janhavi-28/SEO-Agent/internal/common/llm"
	"github.com/janhavi-28/SEO-Agent/internal/common/serp"
	"github.com/janhavi-28/SEO-Agent/internal/models"
)

type Input struct {
	models.KeywordRequest
}

type Output struct {
	KeywordResearch Research `json:"keyword_research"`
}

type Research struct {
	SerpSamples []serp.Result `json:"serp_samples"`
	AIKeywords  *llm.Result   `json:"ai_keywords"`
}

type Generator interface {
	GenerateStructured(ctx context.Context, req llm.Request) (*llm.Result, error)
}

type Searcher interface {
	Search(ctx context.Context, query string, n int) ([]serp.Result, error)
}
