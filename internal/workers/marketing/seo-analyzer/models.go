package seoanalyzer

import (
	"context"

	"github.com/janhavi-28/SEO-Agent/internal/common/llm"
	"github.com/janhavi-28/SEO-Agent/internal/common/pagefetch"
	"github.com/janhavi-28/SEO-Agent/internal/models"
)

type Input struct {
	models.SEORequest
}

type Output struct {
	SEOReport Report `json:"seo_report"`
}

type Report struct {
	PageInfo   pagefetch.PageInfo `json:"page_info"`
	AIAnalysis *llm.Result        `json:"ai_analysis"`
	BasicInfo  BasicInfo          `json:"basic_info"`
}

type BasicInfo struct {
	URL     string `json:"url"`
	HasHTML bool   `json:"has_html"`
}

type Generator interface {
	GenerateStructured(ctx context.Context, req llm.Request) (*llm.Result, error)
}

// PageFetcher downloads a page body; ok is false when nothing usable came back.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (body string, ok bool)
}
