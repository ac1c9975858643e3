package app

import (
	"context"
	"fmt"

	"github.com/janhavi-28/SEO-Agent/internal/common/config"
	"github.com/janhavi-28/SEO-Agent/internal/common/llm"
	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
	"github.com/janhavi-28/SEO-Agent/internal/common/pagefetch"
	"github.com/janhavi-28/SEO-Agent/internal/common/serp"
)

type Clients struct {
	Generator *llm.Generator
	Search    *serp.Client
	Fetcher   *pagefetch.Fetcher
	Model     string
}

func wireClients(ctx context.Context, cfg *config.Config, log logger.Logger) (*Clients, error) {
	genai := cfg.APIs.GenAI
	backend, err := llm.NewGeminiBackend(ctx, llm.GeminiConfig{
		APIKey:  genai.APIKey,
		Model:   genai.Model,
		BaseURL: genai.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("init gemini backend: %w", err)
	}

	search := serp.NewClient(&serp.Config{
		BaseURL:    cfg.APIs.WebSearch.BaseURL,
		APIKey:     cfg.APIs.WebSearch.APIKey,
		Engine:     cfg.APIs.WebSearch.Engine,
		NumResults: cfg.APIs.WebSearch.NumResults,
		Timeout:    config.GetDuration(cfg.APIs.WebSearch.Timeout),
	}, log)
	if !search.Enabled() {
		log.Warn("no web search API key configured, keyword research runs without SERP samples", nil)
	}

	fetcher := pagefetch.NewFetcher(&pagefetch.Config{
		Timeout:   config.GetDuration(cfg.APIs.PageFetch.Timeout),
		UserAgent: cfg.APIs.PageFetch.UserAgent,
		MaxBytes:  cfg.APIs.PageFetch.MaxBytes,
	}, log)

	return &Clients{
		Generator: llm.NewGenerator(backend, config.GetDuration(genai.Timeout), log),
		Search:    search,
		Fetcher:   fetcher,
		Model:     backend.Model(),
	}, nil
}
