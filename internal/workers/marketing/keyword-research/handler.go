package keywordresearch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"github.com/janhavi-28/SEO-Agent/internal/common/camunda"
	apperrors "github.com/janhavi-28/SEO-Agent/internal/common/errors"
	"github.com/janhavi-28/SEO-Agent/internal/common/llm"
	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
	"github.com/janhavi-28/SEO-Agent/internal/common/serp"
	"github.com/janhavi-28/SEO-Agent/internal/common/validation"
	"github.com/janhavi-28/SEO-Agent/internal/models"
)

const TaskType = "marketing-keyword-research"

const behavior = `You are an SEO keyword strategist.

You must return ONLY valid JSON with:
- core_keywords: list of primary intent keywords
- long_tail_keywords: list of long-tail variants
- competitor_themes: list of topic themes from competitors`

var keywordTemplate = llm.Object(
	llm.Prop("core_keywords", llm.Array()),
	llm.Prop("long_tail_keywords", llm.Array()),
	llm.Prop("competitor_themes", llm.Array()),
)

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["business_info", "product_info", "audience"],
	"properties": {
		"business_info": {"type": "string", "minLength": 1},
		"product_info":  {"type": "string", "minLength": 1},
		"audience":      {"type": "string", "minLength": 1},
		"seed_keywords": {"type": "array", "items": {"type": "string"}}
	}
}`)

type Handler struct {
	config       *Config
	generator    Generator
	searcher     Searcher
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, generator Generator, searcher Searcher, log logger.Logger) *Handler {
	defaults := DefaultConfig()
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if config.NumResults <= 0 {
		config.NumResults = defaults.NumResults
	}
	log = log.With(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		generator:    generator,
		searcher:     searcher,
		errorHandler: apperrors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errorHandler.HandleJobError(context.Background(), client, job,
			apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.errorHandler.HandleJobError(context.Background(), client, job, err)
		return
	}

	camunda.CompleteJob(context.Background(), client, job, output, TaskType, h.logger)
}

// Execute samples the search results for the product and audience, then
// asks for keyword suggestions grounded on those snippets. A failed search
// leaves the sample list empty.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := inputSchema.Validate(input).Err(); err != nil {
		return nil, err
	}

	query := input.ProductInfo + " " + input.Audience
	samples, err := h.searcher.Search(ctx, query, h.config.NumResults)
	if err != nil {
		h.logger.Warn("web search failed, continuing without samples", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		samples = nil
	}
	if samples == nil {
		samples = []serp.Result{}
	}

	req := llm.NewRequest(
		buildInstruction(input, samples),
		llm.WithBehavior(behavior),
		llm.WithTemplate(keywordTemplate),
		llm.WithParams(h.config.Params),
	)

	keywords, err := h.generator.GenerateStructured(ctx, req)
	if err != nil {
		return nil, err
	}

	h.logger.Info("keyword research completed", map[string]interface{}{
		"sampleCount":  len(samples),
		"parseFailure": keywords.IsParseFailure(),
	})

	return &Output{KeywordResearch: Research{
		SerpSamples: samples,
		AIKeywords:  keywords,
	}}, nil
}

func buildInstruction(input *Input, samples []serp.Result) string {
	var parts []string

	parts = append(parts, "Business: "+input.BusinessInfo)
	parts = append(parts, "Product: "+input.ProductInfo)
	parts = append(parts, "Audience: "+input.Audience)
	parts = append(parts, "Seed keywords: "+models.JoinList(input.SeedKeywords))
	parts = append(parts, "")
	parts = append(parts, "Top SERP snippets:")
	for _, s := range samples {
		parts = append(parts, s.Title+" - "+s.Snippet)
	}

	return strings.Join(parts, "\n")
}
