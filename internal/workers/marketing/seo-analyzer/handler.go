package seoanalyzer

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
	"github.com/janhavi-28/SEO-Agent/internal/common/pagefetch"
	"github.com/janhavi-28/SEO-Agent/internal/common/validation"
	"github.com/janhavi-28/SEO-Agent/internal/models"
)

const TaskType = "marketing-seo-analyze"

const behavior = `You are an SEO expert. You will receive:
- Basic on-page info (title, meta description, H1)
- Optional target keywords

Return ONLY JSON with:
- high_level_score (0-100)
- issues (list of strings)
- recommendations (list of strings)
- suggested_title
- suggested_meta_description`

var reportTemplate = llm.Object(
	llm.Prop("high_level_score", llm.Int(0)),
	llm.Prop("issues", llm.Array()),
	llm.Prop("recommendations", llm.Array()),
	llm.Prop("suggested_title", llm.String("")),
	llm.Prop("suggested_meta_description", llm.String("")),
)

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["url"],
	"properties": {
		"url":             {"type": "string", "minLength": 1},
		"target_keywords": {"type": "array", "items": {"type": "string"}}
	}
}`)

type Handler struct {
	config       *Config
	generator    Generator
	fetcher      PageFetcher
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, generator Generator, fetcher PageFetcher, log logger.Logger) *Handler {
	if config.Timeout <= 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	log = log.With(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		generator:    generator,
		fetcher:      fetcher,
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

// Execute fetches the page, extracts its on-page signals and asks for an
// SEO review. An unreachable page is analysed with empty signals.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := inputSchema.Validate(input).Err(); err != nil {
		return nil, err
	}
	url := strings.TrimSpace(input.URL)
	if err := validation.ValidateHTTPURL(url); err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error()).WithMetadata("fields", []string{"url"})
	}

	var info pagefetch.PageInfo
	body, hasHTML := h.fetcher.Fetch(ctx, url)
	if hasHTML {
		info = pagefetch.Extract(body)
	}

	req := llm.NewRequest(
		buildInstruction(url, info, input.TargetKeywords),
		llm.WithBehavior(behavior),
		llm.WithTemplate(reportTemplate),
		llm.WithParams(h.config.Params),
	)

	analysis, err := h.generator.GenerateStructured(ctx, req)
	if err != nil {
		return nil, err
	}

	h.logger.Info("seo analysis completed", map[string]interface{}{
		"url":          url,
		"hasHTML":      hasHTML,
		"parseFailure": analysis.IsParseFailure(),
	})

	return &Output{SEOReport: Report{
		PageInfo:   info,
		AIAnalysis: analysis,
		BasicInfo:  BasicInfo{URL: url, HasHTML: hasHTML},
	}}, nil
}

func buildInstruction(url string, info pagefetch.PageInfo, keywords []string) string {
	var parts []string

	parts = append(parts, "Page URL: "+url)
	parts = append(parts, "")
	parts = append(parts, "Current title: "+info.Title)
	parts = append(parts, "Meta description: "+info.MetaDescription)
	parts = append(parts, "H1: "+info.H1)
	parts = append(parts, "")
	parts = append(parts, "Target keywords: "+models.JoinList(keywords))

	return strings.Join(parts, "\n")
}
