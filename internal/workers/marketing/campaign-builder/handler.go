package campaignbuilder

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"github.com/janhavi-28/SEO-Agent/internal/common/camunda"
	apperrors "github.com/janhavi-28/SEO-Agent/internal/common/errors"
	"github.com/janhavi-28/SEO-Agent/internal/common/llm"
	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
	"github.com/janhavi-28/SEO-Agent/internal/common/validation"
	"github.com/janhavi-28/SEO-Agent/internal/models"
)

const TaskType = "marketing-campaign-build"

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["business_info", "campaign_goal", "product_info", "audience", "platforms"],
	"properties": {
		"business_info":  {"type": "string", "minLength": 1},
		"campaign_goal":  {"type": "string", "minLength": 1},
		"product_info":   {"type": "string", "minLength": 1},
		"audience":       {"type": "string", "minLength": 1},
		"platforms":      {"type": "array", "minItems": 1, "items": {"type": "string"}},
		"website_url":    {"type": "string"},
		"duration_weeks": {"type": "integer", "minimum": 1},
		"posts_per_week": {"type": "integer", "minimum": 1},
		"budget":         {"type": "number", "minimum": 0}
	}
}`)

type Handler struct {
	config       *Config
	generator    Generator
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, generator Generator, log logger.Logger) *Handler {
	if config.Timeout <= 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	log = log.With(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		generator:    generator,
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

// Execute builds the seven-section marketing workflow for a campaign brief.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := inputSchema.Validate(input).Err(); err != nil {
		return nil, err
	}
	input.ApplyDefaults()

	req := llm.NewRequest(
		buildInstruction(input),
		llm.WithTemplate(llm.DefaultWorkflowTemplate()),
		llm.WithParams(h.config.Params),
	)

	result, err := h.generator.GenerateStructured(ctx, req)
	if err != nil {
		return nil, err
	}

	h.logger.Info("campaign generated", map[string]interface{}{
		"platforms":    len(input.Platforms),
		"parseFailure": result.IsParseFailure(),
	})

	return &Output{Campaign: result}, nil
}

func buildInstruction(input *Input) string {
	var parts []string

	parts = append(parts, "Business Information: "+input.BusinessInfo)
	parts = append(parts, "Campaign Goal: "+input.CampaignGoal)
	parts = append(parts, "Product/Service: "+input.ProductInfo)
	parts = append(parts, "Target Audience: "+input.Audience)
	parts = append(parts, "Platforms to Use: "+models.JoinList(input.Platforms))
	parts = append(parts, "")
	parts = append(parts, "Campaign Duration (weeks): "+strconv.Itoa(input.DurationWeeks))
	parts = append(parts, "Posts per Week: "+strconv.Itoa(input.PostsPerWeek))
	parts = append(parts, "Monthly Budget: "+models.FormatBudget(input.Budget))
	parts = append(parts, "Website URL: "+models.OrUnspecified(input.WebsiteURL))
	if len(input.SeedKeywords) > 0 {
		parts = append(parts, "Seed Keywords: "+models.JoinList(input.SeedKeywords))
	}
	parts = append(parts, "")
	parts = append(parts, "Generate a full 7-step marketing workflow including:")
	parts = append(parts, "1. Business Understanding")
	parts = append(parts, "2. Campaign Strategy")
	parts = append(parts, "3. Ad Copywriting (platform-specific)")
	parts = append(parts, "4. Content Calendar (4 weeks)")
	parts = append(parts, "5. SEO Research (keywords + difficulty)")
	parts = append(parts, "6. Performance Prediction (reach, clicks, conversions)")
	parts = append(parts, "7. Final Recommendations (budget split, platform priority, risks, next steps)")
	parts = append(parts, "")
	parts = append(parts, "Follow the JSON format EXACTLY like the template.")

	return strings.Join(parts, "\n")
}
