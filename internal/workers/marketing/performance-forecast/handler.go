package performanceforecast

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

const TaskType = "marketing-performance-forecast"

const behavior = `You are a cautious performance marketer.

You must output ONLY JSON with:
- summary: short explanation
- ctr_estimate: object with min/max percentage
- cpc_estimate: object with min/max in USD
- conversions_estimate: object with min/max integers
- caveats: list of bullets explaining uncertainty`

var forecastTemplate = llm.Object(
	llm.Prop("summary", llm.String("")),
	llm.Prop("ctr_estimate", llm.Object(llm.Prop("min", llm.Float(0)), llm.Prop("max", llm.Float(0)))),
	llm.Prop("cpc_estimate", llm.Object(llm.Prop("min", llm.Float(0)), llm.Prop("max", llm.Float(0)))),
	llm.Prop("conversions_estimate", llm.Object(llm.Prop("min", llm.Int(0)), llm.Prop("max", llm.Int(0)))),
	llm.Prop("caveats", llm.Array()),
)

// Either the three brief fields or a campaign document must be present.
var inputSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"business_info":  {"type": "string", "minLength": 1},
		"campaign_goal":  {"type": "string", "minLength": 1},
		"platforms":      {"type": "array", "minItems": 1, "items": {"type": "string"}},
		"budget":         {"type": "number", "minimum": 0},
		"duration_weeks": {"type": "integer", "minimum": 1},
		"posts_per_week": {"type": "integer", "minimum": 1},
		"campaign":       {"type": "object", "minProperties": 1}
	},
	"anyOf": [
		{"required": ["business_info", "campaign_goal", "platforms"]},
		{"required": ["campaign"]}
	]
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

// Execute produces CTR, CPC and conversion ranges for a campaign. Brief
// fields left blank are taken from the attached campaign document when it
// carries them.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := inputSchema.Validate(input).Err(); err != nil {
		return nil, err
	}
	fillFromCampaign(&input.PerformanceRequest)
	input.ApplyDefaults()

	instruction, err := buildInstruction(input)
	if err != nil {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("campaign: %v", err))
	}

	req := llm.NewRequest(
		instruction,
		llm.WithBehavior(behavior),
		llm.WithTemplate(forecastTemplate),
		llm.WithParams(h.config.Params),
	)

	forecast, err := h.generator.GenerateStructured(ctx, req)
	if err != nil {
		return nil, err
	}

	h.logger.Info("performance forecast completed", map[string]interface{}{
		"fromCampaign": input.Campaign != nil,
		"parseFailure": forecast.IsParseFailure(),
	})

	return &Output{PerformanceForecast: forecast}, nil
}

func fillFromCampaign(p *models.PerformanceRequest) {
	if p.Campaign == nil {
		return
	}
	if s, ok := p.Campaign["business_info"].(string); ok && p.BusinessInfo == "" {
		p.BusinessInfo = s
	}
	if s, ok := p.Campaign["campaign_goal"].(string); ok && p.CampaignGoal == "" {
		p.CampaignGoal = s
	}
	if list, ok := p.Campaign["platforms"].([]interface{}); ok && len(p.Platforms) == 0 {
		for _, item := range list {
			if s, ok := item.(string); ok {
				p.Platforms = append(p.Platforms, s)
			}
		}
	}
	if f, ok := p.Campaign["budget"].(float64); ok && p.Budget == nil {
		p.Budget = &f
	}
	if f, ok := p.Campaign["duration_weeks"].(float64); ok && p.DurationWeeks == 0 && f >= 1 {
		p.DurationWeeks = int(f)
	}
	if f, ok := p.Campaign["posts_per_week"].(float64); ok && p.PostsPerWeek == 0 && f >= 1 {
		p.PostsPerWeek = int(f)
	}
}

func buildInstruction(input *Input) (string, error) {
	var parts []string

	parts = append(parts, "Business: "+models.OrUnspecified(input.BusinessInfo))
	parts = append(parts, "Goal: "+models.OrUnspecified(input.CampaignGoal))
	parts = append(parts, "Platforms: "+models.OrUnspecified(models.JoinList(input.Platforms)))
	parts = append(parts, "Budget per month: "+models.FormatBudget(input.Budget))
	parts = append(parts, "Duration (weeks): "+strconv.Itoa(input.DurationWeeks))
	parts = append(parts, "Posts per week: "+strconv.Itoa(input.PostsPerWeek))

	if input.Campaign != nil {
		campaignJSON, err := json.MarshalIndent(input.Campaign, "", "  ")
		if err != nil {
			return "", err
		}
		parts = append(parts, "")
		parts = append(parts, "Campaign plan:")
		parts = append(parts, string(campaignJSON))
	}

	return strings.Join(parts, "\n"), nil
}
