package contentcalendar

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

const TaskType = "marketing-content-calendar"

const behavior = `You are an AI content strategist creating a posting calendar.

Return ONLY JSON with:
- overview: short description
- weeks: list of week objects
Each week object:
  - week_number (int)
  - posts: list of posts, where each post has:
        - platform
        - title
        - description
        - suggested_format`

var calendarTemplate = llm.Object(
	llm.Prop("overview", llm.String("")),
	llm.Prop("weeks", llm.Array(
		llm.Object(
			llm.Prop("week_number", llm.Int(1)),
			llm.Prop("posts", llm.Array(
				llm.Object(
					llm.Prop("platform", llm.String("")),
					llm.Prop("title", llm.String("")),
					llm.Prop("description", llm.String("")),
					llm.Prop("suggested_format", llm.String("")),
				),
			)),
		),
	)),
)

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["business_info", "campaign_goal", "product_info", "audience", "platforms"],
	"properties": {
		"business_info":  {"type": "string", "minLength": 1},
		"campaign_goal":  {"type": "string", "minLength": 1},
		"product_info":   {"type": "string", "minLength": 1},
		"audience":       {"type": "string", "minLength": 1},
		"platforms":      {"type": "array", "minItems": 1, "items": {"type": "string"}},
		"duration_weeks": {"type": "integer", "minimum": 1, "maximum": 52},
		"posts_per_week": {"type": "integer", "minimum": 1, "maximum": 50}
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := inputSchema.Validate(input).Err(); err != nil {
		return nil, err
	}
	input.ApplyDefaults()

	req := llm.NewRequest(
		buildInstruction(input),
		llm.WithBehavior(behavior),
		llm.WithTemplate(calendarTemplate),
		llm.WithParams(h.config.Params),
	)

	calendar, err := h.generator.GenerateStructured(ctx, req)
	if err != nil {
		return nil, err
	}

	h.logger.Info("content calendar generated", map[string]interface{}{
		"durationWeeks": input.DurationWeeks,
		"postsPerWeek":  input.PostsPerWeek,
		"parseFailure":  calendar.IsParseFailure(),
	})

	return &Output{ContentCalendar: calendar}, nil
}

func buildInstruction(input *Input) string {
	var parts []string

	parts = append(parts, "Business: "+input.BusinessInfo)
	parts = append(parts, "Goal: "+input.CampaignGoal)
	parts = append(parts, "Product: "+input.ProductInfo)
	parts = append(parts, "Audience: "+input.Audience)
	parts = append(parts, "Platforms: "+models.JoinList(input.Platforms))
	parts = append(parts, "Duration (weeks): "+strconv.Itoa(input.DurationWeeks))
	parts = append(parts, "Posts per week: "+strconv.Itoa(input.PostsPerWeek))

	return strings.Join(parts, "\n")
}
