package structuredgenerate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"github.com/janhavi-28/SEO-Agent/internal/common/camunda"
	apperrors "github.com/janhavi-28/SEO-Agent/internal/common/errors"
	"github.com/janhavi-28/SEO-Agent/internal/common/llm"
	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
	"github.com/janhavi-28/SEO-Agent/internal/common/validation"
)

const TaskType = "marketing-structured-generate"

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["instruction"],
	"properties": {
		"instruction":          {"type": "string", "minLength": 1},
		"behavior_instruction": {"type": "string"},
		"template":             {"type": "object"},
		"temperature":          {"type": "number", "minimum": 0, "maximum": 2},
		"max_output_tokens":    {"type": "integer", "minimum": 1}
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

// Execute runs one structured generation with the caller's instruction and
// template. Per-request sampling values override the configured ones.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := inputSchema.Validate(input).Err(); err != nil {
		return nil, err
	}

	opts := []llm.RequestOption{
		llm.WithBehavior(input.BehaviorInstruction),
		llm.WithParams(h.config.Params),
	}
	if input.Template != nil {
		opts = append(opts, llm.WithTemplate(*input.Template))
	}
	if input.Temperature != nil {
		opts = append(opts, llm.WithTemperature(*input.Temperature))
	}
	if input.MaxOutputTokens != nil {
		opts = append(opts, llm.WithMaxOutputTokens(*input.MaxOutputTokens))
	}

	result, err := h.generator.GenerateStructured(ctx, llm.NewRequest(input.Instruction, opts...))
	if err != nil {
		return nil, err
	}

	h.logger.Info("structured generation completed", map[string]interface{}{
		"customTemplate": input.Template != nil,
		"parseFailure":   result.IsParseFailure(),
	})

	return &Output{Result: result}, nil
}
