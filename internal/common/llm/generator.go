// Package llm implements structured generation: a schema template embedded
// in the prompt, one call to a generative backend, and a sanitized JSON
// parse of the reply.
package llm

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "github.com/janhavi-28/SEO-Agent/internal/common/errors"
	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
	"github.com/janhavi-28/SEO-Agent/internal/common/metrics"
)

const tracerName = "github.com/janhavi-28/SEO-Agent/internal/common/llm"

// Params are the sampling controls passed to a backend.
type Params struct {
	Temperature     float32
	MaxOutputTokens int32
}

// Backend sends one prompt to a generative model and returns its text.
type Backend interface {
	Generate(ctx context.Context, prompt string, params Params) (string, error)
}

// Generator runs structured generation requests against a Backend.
// It is stateless and safe for concurrent use.
type Generator struct {
	backend Backend
	timeout time.Duration
	logger  logger.Logger
}

func NewGenerator(backend Backend, timeout time.Duration, log logger.Logger) *Generator {
	return &Generator{
		backend: backend,
		timeout: timeout,
		logger:  log.With(map[string]interface{}{"component": "structured-generator"}),
	}
}

// GenerateStructured makes exactly one backend call. Transport failures are
// returned as *errors.StandardError; a reply that is not valid JSON yields a
// parse-failure Result and a nil error.
func (g *Generator) GenerateStructured(ctx context.Context, req Request) (*Result, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "llm.GenerateStructured")
	defer span.End()

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	prompt := BuildPrompt(req)
	span.SetAttributes(
		attribute.Int("llm.prompt_length", len(prompt)),
		attribute.Float64("llm.temperature", float64(req.Temperature())),
		attribute.Int("llm.max_output_tokens", int(req.MaxOutputTokens())),
	)

	start := time.Now()
	reply, err := g.backend.Generate(ctx, prompt, req.Params())
	elapsed := time.Since(start)

	if err != nil {
		stdErr := classifyBackendError(ctx, err)
		metrics.GenAIRequests.WithLabelValues(metrics.OutcomeTransportError).Inc()
		metrics.GenAIRequestDuration.WithLabelValues(metrics.OutcomeTransportError).Observe(elapsed.Seconds())
		span.RecordError(err)
		span.SetStatus(codes.Error, string(stdErr.Code))

		g.logger.Error("generative backend call failed", map[string]interface{}{
			"errorCode":  string(stdErr.Code),
			"error":      err.Error(),
			"durationMs": elapsed.Milliseconds(),
		})
		return nil, stdErr
	}

	result := NewResult(reply)

	outcome := metrics.OutcomeSuccess
	if result.IsParseFailure() {
		outcome = metrics.OutcomeParseFailure
		g.logger.Warn("generated text is not valid JSON", map[string]interface{}{
			"replyLength": len(reply),
			"durationMs":  elapsed.Milliseconds(),
		})
	} else {
		g.logger.Debug("structured generation completed", map[string]interface{}{
			"promptLength": len(prompt),
			"replyLength":  len(reply),
			"durationMs":   elapsed.Milliseconds(),
		})
	}
	metrics.GenAIRequests.WithLabelValues(outcome).Inc()
	metrics.GenAIRequestDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	span.SetAttributes(attribute.String("llm.outcome", outcome))

	return result, nil
}

// classifyBackendError keeps errors a backend already classified and maps
// the rest by context state.
func classifyBackendError(ctx context.Context, err error) *apperrors.StandardError {
	if stdErr, ok := apperrors.AsStandardError(err); ok {
		return stdErr
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.NewGenAITimeoutError(err)
	}
	return apperrors.NewGenAIRequestFailedError(err)
}
