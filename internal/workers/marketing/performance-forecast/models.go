package performanceforecast

import (
	"context"

	"github.com/janhavi-28/SEO-Agent/internal/common/llm"
	"github.com/janhavi-28/SEO-Agent/internal/models"
)

type Input struct {
	models.PerformanceRequest
}

type Output struct {
	PerformanceForecast *llm.Result `json:"performance_forecast"`
}

type Generator interface {
	GenerateStructured(ctx context.Context, req llm.Request) (*llm.Result, error)
}
