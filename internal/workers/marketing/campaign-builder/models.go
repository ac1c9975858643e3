package campaignbuilder

import (
	"context"

	"github.com/janhavi-28/SEO-Agent/internal/common/llm"
	"github.com/janhavi-28/SEO-Agent/internal/models"
)

type Input struct {
	models.CampaignBrief
}

type Output struct {
	Campaign *llm.Result `json:"campaign"`
}

// Generator is the structured generation call this worker depends on.
type Generator interface {
	GenerateStructured(ctx context.Context, req llm.Request) (*llm.Result, error)
}
