package contentcalendar

import (
	"context"

	"github.com/janhavi-28/SEO-Agent/internal/common/llm"
	"github.com/janhavi-28/SEO-Agent/internal/models"
)

type Input struct {
	models.CampaignBrief
}

type Output struct {
	ContentCalendar *llm.Result `json:"content_calendar"`
}

type Generator interface {
	GenerateStructured(ctx context.Context, req llm.Request) (*llm.Result, error)
}
