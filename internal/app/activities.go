package app

import (
	"github.com/janhavi-28/SEO-Agent/internal/common/camunda"
	"github.com/janhavi-28/SEO-Agent/internal/common/config"
	"github.com/janhavi-28/SEO-Agent/internal/common/llm"
	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
	campaignbuilder "github.com/janhavi-28/SEO-Agent/internal/workers/marketing/campaign-builder"
	contentcalendar "github.com/janhavi-28/SEO-Agent/internal/workers/marketing/content-calendar"
	keywordresearch "github.com/janhavi-28/SEO-Agent/internal/workers/marketing/keyword-research"
	performanceforecast "github.com/janhavi-28/SEO-Agent/internal/workers/marketing/performance-forecast"
	seoanalyzer "github.com/janhavi-28/SEO-Agent/internal/workers/marketing/seo-analyzer"
	structuredgenerate "github.com/janhavi-28/SEO-Agent/internal/workers/marketing/structured-generate"
)

// Activities holds one handler per marketing activity. The same handlers
// serve HTTP requests and Zeebe jobs.
type Activities struct {
	CampaignBuilder     *campaignbuilder.Handler
	SEOAnalyzer         *seoanalyzer.Handler
	KeywordResearch     *keywordresearch.Handler
	PerformanceForecast *performanceforecast.Handler
	ContentCalendar     *contentcalendar.Handler
	StructuredGenerate  *structuredgenerate.Handler
}

func wireActivities(cfg *config.Config, clients *Clients, log logger.Logger) *Activities {
	params := llm.Params{
		Temperature:     cfg.APIs.GenAI.Temperature,
		MaxOutputTokens: cfg.APIs.GenAI.MaxOutputTokens,
	}
	timeout := func(taskType string) int {
		return config.GetWorkerConfig(cfg, taskType).Timeout
	}
	gen := clients.Generator

	return &Activities{
		CampaignBuilder: campaignbuilder.NewHandler(&campaignbuilder.Config{
			Timeout: config.GetDuration(timeout(campaignbuilder.TaskType)),
			Params:  params,
		}, gen, log),
		SEOAnalyzer: seoanalyzer.NewHandler(&seoanalyzer.Config{
			Timeout: config.GetDuration(timeout(seoanalyzer.TaskType)),
			Params:  params,
		}, gen, clients.Fetcher, log),
		KeywordResearch: keywordresearch.NewHandler(&keywordresearch.Config{
			Timeout:    config.GetDuration(timeout(keywordresearch.TaskType)),
			NumResults: cfg.APIs.WebSearch.NumResults,
			Params:     params,
		}, gen, clients.Search, log),
		PerformanceForecast: performanceforecast.NewHandler(&performanceforecast.Config{
			Timeout: config.GetDuration(timeout(performanceforecast.TaskType)),
			Params:  params,
		}, gen, log),
		ContentCalendar: contentcalendar.NewHandler(&contentcalendar.Config{
			Timeout: config.GetDuration(timeout(contentcalendar.TaskType)),
			Params:  params,
		}, gen, log),
		StructuredGenerate: structuredgenerate.NewHandler(&structuredgenerate.Config{
			Timeout: config.GetDuration(timeout(structuredgenerate.TaskType)),
			Params:  params,
		}, gen, log),
	}
}

// JobHandlers maps each Zeebe task type to its handler.
func (a *Activities) JobHandlers() map[string]camunda.JobHandler {
	return map[string]camunda.JobHandler{
		campaignbuilder.TaskType:     a.CampaignBuilder,
		seoanalyzer.TaskType:         a.SEOAnalyzer,
		keywordresearch.TaskType:     a.KeywordResearch,
		performanceforecast.TaskType: a.PerformanceForecast,
		contentcalendar.TaskType:     a.ContentCalendar,
		structuredgenerate.TaskType:  a.StructuredGenerate,
	}
}
