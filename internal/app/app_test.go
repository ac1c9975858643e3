package app

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhavi-28/SEO-Agent/internal/common/config"
	"github.com/janhavi-28/SEO-Agent/internal/common/llm"
	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
	"github.com/janhavi-28/SEO-Agent/internal/common/pagefetch"
	"github.com/janhavi-28/SEO-Agent/internal/common/serp"
	"github.com/janhavi-28/SEO-Agent/internal/models"
	campaignbuilder "github.com/janhavi-28/SEO-Agent/internal/workers/marketing/campaign-builder"
	"github.com/janhavi-28/SEO-Agent/pkg/registry"
)

type recordingBackend struct {
	mu     sync.Mutex
	reply  string
	params []llm.Params
}

func (b *recordingBackend) Generate(ctx context.Context, prompt string, params llm.Params) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.params = append(b.params, params)
	return b.reply, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Workers: map[string]config.WorkerConfig{
			campaignbuilder.TaskType: {Enabled: true, MaxJobsActive: 2, Timeout: 5000},
		},
		APIs: config.APIsConfig{
			GenAI: config.GenAIConfig{
				Temperature:     0.7,
				MaxOutputTokens: 512,
			},
			WebSearch: config.WebSearchConfig{NumResults: 3},
		},
	}
}

func testClients(t *testing.T, backend llm.Backend) *Clients {
	log := logger.NewTestLogger(t)
	return &Clients{
		Generator: llm.NewGenerator(backend, 0, log),
		Search:    serp.NewClient(&serp.Config{}, log),
		Fetcher:   pagefetch.NewFetcher(&pagefetch.Config{}, log),
		Model:     "test-model",
	}
}

func TestJobHandlers_CoverRegistry(t *testing.T) {
	backend := &recordingBackend{reply: `{}`}
	activities := wireActivities(testConfig(), testClients(t, backend), logger.NewTestLogger(t))

	var wired []string
	for taskType, handler := range activities.JobHandlers() {
		require.NotNil(t, handler, taskType)
		wired = append(wired, taskType)
	}

	var listed []string
	for _, a := range registry.Default().Activities {
		listed = append(listed, a.TaskType)
	}

	sort.Strings(wired)
	sort.Strings(listed)
	assert.Equal(t, listed, wired)
}

func TestWireActivities_PassesGenerationParams(t *testing.T) {
	backend := &recordingBackend{reply: `{"7_final_recommendations": {"next_steps": []}}`}
	activities := wireActivities(testConfig(), testClients(t, backend), logger.NewTestLogger(t))

	output, err := activities.CampaignBuilder.Execute(context.Background(), &campaignbuilder.Input{
		CampaignBrief: models.CampaignBrief{
			BusinessInfo: "Acme",
			CampaignGoal: "Awareness",
			ProductInfo:  "Trainers",
			Audience:     "Runners",
			Platforms:    []string{"Instagram"},
		},
	})
	require.NoError(t, err)
	assert.False(t, output.Campaign.IsParseFailure())

	require.Len(t, backend.params, 1)
	assert.Equal(t, llm.Params{Temperature: 0.7, MaxOutputTokens: 512}, backend.params[0])
}

func TestMarketingHandler_UsesUploadLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Server.MaxUploadBytes = 1024

	a := &App{
		Cfg:        cfg,
		Log:        logger.NewTestLogger(t),
		Activities: wireActivities(cfg, testClients(t, &recordingBackend{reply: `{}`}), logger.NewTestLogger(t)),
	}
	assert.NotNil(t, a.MarketingHandler())
}
