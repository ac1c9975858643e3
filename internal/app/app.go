// Package app wires configuration, clients and activity handlers for the
// API server and the worker manager.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/janhavi-28/SEO-Agent/internal/common/config"
	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
	"github.com/janhavi-28/SEO-Agent/internal/common/observability"
	httpH "github.com/janhavi-28/SEO-Agent/internal/http/handlers"
	"github.com/janhavi-28/SEO-Agent/pkg/registry"
)

type App struct {
	Cfg        *config.Config
	ZapLog     *zap.Logger
	Log        logger.Logger
	Obs        *observability.Observability
	Clients    *Clients
	Activities *Activities
	Registry   *registry.ActivityRegistry
}

// New loads configuration and builds every shared dependency. serviceName
// labels logs and telemetry.
func New(ctx context.Context, serviceName string) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	zapLog, err := logger.Build(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
		Fields: map[string]interface{}{
			"service": serviceName,
			"version": cfg.App.Version,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(observability.Config{
		ServiceName:    serviceName,
		ServiceVersion: cfg.App.Version,
		JaegerEndpoint: cfg.Observability.JaegerEndpoint,
		SampleRatio:    cfg.Observability.SampleRatio,
	}, log)

	clients, err := wireClients(ctx, cfg, log)
	if err != nil {
		obs.Shutdown()
		return nil, err
	}

	reg, err := registry.Load(cfg.Registry.Path)
	if err != nil {
		obs.Shutdown()
		return nil, fmt.Errorf("load activity registry: %w", err)
	}

	log.Info("application wired", map[string]interface{}{
		"model":         clients.Model,
		"searchEnabled": clients.Search.Enabled(),
		"activities":    len(reg.Activities),
	})

	return &App{
		Cfg:        cfg,
		ZapLog:     zapLog,
		Log:        log,
		Obs:        obs,
		Clients:    clients,
		Activities: wireActivities(cfg, clients, log),
		Registry:   reg,
	}, nil
}

// MarketingHandler exposes the activities over HTTP.
func (a *App) MarketingHandler() *httpH.MarketingHandler {
	return httpH.NewMarketingHandler(httpH.MarketingDeps{
		CampaignBuilder:     a.Activities.CampaignBuilder,
		SEOAnalyzer:         a.Activities.SEOAnalyzer,
		KeywordResearch:     a.Activities.KeywordResearch,
		PerformanceForecast: a.Activities.PerformanceForecast,
		ContentCalendar:     a.Activities.ContentCalendar,
		StructuredGenerate:  a.Activities.StructuredGenerate,
		MaxUploadBytes:      a.Cfg.Server.MaxUploadBytes,
		Recorder:            a.Obs,
	})
}

func (a *App) Close() {
	a.Obs.Shutdown()
	_ = a.ZapLog.Sync()
}
