package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
	httpH "github.com/janhavi-28/SEO-Agent/internal/http/handlers"
	httpMW "github.com/janhavi-28/SEO-Agent/internal/http/middleware"
)

type RouterConfig struct {
	ServiceName string
	Logger      logger.Logger

	HealthHandler    *httpH.HealthHandler
	ActivityHandler  *httpH.ActivityHandler
	MarketingHandler *httpH.MarketingHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "seo-agent-api"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext(log))
	r.Use(httpMW.CORS())
	r.Use(httpMW.Metrics())
	r.Use(httpMW.RequestLogger(log))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.Live)
		r.GET("/ready", cfg.HealthHandler.Ready)
	}

	api := r.Group("/api")
	{
		if cfg.HealthHandler != nil {
			api.GET("/health", cfg.HealthHandler.APIHealth)
		}

		if cfg.ActivityHandler != nil {
			api.GET("/activities", cfg.ActivityHandler.ListActivities)
		}

		// Marketing activities
		if cfg.MarketingHandler != nil {
			api.POST("/generate_campaign", cfg.MarketingHandler.GenerateCampaign)
			api.POST("/seo_analyze", cfg.MarketingHandler.AnalyzeSEO)
			api.POST("/keyword_research", cfg.MarketingHandler.ResearchKeywords)
			api.POST("/performance_forecast", cfg.MarketingHandler.ForecastPerformance)
			api.POST("/predict_performance", cfg.MarketingHandler.PredictPerformance)
			api.POST("/content_calendar", cfg.MarketingHandler.ContentCalendar)
			api.POST("/generate_structured", cfg.MarketingHandler.GenerateStructured)
		}
	}

	return r
}
