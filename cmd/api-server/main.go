// cmd/api-server/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/janhavi-28/SEO-Agent/internal/app"
	"github.com/janhavi-28/SEO-Agent/internal/common/config"
	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
	apphttp "github.com/janhavi-28/SEO-Agent/internal/http"
	httpH "github.com/janhavi-28/SEO-Agent/internal/http/handlers"
)

const serviceName = "seo-agent-api"

func main() {
	ctx := context.Background()

	a, err := app.New(ctx, serviceName)
	if err != nil {
		logger.New("info", "console").Fatal("startup failed: " + err.Error())
	}
	defer a.Close()
	log := a.Log

	if a.Cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := apphttp.NewServer(apphttp.ServerConfig{
		Address:      a.Cfg.Server.Address,
		ReadTimeout:  config.GetDuration(a.Cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(a.Cfg.Server.WriteTimeout),
	}, apphttp.RouterConfig{
		ServiceName:      serviceName,
		Logger:           log,
		HealthHandler:    httpH.NewHealthHandler(nil),
		ActivityHandler:  httpH.NewActivityHandler(a.Registry),
		MarketingHandler: a.MarketingHandler(),
	})

	errCh := make(chan error, 1)
	go func() { errCh <- server.Run() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("api server failed", map[string]interface{}{"error": err.Error()})
		}
		return
	case sig := <-sigCh:
		log.Info("shutdown signal received", map[string]interface{}{"signal": sig.String()})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(a.Cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	log.Info("api server stopped", nil)
}
