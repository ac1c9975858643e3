// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/janhavi-28/SEO-Agent/internal/app"
	"github.com/janhavi-28/SEO-Agent/internal/common/camunda"
	"github.com/janhavi-28/SEO-Agent/internal/common/config"
	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
	apphttp "github.com/janhavi-28/SEO-Agent/internal/http"
	httpH "github.com/janhavi-28/SEO-Agent/internal/http/handlers"
)

const serviceName = "seo-agent-worker-manager"

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	ctx := context.Background()

	a, err := app.New(ctx, serviceName)
	if err != nil {
		logger.New("info", "console").Fatal("startup failed: " + err.Error())
	}
	defer a.Close()
	log := a.Log
	cfg := a.Cfg

	log.Info("Starting worker manager...", nil)

	if err := config.ValidateForWorkers(cfg); err != nil {
		log.Error("worker config invalid", map[string]interface{}{"error": err.Error()})
		return
	}

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, log, "Zeebe client initialization")
	if err != nil {
		log.Error("zeebe client failed after retries", map[string]interface{}{"error": err.Error()})
		return
	}
	log.Info("Zeebe client connected successfully", map[string]interface{}{"gateway": cfg.Camunda.BrokerAddress})

	// --- Register workers ---
	handlers := a.Activities.JobHandlers()
	taskTypes := make([]string, 0, len(handlers))
	for taskType := range handlers {
		taskTypes = append(taskTypes, taskType)
	}
	sort.Strings(taskTypes)

	var workers []*camunda.CamundaWorker
	for _, taskType := range taskTypes {
		if !config.IsWorkerEnabled(cfg, taskType) {
			log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
			continue
		}
		wcfg := config.GetWorkerConfig(cfg, taskType)
		workers = append(workers, camunda.NewWorker(
			zeebe.GetClient(),
			taskType,
			wcfg.MaxJobsActive,
			config.GetDuration(wcfg.Timeout),
			handlers[taskType],
			a.Obs,
			log,
		))
	}
	log.Info("workers registered", map[string]interface{}{"count": len(workers)})

	// --- Health & Metrics Server ---
	health := apphttp.NewServer(apphttp.ServerConfig{
		Address: cfg.Camunda.HealthAddress,
	}, apphttp.RouterConfig{
		ServiceName: serviceName,
		Logger:      log,
		HealthHandler: httpH.NewHealthHandler(map[string]httpH.ReadinessCheck{
			"zeebe": zeebe.HealthCheck,
		}),
	})
	go func() {
		if err := health.Run(); err != nil {
			log.Error("health/metrics server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutdown signal received, stopping workers...", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	g, gctx := errgroup.WithContext(shutdownCtx)
	for _, w := range workers {
		g.Go(func() error {
			w.Stop()
			return nil
		})
	}
	g.Go(func() error {
		return health.Shutdown(gctx)
	})
	if err := g.Wait(); err != nil {
		log.Error("shutdown incomplete", map[string]interface{}{"error": err.Error()})
	}

	if err := zeebe.Close(); err != nil {
		log.Error("Error closing Zeebe client", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Worker manager stopped gracefully", nil)
}
