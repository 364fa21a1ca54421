package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sweater-ventures/notifier/app"
	"github.com/sweater-ventures/notifier/config"
	"github.com/sweater-ventures/notifier/metrics"
)

func main() {
	config.InitLogging()
	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Unable to load configuration!!!", err)
	}

	if err := app.MigrateUp(appConfig); err != nil {
		log.Fatal("Unable to migrate database: ", err)
	}

	application, err := app.NewApp(appConfig)
	if err != nil {
		log.Fatal("Unable to initialize application", err)
	}
	defer application.Close()

	slog.Debug("Configuration",
		"DevMode", appConfig.DevMode,
		"LogLevel", appConfig.LogLevel,
		"DeliveryWorkers", appConfig.DeliveryWorkers,
		"AmqpQueue", appConfig.AmqpQueue,
	)

	metrics.Register()
	metricsSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", appConfig.MetricsPort),
		Handler: promhttp.Handler(),
	}
	go func() {
		slog.Info("Serving metrics", "port", appConfig.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Metrics server exited", "error", err)
		}
	}()

	ctx := context.WithValue(context.Background(), config.LoggerContextKey, slog.Default())
	if err := app.StartPipeline(ctx, application); err != nil {
		log.Fatal("Unable to start pipeline: ", err)
	}
	slog.Info("Notifier started", "workers", appConfig.DeliveryWorkers)

	// Listen for shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	slog.Info("Shutdown signal received")

	// Stop consuming first so nothing new is acked mid-teardown, then let
	// workers finish their current sweeps.
	application.StopPipeline()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Metrics server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
