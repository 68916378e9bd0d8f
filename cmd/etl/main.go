package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/tempo-aqi-etl/internal/adapter/artifact"
	"github.com/couchcryptid/tempo-aqi-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/tempo-aqi-etl/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/tempo-aqi-etl/internal/adapter/kafka"
	"github.com/couchcryptid/tempo-aqi-etl/internal/config"
	"github.com/couchcryptid/tempo-aqi-etl/internal/observability"
	"github.com/couchcryptid/tempo-aqi-etl/internal/pipeline"
	"github.com/couchcryptid/tempo-aqi-etl/internal/watch"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	reader := csvfile.NewReader(cfg.InputPath, logger)
	loaders := []pipeline.Loader{
		csvfile.NewSnapshotWriter(cfg.SnapshotPath, logger),
		artifact.NewWriter(artifact.Paths{
			Advisory: cfg.AdvisoryPath,
			Chart:    cfg.ChartPath,
			Map:      cfg.MapPath,
		}, logger),
	}

	// Advisory publishing is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger, metrics)
		loaders = append(loaders, writer)
		logger.Info("kafka advisory publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaAdvisoryTopic)
	} else {
		logger.Info("kafka advisory publishing disabled")
	}

	p := pipeline.New(reader, logger, metrics,
		pipeline.WithLoaders(loaders...),
		pipeline.WithInterval(cfg.RefreshInterval),
	)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, []httpadapter.File{
		{Name: "input", Path: cfg.InputPath},
		{Name: "snapshot", Path: cfg.SnapshotPath},
		{Name: "advisory", Path: cfg.AdvisoryPath},
		{Name: "chart", Path: cfg.ChartPath},
		{Name: "map", Path: cfg.MapPath},
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.WatchInput {
		if err := watch.New(cfg.InputPath, p.Trigger, logger).Start(ctx); err != nil {
			logger.Error("input watcher disabled", "error", err)
		}
	}

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start pipeline loop.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
