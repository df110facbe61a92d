package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/good-kiwi/hurdat2-etl/internal/adapter/http"
	kafkaadapter "github.com/good-kiwi/hurdat2-etl/internal/adapter/kafka"
	"github.com/good-kiwi/hurdat2-etl/internal/adapter/postgres"
	"github.com/good-kiwi/hurdat2-etl/internal/config"
	"github.com/good-kiwi/hurdat2-etl/internal/observability"
	"github.com/good-kiwi/hurdat2-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var loader pipeline.Loader
	switch cfg.Sink {
	case config.SinkPostgres:
		db, err := postgres.Connect(cfg.PostgresDSN)
		if err != nil {
			logger.Error("postgres connect failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		loader = postgres.New(db, logger)
	case config.SinkKafka:
		writer := kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer writer.Close()
		loader = writer
	default:
		logger.Info("no sink configured, records will be parsed and discarded")
		loader = pipeline.DiscardLoader{}
	}

	p := pipeline.New(loader, logger, metrics, nil)
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	sources := make([]pipeline.Source, len(cfg.Inputs))
	for i, in := range cfg.Inputs {
		sources[i] = pipeline.Source{Path: in.Path, Basin: in.Basin}
	}

	runErr := p.Run(ctx, sources)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	if runErr != nil {
		logger.Error("etl run failed", "error", runErr)
		os.Exit(1)
	}
	logger.Info("etl run complete")
}
