// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package analyzer wires the trust-intelligence service together: it
// builds the embedding backend, warms the prototype index, opens report
// persistence, and serves the HTTP API.
package analyzer

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/trustscope-ai/trustscope/pkg/logging"
	"github.com/trustscope-ai/trustscope/services/analyzer/config"
	"github.com/trustscope-ai/trustscope/services/analyzer/engine"
	"github.com/trustscope-ai/trustscope/services/analyzer/observability"
	"github.com/trustscope-ai/trustscope/services/analyzer/retrieval"
	"github.com/trustscope-ai/trustscope/services/analyzer/routes"
	"github.com/trustscope-ai/trustscope/services/analyzer/store"

	// --- OpenTelemetry imports ---
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const serviceName = "trustscope-analyzer"

// indexWarmupTimeout bounds the initial embedding of the prototype
// phrases. The service still starts if warmup fails; classification runs
// in degraded mode until restart, and /health reports the retriever as
// degraded.
const indexWarmupTimeout = 60 * time.Second

// initTracer configures the global OTLP trace exporter against endpoint
// and returns a shutdown function.
func initTracer(ctx context.Context, endpoint string) (func(context.Context), error) {
	conn, err := grpc.NewClient(endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String(serviceName)))
	if err != nil {
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.
		TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}

// Run starts the analyzer service and blocks until the HTTP server
// exits. configPath is re-read by the log-level watcher, so edits to the
// file adjust verbosity without a restart.
func Run(ctx context.Context, cfg config.Config, configPath string) error {
	logger := logging.New(logging.Config{
		Level:   logging.ParseLevel(cfg.LogLevel),
		Service: "analyzer",
	})
	slog.SetDefault(logger)

	if cfg.OTLPEndpoint != "" {
		cleanup, err := initTracer(ctx, cfg.OTLPEndpoint)
		if err != nil {
			return err
		}
		defer cleanup(context.Background())
	}

	embedder, err := retrieval.NewEmbedder(retrieval.BackendOptions{
		Backend: cfg.Embedding.Backend,
		BaseURL: cfg.Embedding.BaseURL,
		Model:   cfg.Embedding.Model,
		APIKey:  cfg.Embedding.APIKey,
	})
	if err != nil {
		return err
	}

	retriever := retrieval.NewRetriever(embedder)
	warmupCtx, cancel := context.WithTimeout(ctx, indexWarmupTimeout)
	if err := retriever.Init(warmupCtx); err != nil {
		slog.Warn("prototype index warmup failed, starting in degraded mode",
			"backend", cfg.Embedding.Backend, "error", err)
	}
	cancel()

	var reports *store.ReportStore
	if cfg.Store.DataDir != "" {
		reports, err = store.Open(cfg.Store.DataDir)
		if err != nil {
			return err
		}
		defer reports.Close()
	} else {
		slog.Info("no data directory configured, report persistence disabled")
	}

	metrics := observability.InitMetrics()
	eng := engine.New(retriever)
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond),
		cfg.RateLimit.Burst)

	if configPath != "" {
		go func() {
			err := config.WatchLogLevel(ctx, configPath, func(level string) {
				logging.SetLevel(logging.ParseLevel(level))
				slog.Info("log level updated", "level", level)
			})
			if err != nil {
				slog.Warn("config watcher stopped", "error", err)
			}
		}()
	}

	router := gin.Default()
	if cfg.OTLPEndpoint != "" {
		router.Use(otelgin.Middleware(serviceName))
	}
	routes.SetupRoutes(router, eng, reports, metrics, limiter)

	slog.Info("starting the analyzer server", "port", cfg.Port,
		"embedding_backend", cfg.Embedding.Backend,
		"persistence", cfg.Store.DataDir != "")
	return router.Run(":" + cfg.Port)
}
