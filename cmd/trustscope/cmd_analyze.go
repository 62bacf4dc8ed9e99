// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/trustscope-ai/trustscope/pkg/logging"
	"github.com/trustscope-ai/trustscope/services/analyzer/config"
	"github.com/trustscope-ai/trustscope/services/analyzer/engine"
	"github.com/trustscope-ai/trustscope/services/analyzer/ingest"
	"github.com/trustscope-ai/trustscope/services/analyzer/retrieval"
)

// runAnalyze runs the pipeline once over a local CSV file and prints the
// report to stdout. Logs go to stderr so the JSON stays pipeable.
func runAnalyze(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if embeddingBackend != "" {
		cfg.Embedding.Backend = embeddingBackend
	}
	slog.SetDefault(logging.New(logging.Config{
		Level:   logging.ParseLevel(cfg.LogLevel),
		Service: "trustscope-cli",
	}))

	f, err := os.Open(args[0])
	if err != nil {
		log.Fatalf("Error opening %s: %v", args[0], err)
	}
	defer f.Close()

	dataset, err := ingest.ParseCSV(f)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", args[0], err)
	}

	ctx := context.Background()
	var retriever *retrieval.Retriever
	if offline {
		// A nil embedder never initializes, so every note lands in the
		// General Skepticism fallback bucket.
		retriever = retrieval.NewRetriever(nil)
	} else {
		embedder, err := retrieval.NewEmbedder(retrieval.BackendOptions{
			Backend: cfg.Embedding.Backend,
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
			APIKey:  cfg.Embedding.APIKey,
		})
		if err != nil {
			log.Fatalf("Error creating embedding backend: %v", err)
		}
		retriever = retrieval.NewRetriever(embedder)
		if err := retriever.Init(ctx); err != nil {
			slog.Warn("prototype index unavailable, themes degrade to General Skepticism",
				"error", err)
		}
	}

	report, err := engine.New(retriever).Analyze(ctx, dataset)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	if prettyOutput {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(report); err != nil {
		log.Fatalf("Error encoding report: %v", err)
	}
}
