// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/trustscope-ai/trustscope/services/analyzer"
	"github.com/trustscope-ai/trustscope/services/analyzer/config"
)

// runServe loads the configuration and blocks on the HTTP server.
func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if embeddingBackend != "" {
		cfg.Embedding.Backend = embeddingBackend
	}

	if err := analyzer.Run(context.Background(), cfg, configPath); err != nil {
		log.Fatalf("Analyzer server exited: %v", err)
	}
}
