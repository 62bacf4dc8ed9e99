// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	configPath       string
	embeddingBackend string // CLI override for embedding.backend (http/openai/ollama)
	offline          bool   // skip the embedding backend entirely (one-shot analyze)
	prettyOutput     bool

	rootCmd = &cobra.Command{
		Use:   "trustscope",
		Short: "A cli to run and serve the TrustScope trust-intelligence pipeline",
		Long: `TrustScope analyzes logs of AI model decisions and human overrides,
				producing weekly trust metrics, risk attribution and themed
				explanations of why humans stopped trusting the model.`,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the analyzer HTTP service",
		Run:   runServe, // Defined in cmd_serve.go
	}

	analyzeCmd = &cobra.Command{
		Use:   "analyze [decision_log.csv]",
		Short: "Run the full analysis pipeline on a CSV file and print the report as JSON",
		Args:  cobra.ExactArgs(1),
		Run:   runAnalyze, // Defined in cmd_analyze.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml",
		"Path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&embeddingBackend, "embedding-backend", "",
		"Override the embedding backend (http, openai, ollama)")

	analyzeCmd.Flags().BoolVar(&offline, "offline", false,
		"Skip the embedding backend; all notes fall back to General Skepticism")
	analyzeCmd.Flags().BoolVar(&prettyOutput, "pretty", true,
		"Indent the JSON report")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
}
