// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package engine coordinates the trust-intelligence pipeline for one
// analysis request: feature extraction, per-request risk model fitting,
// weekly aggregation, theme retrieval and report composition.
//
// The engine itself carries only the two long-lived resources — the
// sentiment lexicon and the theme retriever handle. Everything else is
// request-scoped: the risk model is fit fresh per call and discarded, so
// concurrent Analyze calls never share mutable state.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/trustscope-ai/trustscope/services/analyzer/aggregate"
	"github.com/trustscope-ai/trustscope/services/analyzer/datatypes"
	"github.com/trustscope-ai/trustscope/services/analyzer/nlp"
	"github.com/trustscope-ai/trustscope/services/analyzer/report"
	"github.com/trustscope-ai/trustscope/services/analyzer/retrieval"
	"github.com/trustscope-ai/trustscope/services/analyzer/risk"
)

// Engine runs the analysis pipeline. Construct once at startup and share
// across requests; Analyze is safe for concurrent use.
type Engine struct {
	extractor *nlp.Extractor
	retriever *retrieval.Retriever
}

// New creates an engine around an initialized (or degraded) retriever.
func New(retriever *retrieval.Retriever) *Engine {
	return &Engine{
		extractor: nlp.NewExtractor(),
		retriever: retriever,
	}
}

// RetrieverReady reports whether theme classification is operating at full
// fidelity or in fallback mode.
func (e *Engine) RetrieverReady() bool {
	return e.retriever.Ready()
}

// Analyze runs the full pipeline over the dataset and returns the
// assembled report.
//
// The dataset must already be parsed and column-validated by the ingestion
// layer. Analyze mutates the dataset's records in place (derived feature
// and risk fields) and is otherwise side-effect free.
func (e *Engine) Analyze(ctx context.Context, dataset *datatypes.Dataset) (datatypes.AnalysisReport, error) {
	start := time.Now()
	records := dataset.Records

	e.extractor.Annotate(records)

	pipeline, err := risk.Train(records)
	if err != nil {
		return datatypes.AnalysisReport{}, fmt.Errorf("train risk model: %w", err)
	}
	weights := pipeline.Weights()

	probs := pipeline.Predict(records)
	for i := range records {
		records[i].OverrideRisk = probs[i]
		records[i].RiskTier = datatypes.TierForRisk(probs[i])
	}

	metrics := aggregate.Weekly(records)
	buckets := e.retriever.BuildBuckets(ctx, dataset.Notes())

	result := report.Compose(metrics, weights, records, buckets)

	slog.Info("analysis complete",
		"rows", len(records),
		"weeks", len(metrics),
		"themes", len(buckets),
		"retriever_ready", e.retriever.Ready(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}
