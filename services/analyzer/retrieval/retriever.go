// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/trustscope-ai/trustscope/services/analyzer/datatypes"
	"github.com/trustscope-ai/trustscope/services/analyzer/observability"
)

// classifyConcurrency bounds the parallel per-note embedding calls in
// BuildBuckets. Rows are independent, so the only limit is backend load.
const classifyConcurrency = 8

// Retriever classifies rationale notes against the prototype taxonomy.
//
// # Description
//
// Init embeds every exemplar phrase once and builds the prototype index;
// Classify embeds a note and returns the theme of its nearest exemplar.
// If Init never succeeded the retriever is degraded: Classify returns the
// fallback theme (General Skepticism) instead of failing every request.
//
// # Thread Safety
//
// Init is idempotent and serialized; after a successful Init the retriever
// is read-only and safe for concurrent Classify/BuildBuckets calls.
type Retriever struct {
	embedder Embedder

	mu    sync.Mutex
	index *PrototypeIndex
	ready bool
}

// NewRetriever wraps embedder in an uninitialized retriever. Call Init
// before serving requests that need theme classification.
func NewRetriever(embedder Embedder) *Retriever {
	return &Retriever{embedder: embedder}
}

// Init builds the prototype index.
//
// Embeds all exemplar phrases in one batch and inserts them in taxonomy
// order. Repeated calls after the first success are no-ops. On failure the
// retriever stays degraded; the caller decides whether that is fatal.
func (r *Retriever) Init(ctx context.Context) error {
	if ctx == nil {
		return ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ready {
		return nil
	}

	var themes []datatypes.Theme
	var phrases []string
	for _, p := range Prototypes() {
		for _, phrase := range p.Phrases {
			themes = append(themes, p.Theme)
			phrases = append(phrases, phrase)
		}
	}

	vectors, err := r.embedder.BatchEmbed(ctx, phrases)
	if err != nil {
		return fmt.Errorf("embed prototypes: %w", err)
	}

	index := NewPrototypeIndex()
	for i, vec := range vectors {
		if err := index.Add(themes[i], vec); err != nil {
			return fmt.Errorf("index prototype %q: %w", phrases[i], err)
		}
	}

	r.index = index
	r.ready = true
	slog.Info("prototype index built",
		"exemplars", index.Len(),
		"dim", index.Dim(),
	)
	return nil
}

// Ready reports whether the prototype index has been built.
func (r *Retriever) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ready
}

func (r *Retriever) snapshot() (*PrototypeIndex, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index, r.ready
}

// Classify returns the theme of the exemplar nearest to text.
//
// Empty notes never touch the embedding model; they map straight to the
// fallback theme. A degraded retriever and per-note embedding failures
// also fall back rather than propagate, so one bad note cannot fail a
// whole request.
func (r *Retriever) Classify(ctx context.Context, text string) datatypes.Theme {
	if text == "" {
		return datatypes.ThemeGeneralSkepticism
	}

	index, ready := r.snapshot()
	if !ready {
		observability.ThemeFallback()
		return datatypes.ThemeGeneralSkepticism
	}

	vector, err := r.embedder.Embed(ctx, text)
	if err != nil {
		slog.Warn("note embedding failed, using fallback theme", "error", err)
		observability.ThemeFallback()
		return datatypes.ThemeGeneralSkepticism
	}

	theme, _, err := index.Nearest(vector)
	if err != nil {
		slog.Warn("nearest-neighbor query failed, using fallback theme", "error", err)
		observability.ThemeFallback()
		return datatypes.ThemeGeneralSkepticism
	}
	return theme
}

// BuildBuckets classifies every note and groups them into theme buckets.
//
// Notes are classified in parallel (they are independent), but grouping
// preserves original input order: the bucket example is the first note
// assigned to the theme, and buckets with equal counts keep first-seen
// order. Only non-empty buckets are returned, sorted descending by count.
func (r *Retriever) BuildBuckets(ctx context.Context, notes []string) []datatypes.ThemeBucket {
	if len(notes) == 0 {
		return nil
	}

	assigned := make([]datatypes.Theme, len(notes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(classifyConcurrency)
	for i, note := range notes {
		g.Go(func() error {
			assigned[i] = r.Classify(gctx, note)
			return nil
		})
	}
	// Classify never returns an error; Wait only collects goroutine panics.
	_ = g.Wait()

	counts := make(map[datatypes.Theme]int)
	examples := make(map[datatypes.Theme]string)
	var order []datatypes.Theme
	for i, note := range notes {
		theme := assigned[i]
		if counts[theme] == 0 {
			order = append(order, theme)
			examples[theme] = note
		}
		counts[theme]++
	}

	buckets := make([]datatypes.ThemeBucket, 0, len(order))
	for _, theme := range order {
		buckets = append(buckets, datatypes.ThemeBucket{
			Theme:   theme,
			Count:   counts[theme],
			Example: examples[theme],
		})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})

	return buckets
}
