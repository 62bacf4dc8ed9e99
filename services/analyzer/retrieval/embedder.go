// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package retrieval classifies free-text rationale notes into a fixed
// taxonomy of failure themes using vector-similarity retrieval.
//
// A small set of exemplar phrases per theme is embedded once at startup
// into a flat in-process index; per-note classification embeds the note
// and returns the theme of the single nearest exemplar under squared
// Euclidean distance. The index is read-only after construction and safe
// for concurrent reads.
package retrieval

import (
	"context"
	"fmt"
	"strings"
)

// Embedder turns text into fixed-dimensional vectors.
//
// Implementations must be safe for concurrent use and must return vectors
// of identical dimensionality for every input.
type Embedder interface {
	// Embed computes the vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// BatchEmbed computes vectors for multiple texts in one round trip.
	BatchEmbed(ctx context.Context, texts []string) ([][]float32, error)

	// Health reports whether the backing model is reachable and loaded.
	Health(ctx context.Context) error
}

// BackendOptions selects and configures an embedding backend.
type BackendOptions struct {
	// Backend is one of "http", "openai", "ollama".
	Backend string

	// BaseURL is the service URL for the http and ollama backends.
	BaseURL string

	// Model is the embedding model name. Backend-specific default applies
	// when empty.
	Model string

	// APIKey authenticates the openai backend.
	APIKey string
}

// NewEmbedder constructs the embedding backend named in opts.
//
// Mirrors the service's backend-switch convention: unknown names are an
// error rather than a silent default, since the choice changes the vector
// space and with it every classification.
func NewEmbedder(opts BackendOptions) (Embedder, error) {
	switch strings.ToLower(opts.Backend) {
	case "", "http":
		if opts.BaseURL == "" {
			return nil, fmt.Errorf("%w: http backend requires a base URL", ErrInvalidInput)
		}
		return NewEmbeddingClient(opts.BaseURL), nil
	case "openai":
		return NewOpenAIEmbedder(opts.APIKey, opts.Model)
	case "ollama":
		return NewOllamaEmbedder(opts.BaseURL, opts.Model)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
