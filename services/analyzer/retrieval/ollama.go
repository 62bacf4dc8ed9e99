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

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
)

// defaultOllamaModel is used when no model is configured.
const defaultOllamaModel = "nomic-embed-text"

// OllamaEmbedder computes embeddings through a local Ollama server.
//
// Safe for concurrent use.
type OllamaEmbedder struct {
	embedder *embeddings.EmbedderImpl
}

// NewOllamaEmbedder creates an embedder against the Ollama server at
// serverURL. An empty serverURL uses the Ollama client default
// (http://localhost:11434); an empty model selects nomic-embed-text.
func NewOllamaEmbedder(serverURL, model string) (*OllamaEmbedder, error) {
	if model == "" {
		model = defaultOllamaModel
	}

	opts := []ollama.Option{ollama.WithModel(model)}
	if serverURL != "" {
		opts = append(opts, ollama.WithServerURL(serverURL))
	}

	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("create ollama embedder: %w", err)
	}

	return &OllamaEmbedder{embedder: embedder}, nil
}

// Embed computes the vector for a single text.
func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if ctx == nil {
		return nil, ErrInvalidInput
	}
	if text == "" {
		return nil, fmt.Errorf("%w: text is empty", ErrInvalidInput)
	}

	vector, err := e.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}
	return vector, nil
}

// BatchEmbed computes vectors for multiple texts.
func (e *OllamaEmbedder) BatchEmbed(ctx context.Context, texts []string) ([][]float32, error) {
	if ctx == nil {
		return nil, ErrInvalidInput
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: texts is empty", ErrInvalidInput)
	}

	vectors, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("ollama batch embed: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("ollama returned %d vectors for %d texts", len(vectors), len(texts))
	}
	return vectors, nil
}

// Health probes the server with a minimal embedding request.
func (e *OllamaEmbedder) Health(ctx context.Context) error {
	if ctx == nil {
		return ErrInvalidInput
	}
	if _, err := e.Embed(ctx, "ping"); err != nil {
		return fmt.Errorf("ollama unavailable: %w", err)
	}
	return nil
}
