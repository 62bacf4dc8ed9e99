// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultEmbeddingTimeout is the default timeout for embedding requests.
const DefaultEmbeddingTimeout = 30 * time.Second

// EmbeddingClient talks to an external embedding sidecar over HTTP.
//
// # Description
//
// The sidecar runs a transformer sentence-encoder and exposes
// POST /batch_embed and GET /health. This is the default backend for
// deployments that keep model weights out of the Go process.
//
// # Thread Safety
//
// EmbeddingClient is safe for concurrent use.
type EmbeddingClient struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// NewEmbeddingClient creates a client for the sidecar at baseURL
// (e.g. "http://localhost:8000").
func NewEmbeddingClient(baseURL string) *EmbeddingClient {
	return &EmbeddingClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultEmbeddingTimeout,
		},
		timeout: DefaultEmbeddingTimeout,
	}
}

// WithTimeout sets a custom timeout for embedding requests.
func (c *EmbeddingClient) WithTimeout(timeout time.Duration) *EmbeddingClient {
	c.timeout = timeout
	c.httpClient.Timeout = timeout
	return c
}

// BaseURL returns the configured sidecar URL.
func (c *EmbeddingClient) BaseURL() string {
	return c.baseURL
}

type batchEmbedRequest struct {
	Texts []string `json:"texts"`
}

type batchEmbedResponse struct {
	ID        string      `json:"id"`
	Timestamp int64       `json:"timestamp"`
	Model     string      `json:"model"`
	Vectors   [][]float32 `json:"vectors"`
	Dim       int         `json:"dim"`
}

type sidecarHealth struct {
	Status string `json:"status"`
	Model  string `json:"model"`
}

// Embed computes the vector for a single text.
func (c *EmbeddingClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if ctx == nil {
		return nil, ErrInvalidInput
	}
	if text == "" {
		return nil, fmt.Errorf("%w: text is empty", ErrInvalidInput)
	}

	vectors, err := c.BatchEmbed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedding sidecar returned no vectors")
	}
	return vectors[0], nil
}

// BatchEmbed computes vectors for multiple texts in one request.
func (c *EmbeddingClient) BatchEmbed(ctx context.Context, texts []string) ([][]float32, error) {
	if ctx == nil {
		return nil, ErrInvalidInput
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: texts is empty", ErrInvalidInput)
	}

	body, err := json.Marshal(batchEmbedRequest{Texts: texts})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/batch_embed"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embedding sidecar returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var embResp batchEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&embResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(embResp.Vectors) != len(texts) {
		return nil, fmt.Errorf("embedding sidecar returned %d vectors for %d texts",
			len(embResp.Vectors), len(texts))
	}

	return embResp.Vectors, nil
}

// Health checks that the sidecar is up and its model is loaded.
func (c *EmbeddingClient) Health(ctx context.Context) error {
	if ctx == nil {
		return ErrInvalidInput
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("embedding sidecar unhealthy: status %d: %s", resp.StatusCode, string(respBody))
	}

	var health sidecarHealth
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("decode health response: %w", err)
	}
	if health.Status != "ok" {
		return fmt.Errorf("embedding sidecar not ready: %s", health.Status)
	}

	return nil
}
