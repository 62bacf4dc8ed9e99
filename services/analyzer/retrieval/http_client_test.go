// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package retrieval

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newSidecar(t *testing.T, handler http.HandlerFunc) *EmbeddingClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewEmbeddingClient(server.URL)
}

// ============================================================================
// BatchEmbed Tests
// ============================================================================

func TestEmbeddingClientBatchEmbed(t *testing.T) {
	client := newSidecar(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/batch_embed" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req batchEmbedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		vectors := make([][]float32, len(req.Texts))
		for i := range req.Texts {
			vectors[i] = []float32{float32(i), 1}
		}
		json.NewEncoder(w).Encode(batchEmbedResponse{
			ID:      "test",
			Model:   "test-encoder",
			Vectors: vectors,
			Dim:     2,
		})
	})

	vectors, err := client.BatchEmbed(context.Background(), []string{"one", "two"})
	if err != nil {
		t.Fatalf("BatchEmbed failed: %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("got %d vectors, want 2", len(vectors))
	}
	if vectors[1][0] != 1 {
		t.Errorf("vectors[1][0] = %f, want 1", vectors[1][0])
	}
}

func TestEmbeddingClientBatchEmbedVectorCountMismatch(t *testing.T) {
	client := newSidecar(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(batchEmbedResponse{
			Vectors: [][]float32{{1, 2}},
		})
	})

	if _, err := client.BatchEmbed(context.Background(), []string{"one", "two"}); err == nil {
		t.Error("BatchEmbed accepted a short vector list")
	}
}

func TestEmbeddingClientBatchEmbedServerError(t *testing.T) {
	client := newSidecar(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	})

	if _, err := client.BatchEmbed(context.Background(), []string{"one"}); err == nil {
		t.Error("BatchEmbed succeeded against a 503 sidecar")
	}
}

func TestEmbeddingClientBatchEmbedInvalidInput(t *testing.T) {
	client := NewEmbeddingClient("http://localhost:1")

	if _, err := client.BatchEmbed(context.Background(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("BatchEmbed(nil texts): got %v, want ErrInvalidInput", err)
	}
	if _, err := client.Embed(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Embed(empty text): got %v, want ErrInvalidInput", err)
	}
}

func TestEmbeddingClientEmbedSingle(t *testing.T) {
	client := newSidecar(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(batchEmbedResponse{
			Vectors: [][]float32{{0.5, -0.5}},
		})
	})

	vector, err := client.Embed(context.Background(), "some note")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vector) != 2 || vector[0] != 0.5 {
		t.Errorf("vector = %v, want [0.5 -0.5]", vector)
	}
}

// ============================================================================
// Health Tests
// ============================================================================

func TestEmbeddingClientHealth(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		wantErr bool
	}{
		{"healthy", http.StatusOK, sidecarHealth{Status: "ok", Model: "test"}, false},
		{"loading", http.StatusOK, sidecarHealth{Status: "loading"}, true},
		{"server error", http.StatusInternalServerError, sidecarHealth{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newSidecar(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(tt.body)
			})

			err := client.Health(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("Health() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEmbeddingClientWithTimeout(t *testing.T) {
	client := NewEmbeddingClient("http://localhost:8000").WithTimeout(5 * time.Second)
	if client.httpClient.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", client.httpClient.Timeout)
	}
}
