// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/trustscope-ai/trustscope/services/analyzer/engine"
	"github.com/trustscope-ai/trustscope/services/analyzer/retrieval"
)

// ============================================================================
// Test Setup
// ============================================================================

func init() {
	// Set Gin to test mode to reduce noise in test output
	gin.SetMode(gin.TestMode)
}

func TestSetupRoutesRegistersEndpoints(t *testing.T) {
	router := gin.New()
	eng := engine.New(retrieval.NewRetriever(nil))

	// Nil store and limiter: persistence and throttling are optional.
	SetupRoutes(router, eng, nil, nil, nil)

	coreRoutes := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/metrics"},
		{"POST", "/v1/analyze"},
		{"GET", "/v1/reports"},
		{"GET", "/v1/reports/:id"},
		{"DELETE", "/v1/reports/:id"},
	}

	routes := router.Routes()
	for _, expected := range coreRoutes {
		found := false
		for _, r := range routes {
			if r.Method == expected.method && r.Path == expected.path {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected route %s %s not found", expected.method, expected.path)
		}
	}
}

func TestSetupRoutesHealthServes(t *testing.T) {
	router := gin.New()
	SetupRoutes(router, engine.New(retrieval.NewRetriever(nil)), nil, nil, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("GET /health status = %d, want 200", w.Code)
	}
}

func TestSetupRoutesMetricsServes(t *testing.T) {
	router := gin.New()
	SetupRoutes(router, engine.New(retrieval.NewRetriever(nil)), nil, nil, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Errorf("GET /metrics status = %d, want 200", w.Code)
	}
}
