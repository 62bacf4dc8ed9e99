// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trustscope-ai/trustscope/services/analyzer/engine"
)

// HealthCheck reports process liveness plus the state of the theme
// retriever. A service whose prototype index never came up still answers
// analyze requests, it just labels every note "General Skepticism", so the
// endpoint reports "degraded" rather than failing outright.
func HealthCheck(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		retriever := "degraded"
		if eng != nil && eng.RetrieverReady() {
			retriever = "ready"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":          "ok",
			"theme_retriever": retriever,
		})
	}
}
