// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/trustscope-ai/trustscope/services/analyzer/engine"
	"github.com/trustscope-ai/trustscope/services/analyzer/handlers"
	"github.com/trustscope-ai/trustscope/services/analyzer/middleware"
	"github.com/trustscope-ai/trustscope/services/analyzer/observability"
	"github.com/trustscope-ai/trustscope/services/analyzer/store"
)

func SetupRoutes(router *gin.Engine, eng *engine.Engine, reports *store.ReportStore,
	metrics *observability.AnalyzerMetrics, limiter *rate.Limiter) {

	router.GET("/health", handlers.HealthCheck(eng))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version 1 group
	v1 := router.Group("/v1")
	{
		analyze := v1.Group("")
		if limiter != nil {
			analyze.Use(middleware.RateLimit(limiter))
		}
		analyze.POST("/analyze", handlers.Analyze(eng, reports, metrics))

		v1.GET("/reports", handlers.ListReports(reports))
		v1.GET("/reports/:id", handlers.GetReport(reports))
		v1.DELETE("/reports/:id", handlers.DeleteReport(reports))
	}
}
