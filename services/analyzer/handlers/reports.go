// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trustscope-ai/trustscope/services/analyzer/store"
)

// ListReports handles GET /v1/reports.
func ListReports(reports *store.ReportStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if reports == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "report persistence is disabled"})
			return
		}
		ids, err := reports.List()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if ids == nil {
			ids = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"reports": ids})
	}
}

// GetReport handles GET /v1/reports/:id.
func GetReport(reports *store.ReportStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if reports == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "report persistence is disabled"})
			return
		}
		rep, err := reports.Get(c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rep)
	}
}

// DeleteReport handles DELETE /v1/reports/:id.
func DeleteReport(reports *store.ReportStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if reports == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "report persistence is disabled"})
			return
		}
		if err := reports.Delete(c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": c.Param("id")})
	}
}
