// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package handlers implements the HTTP endpoints of the analyzer service.
package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/trustscope-ai/trustscope/services/analyzer/engine"
	"github.com/trustscope-ai/trustscope/services/analyzer/ingest"
	"github.com/trustscope-ai/trustscope/services/analyzer/observability"
	"github.com/trustscope-ai/trustscope/services/analyzer/store"
)

// maxUploadBytes caps accepted CSV uploads. Larger uploads are rejected
// outright rather than truncated, so a report never describes a partial
// dataset.
const maxUploadBytes = 32 << 20 // 32 MiB

// Analyze handles POST /v1/analyze.
//
// Accepts a decision log as a multipart upload (field "file") or as a raw
// CSV request body, runs the trust pipeline, and returns the assembled
// report. Input validation failures are client errors; anything else is a
// server error. When a report store is configured the report is persisted
// under a fresh id before responding.
func Analyze(eng *engine.Engine, reports *store.ReportStore, metrics *observability.AnalyzerMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		body, err := openUpload(c)
		if err != nil {
			metrics.RecordRequest("client_error", 0, 0)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer body.Close()

		// Allow one byte past the cap so an oversized upload is
		// distinguishable from one that ends exactly at it.
		limited := &io.LimitedReader{R: body, N: maxUploadBytes + 1}
		dataset, err := ingest.ParseCSV(limited)
		if limited.N <= 0 {
			metrics.RecordRequest("client_error", 0, 0)
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload exceeds the 32 MiB limit"})
			return
		}
		if err != nil {
			metrics.RecordRequest("client_error", 0, 0)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := eng.Analyze(c.Request.Context(), dataset)
		if err != nil {
			slog.Error("analysis failed", "error", err, "rows", len(dataset.Records))
			metrics.RecordRequest("error", 0, 0)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		result.ID = uuid.NewString()
		if reports != nil {
			if err := reports.Save(result); err != nil {
				// Persistence is best effort; the caller still gets the report.
				slog.Warn("failed to persist report", "id", result.ID, "error", err)
			}
		}

		metrics.RecordRequest("success", time.Since(start).Seconds(), len(dataset.Records))
		c.JSON(http.StatusOK, result)
	}
}

// openUpload returns the CSV payload: the multipart "file" field when
// present, the raw request body otherwise.
func openUpload(c *gin.Context) (io.ReadCloser, error) {
	file, err := c.FormFile("file")
	if err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, errors.New("could not open uploaded file")
		}
		return f, nil
	}
	if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingFile) {
		if c.Request.Body == nil {
			return nil, errors.New("request has no body")
		}
		return c.Request.Body, nil
	}
	return nil, errors.New("invalid multipart upload")
}
