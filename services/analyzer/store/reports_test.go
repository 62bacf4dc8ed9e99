// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package store

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustscope-ai/trustscope/services/analyzer/datatypes"
)

func openTestStore(t *testing.T) *ReportStore {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err, "Open failed")
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReport(id string) datatypes.AnalysisReport {
	return datatypes.AnalysisReport{
		ID: id,
		Metrics: []datatypes.WeeklyMetric{
			{Week: "2026-W07", OverrideRate: 0.25, TrustScore: 0.75, TotalCases: 4},
		},
		MLWeights:        datatypes.ModelWeights{SentimentWeight: -0.4, SkepticismWeight: 0.8},
		ExecutiveSummary: "Overall system health classified as AT RISK.",
	}
}

// ============================================================================
// Save / Get Tests
// ============================================================================

func TestStoreSaveAndGet(t *testing.T) {
	s := openTestStore(t)

	want := sampleReport("r1")
	require.NoError(t, s.Save(want))

	got, err := s.Get("r1")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.ExecutiveSummary, got.ExecutiveSummary)
	require.Len(t, got.Metrics, 1)
	assert.Equal(t, "2026-W07", got.Metrics[0].Week)
	assert.Equal(t, want.MLWeights, got.MLWeights)
}

func TestStoreSaveRequiresID(t *testing.T) {
	s := openTestStore(t)
	assert.Error(t, s.Save(datatypes.AnalysisReport{}), "Save accepted a report without an ID")
}

func TestStoreGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreSaveOverwrites(t *testing.T) {
	s := openTestStore(t)

	first := sampleReport("r1")
	require.NoError(t, s.Save(first))

	second := sampleReport("r1")
	second.ExecutiveSummary = "updated"
	require.NoError(t, s.Save(second))

	got, err := s.Get("r1")
	require.NoError(t, err)
	assert.Equal(t, "updated", got.ExecutiveSummary)
}

// ============================================================================
// List / Delete Tests
// ============================================================================

func TestStoreList(t *testing.T) {
	s := openTestStore(t)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Save(sampleReport(id)), "Save(%s)", id)
	}

	ids, err := s.List()
	require.NoError(t, err)
	sort.Strings(ids)
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestStoreListEmpty(t *testing.T) {
	s := openTestStore(t)
	ids, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestStoreDelete(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Save(sampleReport("r1")))
	require.NoError(t, s.Delete("r1"))

	_, err := s.Get("r1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is a no-op, not an error.
	assert.NoError(t, s.Delete("r1"))
}
