// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package retrieval

import (
	"errors"
	"testing"

	"github.com/trustscope-ai/trustscope/services/analyzer/datatypes"
)

// ============================================================================
// Add Tests
// ============================================================================

func TestPrototypeIndexAdd(t *testing.T) {
	idx := NewPrototypeIndex()

	if err := idx.Add(datatypes.ThemeModelInaccuracy, []float32{1, 0, 0}); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	if got := idx.Dim(); got != 3 {
		t.Errorf("Dim() = %d, want 3 after first insert", got)
	}
	if err := idx.Add(datatypes.ThemeContextFailure, []float32{0, 1, 0}); err != nil {
		t.Fatalf("second Add failed: %v", err)
	}
	if got := idx.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestPrototypeIndexAddDimensionMismatch(t *testing.T) {
	idx := NewPrototypeIndex()
	if err := idx.Add(datatypes.ThemeModelInaccuracy, []float32{1, 0, 0}); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}

	err := idx.Add(datatypes.ThemeContextFailure, []float32{1, 0})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Add with wrong dim: got %v, want ErrDimensionMismatch", err)
	}
}

func TestPrototypeIndexAddEmptyVector(t *testing.T) {
	idx := NewPrototypeIndex()
	if err := idx.Add(datatypes.ThemeModelInaccuracy, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Add(nil vector): got %v, want ErrInvalidInput", err)
	}
}

// ============================================================================
// Nearest Tests
// ============================================================================

func TestPrototypeIndexNearest(t *testing.T) {
	idx := NewPrototypeIndex()
	mustAdd(t, idx, datatypes.ThemeModelInaccuracy, []float32{1, 0})
	mustAdd(t, idx, datatypes.ThemeContextFailure, []float32{0, 1})
	mustAdd(t, idx, datatypes.ThemeHumanPreference, []float32{-1, 0})

	tests := []struct {
		name  string
		query []float32
		want  datatypes.Theme
	}{
		{"closest to first axis", []float32{0.9, 0.1}, datatypes.ThemeModelInaccuracy},
		{"closest to second axis", []float32{0.1, 0.9}, datatypes.ThemeContextFailure},
		{"closest to negative axis", []float32{-0.8, 0.2}, datatypes.ThemeHumanPreference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dist, err := idx.Nearest(tt.query)
			if err != nil {
				t.Fatalf("Nearest failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Nearest(%v) = %q, want %q", tt.query, got, tt.want)
			}
			if dist < 0 {
				t.Errorf("distance %f is negative", dist)
			}
		})
	}
}

func TestPrototypeIndexNearestTieKeepsInsertionOrder(t *testing.T) {
	idx := NewPrototypeIndex()
	// Two exemplars equidistant from the origin query. The first inserted
	// must win.
	mustAdd(t, idx, datatypes.ThemeHumanPreference, []float32{1, 0})
	mustAdd(t, idx, datatypes.ThemeGeneralSkepticism, []float32{-1, 0})

	got, _, err := idx.Nearest([]float32{0, 0})
	if err != nil {
		t.Fatalf("Nearest failed: %v", err)
	}
	if got != datatypes.ThemeHumanPreference {
		t.Errorf("tie broke to %q, want first-inserted %q", got, datatypes.ThemeHumanPreference)
	}
}

func TestPrototypeIndexNearestErrors(t *testing.T) {
	empty := NewPrototypeIndex()
	if _, _, err := empty.Nearest([]float32{1}); !errors.Is(err, ErrEmptyIndex) {
		t.Errorf("Nearest on empty index: got %v, want ErrEmptyIndex", err)
	}

	idx := NewPrototypeIndex()
	mustAdd(t, idx, datatypes.ThemeModelInaccuracy, []float32{1, 0})
	if _, _, err := idx.Nearest([]float32{1, 0, 0}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Nearest with wrong dim: got %v, want ErrDimensionMismatch", err)
	}
}

func mustAdd(t *testing.T, idx *PrototypeIndex, theme datatypes.Theme, vec []float32) {
	t.Helper()
	if err := idx.Add(theme, vec); err != nil {
		t.Fatalf("Add(%q) failed: %v", theme, err)
	}
}
