// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package retrieval

import (
	"fmt"

	"github.com/trustscope-ai/trustscope/services/analyzer/datatypes"
)

// PrototypeIndex is a flat exact nearest-neighbor index over the embedded
// exemplar phrases.
//
// # Description
//
// The index holds every (theme, vector) pair and answers 1-NN queries by
// linear scan under squared Euclidean distance. With ~two dozen exemplars
// a linear scan beats any tree structure, and exactness keeps the
// classification policy reproducible.
//
// # Thread Safety
//
// Add is only called during startup, before the index is shared. After
// construction the index is read-only and safe for concurrent Nearest
// calls without locking.
type PrototypeIndex struct {
	dim     int
	themes  []datatypes.Theme
	vectors [][]float32
}

// NewPrototypeIndex creates an empty index. The dimensionality is fixed by
// the first vector added.
func NewPrototypeIndex() *PrototypeIndex {
	return &PrototypeIndex{}
}

// Add appends one (theme, vector) pair.
//
// The first vector fixes the index dimensionality; later vectors of a
// different length are rejected with ErrDimensionMismatch.
func (idx *PrototypeIndex) Add(theme datatypes.Theme, vector []float32) error {
	if len(vector) == 0 {
		return fmt.Errorf("%w: empty vector", ErrInvalidInput)
	}
	if idx.dim == 0 {
		idx.dim = len(vector)
	} else if len(vector) != idx.dim {
		return fmt.Errorf("%w: got %d, index has %d", ErrDimensionMismatch, len(vector), idx.dim)
	}

	idx.themes = append(idx.themes, theme)
	idx.vectors = append(idx.vectors, vector)
	return nil
}

// Nearest returns the theme of the exemplar closest to query under squared
// Euclidean distance, along with that distance.
//
// Ties are broken by insertion order: the first exemplar with the minimal
// distance wins.
func (idx *PrototypeIndex) Nearest(query []float32) (datatypes.Theme, float64, error) {
	if idx.Len() == 0 {
		return "", 0, ErrEmptyIndex
	}
	if len(query) != idx.dim {
		return "", 0, fmt.Errorf("%w: query has %d, index has %d", ErrDimensionMismatch, len(query), idx.dim)
	}

	best := 0
	bestDist := squaredL2(query, idx.vectors[0])
	for i := 1; i < len(idx.vectors); i++ {
		if d := squaredL2(query, idx.vectors[i]); d < bestDist {
			best = i
			bestDist = d
		}
	}

	return idx.themes[best], bestDist, nil
}

// Len returns the number of exemplars in the index.
func (idx *PrototypeIndex) Len() int {
	return len(idx.vectors)
}

// Dim returns the vector dimensionality, 0 for an empty index.
func (idx *PrototypeIndex) Dim() int {
	return idx.dim
}

// squaredL2 computes the squared Euclidean distance between two vectors of
// equal length.
func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
