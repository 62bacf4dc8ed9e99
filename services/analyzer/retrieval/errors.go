// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package retrieval

import "errors"

var (
	// ErrInvalidInput indicates a nil context or empty text/vector argument.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotReady indicates the prototype index has not been built.
	ErrNotReady = errors.New("retriever not initialized")

	// ErrDimensionMismatch indicates a vector whose dimensionality differs
	// from the vectors already in the index.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrEmptyIndex indicates a nearest-neighbor query against an index
	// with no entries.
	ErrEmptyIndex = errors.New("prototype index is empty")

	// ErrUnknownBackend indicates an unrecognized embedding backend name.
	ErrUnknownBackend = errors.New("unknown embedding backend")
)
