// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package nlp extracts numeric features from free-text rationale notes.
//
// Two signals are produced per note: a compound sentiment polarity in
// [-1, 1] from a lexicon/rule-based scorer (no training, deterministic per
// input string), and a binary skepticism flag from a fixed keyword set.
// Extraction is a pure function of the note text; empty notes map to
// neutral sentiment and a cleared flag.
package nlp

import (
	"strings"

	"github.com/jonreiter/govader"

	"github.com/trustscope-ai/trustscope/services/analyzer/datatypes"
)

// skepticismKeywords is the fixed case-insensitive substring set that sets
// the skepticism flag.
var skepticismKeywords = []string{
	"wrong", "missed", "override", "manual", "human",
	"uncertain", "mismatch", "bias", "doubt",
}

// Extractor scores rationale notes. The underlying VADER lexicon is loaded
// once at construction; scoring is deterministic and side-effect free.
//
// Extractor is safe for concurrent use: the analyzer is read-only after
// construction.
type Extractor struct {
	sia *govader.SentimentIntensityAnalyzer
}

// NewExtractor builds an extractor with the embedded VADER lexicon.
func NewExtractor() *Extractor {
	return &Extractor{sia: govader.NewSentimentIntensityAnalyzer()}
}

// Sentiment returns the compound polarity of text in [-1, 1].
// Empty text is neutral (0.0).
func (e *Extractor) Sentiment(text string) float64 {
	if text == "" {
		return 0.0
	}
	return e.sia.PolarityScores(text).Compound
}

// SkepticismFlag returns 1 when text contains any skepticism keyword as a
// case-insensitive substring, 0 otherwise. Empty text yields 0.
func SkepticismFlag(text string) int {
	if text == "" {
		return 0
	}
	lower := strings.ToLower(text)
	for _, kw := range skepticismKeywords {
		if strings.Contains(lower, kw) {
			return 1
		}
	}
	return 0
}

// Annotate populates Override, Sentiment and SkepticismFlag on every record
// in place. Override is true iff the model and human decisions differ.
func (e *Extractor) Annotate(records []datatypes.DecisionRecord) {
	for i := range records {
		r := &records[i]
		r.Override = r.ModelDecision != r.HumanDecision
		r.Sentiment = e.Sentiment(r.ConfidenceNote)
		r.SkepticismFlag = SkepticismFlag(r.ConfidenceNote)
	}
}
