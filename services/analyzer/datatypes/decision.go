// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package datatypes defines the data model shared by the analyzer pipeline:
// decision records, weekly trust metrics, theme buckets and the assembled
// analysis report.
//
// Records are created once at ingestion time and treated as immutable by the
// pipeline, except for the two risk fields (OverrideRisk, RiskTier) which the
// risk model appends after fitting.
package datatypes

import "time"

// RequiredColumns is the set of CSV columns a dataset must provide.
// A dataset missing any of these is rejected before any model fitting.
var RequiredColumns = []string{"date", "model_decision", "human_decision", "confidence_note"}

// DecisionRecord is one row of the input log: an AI-model decision paired
// with the human decision and an optional free-text rationale note.
//
// Override, Sentiment and SkepticismFlag are derived at extraction time.
// OverrideRisk and RiskTier are appended by the risk model.
type DecisionRecord struct {
	Date          time.Time `json:"date"`
	ModelDecision string    `json:"model_decision"`
	HumanDecision string    `json:"human_decision"`

	// ConfidenceNote is the reviewer's free-text rationale. May be empty.
	ConfidenceNote string `json:"confidence_note"`

	// Override is true when the human decision differs from the model's.
	Override bool `json:"override"`

	// Sentiment is the compound polarity of the note in [-1, 1].
	// Empty notes score 0.0 (neutral).
	Sentiment float64 `json:"sentiment"`

	// SkepticismFlag is 1 when the note contains a skepticism keyword.
	SkepticismFlag int `json:"skepticism_flag"`

	// OverrideRisk is the predicted probability of override in [0, 1].
	OverrideRisk float64 `json:"override_risk"`

	// RiskTier is the categorical bucket derived from OverrideRisk.
	RiskTier RiskTier `json:"risk_tier"`
}

// Dataset is the full set of decision records for one analysis request.
type Dataset struct {
	Records []DecisionRecord
}

// Notes returns the non-empty confidence notes in original row order.
func (d *Dataset) Notes() []string {
	notes := make([]string, 0, len(d.Records))
	for _, r := range d.Records {
		if r.ConfidenceNote != "" {
			notes = append(notes, r.ConfidenceNote)
		}
	}
	return notes
}

// RiskTier is the categorical override-risk bucket.
type RiskTier string

const (
	// RiskTierLow covers predicted risk in [0, 0.4).
	RiskTierLow RiskTier = "LOW"

	// RiskTierMedium covers predicted risk in [0.4, 0.7).
	RiskTierMedium RiskTier = "MEDIUM"

	// RiskTierHigh covers predicted risk in [0.7, 1].
	RiskTierHigh RiskTier = "HIGH"
)

// TierForRisk maps a predicted override probability to its tier.
//
// The partition is total and non-overlapping over [0, 1]: the first bucket
// is closed at 0, interior boundaries belong to the bucket on their right,
// and 1.0 lands in HIGH.
func TierForRisk(risk float64) RiskTier {
	switch {
	case risk < 0.4:
		return RiskTierLow
	case risk < 0.7:
		return RiskTierMedium
	default:
		return RiskTierHigh
	}
}
