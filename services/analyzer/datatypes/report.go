// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

// WeeklyMetric is one aggregated row per calendar week present in the data.
// Rows are created once per request and ordered chronologically by week key.
type WeeklyMetric struct {
	// Week is the ISO week key, e.g. "2026-W07". Keys sort chronologically
	// as plain strings.
	Week string `json:"week"`

	// OverrideRate is the mean of Override over the week's rows.
	OverrideRate float64 `json:"override_rate"`

	// TrustScore is 1 - OverrideRate.
	TrustScore float64 `json:"trust_score"`

	// AvgSentiment is the mean note sentiment over the week's rows.
	AvgSentiment float64 `json:"avg_sentiment"`

	// TotalCases is the number of rows in the week.
	TotalCases int `json:"total_cases"`
}

// ModelWeights holds the learned linear coefficients of the risk model,
// keyed by feature name. Produced once per request, post-standardization.
type ModelWeights struct {
	SentimentWeight  float64 `json:"sentiment_weight"`
	SkepticismWeight float64 `json:"skepticism_weight"`
}

// Dominant returns the name of the feature with the larger absolute weight.
// Sentiment wins exact ties.
func (w ModelWeights) Dominant() string {
	if abs(w.SkepticismWeight) > abs(w.SentimentWeight) {
		return "skepticism_weight"
	}
	return "sentiment_weight"
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// ThemeBucket is one semantic failure theme with the notes assigned to it.
type ThemeBucket struct {
	Theme Theme `json:"theme"`

	// Count is the number of notes assigned to the theme.
	Count int `json:"count"`

	// Example is the first note assigned to the theme, in input order.
	Example string `json:"example"`
}

// RiskRecord is one entry of the top-risks list in the report.
type RiskRecord struct {
	ConfidenceNote string   `json:"confidence_note"`
	OverrideRisk   float64  `json:"override_risk"`
	RiskTier       RiskTier `json:"risk_tier"`
}

// PriorityEntry ranks one week for intervention.
type PriorityEntry struct {
	Week          string  `json:"week"`
	PriorityScore float64 `json:"priority_score"`
}

// HealthLabel is the categorical system-health classification.
type HealthLabel string

const (
	HealthHealthy  HealthLabel = "HEALTHY"
	HealthAtRisk   HealthLabel = "AT RISK"
	HealthCritical HealthLabel = "CRITICAL"
)

// AdvancedAnalysis groups the composite trust-intelligence indicators.
type AdvancedAnalysis struct {
	TrustVolatility         float64         `json:"trust_volatility"`
	TrustDecayRate          float64         `json:"trust_decay_rate"`
	AlignmentIndex          float64         `json:"human_ai_alignment_index"`
	SystemHealth            HealthLabel     `json:"system_health"`
	InterventionPriority    []PriorityEntry `json:"intervention_priority"`
	CounterfactualTrustGain float64         `json:"counterfactual_trust_gain"`
}

// AnalysisReport is the full response object for one analysis request.
type AnalysisReport struct {
	// ID identifies a persisted report. Empty for one-shot CLI runs.
	ID string `json:"id,omitempty"`

	Metrics          []WeeklyMetric   `json:"metrics"`
	MLWeights        ModelWeights     `json:"ml_weights"`
	TopRisks         []RiskRecord     `json:"top_risks"`
	RAGExplanations  []ThemeBucket    `json:"rag_explanations"`
	ExecutiveSummary string           `json:"executive_summary"`
	AdvancedAnalysis AdvancedAnalysis `json:"advanced_analysis"`
}
