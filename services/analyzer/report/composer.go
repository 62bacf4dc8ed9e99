// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package report assembles the analysis response object, including the
// executive summary.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/trustscope-ai/trustscope/services/analyzer/analytics"
	"github.com/trustscope-ai/trustscope/services/analyzer/datatypes"
)

// topRiskLimit caps the top-risks list in the report.
const topRiskLimit = 5

// Compose assembles the full analysis report from the pipeline outputs.
func Compose(
	metrics []datatypes.WeeklyMetric,
	weights datatypes.ModelWeights,
	records []datatypes.DecisionRecord,
	buckets []datatypes.ThemeBucket,
) datatypes.AnalysisReport {
	haai := analytics.AlignmentIndex(metrics)

	// A dataset with no notes has no theme buckets; the report still
	// carries an empty list, not null.
	if buckets == nil {
		buckets = []datatypes.ThemeBucket{}
	}

	return datatypes.AnalysisReport{
		Metrics:          metrics,
		MLWeights:        weights,
		TopRisks:         TopRisks(records),
		RAGExplanations:  buckets,
		ExecutiveSummary: ExecutiveSummary(metrics, weights, buckets, haai),
		AdvancedAnalysis: datatypes.AdvancedAnalysis{
			TrustVolatility:         analytics.TrustVolatility(metrics),
			TrustDecayRate:          analytics.TrustDecayRate(metrics),
			AlignmentIndex:          haai,
			SystemHealth:            analytics.HealthFor(haai),
			InterventionPriority:    analytics.InterventionPriority(metrics),
			CounterfactualTrustGain: analytics.CounterfactualTrustGain(weights),
		},
	}
}

// TopRisks returns up to five records sorted descending by predicted
// override risk. Equal risks keep input row order.
func TopRisks(records []datatypes.DecisionRecord) []datatypes.RiskRecord {
	sorted := make([]datatypes.DecisionRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OverrideRisk > sorted[j].OverrideRisk
	})

	limit := topRiskLimit
	if len(sorted) < limit {
		limit = len(sorted)
	}

	risks := make([]datatypes.RiskRecord, 0, limit)
	for _, r := range sorted[:limit] {
		risks = append(risks, datatypes.RiskRecord{
			ConfidenceNote: r.ConfidenceNote,
			OverrideRisk:   r.OverrideRisk,
			RiskTier:       r.RiskTier,
		})
	}
	return risks
}

// ExecutiveSummary builds the short natural-language summary.
//
// Sentence order is fixed: (1) a decline warning, only when some week's
// trust score fell below 0.5; (2) the primary trust failure driver (the
// highest-count theme bucket); (3) the dominant ML predictor; (4) the
// overall health label. Sentences are joined with single spaces.
func ExecutiveSummary(
	metrics []datatypes.WeeklyMetric,
	weights datatypes.ModelWeights,
	buckets []datatypes.ThemeBucket,
	haai float64,
) string {
	var sentences []string

	for _, m := range metrics {
		if m.TrustScore < 0.5 {
			sentences = append(sentences, "Trust declined during periods of elevated overrides.")
			break
		}
	}

	if len(buckets) > 0 {
		sentences = append(sentences,
			fmt.Sprintf("Primary trust failure driver: %s.", buckets[0].Theme))
	}

	sentences = append(sentences,
		fmt.Sprintf("ML attribution identifies '%s' as the dominant predictor.", weights.Dominant()))

	sentences = append(sentences,
		fmt.Sprintf("Overall system health classified as %s.", analytics.HealthFor(haai)))

	return strings.Join(sentences, " ")
}
