// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package analytics derives composite trust-intelligence indicators from
// the weekly metrics and the fitted model weights.
//
// Every function here is pure and deterministic. Degenerate inputs (a
// single week, zero variance) yield defined fallback values, never errors.
package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/trustscope-ai/trustscope/services/analyzer/datatypes"
)

// TrustVolatility is the sample standard deviation of the weekly trust
// score. Returns exactly 0.0 for fewer than two weeks.
func TrustVolatility(metrics []datatypes.WeeklyMetric) float64 {
	if len(metrics) < 2 {
		return 0.0
	}
	scores := make([]float64, len(metrics))
	for i, m := range metrics {
		scores[i] = m.TrustScore
	}
	sd := stat.StdDev(scores, nil)
	if math.IsNaN(sd) {
		return 0.0
	}
	return sd
}

// TrustDecayRate is the slope of an ordinary least-squares fit of trust
// score against week index (0, 1, 2, ...). Returns exactly 0.0 for fewer
// than two weeks.
func TrustDecayRate(metrics []datatypes.WeeklyMetric) float64 {
	if len(metrics) < 2 {
		return 0.0
	}
	xs := make([]float64, len(metrics))
	ys := make([]float64, len(metrics))
	for i, m := range metrics {
		xs[i] = float64(i)
		ys[i] = m.TrustScore
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope
}

// AlignmentIndex computes the human-AI alignment index (HAAI): a weighted
// blend of mean trust, inverted mean override rate, and mean sentiment
// shifted into [0, 1].
//
//	HAAI = 0.5*mean(trust) + 0.3*(1 - mean(override)) + 0.2*((mean(sentiment)+1)/2)
func AlignmentIndex(metrics []datatypes.WeeklyMetric) float64 {
	if len(metrics) == 0 {
		return 0.0
	}
	trust := make([]float64, len(metrics))
	override := make([]float64, len(metrics))
	sentiment := make([]float64, len(metrics))
	for i, m := range metrics {
		trust[i] = m.TrustScore
		override[i] = m.OverrideRate
		sentiment[i] = m.AvgSentiment
	}
	return 0.5*stat.Mean(trust, nil) +
		0.3*(1-stat.Mean(override, nil)) +
		0.2*((stat.Mean(sentiment, nil)+1)/2)
}

// HealthFor maps a composite score to its health label. Thresholds are
// strict and checked in descending order, so the partition is total and
// non-overlapping.
func HealthFor(score float64) datatypes.HealthLabel {
	switch {
	case score > 0.7:
		return datatypes.HealthHealthy
	case score > 0.45:
		return datatypes.HealthAtRisk
	default:
		return datatypes.HealthCritical
	}
}

// InterventionPriority ranks weeks by how badly they need attention.
//
// Per week: 0.5*(1 - trust) + 0.3*override_rate + 0.2*|avg_sentiment|,
// rounded to two decimals. The result is sorted descending by score; weeks
// with equal scores keep their chronological order.
func InterventionPriority(metrics []datatypes.WeeklyMetric) []datatypes.PriorityEntry {
	entries := make([]datatypes.PriorityEntry, 0, len(metrics))
	for _, m := range metrics {
		score := 0.5*(1-m.TrustScore) + 0.3*m.OverrideRate + 0.2*math.Abs(m.AvgSentiment)
		entries = append(entries, datatypes.PriorityEntry{
			Week:          m.Week,
			PriorityScore: round(score, 2),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PriorityScore > entries[j].PriorityScore
	})
	return entries
}

// CounterfactualTrustGain estimates the trust-score improvement available
// if skepticism-driving language were eliminated: |skepticism_weight| * 0.25,
// rounded to three decimals. Always non-negative and monotone in the
// absolute weight.
func CounterfactualTrustGain(weights datatypes.ModelWeights) float64 {
	return round(math.Abs(weights.SkepticismWeight)*0.25, 3)
}

// round rounds half away from zero at the given number of decimals.
func round(x float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(x*pow) / pow
}
