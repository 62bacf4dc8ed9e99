// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package risk

import (
	"errors"
	"math"
	"testing"

	"github.com/trustscope-ai/trustscope/services/analyzer/datatypes"
)

func rec(sentiment float64, skeptic int, override bool) datatypes.DecisionRecord {
	return datatypes.DecisionRecord{
		Sentiment:      sentiment,
		SkepticismFlag: skeptic,
		Override:       override,
	}
}

// trainingBatch is a small batch where overrides co-occur with negative
// sentiment and skeptical language.
func trainingBatch() []datatypes.DecisionRecord {
	return []datatypes.DecisionRecord{
		rec(-0.8, 1, true),
		rec(-0.6, 1, true),
		rec(-0.4, 0, true),
		rec(0.5, 0, false),
		rec(0.7, 0, false),
		rec(0.3, 1, false),
		rec(0.9, 0, false),
		rec(-0.2, 1, true),
	}
}

// ============================================================================
// Train Tests
// ============================================================================

func TestTrainEmptyBatch(t *testing.T) {
	if _, err := Train(nil); !errors.Is(err, ErrNoData) {
		t.Errorf("Train(nil) error = %v, want ErrNoData", err)
	}
}

func TestTrainIsDeterministic(t *testing.T) {
	p1, err := Train(trainingBatch())
	if err != nil {
		t.Fatalf("first Train failed: %v", err)
	}
	p2, err := Train(trainingBatch())
	if err != nil {
		t.Fatalf("second Train failed: %v", err)
	}

	w1, w2 := p1.Weights(), p2.Weights()
	if w1 != w2 {
		t.Errorf("identical batches produced different weights: %+v vs %+v", w1, w2)
	}
	if p1.intercept != p2.intercept {
		t.Errorf("identical batches produced different intercepts: %f vs %f",
			p1.intercept, p2.intercept)
	}
}

func TestTrainLearnsDirection(t *testing.T) {
	p, err := Train(trainingBatch())
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	w := p.Weights()

	// Overrides coincide with negative sentiment, so the sentiment weight
	// must be negative; skeptical notes accompany overrides, so the
	// skepticism weight must be positive.
	if w.SentimentWeight >= 0 {
		t.Errorf("SentimentWeight = %f, want negative", w.SentimentWeight)
	}
	if w.SkepticismWeight <= 0 {
		t.Errorf("SkepticismWeight = %f, want positive", w.SkepticismWeight)
	}
}

func TestTrainZeroVarianceFeature(t *testing.T) {
	// Every row has the same skepticism flag; the scaler must not divide
	// by zero and the fit must still converge.
	records := []datatypes.DecisionRecord{
		rec(-0.5, 0, true),
		rec(0.5, 0, false),
		rec(0.2, 0, false),
		rec(-0.7, 0, true),
	}
	p, err := Train(records)
	if err != nil {
		t.Fatalf("Train failed on zero-variance feature: %v", err)
	}
	for _, prob := range p.Predict(records) {
		if math.IsNaN(prob) || math.IsInf(prob, 0) {
			t.Fatalf("prediction is not finite: %f", prob)
		}
	}
}

func TestTrainSingleRow(t *testing.T) {
	p, err := Train([]datatypes.DecisionRecord{rec(-0.3, 1, true)})
	if err != nil {
		t.Fatalf("Train failed on single row: %v", err)
	}
	prob := p.PredictOne(rec(-0.3, 1, true))
	if prob < 0 || prob > 1 {
		t.Errorf("probability %f outside [0, 1]", prob)
	}
}

// ============================================================================
// Predict Tests
// ============================================================================

func TestPredictProbabilitiesInRange(t *testing.T) {
	records := trainingBatch()
	p, err := Train(records)
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	probs := p.Predict(records)
	if len(probs) != len(records) {
		t.Fatalf("got %d probabilities for %d records", len(probs), len(records))
	}
	for i, prob := range probs {
		if prob < 0 || prob > 1 {
			t.Errorf("probs[%d] = %f, outside [0, 1]", i, prob)
		}
	}
}

func TestPredictOrdersRiskByEvidence(t *testing.T) {
	p, err := Train(trainingBatch())
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	risky := p.PredictOne(rec(-0.9, 1, false))
	safe := p.PredictOne(rec(0.9, 0, false))
	if risky <= safe {
		t.Errorf("negative skeptical note scored %f, positive note %f; want risky > safe",
			risky, safe)
	}
}

// ============================================================================
// Tier Tests
// ============================================================================

func TestTierPartitionCoversPredictions(t *testing.T) {
	tests := []struct {
		risk float64
		want datatypes.RiskTier
	}{
		{0.0, datatypes.RiskTierLow},
		{0.39, datatypes.RiskTierLow},
		{0.4, datatypes.RiskTierMedium},
		{0.69, datatypes.RiskTierMedium},
		{0.7, datatypes.RiskTierHigh},
		{1.0, datatypes.RiskTierHigh},
	}
	for _, tt := range tests {
		if got := datatypes.TierForRisk(tt.risk); got != tt.want {
			t.Errorf("TierForRisk(%f) = %q, want %q", tt.risk, got, tt.want)
		}
	}
}

// ============================================================================
// Scaler Tests
// ============================================================================

func TestFitScalerStandardizes(t *testing.T) {
	features := [][numFeatures]float64{{1, 0}, {3, 1}}
	s := fitScaler(features)

	if s.mean[0] != 2 {
		t.Errorf("mean[0] = %f, want 2", s.mean[0])
	}
	if s.scale[0] != 1 {
		t.Errorf("scale[0] = %f, want population std 1", s.scale[0])
	}

	out := s.transform([numFeatures]float64{3, 1})
	if out[0] != 1 {
		t.Errorf("transform first feature = %f, want 1", out[0])
	}
}
