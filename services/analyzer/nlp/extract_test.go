// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package nlp

import (
	"testing"

	"github.com/trustscope-ai/trustscope/services/analyzer/datatypes"
)

// ============================================================================
// Sentiment Tests
// ============================================================================

func TestSentiment(t *testing.T) {
	e := NewExtractor()

	if got := e.Sentiment(""); got != 0.0 {
		t.Errorf("Sentiment(\"\") = %f, want exactly 0.0", got)
	}

	positive := e.Sentiment("this result is great, excellent work")
	if positive <= 0 {
		t.Errorf("positive note scored %f, want > 0", positive)
	}

	negative := e.Sentiment("this is terrible, completely awful output")
	if negative >= 0 {
		t.Errorf("negative note scored %f, want < 0", negative)
	}

	if positive < -1 || positive > 1 || negative < -1 || negative > 1 {
		t.Errorf("compound scores outside [-1, 1]: %f, %f", positive, negative)
	}
}

func TestSentimentDeterministic(t *testing.T) {
	e := NewExtractor()
	note := "not sure the model understood the question"
	if a, b := e.Sentiment(note), e.Sentiment(note); a != b {
		t.Errorf("same note scored differently: %f vs %f", a, b)
	}
}

// ============================================================================
// SkepticismFlag Tests
// ============================================================================

func TestSkepticismFlag(t *testing.T) {
	tests := []struct {
		name string
		note string
		want int
	}{
		{"empty", "", 0},
		{"keyword wrong", "the prediction was wrong", 1},
		{"keyword uppercase", "WRONG call by the model", 1},
		{"keyword as substring", "the model misled us with a mismatched label", 1},
		{"keyword doubt", "I doubt this holds up", 1},
		{"keyword human", "needed human review", 1},
		{"no keyword", "looks fine to me", 0},
		{"positive note", "great call, approved as-is", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SkepticismFlag(tt.note); got != tt.want {
				t.Errorf("SkepticismFlag(%q) = %d, want %d", tt.note, got, tt.want)
			}
		})
	}
}

// ============================================================================
// Annotate Tests
// ============================================================================

func TestAnnotate(t *testing.T) {
	e := NewExtractor()
	records := []datatypes.DecisionRecord{
		{ModelDecision: "approve", HumanDecision: "deny",
			ConfidenceNote: "the model was wrong about the risk"},
		{ModelDecision: "approve", HumanDecision: "approve",
			ConfidenceNote: "good call, agreed"},
		{ModelDecision: "deny", HumanDecision: "deny"},
	}

	e.Annotate(records)

	if !records[0].Override {
		t.Error("records[0]: differing decisions not flagged as override")
	}
	if records[0].SkepticismFlag != 1 {
		t.Errorf("records[0].SkepticismFlag = %d, want 1", records[0].SkepticismFlag)
	}

	if records[1].Override {
		t.Error("records[1]: matching decisions flagged as override")
	}
	if records[1].SkepticismFlag != 0 {
		t.Errorf("records[1].SkepticismFlag = %d, want 0", records[1].SkepticismFlag)
	}
	if records[1].Sentiment <= 0 {
		t.Errorf("records[1].Sentiment = %f, want positive", records[1].Sentiment)
	}

	if records[2].Sentiment != 0.0 {
		t.Errorf("records[2].Sentiment = %f, want 0.0 for empty note", records[2].Sentiment)
	}
	if records[2].Override {
		t.Error("records[2]: matching decisions flagged as override")
	}
}
