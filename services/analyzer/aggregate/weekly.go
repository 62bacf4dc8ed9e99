// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package aggregate collapses decision records into per-week trust metrics.
//
// The week bucket is the ISO-8601 calendar week of the record date, keyed
// "YYYY-Www" (ISO year, zero-padded week number). The keys sort
// chronologically as plain strings, which the rest of the pipeline relies
// on. Only weeks that actually contain rows are emitted, so every emitted
// row has a positive case count and the rate divisions are safe by
// construction.
package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/trustscope-ai/trustscope/services/analyzer/datatypes"
)

// WeekKey returns the ISO week bucket for a date, e.g. "2026-W07".
func WeekKey(date time.Time) string {
	year, week := date.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// Weekly groups records by calendar week and computes the per-week trust
// statistics. The result has exactly one row per distinct week present in
// the input, in chronological order.
func Weekly(records []datatypes.DecisionRecord) []datatypes.WeeklyMetric {
	type accum struct {
		overrides int
		sentiment float64
		cases     int
	}

	byWeek := make(map[string]*accum)
	for _, r := range records {
		key := WeekKey(r.Date)
		a := byWeek[key]
		if a == nil {
			a = &accum{}
			byWeek[key] = a
		}
		if r.Override {
			a.overrides++
		}
		a.sentiment += r.Sentiment
		a.cases++
	}

	weeks := make([]string, 0, len(byWeek))
	for key := range byWeek {
		weeks = append(weeks, key)
	}
	sort.Strings(weeks)

	metrics := make([]datatypes.WeeklyMetric, 0, len(weeks))
	for _, key := range weeks {
		a := byWeek[key]
		overrideRate := float64(a.overrides) / float64(a.cases)
		metrics = append(metrics, datatypes.WeeklyMetric{
			Week:         key,
			OverrideRate: overrideRate,
			TrustScore:   1 - overrideRate,
			AvgSentiment: a.sentiment / float64(a.cases),
			TotalCases:   a.cases,
		})
	}
	return metrics
}
