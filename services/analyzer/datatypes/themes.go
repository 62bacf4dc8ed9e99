// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

// Theme is one of the fixed failure-theme categories a rationale note can
// be classified into. The taxonomy is closed: four categories, no
// open-vocabulary topics.
type Theme string

const (
	// ThemeModelInaccuracy covers notes about wrong or hallucinated output.
	ThemeModelInaccuracy Theme = "Model Inaccuracy"

	// ThemeContextFailure covers notes about missed nuance or context.
	ThemeContextFailure Theme = "Context Failure"

	// ThemeHumanPreference covers stylistic or editorial overrides.
	ThemeHumanPreference Theme = "Human Preference"

	// ThemeGeneralSkepticism covers unspecific doubt. It is also the
	// fallback category for empty notes and for degraded classification.
	ThemeGeneralSkepticism Theme = "General Skepticism"
)

// Themes lists all categories in their canonical order.
func Themes() []Theme {
	return []Theme{
		ThemeModelInaccuracy,
		ThemeContextFailure,
		ThemeHumanPreference,
		ThemeGeneralSkepticism,
	}
}
