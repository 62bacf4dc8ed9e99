// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package retrieval

import "github.com/trustscope-ai/trustscope/services/analyzer/datatypes"

// Prototype pairs a theme with its exemplar phrases. Each phrase is
// embedded once at startup and acts as a nearest-neighbor anchor for the
// theme.
type Prototype struct {
	Theme   datatypes.Theme
	Phrases []string
}

// prototypes is the fixed taxonomy. Order matters twice: exemplars are
// inserted into the index in this order, which decides nearest-neighbor
// ties (first inserted wins), and the order is part of the comparable
// output contract.
var prototypes = []Prototype{
	{
		Theme: datatypes.ThemeModelInaccuracy,
		Phrases: []string{
			"wrong prediction", "incorrect outcome", "error in model",
			"false positive", "hallucination", "bad output",
		},
	},
	{
		Theme: datatypes.ThemeContextFailure,
		Phrases: []string{
			"missed context", "didn't understand nuance", "sarcasm",
			"ambiguous meaning", "domain mismatch", "out of distribution",
		},
	},
	{
		Theme: datatypes.ThemeHumanPreference,
		Phrases: []string{
			"manual override", "human judgment", "stylistic choice",
			"personal preference", "better phrasing", "editorial decision",
		},
	},
	{
		Theme: datatypes.ThemeGeneralSkepticism,
		Phrases: []string{
			"uncertain", "doubt", "not sure", "verify later", "skeptical",
		},
	},
}

// Prototypes returns the fixed taxonomy in insertion order.
func Prototypes() []Prototype {
	return prototypes
}
