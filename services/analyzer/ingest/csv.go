// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ingest parses uploaded decision logs into datasets.
//
// The input contract: a CSV with at least the columns date,
// model_decision, human_decision, confidence_note. A missing column is a
// client error naming the required set and aborts before any model
// fitting. An unparseable date is a request failure, not a recoverable
// condition — it means the input itself is malformed.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/trustscope-ai/trustscope/services/analyzer/datatypes"
)

var (
	// ErrMissingColumns indicates the CSV header lacks required columns.
	ErrMissingColumns = errors.New("missing required columns")

	// ErrEmptyDataset indicates a CSV with a header but no data rows.
	ErrEmptyDataset = errors.New("dataset contains no rows")

	// ErrBadDate indicates an unparseable date cell.
	ErrBadDate = errors.New("unparseable date")
)

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// ParseCSV reads a decision log into a dataset.
//
// Header matching is case-insensitive and tolerates surrounding
// whitespace. Extra columns are ignored. Rows shorter than the header are
// rejected by the csv reader itself.
func ParseCSV(r io.Reader) (*datatypes.Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %v", ErrMissingColumns, datatypes.RequiredColumns)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, required := range datatypes.RequiredColumns {
		if _, ok := cols[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: need %v, missing %v",
			ErrMissingColumns, datatypes.RequiredColumns, missing)
	}

	var records []datatypes.DecisionRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		date, err := parseDate(strings.TrimSpace(row[cols["date"]]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		records = append(records, datatypes.DecisionRecord{
			Date:           date,
			ModelDecision:  strings.TrimSpace(row[cols["model_decision"]]),
			HumanDecision:  strings.TrimSpace(row[cols["human_decision"]]),
			ConfidenceNote: strings.TrimSpace(row[cols["confidence_note"]]),
		})
	}

	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	return &datatypes.Dataset{Records: records}, nil
}

func parseDate(cell string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, cell)
}
