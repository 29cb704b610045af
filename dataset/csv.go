package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/spektr-org/pokedash/engine"
	"github.com/spektr-org/pokedash/schema"
)

// ============================================================================
// CSV READER — Parses CSV bytes into []engine.Record
// ============================================================================
// Every row must have the header's field count; a malformed row fails the load.
// ============================================================================

// parseCSV parses CSV bytes into Records using the schema for classification.
// source only labels errors.
func parseCSV(source string, data []byte, sch schema.Config) ([]engine.Record, *tableParser, error) {
	reader := csv.NewReader(bytes.NewReader(data))

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = ErrNoRecords
		}
		return nil, nil, &LoadError{Source: source, Err: fmt.Errorf("failed to read CSV headers: %w", err)}
	}

	parser, err := newTableParser(source, headers, sch)
	if err != nil {
		return nil, nil, err
	}

	var records []engine.Record
	for rowNum := 1; ; rowNum++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, &LoadError{Source: source, Row: rowNum, Err: err}
		}

		rec, err := parser.parseRow(rowNum, row)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, rec)
	}

	return records, parser, nil
}

// ParseCSVView parses CSV into a RecordView keyed in header order.
func ParseCSVView(source string, data []byte, sch schema.Config) (engine.RecordView, error) {
	records, parser, err := parseCSV(source, data, sch)
	if err != nil {
		return nil, err
	}
	return parser.view(records), nil
}
