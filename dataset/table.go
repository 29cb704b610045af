package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spektr-org/pokedash/engine"
	"github.com/spektr-org/pokedash/logging"
	"github.com/spektr-org/pokedash/schema"
)

// ============================================================================
// TABLE PARSER — header + string rows → []engine.Record
// ============================================================================
// Shared by the CSV and XLSX readers. Headers are normalized to snake_case and
// classified with the schema; columns outside the schema are skipped.
// Required cells must be present and numeric cells must parse.
// ============================================================================

var errEmptyValue = errors.New("empty value")

type colMapping struct {
	schemaKey   string
	isDimension bool
	isMeasure   bool
	required    bool
}

type tableParser struct {
	source   string
	mappings []colMapping
	dimKeys  []string
	mesKeys  []string
}

func newTableParser(source string, headers []string, sch schema.Config) (*tableParser, error) {
	p := &tableParser{
		source:   source,
		mappings: make([]colMapping, len(headers)),
	}

	required := make(map[string]bool)
	for _, d := range sch.Dimensions {
		required[d.Key] = d.Required
	}
	for _, m := range sch.Measures {
		required[m.Key] = m.Required
	}

	keys := make([]string, len(headers))
	seen := make(map[string]bool)
	for i, h := range headers {
		key := schema.NormalizeKey(h)
		keys[i] = key
		if seen[key] {
			logging.Warnf("⚠️ %s: duplicate column %q ignored, first occurrence wins", source, h)
			continue
		}
		seen[key] = true

		switch {
		case sch.IsDimension(key):
			p.mappings[i] = colMapping{schemaKey: key, isDimension: true, required: required[key]}
			p.dimKeys = append(p.dimKeys, key)
		case sch.IsMeasure(key):
			p.mappings[i] = colMapping{schemaKey: key, isMeasure: true, required: required[key]}
			p.mesKeys = append(p.mesKeys, key)
		}
	}

	if err := sch.Validate(keys); err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return p, nil
}

// parseRow converts one data row (1-based rowNum) into a Record.
func (p *tableParser) parseRow(rowNum int, row []string) (engine.Record, error) {
	rec := engine.Record{
		Dimensions: make(map[string]string, len(p.dimKeys)),
		Measures:   make(map[string]float64, len(p.mesKeys)),
	}

	for i, m := range p.mappings {
		if !m.isDimension && !m.isMeasure {
			continue
		}
		val := ""
		if i < len(row) {
			val = strings.TrimSpace(row[i])
		}
		if val == "" {
			if m.required {
				return rec, &LoadError{Source: p.source, Row: rowNum, Column: m.schemaKey, Err: errEmptyValue}
			}
			continue
		}

		if m.isDimension {
			rec.Dimensions[m.schemaKey] = val
			continue
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return rec, &LoadError{Source: p.source, Row: rowNum, Column: m.schemaKey,
				Err: fmt.Errorf("invalid number %q", val)}
		}
		rec.Measures[m.schemaKey] = f
	}
	return rec, nil
}

func (p *tableParser) view(records []engine.Record) engine.RecordView {
	return engine.NewSliceViewWithKeys(records, p.dimKeys, p.mesKeys)
}

// isBlankRow reports whether every cell is empty (trailing spreadsheet rows).
func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
