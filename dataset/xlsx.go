package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/pokedash/engine"
	"github.com/spektr-org/pokedash/logging"
)

// loadXLSXFile reads the configured sheet (or the first one) of a workbook.
// The first row is the header; fully blank rows are skipped.
func loadXLSXFile(path string, o *options) (engine.RecordView, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()

	sheet := o.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &LoadError{Source: path, Err: ErrNoRecords}
		}
		sheet = sheets[0]
	}
	source := fmt.Sprintf("%s[%s]", path, sheet)

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	if len(rows) == 0 {
		return nil, &LoadError{Source: source, Err: ErrNoRecords}
	}

	parser, err := newTableParser(source, rows[0], o.schema)
	if err != nil {
		return nil, err
	}

	var records []engine.Record
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		rec, err := parser.parseRow(i+1, row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	logging.Debugf("📗 Read %d rows from sheet %q", len(records), sheet)
	return parser.view(records), nil
}
