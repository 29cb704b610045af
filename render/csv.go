package render

import (
	"encoding/csv"
	"io"

	"github.com/spektr-org/pokedash/engine"
)

// WriteCSV writes the chart series as two Sheets-ready columns: label, value.
func WriteCSV(w io.Writer, spec *engine.ChartSpec) error {
	cfg := engine.BuildChart(spec)
	if cfg == nil {
		return errNilSpec
	}

	xLabel, yLabel := cfg.XAxis, cfg.YAxis
	if xLabel == "" {
		xLabel = "Label"
	}
	if yLabel == "" {
		yLabel = cfg.Series[0].Name
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{xLabel, yLabel}); err != nil {
		return err
	}
	for _, p := range cfg.Series[0].Data {
		if err := cw.Write([]string{p.Label, engine.FormatNumber(p.Value)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
