package render

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/pokedash/engine"
)

// ============================================================================
// XLSX EXPORT — selected subset + native Excel chart
// ============================================================================
// Sheet layout: one header row of dataset keys, one row per record, and the
// chart anchored to the right of the table. The chart reads the name column
// as categories and the metric column as values.
// ============================================================================

// SheetName is the worksheet holding the exported subset.
const SheetName = "Pokemon"

// excelChartType maps a kind onto the closest native Excel chart.
func excelChartType(kind engine.ChartKind) excelize.ChartType {
	switch kind {
	case engine.KindLine, engine.KindDensityContour:
		return excelize.Line
	case engine.KindScatter:
		return excelize.Scatter
	case engine.KindArea:
		return excelize.Area
	case engine.KindFunnel:
		return excelize.Bar
	case engine.KindPie, engine.KindTreemap:
		return excelize.Pie
	case engine.KindSunburst:
		return excelize.Doughnut
	case engine.KindLinePolar, engine.KindScatterPolar, engine.KindBarPolar:
		return excelize.Radar
	default:
		return excelize.Col
	}
}

// WriteWorkbook writes the subset of spec and a chart of it as an xlsx file.
// An empty subset yields the header row and no chart.
func WriteWorkbook(w io.Writer, spec *engine.ChartSpec) error {
	if spec == nil {
		return errNilSpec
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	dims, meas := columnKeys(spec)
	header := make([]interface{}, 0, len(dims)+len(meas))
	for _, k := range dims {
		header = append(header, k)
	}
	for _, k := range meas {
		header = append(header, k)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}

	for i, rec := range spec.Data {
		row := make([]interface{}, 0, len(header))
		for _, k := range dims {
			row = append(row, rec.Dimensions[k])
		}
		for _, k := range meas {
			row = append(row, rec.Measures[k])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return err
		}
	}

	if len(spec.Data) > 0 {
		if err := addChart(f, spec, dims, meas); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func addChart(f *excelize.File, spec *engine.ChartSpec, dims, meas []string) error {
	label := labelBinding(spec.Bindings)
	labelCol, valueCol := 0, 0
	for i, k := range dims {
		if k == label {
			labelCol = i + 1
		}
	}
	for i, k := range meas {
		if k == string(spec.Metric) {
			valueCol = len(dims) + i + 1
		}
	}
	if labelCol == 0 || valueCol == 0 {
		return fmt.Errorf("render: bound columns missing from subset")
	}

	labelName, err := excelize.ColumnNumberToName(labelCol)
	if err != nil {
		return err
	}
	valueName, err := excelize.ColumnNumberToName(valueCol)
	if err != nil {
		return err
	}
	anchorName, err := excelize.ColumnNumberToName(len(dims) + len(meas) + 2)
	if err != nil {
		return err
	}
	last := len(spec.Data) + 1

	legend := "none"
	if spec.Family == engine.FamilyProportion {
		legend = "right"
	}

	return f.AddChart(SheetName, anchorName+"2", &excelize.Chart{
		Type: excelChartType(spec.Kind),
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$%s$1", SheetName, valueName),
			Categories: fmt.Sprintf("%s!$%s$2:$%s$%d", SheetName, labelName, labelName, last),
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", SheetName, valueName, valueName, last),
		}},
		Title:  []excelize.RichTextRun{{Text: spec.Title}},
		Legend: excelize.ChartLegend{Position: legend},
	})
}

// columnKeys returns the dataset keys present in the subset, dimensions first.
func columnKeys(spec *engine.ChartSpec) ([]string, []string) {
	if spec.View != nil {
		return spec.View.DimensionKeys(), spec.View.MeasureKeys()
	}
	var dims, meas []string
	if label := labelBinding(spec.Bindings); label != "" {
		dims = append(dims, label)
	}
	if spec.Metric != "" {
		meas = append(meas, string(spec.Metric))
	}
	return dims, meas
}

// labelBinding is whichever of x, names or theta the family binds.
func labelBinding(b engine.Bindings) string {
	switch {
	case b.X != "":
		return b.X
	case b.Names != "":
		return b.Names
	default:
		return b.Theta
	}
}
