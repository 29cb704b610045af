package engine

import (
	"fmt"
)

// ============================================================================
// TABLE BUILDER — Row per record of the selected subset
// ============================================================================
// Columns: every dimension of the view, then the selected metric.
// Summary: total and average of the metric.
// ============================================================================

// BuildTable lists the subset behind a ChartSpec.
func BuildTable(spec *ChartSpec) *TableData {
	if spec == nil || spec.View == nil || spec.View.Len() == 0 {
		title := ""
		if spec != nil {
			title = spec.Title
		}
		return &TableData{
			Title:   title,
			Columns: []Column{},
			Rows:    [][]string{},
		}
	}

	view := spec.View
	measure := string(spec.Metric)

	dimKeys := view.DimensionKeys()
	columns := make([]Column, 0, len(dimKeys)+1)
	for _, key := range dimKeys {
		columns = append(columns, Column{
			Key:   key,
			Label: LabelForDimension(key),
			Type:  "text",
			Align: "left",
		})
	}
	columns = append(columns, Column{
		Key:   measure,
		Label: LabelForField(measure),
		Type:  "number",
		Align: "right",
	})

	rows := make([][]string, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		row := make([]string, 0, len(columns))
		for _, key := range dimKeys {
			row = append(row, view.Dimension(i, key))
		}
		row = append(row, FormatNumber(view.Measure(i, measure)))
		rows = append(rows, row)
	}

	return &TableData{
		Title:   spec.Title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label: fmt.Sprintf("Total (%s records)", FormatInt(view.Len())),
			Values: map[string]string{
				measure:   FormatNumber(SumMeasure(view, measure)),
				"average": FormatNumber(RoundTo2(AvgMeasure(view, measure))),
			},
		},
	}
}
