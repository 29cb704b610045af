package engine

import (
	"fmt"
)

// BuildText summarizes the metric over the subset behind a ChartSpec.
func BuildText(spec *ChartSpec) *TextData {
	if spec == nil || spec.View == nil || spec.View.Len() == 0 {
		typ := ""
		if spec != nil {
			typ = spec.Type
		}
		return &TextData{
			Reply: fmt.Sprintf("No %s type Pokémon in the dataset.", typ),
		}
	}

	view := spec.View
	measure := string(spec.Metric)
	idx, top := ArgMaxMeasure(view, measure)

	data := &TextData{
		Count:     view.Len(),
		Average:   RoundTo2(AvgMeasure(view, measure)),
		Min:       MinMeasure(view, measure),
		Max:       top,
		Total:     SumMeasure(view, measure),
		Strongest: view.Dimension(idx, spec.labelField()),
	}

	data.Reply = fmt.Sprintf("%s %s type Pokémon, average %s %s. Highest: %s (%s).",
		FormatInt(data.Count), spec.Type, spec.Metric.Label(), FormatNumber(data.Average),
		data.Strongest, FormatNumber(data.Max))
	return data
}
