package engine

// ============================================================================
// CHART BUILDER — Produces ChartConfig from a resolved ChartSpec
// ============================================================================
// One series, one point per record in the subset: label from the name field,
// value from the metric field. Renderers that cannot consume a ChartSpec
// directly (static images, spreadsheets) draw from this.
// ============================================================================

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// BuildChart produces a ChartConfig from a ChartSpec.
// An empty subset yields a config with one empty series.
func BuildChart(spec *ChartSpec) *ChartConfig {
	if spec == nil {
		return nil
	}

	config := &ChartConfig{
		ChartType:  spec.Kind.String(),
		Family:     spec.Family.String(),
		Title:      spec.Title,
		ShowLegend: spec.Family == FamilyProportion,
		ShowGrid:   spec.Family == FamilyCartesian,
	}

	if spec.Family == FamilyCartesian {
		config.XAxis = LabelForField(spec.Bindings.X)
		config.YAxis = LabelForField(spec.Bindings.Y)
	}

	config.Series = buildSingleSeries(spec)
	if spec.Family == FamilyProportion {
		// one color per slice
		config.Colors = assignColors(len(config.Series[0].Data))
	} else {
		config.Colors = assignColors(len(config.Series))
		config.Series[0].Color = config.Colors[0]
	}
	return config
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func buildSingleSeries(spec *ChartSpec) []ChartSeries {
	labels := spec.Labels()
	values := spec.Values()

	points := make([]ChartPoint, 0, len(labels))
	for i := range labels {
		points = append(points, ChartPoint{
			Label: labels[i],
			Value: RoundTo2(values[i]),
		})
	}

	name := spec.Metric.Label()
	if name == "" {
		name = "Value"
	}
	return []ChartSeries{{
		Name: name,
		Data: points,
	}}
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
