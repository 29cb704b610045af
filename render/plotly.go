package render

import (
	"fmt"

	"github.com/spektr-org/pokedash/engine"
)

// ============================================================================
// PLOTLY FIGURE — ChartSpec → plotly.js {data, layout}
// ============================================================================
// One trace per figure. Cartesian kinds read x/y, proportion kinds read
// labels/values, polar kinds read r/theta. The browser calls
// Plotly.react(div, fig.data, fig.layout).
// ============================================================================

// Trace is a single plotly.js trace object.
type Trace map[string]interface{}

// Figure is a plotly.js figure.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Layout carries the figure title and, for cartesian kinds, axis titles.
type Layout struct {
	Title      Text  `json:"title"`
	XAxis      *Axis `json:"xaxis,omitempty"`
	YAxis      *Axis `json:"yaxis,omitempty"`
	ShowLegend bool  `json:"showlegend"`
}

// Axis is a cartesian axis.
type Axis struct {
	Title Text `json:"title"`
}

// Text is a plotly title object.
type Text struct {
	Text string `json:"text"`
}

// BuildFigure maps a ChartSpec onto the plotly.js trace for its kind.
func BuildFigure(spec *engine.ChartSpec) (*Figure, error) {
	if spec == nil {
		return nil, errNilSpec
	}
	labels := spec.Labels()
	values := spec.Values()

	var trace Trace
	switch spec.Kind {
	case engine.KindBar:
		trace = xy("bar", labels, values)
	case engine.KindLine:
		trace = xy("scatter", labels, values)
		trace["mode"] = "lines"
	case engine.KindScatter:
		trace = xy("scatter", labels, values)
		trace["mode"] = "markers"
	case engine.KindHistogram:
		trace = xy("histogram", labels, values)
		trace["histfunc"] = "sum"
	case engine.KindBox:
		trace = xy("box", labels, values)
	case engine.KindViolin:
		trace = xy("violin", labels, values)
	case engine.KindHeatmap:
		trace = xy("histogram2d", labels, values)
	case engine.KindDensityContour:
		trace = xy("histogram2dcontour", labels, values)
	case engine.KindArea:
		trace = xy("scatter", labels, values)
		trace["mode"] = "lines"
		trace["stackgroup"] = "1"
	case engine.KindFunnel:
		trace = xy("funnel", labels, values)
		trace["orientation"] = "v"
	case engine.KindPie:
		trace = Trace{"type": "pie", "labels": labels, "values": values}
	case engine.KindSunburst:
		trace = hierarchy("sunburst", labels, values)
	case engine.KindTreemap:
		trace = hierarchy("treemap", labels, values)
	case engine.KindLinePolar:
		trace = polar("scatterpolar", labels, values)
		trace["mode"] = "lines"
	case engine.KindScatterPolar:
		trace = polar("scatterpolar", labels, values)
		trace["mode"] = "markers"
	case engine.KindBarPolar:
		trace = polar("barpolar", labels, values)
	default:
		return nil, &engine.UnknownChartKindError{Kind: spec.Kind.String()}
	}
	trace["name"] = spec.Metric.Label()

	fig := &Figure{
		Data: []Trace{trace},
		Layout: Layout{
			Title:      Text{Text: spec.Title},
			ShowLegend: spec.Family == engine.FamilyProportion,
		},
	}
	if spec.Family == engine.FamilyCartesian {
		fig.Layout.XAxis = &Axis{Title: Text{Text: spec.Bindings.X}}
		fig.Layout.YAxis = &Axis{Title: Text{Text: spec.Bindings.Y}}
	}
	return fig, nil
}

func xy(typ string, labels []string, values []float64) Trace {
	return Trace{"type": typ, "x": labels, "y": values}
}

func polar(typ string, labels []string, values []float64) Trace {
	return Trace{"type": typ, "r": values, "theta": labels}
}

// hierarchy builds a flat sunburst/treemap: every label is a root.
func hierarchy(typ string, labels []string, values []float64) Trace {
	parents := make([]string, len(labels))
	return Trace{"type": typ, "labels": labels, "parents": parents, "values": values}
}

// TraceType returns the plotly.js trace type used for a kind.
func TraceType(kind engine.ChartKind) (string, error) {
	fig, err := BuildFigure(&engine.ChartSpec{Kind: kind, Family: kind.Family()})
	if err != nil {
		return "", err
	}
	t, ok := fig.Data[0]["type"].(string)
	if !ok {
		return "", fmt.Errorf("trace for %s has no type", kind)
	}
	return t, nil
}
