package engine

// ============================================================================
// POKEDASH ENGINE TYPES
// ============================================================================
// Record holds one dataset row as string dimensions + numeric measures.
// ChartSpec is the resolver's output: data subset, field bindings, kind, title.
// ChartConfig / TableData / TextData are render-ready derivatives of a ChartSpec.
//
// Dependencies: schema (metric labels) and logging. No third-party imports.
// ============================================================================

// ============================================================================
// RECORD — Generic data row
// ============================================================================

// Record is a single data row with string dimensions and numeric measures.
//
// Bulbasaur: Record{Dimensions["name"]="Bulbasaur", Dimensions["type"]="Grass", Measures["hp"]=45}
type Record struct {
	Dimensions map[string]string  `json:"dimensions"`
	Measures   map[string]float64 `json:"measures"`
}

// Filters define which records to include.
// Keys are dimension names. Values are allowed values.
// OR within a dimension, AND across dimensions. Empty = all.
type Filters struct {
	Dimensions map[string][]string `json:"dimensions"`
}

// IsEmpty returns true if no filters are set.
func (f Filters) IsEmpty() bool {
	if f.Dimensions == nil {
		return true
	}
	for _, vals := range f.Dimensions {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// ============================================================================
// SELECTION / CHART SPEC — Contract between view layer and renderers
// ============================================================================

// Selection is the current value of the three selectors.
// An empty field means the selector has no value yet.
type Selection struct {
	Type   string `json:"type"`
	Metric string `json:"metric"`
	Kind   string `json:"kind"`
}

// Bindings maps chart roles to dataset fields.
// Which roles are set depends on the chart family.
type Bindings struct {
	X      string `json:"x,omitempty"`
	Y      string `json:"y,omitempty"`
	Names  string `json:"names,omitempty"`
	Values string `json:"values,omitempty"`
	R      string `json:"r,omitempty"`
	Theta  string `json:"theta,omitempty"`
}

// ChartSpec is the fully resolved instruction set handed to a renderer.
type ChartSpec struct {
	Kind      ChartKind `json:"kind"`
	Family    Family    `json:"family"`
	Primitive string    `json:"primitive"` // upstream plotting call, e.g. "density_heatmap"
	Title     string    `json:"title"`
	Type      string    `json:"type"`   // resolved category value
	Metric    Metric    `json:"metric"` // resolved metric
	Bindings  Bindings  `json:"bindings"`
	Data      []Record  `json:"data"`

	// View is the zero-copy subset the Data slice was materialized from.
	View RecordView `json:"-"`
}

// Labels returns the values of the label-bearing field (x, names or theta) in row order.
func (s *ChartSpec) Labels() []string {
	field := s.labelField()
	out := make([]string, 0, len(s.Data))
	for _, r := range s.Data {
		out = append(out, r.Dimensions[field])
	}
	return out
}

// Values returns the values of the metric-bearing field (y, values or r) in row order.
func (s *ChartSpec) Values() []float64 {
	field := s.valueField()
	out := make([]float64, 0, len(s.Data))
	for _, r := range s.Data {
		out = append(out, r.Measures[field])
	}
	return out
}

func (s *ChartSpec) labelField() string {
	switch s.Family {
	case FamilyProportion:
		return s.Bindings.Names
	case FamilyPolar:
		return s.Bindings.Theta
	default:
		return s.Bindings.X
	}
}

func (s *ChartSpec) valueField() string {
	switch s.Family {
	case FamilyProportion:
		return s.Bindings.Values
	case FamilyPolar:
		return s.Bindings.R
	default:
		return s.Bindings.Y
	}
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig is a renderer-neutral series description of a ChartSpec.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Family     string        `json:"family"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals or aggregations for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// ============================================================================
// TEXT TYPES
// ============================================================================

// TextData is a short statistical answer about the selected subset.
type TextData struct {
	Reply     string  `json:"reply"`
	Count     int     `json:"count"`
	Average   float64 `json:"average"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Total     float64 `json:"total"`
	Strongest string  `json:"strongest,omitempty"` // name of the record holding Max
}
