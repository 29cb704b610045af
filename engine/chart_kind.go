package engine

import (
	"fmt"
)

// ============================================================================
// CHART KINDS — closed set of sixteen kinds, each tagged with a binding family
// ============================================================================
// Family decides which roles a ChartSpec binds:
//   Proportion → names / values
//   Polar      → r / theta
//   Cartesian  → x / y
// ============================================================================

// Family groups chart kinds that share field-binding rules.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyProportion
	FamilyPolar
	FamilyCartesian
)

func (f Family) String() string {
	switch f {
	case FamilyProportion:
		return "proportion"
	case FamilyPolar:
		return "polar"
	case FamilyCartesian:
		return "cartesian"
	}
	return "unknown"
}

// MarshalText encodes the family by name.
func (f Family) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// ChartKind is one of the recognized chart kinds.
type ChartKind int

const (
	KindBar ChartKind = iota + 1
	KindLine
	KindScatter
	KindHistogram
	KindBox
	KindViolin
	KindPie
	KindSunburst
	KindTreemap
	KindHeatmap
	KindDensityContour
	KindArea
	KindFunnel
	KindLinePolar
	KindScatterPolar
	KindBarPolar
)

// AllChartKinds lists every kind in selector order.
var AllChartKinds = []ChartKind{
	KindBar, KindLine, KindScatter, KindHistogram, KindBox, KindViolin,
	KindPie, KindSunburst, KindTreemap, KindHeatmap, KindDensityContour,
	KindArea, KindFunnel, KindLinePolar, KindScatterPolar, KindBarPolar,
}

// DefaultChartKind is used when the kind selector is empty.
const DefaultChartKind = KindBar

// kindInfo is the selector value, display label and upstream primitive for a kind.
type kindInfo struct {
	value     string
	label     string
	primitive string
}

func (k ChartKind) info() (kindInfo, bool) {
	switch k {
	case KindBar:
		return kindInfo{"bar", "Bar", "bar"}, true
	case KindLine:
		return kindInfo{"line", "Line", "line"}, true
	case KindScatter:
		return kindInfo{"scatter", "Scatter", "scatter"}, true
	case KindHistogram:
		return kindInfo{"histogram", "Histogram", "histogram"}, true
	case KindBox:
		return kindInfo{"box", "Box", "box"}, true
	case KindViolin:
		return kindInfo{"violin", "Violin", "violin"}, true
	case KindPie:
		return kindInfo{"pie", "Pie", "pie"}, true
	case KindSunburst:
		return kindInfo{"sunburst", "Sunburst", "sunburst"}, true
	case KindTreemap:
		return kindInfo{"treemap", "Treemap", "treemap"}, true
	case KindHeatmap:
		// "heatmap" selects the density heatmap, not a matrix heatmap.
		return kindInfo{"heatmap", "Heatmap", "density_heatmap"}, true
	case KindDensityContour:
		return kindInfo{"density_contour", "Density Contour", "density_contour"}, true
	case KindArea:
		return kindInfo{"area", "Area", "area"}, true
	case KindFunnel:
		return kindInfo{"funnel", "Funnel", "funnel"}, true
	case KindLinePolar:
		return kindInfo{"line_polar", "Polar Line", "line_polar"}, true
	case KindScatterPolar:
		return kindInfo{"scatter_polar", "Polar Scatter", "scatter_polar"}, true
	case KindBarPolar:
		return kindInfo{"bar_polar", "Polar Bar", "bar_polar"}, true
	}
	return kindInfo{}, false
}

// Family returns the binding family of k, or FamilyUnknown for an invalid kind.
func (k ChartKind) Family() Family {
	switch k {
	case KindPie, KindSunburst, KindTreemap:
		return FamilyProportion
	case KindLinePolar, KindScatterPolar, KindBarPolar:
		return FamilyPolar
	case KindBar, KindLine, KindScatter, KindHistogram, KindBox, KindViolin,
		KindHeatmap, KindDensityContour, KindArea, KindFunnel:
		return FamilyCartesian
	}
	return FamilyUnknown
}

// String returns the selector value ("bar", "scatter_polar", ...).
func (k ChartKind) String() string {
	if ki, ok := k.info(); ok {
		return ki.value
	}
	return fmt.Sprintf("ChartKind(%d)", int(k))
}

// Label returns the human-readable selector label.
func (k ChartKind) Label() string {
	ki, _ := k.info()
	return ki.label
}

// Primitive returns the name of the upstream plotting call for k.
func (k ChartKind) Primitive() string {
	ki, _ := k.info()
	return ki.primitive
}

// Valid reports whether k is one of the recognized kinds.
func (k ChartKind) Valid() bool {
	_, ok := k.info()
	return ok
}

// MarshalText encodes the kind by selector value.
func (k ChartKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, &UnknownChartKindError{Kind: k.String()}
	}
	return []byte(k.String()), nil
}

// ParseChartKind resolves a selector value to a ChartKind.
// Matching is exact; unknown values return *UnknownChartKindError.
func ParseChartKind(s string) (ChartKind, error) {
	for _, k := range AllChartKinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, &UnknownChartKindError{Kind: s}
}
