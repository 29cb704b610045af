package engine

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/spektr-org/pokedash/schema"
)

func TestEveryKindHasExactlyOneFamily(t *testing.T) {
	counts := map[Family]int{}
	seen := map[string]bool{}
	for _, k := range AllChartKinds {
		f := k.Family()
		if f == FamilyUnknown {
			t.Errorf("kind %s has no family", k)
		}
		counts[f]++
		if seen[k.String()] {
			t.Errorf("duplicate selector value %q", k)
		}
		seen[k.String()] = true
		if k.Label() == "" || k.Primitive() == "" {
			t.Errorf("kind %s missing label or primitive", k)
		}
	}

	assertEqual(t, len(AllChartKinds), 16, "kind count")
	assertEqual(t, counts[FamilyProportion], 3, "proportion kinds")
	assertEqual(t, counts[FamilyPolar], 3, "polar kinds")
	assertEqual(t, counts[FamilyCartesian], 10, "cartesian kinds")
}

func TestKindFamilies(t *testing.T) {
	cases := []struct {
		value  string
		family Family
	}{
		{"pie", FamilyProportion},
		{"sunburst", FamilyProportion},
		{"treemap", FamilyProportion},
		{"line_polar", FamilyPolar},
		{"scatter_polar", FamilyPolar},
		{"bar_polar", FamilyPolar},
		{"bar", FamilyCartesian},
		{"line", FamilyCartesian},
		{"scatter", FamilyCartesian},
		{"histogram", FamilyCartesian},
		{"box", FamilyCartesian},
		{"violin", FamilyCartesian},
		{"heatmap", FamilyCartesian},
		{"density_contour", FamilyCartesian},
		{"area", FamilyCartesian},
		{"funnel", FamilyCartesian},
	}
	for _, c := range cases {
		k, err := ParseChartKind(c.value)
		if err != nil {
			t.Fatalf("ParseChartKind(%q): %v", c.value, err)
		}
		if k.Family() != c.family {
			t.Errorf("%s family = %s, want %s", c.value, k.Family(), c.family)
		}
		if k.String() != c.value {
			t.Errorf("round trip %q → %q", c.value, k.String())
		}
	}
}

func TestHeatmapUsesDensityPrimitive(t *testing.T) {
	assertEqual(t, KindHeatmap.Primitive(), "density_heatmap", "heatmap primitive")
	assertEqual(t, KindHeatmap.String(), "heatmap", "heatmap selector value")
	assertEqual(t, KindDensityContour.Primitive(), "density_contour", "density contour primitive")
}

func TestParseChartKindRejectsUnknown(t *testing.T) {
	for _, v := range []string{"", "Bar", "heat_map", "unknown_kind"} {
		if _, err := ParseChartKind(v); !errors.Is(err, ErrUnknownChartKind) {
			t.Errorf("ParseChartKind(%q) error = %v", v, err)
		}
	}
	assertEqual(t, ChartKind(99).Family(), FamilyUnknown, "out of range family")
	assertEqual(t, ChartKind(99).Valid(), false, "out of range valid")
}

func TestChartKindJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Kind   ChartKind `json:"kind"`
		Family Family    `json:"family"`
	}{KindScatterPolar, FamilyPolar})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	assertEqual(t, string(b), `{"kind":"scatter_polar","family":"polar"}`, "json")

	if _, err := json.Marshal(struct{ Kind ChartKind }{ChartKind(99)}); !errors.Is(err, ErrUnknownChartKind) {
		t.Errorf("expected ErrUnknownChartKind encoding an invalid kind, got %v", err)
	}
}

func TestMetrics(t *testing.T) {
	assertEqual(t, len(AllMetrics), 7, "metric count")
	for _, m := range AllMetrics {
		if m.Label() == "" {
			t.Errorf("metric %s has no label", m)
		}
	}
	assertEqual(t, MetricSpAttack.Label(), "Special Attack", "sp_attack label")
	for _, mm := range schema.Pokemon().Measures {
		assertEqual(t, Metric(mm.Key).Label(), mm.DisplayName, "label of "+mm.Key)
	}
	assertEqual(t, Metric("luck").Label(), "", "unknown metric label")
	if _, err := ParseMetric("HP"); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("ParseMetric(HP) should be case-sensitive, got %v", err)
	}
}
