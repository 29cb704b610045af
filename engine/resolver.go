package engine

import (
	"fmt"

	"github.com/spektr-org/pokedash/logging"
)

// ============================================================================
// RESOLVER — Selection → ChartSpec
// ============================================================================
// Pipeline:
//   1. Default absent selector values (first type, "hp", "bar")
//   2. Validate kind and metric (unknown → typed error, no partial spec)
//   3. Filter dataset on the category dimension → SubView
//   4. Bind fields by the kind's family
//   5. Build the title
//
// The resolver holds only the read-only dataset view and its config.
// Resolve has no side effects and is safe for concurrent use.
// ============================================================================

// Resolver maps selector state to chart specifications over one dataset.
type Resolver struct {
	view  RecordView
	types []string
	cfg   *config
}

// NewResolver binds a resolver to a dataset view.
// Distinct category values are computed once here, in first-occurrence order.
func NewResolver(view RecordView, opts ...Option) *Resolver {
	cfg := applyOptions(opts)
	return &Resolver{
		view:  view,
		types: UniqueValues(view, cfg.CategoryDimension),
		cfg:   cfg,
	}
}

// Types returns the distinct category values in dataset order.
func (r *Resolver) Types() []string {
	out := make([]string, len(r.types))
	copy(out, r.types)
	return out
}

// DefaultType returns the value used when the type selector is empty.
func (r *Resolver) DefaultType() string {
	if len(r.types) == 0 {
		return ""
	}
	return r.types[0]
}

// Defaults returns the selection an all-empty Selection resolves to.
func (r *Resolver) Defaults() Selection {
	return Selection{
		Type:   r.DefaultType(),
		Metric: string(r.cfg.DefaultMetric),
		Kind:   r.cfg.DefaultKind.String(),
	}
}

// Normalize fills empty selector values with their defaults.
func (r *Resolver) Normalize(sel Selection) Selection {
	if sel.Type == "" {
		sel.Type = r.DefaultType()
	}
	if sel.Metric == "" {
		sel.Metric = string(r.cfg.DefaultMetric)
	}
	if sel.Kind == "" {
		sel.Kind = r.cfg.DefaultKind.String()
	}
	return sel
}

// Resolve produces the ChartSpec for a selection.
// Unknown kinds and metrics are errors; an unknown type yields an empty subset.
func (r *Resolver) Resolve(sel Selection) (*ChartSpec, error) {
	sel = r.Normalize(sel)

	kind, err := ParseChartKind(sel.Kind)
	if err != nil {
		return nil, err
	}
	metric, err := ParseMetric(sel.Metric)
	if err != nil {
		return nil, err
	}

	subset := FilterEqual(r.view, r.cfg.CategoryDimension, sel.Type)

	bindings, err := r.bind(kind, metric)
	if err != nil {
		return nil, err
	}

	logging.Debugf("🔧 Pokedash: resolved type=%s metric=%s kind=%s → %d of %d records",
		sel.Type, metric, kind, subset.Len(), r.view.Len())

	return &ChartSpec{
		Kind:      kind,
		Family:    kind.Family(),
		Primitive: kind.Primitive(),
		Title:     r.Title(metric, sel.Type),
		Type:      sel.Type,
		Metric:    metric,
		Bindings:  bindings,
		Data:      Materialize(subset),
		View:      subset,
	}, nil
}

// Title builds "<Metric capitalized> of <Type> Type Pokémon".
func (r *Resolver) Title(metric Metric, typ string) string {
	return fmt.Sprintf(r.cfg.TitleFormat, Capitalize(string(metric)), typ)
}

// bind assigns dataset fields to chart roles by family.
func (r *Resolver) bind(kind ChartKind, metric Metric) (Bindings, error) {
	name := r.cfg.NameDimension
	switch kind.Family() {
	case FamilyProportion:
		return Bindings{Names: name, Values: string(metric)}, nil
	case FamilyPolar:
		return Bindings{R: string(metric), Theta: name}, nil
	case FamilyCartesian:
		return Bindings{X: name, Y: string(metric)}, nil
	}
	return Bindings{}, &UnknownChartKindError{Kind: kind.String()}
}
