package engine

// ============================================================================
// RESOLVER OPTIONS — Functional options for NewResolver()
// ============================================================================

// Option configures resolver behavior via functional options pattern.
type Option func(*config)

type config struct {
	CategoryDimension string    // dimension the type selector filters on
	NameDimension     string    // dimension holding the record label
	DefaultMetric     Metric    // metric used when Selection.Metric is empty
	DefaultKind       ChartKind // kind used when Selection.Kind is empty
	TitleFormat       string    // fmt template: metric label, type
}

// WithCategoryDimension sets the dimension the type selector filters on.
func WithCategoryDimension(key string) Option {
	return func(c *config) {
		c.CategoryDimension = key
	}
}

// WithNameDimension sets the dimension bound to x / names / theta.
func WithNameDimension(key string) Option {
	return func(c *config) {
		c.NameDimension = key
	}
}

// WithDefaultMetric sets the metric used when the metric selector is empty.
func WithDefaultMetric(m Metric) Option {
	return func(c *config) {
		c.DefaultMetric = m
	}
}

// WithDefaultKind sets the kind used when the kind selector is empty.
func WithDefaultKind(k ChartKind) Option {
	return func(c *config) {
		c.DefaultKind = k
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		CategoryDimension: "type",
		NameDimension:     "name",
		DefaultMetric:     DefaultMetric,
		DefaultKind:       DefaultChartKind,
		TitleFormat:       "%s of %s Type Pokémon",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
