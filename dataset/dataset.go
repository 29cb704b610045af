// Package dataset loads the Pokémon table once at startup and exposes it
// read-only to the resolver and the view layer.
//
// Sources are picked by shape:
//
//	data/pokemon.csv                → encoding/csv
//	data/pokemon.xlsx               → excelize (first sheet unless WithSheet)
//	postgres://user@host/db         → sqlx + lib/pq (table "pokemon" unless WithTable)
//
// Any failure to read or parse the source is returned as a *LoadError; callers
// treat it as fatal.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spektr-org/pokedash/engine"
	"github.com/spektr-org/pokedash/logging"
	"github.com/spektr-org/pokedash/schema"
)

// ErrNoRecords indicates a source with a header but no data rows.
var ErrNoRecords = errors.New("dataset has no records")

// ErrUnsupportedSource indicates a path with an unknown extension.
var ErrUnsupportedSource = errors.New("unsupported dataset source")

// LoadError carries the location of a load failure.
type LoadError struct {
	Source string
	Row    int    // 1-based data row, 0 when not row-specific
	Column string // normalized column key, empty when not column-specific
	Err    error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "load %s", e.Source)
	if e.Row > 0 {
		fmt.Fprintf(&b, ": row %d", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, ", column %q", e.Column)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ============================================================================
// DATASET
// ============================================================================

// Dataset is the immutable in-memory table.
type Dataset struct {
	source string
	schema schema.Config
	view   engine.RecordView
	types  []string
}

// New wraps an already-built view. The view must not be mutated afterwards.
func New(source string, sch schema.Config, view engine.RecordView) *Dataset {
	return &Dataset{
		source: source,
		schema: sch,
		view:   view,
		types:  engine.UniqueValues(view, sch.CategoryKey()),
	}
}

// View returns the read-only record view.
func (d *Dataset) View() engine.RecordView { return d.view }

// Len returns the number of records.
func (d *Dataset) Len() int { return d.view.Len() }

// Source returns where the dataset was loaded from, with credentials removed.
func (d *Dataset) Source() string { return d.source }

// Resolver builds a resolver over the dataset that filters on the schema's
// category column, so its Types match Dataset.Types.
func (d *Dataset) Resolver(opts ...engine.Option) *engine.Resolver {
	opts = append([]engine.Option{engine.WithCategoryDimension(d.schema.CategoryKey())}, opts...)
	return engine.NewResolver(d.view, opts...)
}

// Types returns distinct type values in first-occurrence order.
func (d *Dataset) Types() []string {
	out := make([]string, len(d.types))
	copy(out, d.types)
	return out
}


// ============================================================================
// OPTIONS
// ============================================================================

// Option configures Load.
type Option func(*options)

type options struct {
	schema schema.Config
	sheet  string
	table  string
}

// WithSheet selects a worksheet for xlsx sources.
func WithSheet(name string) Option {
	return func(o *options) { o.sheet = name }
}

// WithTable selects the table for Postgres sources.
func WithTable(name string) Option {
	return func(o *options) { o.table = name }
}

func applyOptions(opts []Option) *options {
	o := &options{
		schema: schema.Pokemon(),
		table:  "pokemon",
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ============================================================================
// LOAD
// ============================================================================

// Load reads a dataset from a file path or Postgres DSN.
func Load(ctx context.Context, source string, opts ...Option) (*Dataset, error) {
	o := applyOptions(opts)

	var (
		view engine.RecordView
		err  error
		name = source
	)
	switch {
	case isPostgresDSN(source):
		name = redactDSN(source)
		view, err = loadPostgres(ctx, source, name, o)
	default:
		switch strings.ToLower(filepath.Ext(source)) {
		case ".csv":
			view, err = loadCSVFile(source, o)
		case ".xlsx", ".xlsm":
			view, err = loadXLSXFile(source, o)
		default:
			err = &LoadError{Source: source, Err: fmt.Errorf("%w: %q", ErrUnsupportedSource, filepath.Ext(source))}
		}
	}
	if err != nil {
		return nil, err
	}

	if view.Len() == 0 {
		return nil, &LoadError{Source: name, Err: ErrNoRecords}
	}

	ds := New(name, o.schema, view)
	logging.Infof("📊 Loaded %d records from %s (%d types)", ds.Len(), name, len(ds.types))
	return ds, nil
}

func loadCSVFile(path string, o *options) (engine.RecordView, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	return ParseCSVView(path, data, o.schema)
}
