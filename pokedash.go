// Package pokedash is a single-page Pokémon stats dashboard.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/pokedash/dataset"
//	    "github.com/spektr-org/pokedash/engine"
//	)
//
//	ds, err := dataset.Load(ctx, "data/pokemon.csv")
//	spec, err := ds.Resolver().Resolve(engine.Selection{
//	    Type: "Fire", Metric: "attack", Kind: "pie",
//	})
//
// The dataset is loaded once and never mutated. The resolver maps the three
// selector values (type, metric, chart kind) to a ChartSpec; the render
// package turns a ChartSpec into a Plotly figure, a PNG/SVG image, an xlsx
// workbook or CSV, and the web package serves all of them behind the page.
package pokedash
