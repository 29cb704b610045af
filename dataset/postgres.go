package dataset

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/spektr-org/pokedash/engine"
	"github.com/spektr-org/pokedash/logging"
)

// pokemonRow is one row of the Postgres pokemon table.
type pokemonRow struct {
	Name      string  `db:"name"`
	Type      string  `db:"type"`
	HP        float64 `db:"hp"`
	Attack    float64 `db:"attack"`
	Defense   float64 `db:"defense"`
	Speed     float64 `db:"speed"`
	SpAttack  float64 `db:"sp_attack"`
	SpDefense float64 `db:"sp_defense"`
	Total     float64 `db:"total"`
}

var pokemonAdapter = engine.NewDomainAdapter[pokemonRow]().
	Dimension("name", func(p pokemonRow) string { return p.Name }).
	Dimension("type", func(p pokemonRow) string { return p.Type }).
	Measure("hp", func(p pokemonRow) float64 { return p.HP }).
	Measure("attack", func(p pokemonRow) float64 { return p.Attack }).
	Measure("defense", func(p pokemonRow) float64 { return p.Defense }).
	Measure("speed", func(p pokemonRow) float64 { return p.Speed }).
	Measure("sp_attack", func(p pokemonRow) float64 { return p.SpAttack }).
	Measure("sp_defense", func(p pokemonRow) float64 { return p.SpDefense }).
	Measure("total", func(p pokemonRow) float64 { return p.Total })

// adapterKeys lists the columns pokemonAdapter exposes, dimensions first.
func adapterKeys() []string {
	cols := pokemonAdapter.Bind(nil)
	keys := make([]string, 0, len(cols.DimensionKeys())+len(cols.MeasureKeys()))
	keys = append(keys, cols.DimensionKeys()...)
	return append(keys, cols.MeasureKeys()...)
}

// identifier accepts "table" or "schema.table".
var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

func isPostgresDSN(source string) bool {
	return strings.HasPrefix(source, "postgres://") || strings.HasPrefix(source, "postgresql://")
}

// redactDSN drops the password so the DSN can be logged.
func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return "postgres://<invalid dsn>"
	}
	if u.User != nil {
		u.User = url.User(u.User.Username())
	}
	return u.String()
}

func pokemonQuery(table string) (string, error) {
	if !identifier.MatchString(table) {
		return "", fmt.Errorf("invalid table name %q", table)
	}
	return fmt.Sprintf(`
		SELECT
			name, type,
			hp, attack, defense, speed,
			sp_attack, sp_defense, total
		FROM %s`, table), nil
}

// loadPostgres reads the whole table once. name is the redacted source used in
// errors and logs.
func loadPostgres(ctx context.Context, dsn, name string, o *options) (engine.RecordView, error) {
	query, err := pokemonQuery(o.table)
	if err != nil {
		return nil, &LoadError{Source: name, Err: err}
	}
	if err := o.schema.Validate(adapterKeys()); err != nil {
		return nil, &LoadError{Source: name, Err: err}
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, &LoadError{Source: name, Err: fmt.Errorf("failed to connect: %w", err)}
	}
	defer db.Close()

	var rows []pokemonRow
	if err := db.SelectContext(ctx, &rows, query); err != nil {
		return nil, &LoadError{Source: name, Err: fmt.Errorf("failed to query %s: %w", o.table, err)}
	}

	logging.Debugf("🐘 Read %d rows from table %s", len(rows), o.table)
	return pokemonAdapter.Bind(rows), nil
}
