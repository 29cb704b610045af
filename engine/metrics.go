package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spektr-org/pokedash/schema"
)

// Metric is one of the seven numeric Pokémon attributes.
type Metric string

const (
	MetricHP        Metric = "hp"
	MetricAttack    Metric = "attack"
	MetricDefense   Metric = "defense"
	MetricSpeed     Metric = "speed"
	MetricSpAttack  Metric = "sp_attack"
	MetricSpDefense Metric = "sp_defense"
	MetricTotal     Metric = "total"
)

// DefaultMetric is used when the metric selector is empty.
const DefaultMetric = MetricHP

// AllMetrics lists the metrics in selector order.
var AllMetrics = []Metric{
	MetricHP, MetricAttack, MetricDefense, MetricSpeed,
	MetricSpAttack, MetricSpDefense, MetricTotal,
}

// metricLabels holds the schema display name of every recognized metric.
var metricLabels = measureLabels(schema.Pokemon())

func measureLabels(sch schema.Config) map[Metric]string {
	labels := make(map[Metric]string, len(AllMetrics))
	for _, m := range AllMetrics {
		labels[m] = string(m)
	}
	for _, mm := range sch.Measures {
		if _, ok := labels[Metric(mm.Key)]; ok && mm.DisplayName != "" {
			labels[Metric(mm.Key)] = mm.DisplayName
		}
	}
	return labels
}

// Label returns the human-readable selector label.
func (m Metric) Label() string {
	return metricLabels[m]
}

// Valid reports whether m is a recognized metric.
func (m Metric) Valid() bool {
	_, ok := metricLabels[m]
	return ok
}

// ParseMetric resolves a selector value to a Metric.
func ParseMetric(s string) (Metric, error) {
	m := Metric(s)
	if !m.Valid() {
		return "", &UnknownMetricError{Metric: s}
	}
	return m, nil
}

// Capitalize upper-cases the first letter and lower-cases the rest.
// "hp" → "Hp", "sp_attack" → "Sp_attack".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
