package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ============================================================================
// AGGREGATORS — Measure statistics via RecordView
// ============================================================================
// All functions operate on RecordView — zero-copy access to any data source.
// ============================================================================

// SumMeasure sums a named measure across a view.
func SumMeasure(view RecordView, measure string) float64 {
	var total float64
	for i := 0; i < view.Len(); i++ {
		total += view.Measure(i, measure)
	}
	return total
}

// AvgMeasure computes average of a named measure.
func AvgMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	return SumMeasure(view, measure) / float64(n)
}

// MaxMeasure returns the largest value of a named measure.
func MaxMeasure(view RecordView, measure string) float64 {
	_, v := ArgMaxMeasure(view, measure)
	return v
}

// ArgMaxMeasure returns the index and value of the largest measure.
// The first record wins ties. Index is -1 for an empty view.
func ArgMaxMeasure(view RecordView, measure string) (int, float64) {
	idx := -1
	m := math.Inf(-1)
	for i := 0; i < view.Len(); i++ {
		if v := view.Measure(i, measure); idx < 0 || v > m {
			idx, m = i, v
		}
	}
	if idx < 0 {
		return -1, 0
	}
	return idx, m
}

// MinMeasure returns the smallest value of a named measure.
func MinMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	m := math.Inf(1)
	for i := 0; i < n; i++ {
		if v := view.Measure(i, measure); v < m {
			m = v
		}
	}
	return m
}

// UniqueValues returns distinct non-empty values for a dimension, in first-occurrence order.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	var result []string
	for i := 0; i < view.Len(); i++ {
		val := view.Dimension(i, dimension)
		if val != "" && !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatNumber prints whole numbers without decimals and fractions with two.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return fmt.Sprintf("%.2f", v)
}

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// LabelForDimension returns a capitalized label for a dimension.
func LabelForDimension(dimension string) string {
	if len(dimension) == 0 {
		return ""
	}
	return strings.ToUpper(dimension[:1]) + dimension[1:]
}

// LabelForField prefers the metric label and falls back to LabelForDimension.
func LabelForField(field string) string {
	if l := Metric(field).Label(); l != "" {
		return l
	}
	return LabelForDimension(field)
}
