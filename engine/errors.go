package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownChartKind indicates a kind outside the recognized set.
var ErrUnknownChartKind = errors.New("unknown chart kind")

// ErrUnknownMetric indicates a metric outside the recognized set.
var ErrUnknownMetric = errors.New("unknown metric")

// UnknownChartKindError reports the offending kind value.
// The selector options and the dispatch table disagree when this occurs.
type UnknownChartKindError struct {
	Kind string
}

func (e *UnknownChartKindError) Error() string {
	return fmt.Sprintf("%v: %q (expected one of %s)", ErrUnknownChartKind, e.Kind, kindValues())
}

func (e *UnknownChartKindError) Unwrap() error {
	return ErrUnknownChartKind
}

// UnknownMetricError reports the offending metric value.
type UnknownMetricError struct {
	Metric string
}

func (e *UnknownMetricError) Error() string {
	return fmt.Sprintf("%v: %q (expected one of %s)", ErrUnknownMetric, e.Metric, metricValues())
}

func (e *UnknownMetricError) Unwrap() error {
	return ErrUnknownMetric
}

func kindValues() string {
	vals := make([]string, len(AllChartKinds))
	for i, k := range AllChartKinds {
		vals[i] = k.String()
	}
	return strings.Join(vals, ", ")
}

func metricValues() string {
	vals := make([]string, len(AllMetrics))
	for i, m := range AllMetrics {
		vals[i] = string(m)
	}
	return strings.Join(vals, ", ")
}
