package schema

import (
	"fmt"
	"strings"
	"unicode"
)

// ============================================================================
// SCHEMA — Describes the shape of the dataset for the loader + view layer
// ============================================================================
// The loader uses the schema to classify columns (dimension vs measure) and to
// reject files missing required columns. The engine takes its metric labels
// from the measure display names.
// ============================================================================

// Config describes the complete shape of a dataset.
type Config struct {
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`

	Dimensions []DimensionMeta `json:"dimensions"`
	Measures   []MeasureMeta   `json:"measures"`
}

// DimensionMeta describes a string field used for labeling/filtering.
type DimensionMeta struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Description string `json:"description,omitempty"`
	Filterable  bool   `json:"filterable"`
	Required    bool   `json:"required"`
}

// MeasureMeta describes a numeric field that can be charted.
type MeasureMeta struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Description string `json:"description,omitempty"`
	Unit        string `json:"unit,omitempty"` // "points"
	Required    bool   `json:"required"`
}

// Pokemon returns the schema of the Pokémon stats table.
func Pokemon() Config {
	return Config{
		Name:        "Pokémon",
		Version:     "1.0",
		Description: "Base stats per Pokémon, one row per species",
		Dimensions: []DimensionMeta{
			{Key: "name", DisplayName: "Name", Required: true},
			{Key: "type", DisplayName: "Type", Description: "Primary type", Filterable: true, Required: true},
		},
		Measures: []MeasureMeta{
			pointMeasure("hp", "HP"),
			pointMeasure("attack", "Attack"),
			pointMeasure("defense", "Defense"),
			pointMeasure("speed", "Speed"),
			pointMeasure("sp_attack", "Special Attack"),
			pointMeasure("sp_defense", "Special Defense"),
			pointMeasure("total", "Total"),
		},
	}
}

func pointMeasure(key, displayName string) MeasureMeta {
	return MeasureMeta{Key: key, DisplayName: displayName, Unit: "points", Required: true}
}

// DimensionKeys returns all dimension keys.
func (c Config) DimensionKeys() []string {
	keys := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		keys[i] = d.Key
	}
	return keys
}

// MeasureKeys returns all measure keys.
func (c Config) MeasureKeys() []string {
	keys := make([]string, len(c.Measures))
	for i, m := range c.Measures {
		keys[i] = m.Key
	}
	return keys
}

// IsDimension reports whether key is a declared dimension.
func (c Config) IsDimension(key string) bool {
	for _, d := range c.Dimensions {
		if d.Key == key {
			return true
		}
	}
	return false
}

// CategoryKey is the first filterable dimension: the column the type selector
// filters on. Falls back to "type".
func (c Config) CategoryKey() string {
	for _, d := range c.Dimensions {
		if d.Filterable {
			return d.Key
		}
	}
	return "type"
}

// IsMeasure reports whether key is a declared measure.
func (c Config) IsMeasure(key string) bool {
	for _, m := range c.Measures {
		if m.Key == key {
			return true
		}
	}
	return false
}

// ============================================================================
// VALIDATION
// ============================================================================

// MissingColumnsError lists required columns absent from a header row.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// Validate checks normalized header keys against the required columns.
func (c Config) Validate(keys []string) error {
	present := make(map[string]bool, len(keys))
	for _, k := range keys {
		present[k] = true
	}

	var missing []string
	for _, d := range c.Dimensions {
		if d.Required && !present[d.Key] {
			missing = append(missing, d.Key)
		}
	}
	for _, m := range c.Measures {
		if m.Required && !present[m.Key] {
			missing = append(missing, m.Key)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// ============================================================================
// STRING UTILITIES
// ============================================================================

// NormalizeKey converts "Column Name" or "columnName" → "column_name".
func NormalizeKey(s string) string {
	s = strings.TrimPrefix(s, "\ufeff") // UTF-8 BOM on the first header cell
	s = strings.TrimSpace(s)

	// Handle camelCase: insert underscore before uppercase letters
	var result strings.Builder
	var prev rune
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			result.WriteRune('_')
		}
		result.WriteRune(r)
		prev = r
	}

	s = result.String()
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	s = strings.Trim(s, "_")
	return s
}
