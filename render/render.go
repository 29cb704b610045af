// Package render turns a resolved engine.ChartSpec into something a client can
// display: the ChartSpec itself as JSON, a Plotly figure for the browser, a static
// PNG or SVG drawn with go-chart, an Excel workbook with a native chart, or a
// two-column CSV of the series.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spektr-org/pokedash/engine"
)

// Format is an output encoding.
type Format string

const (
	FormatSpec   Format = "json"
	FormatFigure Format = "figure"
	FormatPNG    Format = "png"
	FormatSVG    Format = "svg"
	FormatXLSX   Format = "xlsx"
	FormatCSV    Format = "csv"
)

// AllFormats lists every supported format.
var AllFormats = []Format{FormatSpec, FormatFigure, FormatPNG, FormatSVG, FormatXLSX, FormatCSV}

var errNilSpec = errors.New("render: nil chart spec")

// ParseFormat accepts a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllFormats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// ContentType returns the MIME type of the encoded output.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatSVG:
		return "image/svg+xml"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "application/json"
	}
}

// Extension returns the file extension, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatFigure:
		return ".figure.json"
	case FormatSpec:
		return ".json"
	default:
		return "." + string(f)
	}
}

// ============================================================================
// OPTIONS
// ============================================================================

// Option configures static rendering.
type Option func(*options)

type options struct {
	width  int
	height int
}

// WithSize sets the image size in pixels. Non-positive values keep the default.
func WithSize(width, height int) Option {
	return func(o *options) {
		if width > 0 {
			o.width = width
		}
		if height > 0 {
			o.height = height
		}
	}
}

func applyOptions(opts []Option) *options {
	o := &options{width: 1024, height: 480}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ============================================================================
// WRITE
// ============================================================================

// Write encodes spec in the given format.
func Write(w io.Writer, spec *engine.ChartSpec, format Format, opts ...Option) error {
	if spec == nil {
		return errNilSpec
	}
	switch format {
	case FormatSpec:
		return writeJSON(w, spec)
	case FormatFigure:
		fig, err := BuildFigure(spec)
		if err != nil {
			return err
		}
		return writeJSON(w, fig)
	case FormatPNG, FormatSVG:
		return WriteImage(w, spec, format, opts...)
	case FormatXLSX:
		return WriteWorkbook(w, spec)
	case FormatCSV:
		return WriteCSV(w, spec)
	}
	return fmt.Errorf("unknown format %q", format)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
