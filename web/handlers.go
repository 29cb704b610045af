package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/spektr-org/pokedash/engine"
	"github.com/spektr-org/pokedash/logging"
	"github.com/spektr-org/pokedash/render"
)

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /api/options", s.handleOptions)
	s.mux.HandleFunc("GET /api/chart", s.handleChart)
	s.mux.HandleFunc("GET /api/figure", s.handleFigure)
	s.mux.HandleFunc("GET /api/summary", s.handleSummary)
	s.mux.HandleFunc("GET /api/chart.png", s.handleImage(render.FormatPNG))
	s.mux.HandleFunc("GET /api/chart.svg", s.handleImage(render.FormatSVG))
	s.mux.HandleFunc("GET /api/chart.csv", s.handleCSV)
	s.mux.HandleFunc("GET /api/export.xlsx", s.handleExport)
}

// ============================================================================
// OPTIONS
// ============================================================================

// OptionSet is what the three selectors offer.
type OptionSet struct {
	Types    []string         `json:"types"`
	Metrics  []SelectOption   `json:"metrics"`
	Kinds    []SelectOption   `json:"kinds"`
	Defaults engine.Selection `json:"defaults"`
}

// SelectOption is one <option> of a selector.
type SelectOption struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Family string `json:"family,omitempty"`
}

// BuildOptions lists selector options in display order.
func BuildOptions(r *engine.Resolver) OptionSet {
	set := OptionSet{
		Types:    r.Types(),
		Metrics:  make([]SelectOption, 0, len(engine.AllMetrics)),
		Kinds:    make([]SelectOption, 0, len(engine.AllChartKinds)),
		Defaults: r.Defaults(),
	}
	for _, m := range engine.AllMetrics {
		set.Metrics = append(set.Metrics, SelectOption{Value: string(m), Label: m.Label()})
	}
	for _, k := range engine.AllChartKinds {
		set.Kinds = append(set.Kinds, SelectOption{Value: k.String(), Label: k.Label(), Family: k.Family().String()})
	}
	return set
}

// ============================================================================
// HANDLERS
// ============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status":  "ok",
		"records": s.data.Len(),
	})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.options)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	spec, ok := s.resolve(w, r)
	if !ok {
		return
	}
	writeJSON(w, spec)
}

func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	spec, ok := s.resolve(w, r)
	if !ok {
		return
	}
	fig, err := render.BuildFigure(spec)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, fig)
}

// summaryResponse bundles the statistics, table and series view of a subset.
type summaryResponse struct {
	Text  *engine.TextData    `json:"text"`
	Table *engine.TableData   `json:"table"`
	Chart *engine.ChartConfig `json:"chart"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	spec, ok := s.resolve(w, r)
	if !ok {
		return
	}
	writeJSON(w, summaryResponse{
		Text:  engine.BuildText(spec),
		Table: engine.BuildTable(spec),
		Chart: engine.BuildChart(spec),
	})
}

func (s *Server) handleImage(format render.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spec, ok := s.resolve(w, r)
		if !ok {
			return
		}
		var buf bytes.Buffer
		err := render.WriteImage(&buf, spec, format, render.WithSize(s.cfg.ImageWidth, s.cfg.ImageHeight))
		if err != nil {
			s.fail(w, r, err)
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		buf.WriteTo(w)
	}
}

func (s *Server) handleCSV(w http.ResponseWriter, r *http.Request) {
	spec, ok := s.resolve(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render.WriteCSV(&buf, spec); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", render.FormatCSV.ContentType())
	buf.WriteTo(w)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	spec, ok := s.resolve(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render.WriteWorkbook(&buf, spec); err != nil {
		s.fail(w, r, err)
		return
	}
	filename := fmt.Sprintf("pokedash-%s-%s-%s.xlsx", spec.Type, spec.Metric, spec.Kind)
	w.Header().Set("Content-Type", render.FormatXLSX.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	buf.WriteTo(w)
}

// ============================================================================
// HELPERS
// ============================================================================

func selectionFrom(r *http.Request) engine.Selection {
	q := r.URL.Query()
	return engine.Selection{
		Type:   q.Get("type"),
		Metric: q.Get("metric"),
		Kind:   q.Get("kind"),
	}
}

// resolve writes the error response itself when it returns false.
func (s *Server) resolve(w http.ResponseWriter, r *http.Request) (*engine.ChartSpec, bool) {
	spec, err := s.resolver.Resolve(selectionFrom(r))
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	return spec, true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, engine.ErrUnknownChartKind) || errors.Is(err, engine.ErrUnknownMetric) {
		logging.Warnf("⚠️ %s %s: %v", r.Method, r.URL.RequestURI(), err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	logging.Errorf("❌ %s %s: %v", r.Method, r.URL.RequestURI(), err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Errorf("❌ encode response: %v", err)
	}
}
