package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/spektr-org/pokedash/render"
)

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

type pageData struct {
	Options OptionSet
	Figure  template.JS
}

// handleIndex renders the page with the default selection already drawn, so
// the chart shows before any selector changes.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	spec, err := s.resolver.Resolve(s.options.Defaults)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	fig, err := render.BuildFigure(spec)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	figJSON, err := json.Marshal(fig)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pageData{Options: s.options, Figure: template.JS(figJSON)}); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Pokedash</title>
  <script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
  <style>
    body { font-family: sans-serif; margin: 2rem auto; max-width: 1100px; color: #222; }
    h1 { margin-bottom: 1.5rem; }
    .selectors { display: flex; gap: 1.5rem; flex-wrap: wrap; }
    .selectors label { display: flex; flex-direction: column; gap: .3rem; font-size: .9rem; }
    select { min-width: 14rem; padding: .3rem; }
    #graph-content { height: 520px; margin-top: 1.5rem; }
    #summary { color: #555; }
    #error { color: #b91c1c; }
    .downloads a { margin-right: 1rem; }
  </style>
</head>
<body>
  <h1>Pokedash</h1>
  <div class="selectors">
    <label>select your Pokemon type:
      <select id="dropdown-type-selection">
        {{range .Options.Types}}<option value="{{.}}"{{if eq . $.Options.Defaults.Type}} selected{{end}}>{{.}}</option>
        {{end}}
      </select>
    </label>
    <label>select your Pokemon stat:
      <select id="dropdown-metric-selection">
        {{range .Options.Metrics}}<option value="{{.Value}}"{{if eq .Value $.Options.Defaults.Metric}} selected{{end}}>{{.Label}}</option>
        {{end}}
      </select>
    </label>
    <label>select your chart type:
      <select id="dropdown-chart-type">
        {{range .Options.Kinds}}<option value="{{.Value}}"{{if eq .Value $.Options.Defaults.Kind}} selected{{end}}>{{.Label}}</option>
        {{end}}
      </select>
    </label>
  </div>
  <div id="graph-content"></div>
  <p id="error"></p>
  <p id="summary"></p>
  <p class="downloads">
    <a id="download-png" href="#">PNG</a>
    <a id="download-svg" href="#">SVG</a>
    <a id="download-csv" href="#">CSV</a>
    <a id="download-xlsx" href="#">Excel</a>
  </p>
  <script>
    const ids = {type: "dropdown-type-selection", metric: "dropdown-metric-selection", kind: "dropdown-chart-type"};
    const initial = {{.Figure}};

    function query() {
      const params = new URLSearchParams();
      for (const [key, id] of Object.entries(ids)) {
        params.set(key, document.getElementById(id).value);
      }
      return params.toString();
    }

    async function update() {
      const q = query();
      document.getElementById("download-png").href = "/api/chart.png?" + q;
      document.getElementById("download-svg").href = "/api/chart.svg?" + q;
      document.getElementById("download-csv").href = "/api/chart.csv?" + q;
      document.getElementById("download-xlsx").href = "/api/export.xlsx?" + q;

      const res = await fetch("/api/figure?" + q);
      if (!res.ok) {
        document.getElementById("error").textContent = await res.text();
        return;
      }
      document.getElementById("error").textContent = "";
      const fig = await res.json();
      Plotly.react("graph-content", fig.data, fig.layout);

      const summary = await fetch("/api/summary?" + q);
      if (summary.ok) {
        document.getElementById("summary").textContent = (await summary.json()).text.reply;
      }
    }

    Plotly.newPlot("graph-content", initial.data, initial.layout);
    for (const id of Object.values(ids)) {
      document.getElementById(id).addEventListener("change", update);
    }
    update();
  </script>
</body>
</html>
`
