package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/pokedash/dataset"
	"github.com/spektr-org/pokedash/engine"
	"github.com/spektr-org/pokedash/logging"
	"github.com/spektr-org/pokedash/schema"
)

func pokemon(name, typ string, hp float64) engine.Record {
	return engine.Record{
		Dimensions: map[string]string{"name": name, "type": typ},
		Measures: map[string]float64{
			"hp": hp, "attack": 50, "defense": 50, "speed": 50,
			"sp_attack": 50, "sp_defense": 50, "total": hp + 250,
		},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ds := dataset.New("fixture", schema.Pokemon(), engine.NewSliceView([]engine.Record{
		pokemon("Bulbasaur", "Grass", 45),
		pokemon("Charmander", "Fire", 39),
		pokemon("Ivysaur", "Grass", 60),
		pokemon("Squirtle", "Water", 44),
	}))
	cfg := DefaultConfig()
	cfg.ImageWidth, cfg.ImageHeight = 400, 300
	ts := httptest.NewServer(New(cfg, ds).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	res, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return res, body
}

func TestIndexPage(t *testing.T) {
	ts := newTestServer(t)
	res, body := get(t, ts, "/")

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	page := string(body)
	for _, want := range []string{
		`<option value="Grass" selected>Grass</option>`,
		`<option value="hp" selected>HP</option>`,
		`<option value="bar" selected>Bar</option>`,
		`<option value="bar_polar">Polar Bar</option>`,
		`Hp of Grass Type Pokémon`,
		`cdn.plot.ly`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}

	if res, _ := get(t, ts, "/nope"); res.StatusCode != http.StatusNotFound {
		t.Errorf("unknown path: status %d", res.StatusCode)
	}
}

func TestOptions(t *testing.T) {
	ts := newTestServer(t)
	_, body := get(t, ts, "/api/options")

	var set OptionSet
	if err := json.Unmarshal(body, &set); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if strings.Join(set.Types, ",") != "Grass,Fire,Water" {
		t.Errorf("types = %v", set.Types)
	}
	if len(set.Metrics) != 7 || set.Metrics[4].Label != "Special Attack" {
		t.Errorf("metrics = %v", set.Metrics)
	}
	if len(set.Kinds) != 16 || set.Kinds[9].Value != "heatmap" || set.Kinds[13].Family != "polar" {
		t.Errorf("kinds = %v", set.Kinds)
	}
	if set.Defaults != (engine.Selection{Type: "Grass", Metric: "hp", Kind: "bar"}) {
		t.Errorf("defaults = %+v", set.Defaults)
	}
}

func TestChartEndpoint(t *testing.T) {
	ts := newTestServer(t)
	res, body := get(t, ts, "/api/chart?type=Fire&metric=attack&kind=pie")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", res.StatusCode, body)
	}

	var spec struct {
		Title    string            `json:"title"`
		Family   string            `json:"family"`
		Bindings map[string]string `json:"bindings"`
		Data     []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if spec.Title != "Attack of Fire Type Pokémon" || spec.Family != "proportion" {
		t.Errorf("unexpected spec %+v", spec)
	}
	if spec.Bindings["names"] != "name" || spec.Bindings["values"] != "attack" {
		t.Errorf("bindings = %v", spec.Bindings)
	}
	if len(spec.Data) != 1 {
		t.Errorf("expected 1 record, got %d", len(spec.Data))
	}
}

func TestFigureDefaults(t *testing.T) {
	ts := newTestServer(t)
	_, implicit := get(t, ts, "/api/figure")
	_, explicit := get(t, ts, "/api/figure?type=Grass&metric=hp&kind=bar")
	if !bytes.Equal(implicit, explicit) {
		t.Errorf("absent selectors should resolve to defaults:\n%s\nvs\n%s", implicit, explicit)
	}
}

func TestUnknownSelectorsAreBadRequests(t *testing.T) {
	ts := newTestServer(t)
	for _, path := range []string{
		"/api/chart?kind=waterfall",
		"/api/figure?metric=luck",
		"/api/chart.png?kind=Bar",
		"/api/export.xlsx?kind=radar",
	} {
		res, body := get(t, ts, path)
		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status %d", path, res.StatusCode)
		}
		if !strings.Contains(string(body), "unknown") {
			t.Errorf("%s: body %q", path, body)
		}
	}
}

// lockedBuffer is written by handler goroutines and read by the test.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRequestLogging(t *testing.T) {
	buf := &lockedBuffer{}
	logging.SetOutput(buf)
	logging.SetLevel(logging.LevelDebug)
	t.Cleanup(func() {
		logging.SetOutput(os.Stderr)
		logging.SetLevel(logging.LevelInfo)
	})

	ts := newTestServer(t)
	get(t, ts, "/healthz")
	get(t, ts, "/api/chart?kind=waterfall")

	logs := buf.String()
	for _, want := range []string{
		"[DEBUG] ↔️  GET /healthz 200",
		"[WARN] ⚠️ GET /api/chart?kind=waterfall: unknown chart kind",
		"[DEBUG] ↔️  GET /api/chart?kind=waterfall 400",
	} {
		if !strings.Contains(logs, want) {
			t.Errorf("logs missing %q:\n%s", want, logs)
		}
	}
	if strings.Contains(logs, "[ERROR]") {
		t.Errorf("client errors should not log at error level:\n%s", logs)
	}
}

func TestUnknownTypeIsEmpty(t *testing.T) {
	ts := newTestServer(t)
	res, body := get(t, ts, "/api/summary?type=Dragon")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var summary summaryResponse
	if err := json.Unmarshal(body, &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.Text.Count != 0 || len(summary.Table.Rows) != 0 {
		t.Errorf("expected empty summary, got %+v", summary.Text)
	}
}

func TestSummary(t *testing.T) {
	ts := newTestServer(t)
	_, body := get(t, ts, "/api/summary?type=Grass&metric=hp")

	var summary summaryResponse
	if err := json.Unmarshal(body, &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.Text.Count != 2 || summary.Text.Strongest != "Ivysaur" || summary.Text.Max != 60 {
		t.Errorf("text = %+v", summary.Text)
	}
	if len(summary.Table.Rows) != 2 || len(summary.Chart.Series[0].Data) != 2 {
		t.Errorf("table/chart sizes wrong: %d rows", len(summary.Table.Rows))
	}
}

func TestImages(t *testing.T) {
	ts := newTestServer(t)

	res, body := get(t, ts, "/api/chart.png?type=Water&kind=scatter")
	if res.StatusCode != http.StatusOK || res.Header.Get("Content-Type") != "image/png" {
		t.Fatalf("png: status %d type %q", res.StatusCode, res.Header.Get("Content-Type"))
	}
	if !bytes.HasPrefix(body, []byte("\x89PNG")) {
		t.Error("png body is not a PNG")
	}

	res, body = get(t, ts, "/api/chart.svg?kind=pie")
	if res.StatusCode != http.StatusOK || !strings.Contains(string(body), "<svg") {
		t.Errorf("svg: status %d", res.StatusCode)
	}
}

func TestChartCSV(t *testing.T) {
	ts := newTestServer(t)
	res, body := get(t, ts, "/api/chart.csv?type=Grass")
	if res.StatusCode != http.StatusOK || !strings.HasPrefix(res.Header.Get("Content-Type"), "text/csv") {
		t.Fatalf("csv: status %d type %q", res.StatusCode, res.Header.Get("Content-Type"))
	}
	if string(body) != "Name,HP\nBulbasaur,45\nIvysaur,60\n" {
		t.Errorf("unexpected csv %q", body)
	}
}

func TestExport(t *testing.T) {
	ts := newTestServer(t)
	res, body := get(t, ts, "/api/export.xlsx?type=Grass&metric=total&kind=line")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	if got := res.Header.Get("Content-Disposition"); !strings.Contains(got, "pokedash-Grass-total-line.xlsx") {
		t.Errorf("Content-Disposition = %q", got)
	}

	f, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	if rows, _ := f.GetRows("Pokemon"); len(rows) != 3 {
		t.Errorf("expected header + 2 rows, got %d", len(rows))
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	_, body := get(t, ts, "/healthz")
	var health struct {
		Status  string `json:"status"`
		Records int    `json:"records"`
	}
	if err := json.Unmarshal(body, &health); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if health.Status != "ok" || health.Records != 4 {
		t.Errorf("health = %+v", health)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	ds := dataset.New("fixture", schema.Pokemon(), engine.NewSliceView([]engine.Record{pokemon("Bulbasaur", "Grass", 45)}))
	cfg := DefaultConfig()
	cfg.StopTimeout, cfg.KillTimeout = time.Second, time.Second

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(cfg, ds).Serve(ctx, ln) }()

	res, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET healthz: %v", err)
	}
	res.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
