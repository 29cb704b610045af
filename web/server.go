// Package web serves the dashboard page and the JSON, image and spreadsheet
// endpoints behind it. Handlers share one read-only dataset and one resolver.
package web

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/facebookgo/httpdown"

	"github.com/spektr-org/pokedash/dataset"
	"github.com/spektr-org/pokedash/engine"
	"github.com/spektr-org/pokedash/logging"
)

// Config holds server settings.
type Config struct {
	Addr        string        // listen address, e.g. ":8050"
	StopTimeout time.Duration // wait for in-flight requests on stop
	KillTimeout time.Duration // then force-close connections
	ImageWidth  int
	ImageHeight int
}

// DefaultConfig returns the settings used when flags are not given.
func DefaultConfig() Config {
	return Config{
		Addr:        ":8050",
		StopTimeout: 10 * time.Second,
		KillTimeout: 5 * time.Second,
		ImageWidth:  1024,
		ImageHeight: 480,
	}
}

// Server is the dashboard HTTP server.
type Server struct {
	cfg      Config
	data     *dataset.Dataset
	resolver *engine.Resolver
	options  OptionSet
	mux      *http.ServeMux
}

// New builds a server over a loaded dataset.
func New(cfg Config, data *dataset.Dataset, opts ...engine.Option) *Server {
	resolver := data.Resolver(opts...)
	s := &Server{
		cfg:      cfg,
		data:     data,
		resolver: resolver,
		options:  BuildOptions(resolver),
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

// Handler returns the root handler, with request logging.
func (s *Server) Handler() http.Handler {
	return logRequests(s.mux)
}

// ListenAndServe serves until ctx is cancelled, then stops gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	hd := &httpdown.HTTP{
		StopTimeout: s.cfg.StopTimeout,
		KillTimeout: s.cfg.KillTimeout,
	}
	srv := hd.Serve(&http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}, ln)
	logging.Infof("🌐 Pokedash listening on http://%s (%d records)", ln.Addr(), s.data.Len())

	done := make(chan error, 1)
	go func() { done <- srv.Wait() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		logging.Infof("🛑 Shutting down")
		if err := srv.Stop(); err != nil {
			return err
		}
		return <-done
	}
}

// statusRecorder remembers the status code a handler wrote.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.Request(r.Method, r.URL.RequestURI(), rec.status, time.Since(start))
	})
}
