// Package server serves rendered documentation over HTTP.
//
// Routes:
//
//	GET /                          every module (?format=html|json|text, default html)
//	GET /modules                   module index as JSON
//	GET /modules/{module}          one module
//	GET /modules/{module}/{entry}  one entry as JSON, with its referrers
//	GET /graph                     reference graph (?format=svg|dot, default svg)
//	GET /healthz                   liveness and build information
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sigdoc/pkg/buildinfo"
	"github.com/matzehuels/sigdoc/pkg/errors"
	"github.com/matzehuels/sigdoc/pkg/pipeline"
	"github.com/matzehuels/sigdoc/pkg/printer"
	"github.com/matzehuels/sigdoc/pkg/sink"
	"github.com/matzehuels/sigdoc/pkg/xref"
)

var contentTypes = map[string]string{
	sink.FormatHTML:         "text/html; charset=utf-8",
	sink.FormatJSON:         "application/json",
	sink.FormatText:         "text/plain; charset=utf-8",
	sink.FormatANSI:         "text/plain; charset=utf-8",
	pipeline.GraphFormatSVG: "image/svg+xml",
	pipeline.GraphFormatDOT: "text/vnd.graphviz",
}

// Server renders one documentation source on request.
type Server struct {
	runner *pipeline.Runner
	src    *pipeline.Source
	opts   pipeline.Options
	logger *log.Logger
	router chi.Router
}

// New creates a server for src. opts holds the render defaults (threshold,
// links, theme, title); the format comes from each request.
func New(runner *pipeline.Runner, src *pipeline.Source, opts pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		src:    src,
		opts:   opts,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/", s.handleAll)
	r.Get("/graph", s.handleGraph)
	r.Route("/modules", func(r chi.Router) {
		r.Get("/", s.handleIndex)
		r.Get("/{module}", s.handleModule)
		r.Get("/{module}/{entry}", s.handleEntry)
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving documentation", "addr", addr, "modules", len(s.src.Modules))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"modules": len(s.src.Modules),
		"build":   buildinfo.Info(),
	})
}

type moduleSummary struct {
	Name    string   `json:"name"`
	Summary string   `json:"summary,omitempty"`
	Entries []string `json:"entries"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	out := make([]moduleSummary, len(s.src.Modules))
	for i, m := range s.src.Modules {
		out[i] = moduleSummary{
			Name:    m.Name,
			Summary: printer.Summary(sink.CleanComment(m.Comment)),
			Entries: []string{},
		}
		for _, e := range m.Entries() {
			out[i].Entries = append(out[i].Entries, e.EntryName())
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAll(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, nil)
}

func (s *Server) handleModule(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "module")
	if err := errors.ValidateModuleName(name); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, []string{name})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, modules []string) {
	opts := s.opts
	opts.Format = queryFormat(r, sink.FormatHTML)
	opts.Modules = modules
	opts.Logger = s.logger

	result, err := s.runner.Render(r.Context(), s.src, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if result.CacheHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.Header().Set("Content-Type", contentTypes[opts.Format])
	w.Write(result.Output)
}

type entryResponse struct {
	Module    string          `json:"module"`
	Entry     json.RawMessage `json:"entry"`
	Referrers []string        `json:"referrers"`
}

func (s *Server) handleEntry(w http.ResponseWriter, r *http.Request) {
	moduleName := pathParam(r, "module")
	entryName := pathParam(r, "entry")
	if err := errors.ValidateEntryName(entryName); err != nil {
		s.writeError(w, r, err)
		return
	}

	modules, err := s.src.Select([]string{moduleName})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	m := modules[0]
	entry, ok := m.Entry(entryName)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "entry %q not found in module %q", entryName, moduleName))
		return
	}

	rendered := printer.ForModule(m, s.opts.PrinterOptions()).Render(entry)
	data, err := sink.RenderEntryJSON(rendered)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode entry"))
		return
	}

	pages, err := s.runner.Pages(r.Context(), modules, printer.Options{Links: true})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	referrers := []string{}
	for _, id := range xref.Build(pages).Referrers(xref.NodeID(m.Name, entryName)) {
		if id != xref.NodeID(m.Name, entryName) {
			referrers = append(referrers, id)
		}
	}

	writeJSON(w, http.StatusOK, entryResponse{
		Module:    m.Name,
		Entry:     data,
		Referrers: referrers,
	})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	format := queryFormat(r, pipeline.GraphFormatSVG)
	out, hit, err := s.runner.Graph(r.Context(), s.src, pipeline.GraphOptions{Format: format})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Write(out)
}

// pathParam returns a URL parameter with percent-escapes decoded. chi
// matches on the raw path when one is present, so operator names such as
// "%3C%2B%3E" arrive escaped.
func pathParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}

func queryFormat(r *http.Request, def string) string {
	if f := r.URL.Query().Get("format"); f != "" {
		return f
	}
	return def
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(errors.GetCode(err)),
		RequestID: RequestIDFromContext(r.Context()),
	})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidName, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeNetwork:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
