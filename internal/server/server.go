// Package server exposes the graph engine over HTTP.
//
// Every request loads the current dataset through the pipeline runner,
// applies its own view state from the query string on top of a base state,
// and rebuilds the view. No per-client state is kept on the server.
//
// Routes:
//
//	GET /healthz
//	GET /api/view            full view (nodes, edges, stats)
//	GET /api/stats           stats only
//	GET /api/stakeholders    names for the single-stakeholder filter
//	GET /api/nodes/{id}      one node with its neighbors
//	GET /api/export.{format} snapshot bytes (png, svg or dot)
//
// View state query parameters: mode, layout, selected, search, threshold,
// stakeholder, direct_only.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/stakemap/pkg/buildinfo"
	"github.com/matzehuels/stakemap/pkg/errors"
	"github.com/matzehuels/stakemap/pkg/explore"
	"github.com/matzehuels/stakemap/pkg/graph"
	"github.com/matzehuels/stakemap/pkg/layout"
	"github.com/matzehuels/stakemap/pkg/observability"
	"github.com/matzehuels/stakemap/pkg/pipeline"
	"github.com/matzehuels/stakemap/pkg/render"
)

const shutdownTimeout = 5 * time.Second

// Server serves views of one dataset source.
type Server struct {
	runner  *pipeline.Runner
	base    explore.ViewState
	title   string
	logger  *log.Logger
	started time.Time
	router  chi.Router

	counters *observability.Counters
}

// New builds the router. base is the view state requests start from.
func New(runner *pipeline.Runner, base explore.ViewState, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:  runner,
		base:    base,
		title:   pipeline.DefaultTitle,
		logger:  logger,
		started: time.Now(),
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/view", s.handleView)
		r.Get("/stats", s.handleStats)
		r.Get("/stakeholders", s.handleStakeholders)
		r.Get("/nodes/{id}", s.handleNode)
		r.Get("/export.{format}", s.handleExport)
	})
	s.router = r
	return s
}

// WithCounters reports the given totals on /healthz. The caller registers
// them with [observability.Register].
func (s *Server) WithCounters(c *observability.Counters) *Server {
	s.counters = c
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe blocks until ctx is cancelled or the listener fails, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Handlers
// =============================================================================

type healthResponse struct {
	Status   string                         `json:"status"`
	Service  string                         `json:"service"`
	Uptime   string                         `json:"uptime"`
	Counters *observability.CounterSnapshot `json:"counters,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:  "ok",
		Service: buildinfo.UserAgent(),
		Uptime:  time.Since(s.started).Round(time.Second).String(),
	}
	if s.counters != nil {
		snap := s.counters.Snapshot()
		resp.Counters = &snap
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	v, err := s.view(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	v, err := s.view(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v.Stats)
}

func (s *Server) handleStakeholders(w http.ResponseWriter, r *http.Request) {
	ds, err := s.runner.Load(r.Context(), false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	names := ds.Stakeholders()
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

type nodeResponse struct {
	Node      explore.Node       `json:"node"`
	Neighbors []explore.Neighbor `json:"neighbors"`
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	id := graph.NodeID(chi.URLParam(r, "id"))
	if _, _, ok := id.Parse(); !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "malformed node id %q", id))
		return
	}
	v, err := s.view(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	n, ok := v.Node(id)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "node %s is not in the %s view", id, v.State.Mode))
		return
	}
	neighbors := v.Neighbors(id)
	if neighbors == nil {
		neighbors = []explore.Neighbor{}
	}
	writeJSON(w, http.StatusOK, nodeResponse{Node: n, Neighbors: neighbors})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	f, err := render.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	v, err := s.view(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, hit, err := s.runner.RenderWithCacheInfo(r.Context(), v, pipeline.Options{
		Format: f,
		Title:  s.title,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// view loads the dataset and rebuilds it with the request's state.
func (s *Server) view(r *http.Request) (explore.View, error) {
	st, err := StateFromQuery(s.base, r.URL.Query())
	if err != nil {
		return explore.View{}, err
	}
	ds, err := s.runner.Load(r.Context(), false)
	if err != nil {
		return explore.View{}, err
	}
	return s.runner.Rebuild(r.Context(), ds, st), nil
}

// StateFromQuery overlays query parameters on base and normalizes the
// result. Absent parameters keep the base value.
func StateFromQuery(base explore.ViewState, q url.Values) (explore.ViewState, error) {
	st := base
	if q.Has("mode") {
		st.Mode = explore.ViewMode(q.Get("mode"))
	}
	if q.Has("layout") {
		st.Layout = layout.Mode(q.Get("layout"))
	}
	if q.Has("selected") {
		st.Selected = graph.NodeID(q.Get("selected"))
	}
	if q.Has("search") {
		st.Search = q.Get("search")
	}
	if q.Has("stakeholder") {
		st.Stakeholder = q.Get("stakeholder")
	}
	if q.Has("threshold") {
		n, err := strconv.Atoi(q.Get("threshold"))
		if err != nil {
			return st, errors.New(errors.ErrCodeInvalidInput, "threshold must be an integer, got %q", q.Get("threshold"))
		}
		st.Threshold = n
	}
	if q.Has("direct_only") {
		b, err := strconv.ParseBool(q.Get("direct_only"))
		if err != nil {
			return st, errors.New(errors.ErrCodeInvalidInput, "direct_only must be a boolean, got %q", q.Get("direct_only"))
		}
		st.DirectOnly = b
	}
	return st.Normalize()
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error     string   `json:"error"`
	Code      string   `json:"code,omitempty"`
	Details   []string `json:"details,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()), "error", err)
	}
	writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(errors.GetCode(err)),
		Details:   errors.Details(err),
		RequestID: RequestIDFrom(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
