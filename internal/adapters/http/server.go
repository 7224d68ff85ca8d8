package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/aretw0/screenwalk"
	"github.com/aretw0/screenwalk/internal/logging"
	"github.com/aretw0/screenwalk/internal/presentation/graph"
	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/aretw0/screenwalk/pkg/ports"
	"github.com/go-chi/chi/v5"
)

// Server exposes stored reports, the screen graph and metrics over HTTP.
type Server struct {
	store   ports.ReportStore
	graph   *domain.Graph
	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithGraph publishes g on /graph.
func WithGraph(g *domain.Graph) Option {
	return func(s *Server) {
		s.graph = g
	}
}

// WithMetrics mounts a Prometheus handler on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger configures the request error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler creates the HTTP handler for the report API.
func NewHandler(store ports.ReportStore, opts ...Option) http.Handler {
	s := &Server{store: store, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/reports", s.ListReports)
	r.Get("/reports/{id}", s.GetReport)
	r.Get("/graph", s.GetGraph)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "screenwalk-http",
		"version": screenwalk.Version,
	})
}

// ListReports handles GET /reports.
func (s *Server) ListReports(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("list reports failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	slices.Sort(ids)
	s.writeJSON(w, http.StatusOK, map[string][]string{"reports": ids})
}

// GetReport handles GET /reports/{id}.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	report, err := s.store.Load(r.Context(), id)
	if errors.Is(err, domain.ErrReportNotFound) {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("load report failed", "id", id, "err", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

type screenView struct {
	Name        domain.Screen       `json:"name"`
	Marker      *domain.Selector    `json:"marker,omitempty"`
	Transitions []domain.Transition `json:"transitions"`
}

type actionView struct {
	Name    domain.Action   `json:"name"`
	Hosts   []domain.Screen `json:"hosts"`
	Results []domain.Screen `json:"results"`
}

type graphView struct {
	Launch  domain.Screen `json:"launch"`
	Screens []screenView  `json:"screens"`
	Actions []actionView  `json:"actions"`
}

// GetGraph handles GET /graph. The default format is Mermaid; ?format=json returns the structure.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	if s.graph == nil {
		s.writeError(w, http.StatusNotFound, "no graph configured")
		return
	}

	if r.URL.Query().Get("format") != "json" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(graph.GenerateMermaid(s.graph, nil)))
		return
	}

	view := graphView{Launch: s.graph.Launch}
	for _, sc := range s.graph.ScreenList() {
		def := s.graph.Screens[sc]
		view.Screens = append(view.Screens, screenView{Name: sc, Marker: def.Marker, Transitions: def.Transitions})
	}
	for _, a := range s.graph.ActionList() {
		def := s.graph.Actions[a]
		view.Actions = append(view.Actions, actionView{Name: a, Hosts: def.Hosts, Results: def.Results})
	}
	s.writeJSON(w, http.StatusOK, view)
}
