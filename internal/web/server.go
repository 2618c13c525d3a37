// Package web serves the manual over HTTP: the topic outline, rendered pages, health
// endpoints and websocket view sessions.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/p-n-ai/pai-manual/internal/manual"
	"github.com/p-n-ai/pai-manual/internal/render"
)

const checkTimeout = 2 * time.Second

// HealthChecker is a dependency reported by /readyz.
type HealthChecker interface {
	Name() string
	HealthCheck(ctx context.Context) error
}

// Config holds the server's dependencies.
type Config struct {
	Catalog      *manual.StaticCatalog[string]
	DefaultLevel manual.Level
	Checks       []HealthChecker
}

// Server routes manual requests.
type Server struct {
	catalog      *manual.StaticCatalog[string]
	html         *render.HTMLRenderer
	defaultLevel manual.Level
	checks       []HealthChecker
	mux          *http.ServeMux
}

// New creates a server for the given catalog.
func New(cfg Config) *Server {
	level := cfg.DefaultLevel
	if !level.Valid() {
		level = manual.LevelBasico
	}
	s := &Server{
		catalog:      cfg.Catalog,
		html:         render.NewHTMLRenderer(),
		defaultLevel: level,
		checks:       cfg.Checks,
	}
	s.mux = s.newMux()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) newMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	mux.HandleFunc("GET /api/sections", s.handleOutline)
	mux.HandleFunc("GET /api/sections/{section}/{subsection}", s.handlePage)
	mux.HandleFunc("GET /ws", s.handleSession)
	return mux
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	for _, c := range s.checks {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		err := c.HealthCheck(ctx)
		cancel()
		if err != nil {
			slog.Warn("readiness check failed", "dependency", c.Name(), "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"failed": c.Name(),
			})
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}

type outlineSection struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Subsections []outlineSubsection `json:"subsections"`
}

type outlineSubsection struct {
	ID     string         `json:"id"`
	Title  string         `json:"title"`
	Levels []manual.Level `json:"levels"`
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	sections := s.catalog.ListSections()
	out := make([]outlineSection, 0, len(sections))
	for _, sec := range sections {
		o := outlineSection{ID: sec.ID, Title: sec.Title}
		for _, sub := range sec.Subsections {
			o.Subsections = append(o.Subsections, outlineSubsection{
				ID:     sub.ID,
				Title:  sub.Title,
				Levels: manual.AvailableLevels(sub),
			})
		}
		out = append(out, o)
	}
	writeJSON(w, http.StatusOK, out)
}

type pageResponse struct {
	Section         string         `json:"section"`
	Subsection      string         `json:"subsection"`
	SectionTitle    string         `json:"sectionTitle"`
	Title           string         `json:"title"`
	Level           manual.Level   `json:"level"`
	AvailableLevels []manual.Level `json:"availableLevels"`
	HTML            string         `json:"html"`
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	level := s.defaultLevel
	if q := r.URL.Query().Get("level"); q != "" {
		l, err := manual.ParseLevel(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		level = l
	}

	sectionID, subsectionID := r.PathValue("section"), r.PathValue("subsection")
	sec, sub, ok := s.catalog.Lookup(sectionID, subsectionID)
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("page not found: "+sectionID+"/"+subsectionID))
		return
	}

	html, err := s.html.Render(manual.ResolveContent(sub, level))
	if err != nil {
		slog.Error("render failed", "section", sectionID, "subsection", subsectionID, "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("render failed"))
		return
	}

	writeJSON(w, http.StatusOK, pageResponse{
		Section:         sec.ID,
		Subsection:      sub.ID,
		SectionTitle:    sec.Title,
		Title:           sub.Title,
		Level:           level,
		AvailableLevels: manual.AvailableLevels(sub),
		HTML:            html,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
