// Package web serves level listings and rendered frames over HTTP.
package web

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/lifeguide/internal/board"
	"github.com/vovakirdan/lifeguide/internal/compositor"
	"github.com/vovakirdan/lifeguide/internal/config"
	"github.com/vovakirdan/lifeguide/internal/level"
	"github.com/vovakirdan/lifeguide/internal/registry"
	"github.com/vovakirdan/lifeguide/internal/session"
	"github.com/vovakirdan/lifeguide/internal/storage"
)

// Request limits.
const (
	MaxGenerations = 5000
	MaxCellSize    = 64
	maxResults     = 100
)

// LevelSummary is one entry of GET /levels.
type LevelSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Rule      string `json:"rule"`
	Target    int    `json:"target_cells"`
	Detectors int    `json:"detectors"`
}

// LevelDetail is the body of GET /levels/{id}.
type LevelDetail struct {
	LevelSummary
	Patterns []string          `json:"patterns"`
	Editable [4]int            `json:"editable"` // x, y, w, h
	Metadata map[string]string `json:"metadata,omitempty"`
	Preview  string            `json:"preview"`
}

// ResultEntry is one entry of GET /levels/{id}/results.
type ResultEntry struct {
	Generations int       `json:"generations"`
	Placed      int       `json:"placed"`
	Rule        string    `json:"rule"`
	CreatedAt   time.Time `json:"created_at"`
}

// Server exposes levels over HTTP. Every frame request runs on its own
// session, so handlers share nothing mutable.
type Server struct {
	levels []level.Level
	byID   map[string]int
	store  *storage.Store
	cfg    config.Config
	logger *log.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithStore serves best results from store.
func WithStore(store *storage.Store) Option {
	return func(s *Server) { s.store = store }
}

// WithConfig sets the palette, layer order and pacing used for frames.
func WithConfig(cfg config.Config) Option {
	return func(s *Server) { s.cfg = cfg }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a server for levels.
func NewServer(levels []level.Level, opts ...Option) *Server {
	s := &Server{
		levels: levels,
		byID:   make(map[string]int, len(levels)),
		cfg:    config.Default(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cfg.Normalize()
	for i, lvl := range levels {
		s.byID[lvl.ID] = i
	}
	return s
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/rules", s.listRules)
	r.Route("/levels", func(r chi.Router) {
		r.Get("/", s.listLevels)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.showLevel)
			r.Get("/frame.png", s.renderFrame)
			r.Get("/results", s.listResults)
		})
	})
	return r
}

// logRequests logs method, path, status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.RequestURI(),
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client went away
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func summarize(lvl level.Level) LevelSummary {
	return LevelSummary{
		ID:        lvl.ID,
		Name:      lvl.Name,
		Width:     lvl.Width,
		Height:    lvl.Height,
		Rule:      lvl.Rule,
		Target:    len(lvl.Target),
		Detectors: len(lvl.Detectors),
	}
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (int, bool) {
	id := chi.URLParam(r, "id")
	i, ok := s.byID[id]
	if !ok {
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("level %q not found", id))
	}
	return i, ok
}

// intParam parses an optional non-negative query parameter bounded by max.
func intParam(r *http.Request, name string, def, max int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %q parameter", name)
	}
	if n > max {
		return 0, fmt.Errorf("%q must be at most %d", name, max)
	}
	return n, nil
}

func (s *Server) listRules(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, registry.List())
}

func (s *Server) listLevels(w http.ResponseWriter, _ *http.Request) {
	out := make([]LevelSummary, len(s.levels))
	for i, lvl := range s.levels {
		out[i] = summarize(lvl)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) showLevel(w http.ResponseWriter, r *http.Request) {
	i, ok := s.lookup(w, r)
	if !ok {
		return
	}
	sess, err := s.session(i, 0)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	lvl := s.levels[i]
	area := lvl.EditArea()
	writeJSON(w, http.StatusOK, LevelDetail{
		LevelSummary: summarize(lvl),
		Patterns:     lvl.Patterns.Names(),
		Editable:     [4]int{area.X, area.Y, area.W, area.H},
		Metadata:     lvl.Metadata,
		Preview:      sess.ASCII(board.DefaultRenderOptions()),
	})
}

// renderFrame draws the level after gen generations as a PNG.
func (s *Server) renderFrame(w http.ResponseWriter, r *http.Request) {
	i, ok := s.lookup(w, r)
	if !ok {
		return
	}
	gen, err := intParam(r, "gen", 0, MaxGenerations)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	cell, err := intParam(r, "cell", s.cfg.Board.CellSize, MaxCellSize)
	if err != nil || cell == 0 {
		writeJSONError(w, http.StatusBadRequest, "invalid \"cell\" parameter")
		return
	}

	sess, err := s.session(i, cell)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for n := 0; n < gen; n++ {
		sess.Advance()
	}
	stats, err := sess.Render()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	img, ok := frameImage(sess)
	if !ok {
		writeJSONError(w, http.StatusInternalServerError, "frame surface has no image")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Generation", strconv.Itoa(sess.Generation()))
	w.Header().Set("X-Render-Path", stats.Path.String())
	if sess.Solved() {
		w.Header().Set("X-Solved", "true")
	}
	if err := png.Encode(w, img); err != nil {
		s.logger.Warn("could not write frame", "level", s.levels[i].ID, "error", err)
	}
}

func (s *Server) listResults(w http.ResponseWriter, r *http.Request) {
	i, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if s.store == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "results are not recorded")
		return
	}
	limit, err := intParam(r, "limit", 10, maxResults)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := s.store.BestResults(s.levels[i].ID, limit)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]ResultEntry, len(results))
	for n, res := range results {
		out[n] = ResultEntry{
			Generations: res.Generations,
			Placed:      res.Placed,
			Rule:        res.Rule,
			CreatedAt:   res.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// session opens level i on its own in-memory surface. A zero cell size uses
// the configured one.
func (s *Server) session(i, cell int) (*session.Session, error) {
	opts := []session.Option{
		session.WithConfig(s.cfg),
		session.WithLogger(s.logger),
	}
	if cell > 0 {
		opts = append(opts, session.WithCellSize(cell))
	}
	sess, err := session.New(s.levels, i, opts...)
	if err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}
	return sess, nil
}

func frameImage(sess *session.Session) (*image.RGBA, bool) {
	mem, ok := sess.Surface().(*compositor.MemorySurface)
	if !ok {
		return nil, false
	}
	return mem.Image(), true
}
