// Package web serves the landing page that tells visitors how to connect over
// SSH, and a small JSON leaderboard API.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

//go:embed index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// Leaderboard lists the best scores. highscore.Store satisfies it.
type Leaderboard interface {
	Top(ctx context.Context, n int) ([]int, error)
}

// Config is what the site needs to know about its surroundings.
type Config struct {
	SSHHost string
	SSHPort string
	TopN    int
}

// Site holds the handlers.
type Site struct {
	cfg    Config
	scores Leaderboard
	logger *log.Logger
}

// NewSite returns a site reading scores from board. board may be nil, in
// which case the leaderboard is always empty.
func NewSite(cfg Config, board Leaderboard, logger *log.Logger) *Site {
	if cfg.TopN <= 0 {
		cfg.TopN = 3
	}
	return &Site{cfg: cfg, scores: board, logger: logger.With("component", "web")}
}

// Handler routes requests. limiter may be nil.
func (s *Site) Handler(limiter *RateLimiter) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.index)

	api := http.Handler(http.HandlerFunc(s.topScores))
	if limiter != nil {
		api = limiter.Middleware(api)
	}
	mux.Handle("GET /api/scores", api)
	return mux
}

func (s *Site) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		SSHHost string
		SSHPort string
		Port22  bool
	}{s.cfg.SSHHost, s.cfg.SSHPort, s.cfg.SSHPort == "" || s.cfg.SSHPort == "22"}
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger.Error("Failed to render landing page", "error", err)
	}
}

type scoresResponse struct {
	Scores []int `json:"scores"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

func (s *Site) topScores(w http.ResponseWriter, r *http.Request) {
	logger := s.logger.With("handler", "scores", "remote_addr", r.RemoteAddr)

	scores := []int{}
	if s.scores != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		top, err := s.scores.Top(ctx, s.cfg.TopN)
		if err != nil {
			logger.Warn("Leaderboard unavailable", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{
				Error: "leaderboard unavailable",
				Code:  http.StatusServiceUnavailable,
			})
			return
		}
		scores = append(scores, top...)
	}
	writeJSON(w, http.StatusOK, scoresResponse{Scores: scores})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status is already sent; an encoding error cannot be reported.
	_ = json.NewEncoder(w).Encode(body)
}
