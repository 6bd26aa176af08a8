// Package server exposes the study log over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/at-ishikawa/studylog/internal/careless"
	"github.com/at-ishikawa/studylog/internal/config"
	"github.com/at-ishikawa/studylog/internal/question"
)

// Dependencies are the services behind the HTTP routes.
type Dependencies struct {
	Questions question.Repository
	Mistakes  careless.Repository
	Analyzer  QuestionAnalyzer
	Summaries SummaryProvider
	Recorder  MistakeRecorder
	Chat      ChatRelay
	Keywords  KeywordGenerator
	Search    Searcher
}

type Server struct {
	router chi.Router
	deps   Dependencies
	cfg    config.ServerConfig
	loc    *time.Location
	now    func() time.Time
}

type Option func(*Server)

// WithClock replaces the clock used to pick the dashboard date.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New builds the router. Dates in paths and queries are read in loc.
func New(deps Dependencies, cfg config.ServerConfig, loc *time.Location, opts ...Option) *Server {
	r := chi.NewRouter()
	s := &Server{
		router: r,
		deps:   deps,
		cfg:    cfg,
		loc:    loc,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(panicRecoveryMiddleware)
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", s.getDashboard)

		r.Route("/questions", func(r chi.Router) {
			r.Get("/", s.listQuestions)
			r.Post("/", s.createQuestion)
			r.Route("/{id}", func(r chi.Router) {
				r.Post("/regenerate", s.regenerateQuestion)
				r.Put("/insight", s.updateInsight)
				r.Delete("/", s.deleteQuestion)
			})
		})

		r.Route("/careless", func(r chi.Router) {
			r.Get("/", s.listMistakes)
			r.Post("/", s.recordMistake)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/reflection", s.updateReflection)
				r.Delete("/", s.deleteMistake)
			})
		})

		r.Route("/summaries/{date}", func(r chi.Router) {
			r.Get("/", s.getSummary)
			r.Post("/regenerate", s.regenerateSummary)
		})

		r.Post("/chat", s.chat)
		r.Post("/keywords", s.generateKeywords)

		r.Route("/search", func(r chi.Router) {
			r.Get("/filters", s.searchFilters)
			r.Post("/", s.search)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
