package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/at-ishikawa/studylog/internal/calendar"
)

func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := s.deps.Summaries.Dashboard(r.Context(), s.now().In(s.loc))
	if err != nil {
		handleError(w, r, fmt.Errorf("Dashboard() > %w", err))
		return
	}
	writeJSON(w, http.StatusOK, newDashboardView(dashboard))
}

// getSummary answers 404 when nothing was recorded on the date.
// A summary that could not be generated is returned with failed set.
func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	value := chi.URLParam(r, "date")
	date, err := calendar.Parse(value, s.loc)
	if err != nil {
		handleError(w, r, badRequest("invalid date %q", value))
		return
	}

	summary, err := s.deps.Summaries.GetOrGenerate(r.Context(), date)
	if err != nil {
		handleError(w, r, fmt.Errorf("GetOrGenerate() > %w", err))
		return
	}
	if summary == nil {
		handleError(w, r, fmt.Errorf("no records on %s: %w", value, errNotFound))
		return
	}
	writeJSON(w, http.StatusOK, newSummaryView(date, summary))
}

func (s *Server) regenerateSummary(w http.ResponseWriter, r *http.Request) {
	value := chi.URLParam(r, "date")
	date, err := calendar.Parse(value, s.loc)
	if err != nil {
		handleError(w, r, badRequest("invalid date %q", value))
		return
	}

	summary, err := s.deps.Summaries.ForceRegenerate(r.Context(), date)
	if err != nil {
		handleError(w, r, err)
		return
	}
	loggerFrom(r.Context()).Info("summary regenerated", "date", value)
	writeJSON(w, http.StatusOK, newSummaryView(date, summary))
}
