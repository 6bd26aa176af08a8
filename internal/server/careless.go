package server

import (
	"fmt"
	"net/http"
)

type mistakePage struct {
	Mistakes []mistakeView `json:"mistakes"`
	Page     int           `json:"page"`
	HasMore  bool          `json:"has_more"`
}

func (s *Server) listMistakes(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r.URL.Query().Get("page"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	pageSize := s.cfg.PageSize
	mistakes, err := s.deps.Mistakes.FindAll(r.Context(), pageSize+1, (page-1)*pageSize)
	if err != nil {
		handleError(w, r, fmt.Errorf("mistakes.FindAll() > %w", err))
		return
	}
	hasMore := len(mistakes) > pageSize
	if hasMore {
		mistakes = mistakes[:pageSize]
	}

	views := make([]mistakeView, 0, len(mistakes))
	for _, m := range mistakes {
		views = append(views, newMistakeView(m))
	}
	writeJSON(w, http.StatusOK, mistakePage{Mistakes: views, Page: page, HasMore: hasMore})
}

func (s *Server) recordMistake(w http.ResponseWriter, r *http.Request) {
	if err := s.parseMultipart(w, r); err != nil {
		handleError(w, r, err)
		return
	}
	image, err := formFile(r, "image")
	if err != nil {
		handleError(w, r, err)
		return
	}

	m, err := s.deps.Recorder.Record(r.Context(), image, r.FormValue("reflection"))
	if err != nil {
		handleError(w, r, fmt.Errorf("Record() > %w", err))
		return
	}
	loggerFrom(r.Context()).Info("careless mistake recorded", "id", m.ID)
	writeJSON(w, http.StatusCreated, newMistakeView(*m))
}

type reflectionRequest struct {
	Reflection string `json:"reflection"`
}

func (s *Server) updateReflection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req reflectionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	m, err := s.deps.Mistakes.FindByID(r.Context(), id)
	if err != nil {
		handleError(w, r, fmt.Errorf("mistakes.FindByID() > %w", err))
		return
	}
	if m == nil {
		handleError(w, r, fmt.Errorf("careless mistake %d: %w", id, errNotFound))
		return
	}
	if err := s.deps.Mistakes.UpdateReflection(r.Context(), id, req.Reflection); err != nil {
		handleError(w, r, fmt.Errorf("mistakes.UpdateReflection() > %w", err))
		return
	}
	m.Reflection = req.Reflection
	writeJSON(w, http.StatusOK, newMistakeView(*m))
}

func (s *Server) deleteMistake(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.deps.Mistakes.Delete(r.Context(), id); err != nil {
		handleError(w, r, fmt.Errorf("mistakes.Delete() > %w", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
