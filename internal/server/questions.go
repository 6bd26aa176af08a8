package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/at-ishikawa/studylog/internal/calendar"
)

const (
	subjectField      = "subject"
	userQuestionField = "user_question"
	questionImage     = "question_image"
)

type questionPage struct {
	Questions []questionView `json:"questions"`
	Page      int            `json:"page"`
	HasMore   bool           `json:"has_more"`
}

// listQuestions returns one page of a subject's questions, newest first.
// start_date limits the list to questions uploaded on or before that date.
func (s *Server) listQuestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	subject := strings.TrimSpace(query.Get(subjectField))
	if subject == "" {
		handleError(w, r, badRequest("subject is required"))
		return
	}
	page, err := parsePage(query.Get("page"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	var before *time.Time
	if value := query.Get("start_date"); value != "" {
		date, err := calendar.Parse(value, s.loc)
		if err != nil {
			handleError(w, r, badRequest("invalid start_date %q", value))
			return
		}
		_, end := calendar.Range(date)
		before = &end
	}

	pageSize := s.cfg.PageSize
	questions, err := s.deps.Questions.FindBySubject(r.Context(), subject, pageSize+1, (page-1)*pageSize, before)
	if err != nil {
		handleError(w, r, fmt.Errorf("questions.FindBySubject() > %w", err))
		return
	}
	hasMore := len(questions) > pageSize
	if hasMore {
		questions = questions[:pageSize]
	}
	writeJSON(w, http.StatusOK, questionPage{
		Questions: newQuestionViews(questions),
		Page:      page,
		HasMore:   hasMore,
	})
}

func (s *Server) createQuestion(w http.ResponseWriter, r *http.Request) {
	if err := s.parseMultipart(w, r); err != nil {
		handleError(w, r, err)
		return
	}
	subject := strings.TrimSpace(r.FormValue(subjectField))
	if subject == "" {
		handleError(w, r, badRequest("subject is required"))
		return
	}
	image, err := formFile(r, questionImage)
	if err != nil {
		handleError(w, r, err)
		return
	}

	q, err := s.deps.Analyzer.Create(r.Context(), image, subject, strings.TrimSpace(r.FormValue(userQuestionField)))
	if err != nil {
		handleError(w, r, err)
		return
	}
	loggerFrom(r.Context()).Info("question analyzed", "id", q.ID, "subject", q.Subject)
	writeJSON(w, http.StatusCreated, newQuestionView(*q))
}

func (s *Server) regenerateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	q, err := s.deps.Analyzer.Regenerate(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newQuestionView(*q))
}

type insightRequest struct {
	Insight string `json:"insight"`
}

func (s *Server) updateInsight(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req insightRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	q, err := s.deps.Questions.FindByID(r.Context(), id)
	if err != nil {
		handleError(w, r, fmt.Errorf("questions.FindByID() > %w", err))
		return
	}
	if q == nil {
		handleError(w, r, fmt.Errorf("question %d: %w", id, errNotFound))
		return
	}
	if err := s.deps.Questions.UpdateInsight(r.Context(), id, req.Insight); err != nil {
		handleError(w, r, fmt.Errorf("questions.UpdateInsight() > %w", err))
		return
	}
	q.Insight = req.Insight
	writeJSON(w, http.StatusOK, newQuestionView(*q))
}

func (s *Server) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.deps.Questions.Delete(r.Context(), id); err != nil {
		handleError(w, r, fmt.Errorf("questions.Delete() > %w", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (int64, error) {
	value := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("invalid id %q", value)
	}
	return id, nil
}

// maxPage keeps the row offset of a page far from int overflow.
const maxPage = 100000

// parsePage reads a 1-based page number. An empty value is the first page.
func parsePage(value string) (int, error) {
	if value == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(value)
	if err != nil || page < 1 {
		return 0, badRequest("invalid page %q", value)
	}
	if page > maxPage {
		return 0, badRequest("page must not exceed %d", maxPage)
	}
	return page, nil
}

func (s *Server) parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		return badRequest("invalid multipart form: %v", err)
	}
	return nil
}

// formFile reads an uploaded file. A missing or empty file is a bad request.
func formFile(r *http.Request, field string) ([]byte, error) {
	content, err := optionalFormFile(r, field)
	if err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, badRequest("%s is required", field)
	}
	return content, nil
}

// optionalFormFile reads an uploaded file, returning nil when none or an empty one was sent.
func optionalFormFile(r *http.Request, field string) ([]byte, error) {
	f, _, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, badRequest("read %s: %v", field, err)
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, badRequest("read %s: %v", field, err)
	}
	return content, nil
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest("invalid JSON body: %v", err)
	}
	return nil
}
