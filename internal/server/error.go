package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/at-ishikawa/studylog/internal/analysis"
	"github.com/at-ishikawa/studylog/internal/inference"
	"github.com/at-ishikawa/studylog/internal/summary"
)

var errNotFound = errors.New("not found")

// requestError is a problem with the input of a request.
type requestError struct {
	message string
}

func (e *requestError) Error() string {
	return e.message
}

func badRequest(format string, args ...any) error {
	return &requestError{message: fmt.Sprintf(format, args...)}
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleError answers with the status matching err.
// Failures of the AI model are reported with their message so the user can see why.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	logger := loggerFrom(r.Context())

	var reqErr *requestError
	var analysisErr *analysis.Error
	var generationErr *summary.GenerationError
	var transportErr *inference.TransportError
	switch {
	case errors.As(err, &reqErr):
		logger.Warn("bad request", "error", err)
		writeError(w, http.StatusBadRequest, reqErr.message)

	case errors.Is(err, errNotFound), errors.Is(err, analysis.ErrQuestionNotFound), errors.Is(err, summary.ErrNotFound):
		logger.Warn("not found", "error", err)
		writeError(w, http.StatusNotFound, err.Error())

	case errors.As(err, &analysisErr):
		logger.Error("question analysis failed", "error", err)
		writeError(w, http.StatusBadGateway, analysisErr.Error())

	case errors.As(err, &generationErr):
		logger.Error("summary generation failed", "error", err)
		writeError(w, http.StatusBadGateway, generationErr.Error())

	case errors.As(err, &transportErr):
		logger.Error("AI model request failed", "error", err)
		writeError(w, http.StatusBadGateway, transportErr.Error())

	default:
		logger.Error("internal server error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Warn("failed to write response", "error", err)
	}
}
