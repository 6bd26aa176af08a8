package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/at-ishikawa/studylog/internal/inference"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages []chatMessage `json:"messages"`
}

// chat streams the answer as plain text, flushing every fragment as soon as it arrives.
// Failures of the AI model arrive as a JSON error fragment in the body.
func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if len(req.Messages) == 0 {
		handleError(w, r, badRequest("messages are required"))
		return
	}
	messages := make([]inference.Message, 0, len(req.Messages))
	for i, m := range req.Messages {
		role, ok := inference.ParseRole(strings.ToLower(m.Role))
		if !ok {
			handleError(w, r, badRequest("unknown role %q of message %d", m.Role, i))
			return
		}
		messages = append(messages, inference.Message{Role: role, Content: m.Content})
	}

	ctx := r.Context()
	if s.cfg.ChatTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ChatTimeout)
		defer cancel()
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	for fragment := range s.deps.Chat.Relay(ctx, messages) {
		if _, err := w.Write([]byte(fragment)); err != nil {
			loggerFrom(ctx).Warn("client went away while streaming", "error", err)
			return
		}
		if err := rc.Flush(); err != nil {
			loggerFrom(ctx).Warn("failed to flush chat fragment", "error", err)
		}
	}
}
