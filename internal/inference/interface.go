package inference

import (
	"context"
	"iter"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client interface defines the AI model operations used by the study log.
// Implementations surface transport failures as *TransportError and never retry.
type Client interface {
	// AnalyzeImage sends an image with an instruction prompt and returns the raw JSON text of the answer.
	AnalyzeImage(ctx context.Context, imageB64, prompt string) (string, error)
	// SummarizeText sends a text-only prompt and returns the raw JSON text of the answer.
	SummarizeText(ctx context.Context, prompt string) (string, error)
	// StreamChat yields completion fragments in arrival order.
	// A failure is yielded once as the last element with an empty fragment.
	StreamChat(ctx context.Context, messages []Message) iter.Seq2[string, error]
	// KeywordsForImage returns the free-text answer to a keyword prompt about an image.
	KeywordsForImage(ctx context.Context, imageB64, prompt string) (string, error)
}

// Message is one turn of a chat conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ParseRole maps a role sent by a front end to a Role.
// "ai" and "bot" are accepted for the assistant.
func ParseRole(value string) (Role, bool) {
	switch value {
	case "system":
		return RoleSystem, true
	case "user":
		return RoleUser, true
	case "assistant", "ai", "bot":
		return RoleAssistant, true
	}
	return "", false
}
