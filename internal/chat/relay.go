// Package chat relays tutoring conversations to the AI model as a stream of text fragments.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"log/slog"
	"sync/atomic"

	"github.com/at-ishikawa/studylog/internal/inference"
)

const persona = `You are a university teacher who explains problems to students in an intuitive way. Your knowledge includes, but is not limited to, advanced mathematics, physical chemistry, materials characterization and the fundamentals of materials science. You prefer Socratic, heuristic teaching because it helps students understand.
How you work:
Give the conclusion first, then guide the student step by step through why it holds.
From the option the student chose, guess the mistake they probably made, then give the solution.`

// Relay streams chat completions for a conversation.
type Relay struct {
	client inference.Client
}

func NewRelay(client inference.Client) *Relay {
	return &Relay{client: client}
}

// Relay yields the fragments of the answer to messages in arrival order.
// A failure is yielded as a single {"error": "..."} fragment that ends the sequence.
// The returned sequence can be ranged over once, even from several goroutines.
func (r *Relay) Relay(ctx context.Context, messages []inference.Message) iter.Seq[string] {
	conversation := make([]inference.Message, 0, len(messages)+1)
	conversation = append(conversation, inference.Message{Role: inference.RoleSystem, Content: persona})
	conversation = append(conversation, messages...)

	var used atomic.Bool
	return func(yield func(string) bool) {
		if !used.CompareAndSwap(false, true) {
			return
		}

		fragments := 0
		for fragment, err := range r.client.StreamChat(ctx, conversation) {
			if err != nil {
				slog.Default().Warn("chat stream failed", "fragments", fragments, "error", err)
				yield(ErrorFragment(err))
				return
			}
			fragments++
			if !yield(fragment) {
				return
			}
		}
	}
}

type errorPayload struct {
	Error string `json:"error"`
}

// ErrorFragment renders err as the JSON payload sent in place of an answer.
func ErrorFragment(err error) string {
	b, marshalErr := json.Marshal(errorPayload{Error: fmt.Sprintf("failed to talk to the AI model: %v", err)})
	if marshalErr != nil {
		return `{"error":"failed to talk to the AI model"}`
	}
	return string(b)
}
