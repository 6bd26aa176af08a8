package chat

import (
	"context"
	"encoding/json"
	"errors"
	"iter"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/studylog/internal/inference"
	mock_inference "github.com/at-ishikawa/studylog/internal/mocks/inference"
)

type streamItem struct {
	fragment string
	err      error
}

func stream(items ...streamItem) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, item := range items {
			if !yield(item.fragment, item.err) {
				return
			}
		}
	}
}

func collect(seq iter.Seq[string]) []string {
	var fragments []string
	for fragment := range seq {
		fragments = append(fragments, fragment)
	}
	return fragments
}

func TestRelay_Relay(t *testing.T) {
	unreachable := &inference.TransportError{Op: "stream chat", StatusCode: 503, Err: errors.New("overloaded")}

	tests := []struct {
		name   string
		stream iter.Seq2[string, error]
		want   []string
	}{
		{
			name:   "fragments are relayed in order",
			stream: stream(streamItem{fragment: "The limit "}, streamItem{fragment: "is "}, streamItem{fragment: "1."}),
			want:   []string{"The limit ", "is ", "1."},
		},
		{
			name:   "failure before the first fragment",
			stream: stream(streamItem{err: unreachable}),
			want:   []string{ErrorFragment(unreachable)},
		},
		{
			name:   "failure after some fragments",
			stream: stream(streamItem{fragment: "Let's "}, streamItem{err: unreachable}),
			want:   []string{"Let's ", ErrorFragment(unreachable)},
		},
		{
			name:   "empty answer",
			stream: stream(),
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mock_inference.NewMockClient(ctrl)
			client.EXPECT().StreamChat(gomock.Any(), gomock.Any()).Return(tt.stream)

			got := collect(NewRelay(client).Relay(context.Background(), []inference.Message{
				{Role: inference.RoleUser, Content: "What is lim sin(x)/x?"},
			}))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRelay_Relay_Conversation(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_inference.NewMockClient(ctrl)
	history := []inference.Message{
		{Role: inference.RoleUser, Content: "Why is the derivative of x^2 equal to 2x?"},
		{Role: inference.RoleAssistant, Content: "Start from the definition."},
		{Role: inference.RoleUser, Content: "Which definition?"},
	}
	client.EXPECT().StreamChat(gomock.Any(), append([]inference.Message{
		{Role: inference.RoleSystem, Content: persona},
	}, history...)).Return(stream(streamItem{fragment: "The limit "}, streamItem{fragment: "definition."}))

	got := strings.Join(collect(NewRelay(client).Relay(context.Background(), history)), "")
	assert.Equal(t, "The limit definition.", got)
}

func TestRelay_Relay_SingleUse(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_inference.NewMockClient(ctrl)
	client.EXPECT().StreamChat(gomock.Any(), gomock.Any()).Return(stream(streamItem{fragment: "once"})).Times(1)

	seq := NewRelay(client).Relay(context.Background(), nil)
	assert.Equal(t, []string{"once"}, collect(seq))
	assert.Empty(t, collect(seq))
}

func TestRelay_Relay_SingleUseAcrossGoroutines(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_inference.NewMockClient(ctrl)
	client.EXPECT().StreamChat(gomock.Any(), gomock.Any()).
		Return(stream(streamItem{fragment: "a"}, streamItem{fragment: "b"})).Times(1)

	seq := NewRelay(client).Relay(context.Background(), nil)
	results := make([][]string, 8)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = collect(seq)
		}()
	}
	wg.Wait()

	var got []string
	for _, fragments := range results {
		got = append(got, fragments...)
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestRelay_Relay_StopsWhenConsumerStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_inference.NewMockClient(ctrl)
	client.EXPECT().StreamChat(gomock.Any(), gomock.Any()).
		Return(stream(streamItem{fragment: "a"}, streamItem{fragment: "b"}, streamItem{fragment: "c"}))

	var got []string
	for fragment := range NewRelay(client).Relay(context.Background(), nil) {
		got = append(got, fragment)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestErrorFragment(t *testing.T) {
	fragment := ErrorFragment(errors.New(`quote " and newline` + "\n"))

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(fragment), &payload))
	assert.Equal(t, "failed to talk to the AI model: quote \" and newline\n", payload["error"])
}
