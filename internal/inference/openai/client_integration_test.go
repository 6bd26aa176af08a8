// go build +integration
package openai_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/studylog/internal/config"
	"github.com/at-ishikawa/studylog/internal/inference/openai"
)

// TestClient_SummarizeText_Live calls the real API.
// Run with: OPENAI_API_KEY=your-key go test -v ./internal/inference/openai -run TestClient_SummarizeText_Live
func TestClient_SummarizeText_Live(t *testing.T) {
	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		})),
	)

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("OPENAI_API_KEY environment variable not set, skipping integration test")
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}
	baseURL := os.Getenv("OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	client, err := openai.NewClient(config.OpenAIConfig{
		APIKey:           apiKey,
		BaseURL:          baseURL,
		Model:            model,
		Timeout:          time.Minute,
		SummaryMaxTokens: 256,
	})
	require.NoError(t, err)
	defer client.Close()

	got, err := client.SummarizeText(context.Background(),
		`Return the JSON object {"general_summary": "<one sentence about limits>", "knowledge_points_summary": ["<one item>"]}.`)
	require.NoError(t, err)
	assert.Contains(t, got, "general_summary")
}
