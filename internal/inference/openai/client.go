package openai

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	openaisdk "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"resty.dev/v3"

	"github.com/at-ishikawa/studylog/internal/config"
	"github.com/at-ishikawa/studylog/internal/inference"
)

// Client talks to an OpenAI compatible chat completions API.
// Request/response calls go through resty; streamed chat goes through the openai-go SDK.
type Client struct {
	httpClient *resty.Client
	stream     openaisdk.Client
	model      string

	analysisMaxTokens int
	summaryMaxTokens  int
	chatMaxTokens     int
	keywordMaxTokens  int
}

func NewClient(cfg config.OpenAIConfig) (*Client, error) {
	transport := http.DefaultTransport
	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("url.Parse(%s) > %w", cfg.ProxyURL, err)
		}
		defaultTransport := http.DefaultTransport.(*http.Transport).Clone()
		defaultTransport.Proxy = http.ProxyURL(proxyURL)
		transport = defaultTransport
	}

	httpClient := resty.NewWithClient(&http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	})
	httpClient.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/"))
	httpClient.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	httpClient.SetHeader("Content-Type", "application/json")

	// A streamed answer can outlive cfg.Timeout; it is bounded by the request context instead.
	stream := openaisdk.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Transport: transport}),
	)

	return &Client{
		httpClient:        httpClient,
		stream:            stream,
		model:             cfg.Model,
		analysisMaxTokens: cfg.AnalysisMaxTokens,
		summaryMaxTokens:  cfg.SummaryMaxTokens,
		chatMaxTokens:     cfg.ChatMaxTokens,
		keywordMaxTokens:  cfg.KeywordMaxTokens,
	}, nil
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client *Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float32         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type ResponseFormat struct {
	Type string `json:"type"`
}

var jsonObjectFormat = &ResponseFormat{Type: "json_object"}

// Message is a chat message. Content is either a string or a list of ContentPart.
type Message struct {
	Role    inference.Role `json:"role"`
	Content any            `json:"content"`
}

type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    inference.Role `json:"role"`
	Content string         `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// imageMessage builds a user message carrying a prompt and a JPEG image as a data URL.
func imageMessage(imageB64, prompt string) Message {
	return Message{
		Role: inference.RoleUser,
		Content: []ContentPart{
			{Type: "text", Text: prompt},
			{Type: "image_url", ImageURL: &ImageURL{URL: "data:image/jpeg;base64," + imageB64}},
		},
	}
}

// AnalyzeImage implements the inference.Client interface
func (client *Client) AnalyzeImage(ctx context.Context, imageB64, prompt string) (string, error) {
	return client.complete(ctx, "analyze image", ChatCompletionRequest{
		Model:          client.model,
		Messages:       []Message{imageMessage(imageB64, prompt)},
		MaxTokens:      client.analysisMaxTokens,
		ResponseFormat: jsonObjectFormat,
	})
}

// SummarizeText implements the inference.Client interface
func (client *Client) SummarizeText(ctx context.Context, prompt string) (string, error) {
	return client.complete(ctx, "summarize text", ChatCompletionRequest{
		Model:          client.model,
		Messages:       []Message{{Role: inference.RoleUser, Content: prompt}},
		MaxTokens:      client.summaryMaxTokens,
		ResponseFormat: jsonObjectFormat,
	})
}

// KeywordsForImage implements the inference.Client interface
func (client *Client) KeywordsForImage(ctx context.Context, imageB64, prompt string) (string, error) {
	content, err := client.complete(ctx, "keywords for image", ChatCompletionRequest{
		Model:       client.model,
		Messages:    []Message{imageMessage(imageB64, prompt)},
		MaxTokens:   client.keywordMaxTokens,
		Temperature: 0.1,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

func (client *Client) complete(ctx context.Context, op string, requestBody ChatCompletionRequest) (string, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return "", &inference.TransportError{Op: op, Err: fmt.Errorf("httpClient.Post > %w", err)}
	}
	if response.IsError() {
		return "", &inference.TransportError{Op: op, StatusCode: response.StatusCode(), Err: fmt.Errorf("%s", response.String())}
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return "", &inference.TransportError{Op: op, Err: fmt.Errorf("empty response body or choices: %s", response.String())}
	}

	content := responseBody.Choices[0].Message.Content
	slog.Default().Debug("openai response content",
		"op", op,
		"model", responseBody.Model,
		"totalTokens", responseBody.Usage.TotalTokens,
		"content", content,
	)
	return content, nil
}

// StreamChat implements the inference.Client interface
func (client *Client) StreamChat(ctx context.Context, messages []inference.Message) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		params := openaisdk.ChatCompletionNewParams{
			Model:     openaisdk.ChatModel(client.model),
			Messages:  toSDKMessages(messages),
			MaxTokens: openaisdk.Int(int64(client.chatMaxTokens)),
		}
		stream := client.stream.Chat.Completions.NewStreaming(ctx, params)
		defer func() {
			if err := stream.Close(); err != nil {
				slog.Default().Debug("failed to close chat stream", "error", err)
			}
		}()

		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 {
				continue
			}
			content := chunk.Choices[0].Delta.Content
			if content == "" {
				continue
			}
			if !yield(content, nil) {
				return
			}
		}
		if err := stream.Err(); err != nil {
			yield("", &inference.TransportError{Op: "stream chat", Err: err})
		}
	}
}

func toSDKMessages(messages []inference.Message) []openaisdk.ChatCompletionMessageParamUnion {
	result := make([]openaisdk.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, message := range messages {
		switch message.Role {
		case inference.RoleSystem:
			result = append(result, openaisdk.SystemMessage(message.Content))
		case inference.RoleAssistant:
			result = append(result, openaisdk.AssistantMessage(message.Content))
		default:
			result = append(result, openaisdk.UserMessage(message.Content))
		}
	}
	return result
}
