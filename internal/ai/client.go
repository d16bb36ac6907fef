package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/gemstone-shop/gemstone/internal/config"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("ai client disabled")

// ErrEmptyResponse is returned when the model comes back with no content.
var ErrEmptyResponse = errors.New("ai returned empty response")

// Client wraps a chat-completion endpoint. Any OpenAI-compatible
// base URL works, DeepSeek included.
type Client struct {
	client      *openai.Client
	model       string
	temperature float64
	maxTokens   int
	enabled     bool
}

// NewClient builds a client from config. A blank API key yields a
// disabled client whose calls fail with ErrDisabled.
func NewClient(cfg config.AIConfig) *Client {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return &Client{}
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	clientValue := openai.NewClient(opts...)

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "deepseek-chat"
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2048
	}

	return &Client{
		client:      &clientValue,
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
		enabled:     true,
	}
}

// Enabled reports whether the client can make calls.
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Complete sends one system+user exchange and returns the raw text.
func (c *Client) Complete(ctx context.Context, systemMessage, userMessage string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(systemMessage),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(userMessage),
					},
				},
			},
		},
		MaxTokens:   openai.Int(int64(c.maxTokens)),
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// ExtractJSON strips markdown fences and surrounding prose so a
// strict-JSON prompt answer can be unmarshalled. Returns the empty
// string when no JSON object or array is present.
func ExtractJSON(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		if idx := strings.LastIndex(cleaned, "```"); idx >= 0 {
			cleaned = cleaned[:idx]
		}
		cleaned = strings.TrimSpace(cleaned)
	}

	start := strings.IndexAny(cleaned, "[{")
	if start < 0 {
		return ""
	}
	var end int
	if cleaned[start] == '[' {
		end = strings.LastIndex(cleaned, "]")
	} else {
		end = strings.LastIndex(cleaned, "}")
	}
	if end <= start {
		return ""
	}
	return cleaned[start : end+1]
}
