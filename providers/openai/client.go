// Package openai implements llmclient.Client on the official openai-go SDK.
// This is the one native-SDK backend; every other provider kind goes through
// the generic HTTP client.
package openai

import (
	"context"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	llmclient "github.com/caseforge/caseforge-llm-go"
)

// Client wraps the openai-go SDK and maps its response object into the
// library's ChatResponse.
type Client struct {
	apiKey string
	model  string
	client openai.Client
}

// New creates a native SDK client. An empty base URL uses the SDK default.
//
// Construction extras: the reserved "timeout" key (seconds) configures the
// SDK's request timeout; remaining keys are injected into every request body
// as defaults.
func New(apiKey, apiBase, model string, extra map[string]any) *Client {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if apiBase != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(apiBase, "/")))
	}
	for key, value := range extra {
		if key == "timeout" {
			if secs, ok := value.(float64); ok && secs > 0 {
				opts = append(opts, option.WithRequestTimeout(time.Duration(secs*float64(time.Second))))
			}
			continue
		}
		opts = append(opts, option.WithJSONSet(key, value))
	}

	return &Client{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClient(opts...),
	}
}

// Kind returns the provider kind this client serves.
func (c *Client) Kind() llmclient.ProviderKind {
	return llmclient.ProviderOpenAI
}

// Available reports whether a credential is present.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

// Close is a no-op; the SDK owns its transport.
func (c *Client) Close() error {
	return nil
}

// Chat forwards the conversation to the SDK's chat-completion call.
func (c *Client) Chat(ctx context.Context, messages []llmclient.ChatMessage, opts llmclient.ChatOptions) (*llmclient.ChatResponse, error) {
	if !c.Available() {
		return nil, &llmclient.ProviderError{
			Provider: c.Kind().String(),
			Message:  "OpenAI SDK client has no API key",
			Err:      llmclient.ErrNotConfigured,
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    convertMessages(messages),
		Temperature: openai.Float(opts.Temperature),
		MaxTokens:   openai.Int(int64(opts.MaxTokens)),
	}

	var reqOpts []option.RequestOption
	for key, value := range opts.Extra {
		switch key {
		case "model", "messages", "temperature", "max_tokens":
			continue
		}
		reqOpts = append(reqOpts, option.WithJSONSet(key, value))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params, reqOpts...)
	if err != nil {
		return nil, &llmclient.ProviderError{
			Provider:  c.Kind().String(),
			Message:   err.Error(),
			Retryable: true,
			Err:       llmclient.ErrProviderUnavailable,
		}
	}
	if len(resp.Choices) == 0 {
		return nil, &llmclient.ProviderError{
			Provider: c.Kind().String(),
			Message:  "response has no choices",
			Err:      llmclient.ErrMalformedResponse,
		}
	}

	return &llmclient.ChatResponse{
		Content: strings.TrimSpace(resp.Choices[0].Message.Content),
		Model:   resp.Model,
		Usage: &llmclient.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
		Raw: []byte(resp.RawJSON()),
	}, nil
}

// convertMessages maps library messages onto the SDK's param unions,
// preserving order.
func convertMessages(messages []llmclient.ChatMessage) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case llmclient.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case llmclient.RoleAssistant:
			out = append(out, openai.ChatCompletionMessageParamOfAssistant(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}
