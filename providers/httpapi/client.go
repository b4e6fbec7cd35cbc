// Package httpapi implements llmclient.Client for any OpenAI-API-compatible
// provider reached over hand-built HTTP: self-hosted gateways, third-party
// services, local inference servers.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	llmclient "github.com/caseforge/caseforge-llm-go"
)

// DefaultTimeout is generous because inference latency is provider-dependent.
const DefaultTimeout = 120 * time.Second

// completionsPath is the OpenAI-compatible chat endpoint suffix.
const completionsPath = "/chat/completions"

// Body keys owned by the client. Caller extras never overwrite these.
var reservedKeys = map[string]bool{
	"model":       true,
	"messages":    true,
	"temperature": true,
	"max_tokens":  true,
}

// Client is a connection-reusing HTTP client bound to one provider
// configuration. It holds no request-scoped state and is safe for
// concurrent use; Close releases the connection pool.
type Client struct {
	kind       llmclient.ProviderKind
	apiKey     string
	apiBase    string
	model      string
	defaults   map[string]any
	httpClient *http.Client
}

// New creates a generic HTTP client for the given provider kind.
//
// Construction extras are split in two: the reserved "timeout" key (seconds)
// configures the transport, everything else becomes default body keys merged
// into each request (call-time extras take precedence).
func New(kind llmclient.ProviderKind, apiKey, apiBase, model string, extra map[string]any) *Client {
	timeout := DefaultTimeout
	defaults := make(map[string]any, len(extra))
	for key, value := range extra {
		if key == "timeout" {
			if secs, ok := asSeconds(value); ok {
				timeout = secs
			}
			continue
		}
		defaults[key] = value
	}

	return &Client{
		kind:       kind,
		apiKey:     apiKey,
		apiBase:    strings.TrimRight(apiBase, "/"),
		model:      model,
		defaults:   defaults,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// asSeconds interprets a timeout extra as a second count.
// JSON-decoded extras arrive as float64; accept ints for programmatic maps.
func asSeconds(value any) (time.Duration, bool) {
	switch v := value.(type) {
	case float64:
		if v > 0 {
			return time.Duration(v * float64(time.Second)), true
		}
	case int:
		if v > 0 {
			return time.Duration(v) * time.Second, true
		}
	}
	return 0, false
}

// Kind returns the provider kind this client was built for.
func (c *Client) Kind() llmclient.ProviderKind {
	return c.kind
}

// Available reports whether the client holds a credential and a transport.
func (c *Client) Available() bool {
	return c.httpClient != nil && c.apiKey != ""
}

// Close releases the connection pool. The client must not be reused after.
func (c *Client) Close() error {
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
	}
	return nil
}

// Endpoint normalizes the configured base URL into the full chat-completions
// endpoint:
//
//	https://x/v1/chat/completions -> unchanged
//	https://x/v1                  -> https://x/v1/chat/completions
//	https://x                     -> https://x/v1/chat/completions
func (c *Client) Endpoint() string {
	base := c.apiBase
	if strings.HasSuffix(base, completionsPath) {
		return base
	}
	if strings.HasSuffix(base, "/v1") {
		return base + completionsPath
	}
	return base + "/v1" + completionsPath
}

// Chat sends a chat-completion request and returns the normalized response.
func (c *Client) Chat(ctx context.Context, messages []llmclient.ChatMessage, opts llmclient.ChatOptions) (*llmclient.ChatResponse, error) {
	if !c.Available() {
		return nil, &llmclient.ProviderError{
			Provider: c.kind.String(),
			Message:  "HTTP transport unavailable or API key missing",
			Err:      llmclient.ErrNotConfigured,
		}
	}

	body, err := c.buildBody(messages, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &llmclient.ProviderError{
			Provider:  c.kind.String(),
			Message:   err.Error(),
			Retryable: true,
			Err:       llmclient.ErrProviderUnavailable,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.handleErrorResponse(resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &llmclient.ProviderError{
			Provider:  c.kind.String(),
			Message:   fmt.Sprintf("failed to read response body: %v", err),
			Retryable: true,
			Err:       llmclient.ErrProviderUnavailable,
		}
	}

	return c.parseResponse(raw)
}

// buildBody marshals the required keys and merges extras on top.
// Construction defaults apply first, call-time extras override them,
// and neither may touch a reserved key.
func (c *Client) buildBody(messages []llmclient.ChatMessage, opts llmclient.ChatOptions) ([]byte, error) {
	req := chatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	for _, extras := range []map[string]any{c.defaults, opts.Extra} {
		for key, value := range extras {
			if reservedKeys[key] {
				continue
			}
			body, err = sjson.SetBytes(body, key, value)
			if err != nil {
				return nil, fmt.Errorf("failed to merge extra param %q: %w", key, err)
			}
		}
	}

	return body, nil
}

// parseResponse maps a 2xx body into a ChatResponse, rejecting bodies that
// lack the choices[0].message.content shape.
func (c *Client) parseResponse(raw []byte) (*llmclient.ChatResponse, error) {
	var chatResp chatCompletionResponse
	if err := json.Unmarshal(raw, &chatResp); err != nil {
		return nil, &llmclient.ProviderError{
			Provider: c.kind.String(),
			Message:  fmt.Sprintf("failed to parse response: %v", err),
			Err:      llmclient.ErrMalformedResponse,
		}
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message == nil {
		return nil, &llmclient.ProviderError{
			Provider: c.kind.String(),
			Message:  "response has no choices[0].message.content",
			Err:      llmclient.ErrMalformedResponse,
		}
	}

	model := chatResp.Model
	if model == "" {
		model = c.model
	}

	return &llmclient.ChatResponse{
		Content: strings.TrimSpace(chatResp.Choices[0].Message.Content),
		Model:   model,
		Usage:   chatResp.Usage,
		Raw:     json.RawMessage(raw),
	}, nil
}

// handleErrorResponse maps non-2xx responses to library errors.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	// OpenAI-compatible services put the message at error.message;
	// fall back to the raw body for plain-text errors.
	message := gjson.GetBytes(body, "error.message").String()
	if message == "" {
		message = strings.TrimSpace(string(body))
	}

	switch {
	case resp.StatusCode == 401 || resp.StatusCode == 403:
		return &llmclient.ProviderError{
			Provider:   c.kind.String(),
			StatusCode: resp.StatusCode,
			Message:    message,
			Err:        llmclient.ErrInvalidAPIKey,
		}
	case resp.StatusCode == 429:
		return &llmclient.ProviderError{
			Provider:   c.kind.String(),
			StatusCode: resp.StatusCode,
			Message:    message,
			Retryable:  true,
			Err:        llmclient.ErrRateLimited,
		}
	case resp.StatusCode == 408 || resp.StatusCode >= 500:
		return &llmclient.ProviderError{
			Provider:   c.kind.String(),
			StatusCode: resp.StatusCode,
			Message:    message,
			Retryable:  true,
			Err:        llmclient.ErrProviderUnavailable,
		}
	default:
		return &llmclient.ProviderError{
			Provider:   c.kind.String(),
			StatusCode: resp.StatusCode,
			Message:    message,
			Err:        llmclient.ErrProviderUnavailable,
		}
	}
}
