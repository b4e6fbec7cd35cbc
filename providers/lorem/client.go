// Package lorem provides a mock llmclient.Client that replies with lorem
// ipsum prose. Used for offline development and for exercising consumers'
// degradation paths (prose is never valid structured output) without real
// API keys.
package lorem

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	loremgen "github.com/bozaro/golorem"

	llmclient "github.com/caseforge/caseforge-llm-go"
)

// Client generates lorem ipsum replies after a configurable delay.
type Client struct {
	model     string
	delay     time.Duration
	generator *loremgen.Lorem
}

// New creates a lorem client. delay simulates inference latency; zero means
// replies return immediately.
func New(model string, delay time.Duration) *Client {
	if model == "" {
		model = "lorem-fast"
	}
	return &Client{
		model:     model,
		delay:     delay,
		generator: loremgen.New(),
	}
}

// Available always reports true; the mock needs no credentials.
func (c *Client) Available() bool {
	return true
}

// Close is a no-op.
func (c *Client) Close() error {
	return nil
}

// Chat returns lorem ipsum text sized to roughly a quarter of the token
// budget (1 token ~ 4 characters, so the text stays well inside it).
func (c *Client) Chat(ctx context.Context, messages []llmclient.ChatMessage, opts llmclient.ChatOptions) (*llmclient.ChatResponse, error) {
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	text := c.generateText(maxTokens)

	usage := &llmclient.Usage{
		PromptTokens:     estimateTokens(messages),
		CompletionTokens: len(strings.Fields(text)),
	}
	usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens

	raw, _ := json.Marshal(map[string]any{"mock": true, "provider": "lorem"})

	return &llmclient.ChatResponse{
		Content: text,
		Model:   c.model,
		Usage:   usage,
		Raw:     raw,
	}, nil
}

// generateText produces lorem ipsum paragraphs up to roughly maxTokens
// characters.
func (c *Client) generateText(maxTokens int) string {
	targetChars := maxTokens
	var sb strings.Builder
	for sb.Len() < targetChars {
		sb.WriteString(c.generator.Paragraph(2, 4))
		sb.WriteString("\n\n")
	}
	return strings.TrimSpace(sb.String())
}

// estimateTokens uses word count as a rough token approximation.
func estimateTokens(messages []llmclient.ChatMessage) int {
	total := 0
	for _, msg := range messages {
		total += len(strings.Fields(msg.Content))
	}
	return total
}
