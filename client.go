package llmclient

import (
	"context"
)

// Client defines the interface every chat-completion backend must satisfy.
// This abstraction allows routing to any OpenAI-API-compatible provider
// (official SDK, self-hosted gateways, local inference servers) through one
// uniform call.
//
// Implementations hold no request-scoped state and are safe to reuse across
// concurrent requests. Close releases the underlying transport; a Client
// must not be used after Close.
type Client interface {
	// Chat sends the ordered message sequence and returns the normalized
	// response. Cancellation of ctx aborts the in-flight provider call.
	//
	// Fails with *ProviderError when the transport failed to initialize,
	// the HTTP call returns a non-2xx status, or the response body lacks
	// the expected choices[0].message.content shape.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (*ChatResponse, error)

	// Available reports whether the client can be called at all:
	// credentials are present and the transport initialized.
	Available() bool

	// Close releases the transport/connection pool.
	Close() error
}

// ChatOptions carries per-call parameters.
type ChatOptions struct {
	// Temperature controls randomness (0.0-2.0 on OpenAI-compatible APIs)
	Temperature float64

	// MaxTokens caps the completion length
	MaxTokens int

	// Extra contains provider-specific body keys merged into the request.
	// Extra keys never overwrite model, messages, temperature or max_tokens.
	Extra map[string]any
}
