// Package providers selects and constructs concrete llmclient.Client
// implementations for provider kinds.
//
// Routing contract: the openai kind gets the native SDK client; every other
// kind - recognized or not - gets the generic OpenAI-compatible HTTP client.
// The permissive default is deliberate: the defining property of this
// ecosystem is broad OpenAI-API compatibility, so an unknown kind is routed,
// never rejected.
package providers

import (
	llmclient "github.com/caseforge/caseforge-llm-go"
	"github.com/caseforge/caseforge-llm-go/providers/httpapi"
	"github.com/caseforge/caseforge-llm-go/providers/openai"
)

// New constructs a client for the given provider kind. An empty API base
// falls back to the catalog's default endpoint for that kind, when one is
// known.
func New(kind llmclient.ProviderKind, apiKey, apiBase, model string, extra map[string]any) llmclient.Client {
	if apiBase == "" {
		apiBase = llmclient.GetProviderCatalog().DefaultBaseURL(kind)
	}

	if kind.Native() {
		return openai.New(apiKey, apiBase, model, extra)
	}
	// Recognized non-native kinds and unknown kinds alike speak the
	// OpenAI-compatible wire protocol.
	return httpapi.New(kind, apiKey, apiBase, model, extra)
}

// NewFromConfig constructs a client from a persisted provider record.
// The extra-params blob is decoded tolerantly (absent or malformed JSON
// degrades to no extras), so a bad blob can change request defaults but
// never the routing decision.
func NewFromConfig(cfg *llmclient.ProviderConfig) llmclient.Client {
	return New(cfg.Kind(), cfg.APIKey, cfg.BaseURL(), cfg.ModelOrDefault(), cfg.DecodeExtraParams())
}
