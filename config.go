package llmclient

import (
	"encoding/json"
	"os"
	"strings"
)

// DefaultModel is used when a configuration record omits the model name.
const DefaultModel = "gpt-3.5-turbo"

// ProviderConfig mirrors the persisted provider record owned by the
// surrounding CRUD layer. This library only reads it to construct a Client,
// never mutates or stores it.
//
// Invariant (enforced by the owning layer, relied on here): at most one
// config is marked default among active configs.
type ProviderConfig struct {
	// Name is the human-facing label of the configuration
	Name string `json:"name"`

	// Provider is the provider kind key (see ProviderKind)
	Provider string `json:"provider"`

	// APIBase is the base URL; a trailing slash is stripped before use
	APIBase string `json:"api_base"`

	// APIKey is the secret credential
	APIKey string `json:"api_key"`

	// Model is the model identifier; DefaultModel when empty
	Model string `json:"model"`

	// ExtraParams is an optional JSON object string of provider-specific
	// parameters (timeouts, sampling params, ...)
	ExtraParams string `json:"extra_params"`

	IsActive  bool `json:"is_active"`
	IsDefault bool `json:"is_default"`
}

// Kind returns the typed provider kind. An empty provider string means
// OpenAI, matching the legacy records that predate the provider column.
func (c *ProviderConfig) Kind() ProviderKind {
	p := strings.ToLower(strings.TrimSpace(c.Provider))
	if p == "" {
		return ProviderOpenAI
	}
	return ProviderKind(p)
}

// ModelOrDefault returns the configured model, or DefaultModel when unset.
func (c *ProviderConfig) ModelOrDefault() string {
	if c.Model == "" {
		return DefaultModel
	}
	return c.Model
}

// BaseURL returns the API base with any trailing slash stripped.
func (c *ProviderConfig) BaseURL() string {
	return strings.TrimRight(c.APIBase, "/")
}

// Validate reports whether the record can produce a usable client.
// It checks only what this library consumes; whether the record is the
// active default among its peers is the owning layer's concern.
func (c *ProviderConfig) Validate() error {
	if c.APIKey == "" {
		return &ConfigError{
			Provider: c.Kind().String(),
			Reason:   "API key missing",
			Err:      ErrInvalidAPIKey,
		}
	}
	return nil
}

// DecodeExtraParams parses the extra-parameters blob. Absent or malformed
// JSON degrades to an empty map; the blob is advisory and must never make a
// config unusable.
func (c *ProviderConfig) DecodeExtraParams() map[string]any {
	extra := map[string]any{}
	if c.ExtraParams == "" {
		return extra
	}
	if err := json.Unmarshal([]byte(c.ExtraParams), &extra); err != nil {
		return map[string]any{}
	}
	return extra
}

// ConfigFromEnv builds a ProviderConfig from the AI_* environment variables.
// This is the legacy configuration path for deployments without a persisted
// provider table. The returned config may lack an API key; callers check
// Available on the constructed client.
func ConfigFromEnv() *ProviderConfig {
	return &ProviderConfig{
		Name:     "env",
		Provider: envOr("AI_PROVIDER", ProviderOpenAI.String()),
		APIKey:   os.Getenv("AI_API_KEY"),
		APIBase:  envOr("AI_API_BASE", "https://api.openai.com/v1"),
		Model:    envOr("AI_MODEL", DefaultModel),
		IsActive: true,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
