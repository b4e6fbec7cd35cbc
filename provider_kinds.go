package llmclient

// ProviderKind represents a unique provider identifier.
// Using a typed constant prevents typos and provides compile-time safety.
type ProviderKind string

// Known provider kinds. ProviderOpenAI is the only kind served through a
// first-class SDK; every other kind speaks the OpenAI-compatible wire
// protocol through the generic HTTP client.
const (
	// ProviderOpenAI is OpenAI's official API (native SDK)
	ProviderOpenAI ProviderKind = "openai"

	// ProviderAzure is Azure OpenAI
	ProviderAzure ProviderKind = "azure"

	// ProviderAnthropic is Anthropic Claude behind an OpenAI-compatible gateway
	ProviderAnthropic ProviderKind = "anthropic"

	// ProviderQwen is Alibaba Cloud Tongyi Qianwen
	ProviderQwen ProviderKind = "qwen"

	// ProviderZhipu is Zhipu AI (GLM)
	ProviderZhipu ProviderKind = "zhipu"

	// ProviderMoonshot is Moonshot AI (Kimi)
	ProviderMoonshot ProviderKind = "moonshot"

	// ProviderDeepSeek is DeepSeek
	ProviderDeepSeek ProviderKind = "deepseek"

	// ProviderOllama is a local Ollama deployment
	ProviderOllama ProviderKind = "ollama"

	// ProviderCustom is any self-hosted OpenAI-compatible endpoint
	ProviderCustom ProviderKind = "custom"
)

// String returns the string representation of the provider kind.
func (p ProviderKind) String() string {
	return string(p)
}

// IsValid returns true if the provider kind is a known provider.
// Unknown kinds are still routable (they fall through to the generic HTTP
// client); IsValid only distinguishes recognized entries.
func (p ProviderKind) IsValid() bool {
	switch p {
	case ProviderOpenAI, ProviderAzure, ProviderAnthropic, ProviderQwen,
		ProviderZhipu, ProviderMoonshot, ProviderDeepSeek, ProviderOllama,
		ProviderCustom:
		return true
	default:
		return false
	}
}

// Native returns true for the one kind served through a first-class SDK.
func (p ProviderKind) Native() bool {
	return p == ProviderOpenAI
}
