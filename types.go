package llmclient

import "encoding/json"

// Message roles. A conversation is an ordered []ChatMessage; the library
// never reorders caller-supplied history.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single role+content pair in a conversation.
type ChatMessage struct {
	// Role is one of RoleSystem, RoleUser, RoleAssistant
	Role string `json:"role"`

	// Content is the plain text of the message
	Content string `json:"content"`
}

// SystemMessage returns a system-role ChatMessage.
func SystemMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleSystem, Content: content}
}

// UserMessage returns a user-role ChatMessage.
func UserMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleUser, Content: content}
}

// AssistantMessage returns an assistant-role ChatMessage.
func AssistantMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleAssistant, Content: content}
}

// Usage reports token counts for a single completion, when the provider
// returns them.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse is the normalized result of a chat-completion call.
type ChatResponse struct {
	// Content is the assistant reply, already whitespace-trimmed
	Content string

	// Model is the model that actually served the request
	// (may differ from the requested model if the provider aliases)
	Model string

	// Usage is nil when the provider did not report token counts
	Usage *Usage

	// Raw is the unparsed provider payload, retained only for diagnostics
	Raw json.RawMessage
}
