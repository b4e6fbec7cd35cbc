package httpapi

import (
	llmclient "github.com/caseforge/caseforge-llm-go"
)

// chatCompletionRequest is the OpenAI-compatible request body.
// Extra provider-specific keys are merged in after marshaling.
type chatCompletionRequest struct {
	Model       string                  `json:"model"`
	Messages    []llmclient.ChatMessage `json:"messages"`
	Temperature float64                 `json:"temperature"`
	MaxTokens   int                     `json:"max_tokens"`
}

// chatCompletionResponse is the OpenAI-compatible response body, reduced to
// the fields this client consumes.
type chatCompletionResponse struct {
	ID      string           `json:"id"`
	Model   string           `json:"model"`
	Choices []choice         `json:"choices"`
	Usage   *llmclient.Usage `json:"usage"`
}

type choice struct {
	Index        int             `json:"index"`
	Message      *messagePayload `json:"message"`
	FinishReason string          `json:"finish_reason"`
}

type messagePayload struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
