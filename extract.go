package llmclient

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// ExtractArray parses a raw model reply into v, which must be a pointer to a
// slice. It tolerates the formatting noise models commonly add:
//
//   - a leading ```/```json fenced block is stripped before parsing
//   - a single JSON object where an array was expected is wrapped in a
//     one-element array
//
// Any parse failure is reported as *ExtractionError; the caller decides
// whether to degrade.
func ExtractArray(content string, v any) error {
	text := StripFence(content)

	if !gjson.Valid(text) {
		return &ExtractionError{Snippet: snippet(content), Err: ErrMalformedResponse}
	}
	if gjson.Parse(text).IsObject() {
		text = "[" + text + "]"
	}

	if err := json.Unmarshal([]byte(text), v); err != nil {
		return &ExtractionError{Snippet: snippet(content), Err: err}
	}
	return nil
}

// StripFence removes a leading triple-backtick fence from a model reply.
// The first fenced segment is kept; if it starts with a language tag token
// (e.g. "json"), the tag is dropped too. Replies without a leading fence are
// returned unchanged.
func StripFence(content string) string {
	text := strings.TrimSpace(content)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	parts := strings.Split(text, "```")
	// parts[0] is empty for a leading fence, parts[1] is the fenced body
	if len(parts) < 2 {
		return text
	}
	body := parts[1]

	// Models label the fence with the payload language ("```json").
	body = strings.TrimPrefix(body, "json")
	return strings.TrimSpace(body)
}

const snippetLen = 80

func snippet(content string) string {
	s := strings.TrimSpace(content)
	if len(s) > snippetLen {
		return s[:snippetLen]
	}
	return s
}
