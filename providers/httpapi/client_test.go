package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	llmclient "github.com/caseforge/caseforge-llm-go"
)

// TestEndpoint_Normalization tests base-URL to endpoint resolution
func TestEndpoint_Normalization(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"https://x/v1", "https://x/v1/chat/completions"},
		{"https://x", "https://x/v1/chat/completions"},
		{"https://x/v1/chat/completions", "https://x/v1/chat/completions"},
		{"https://x/v1/", "https://x/v1/chat/completions"},
		{"https://open.bigmodel.cn/api/paas/v4", "https://open.bigmodel.cn/api/paas/v4/v1/chat/completions"},
	}

	for _, tt := range tests {
		c := New(llmclient.ProviderCustom, "key", tt.base, "m", nil)
		if got := c.Endpoint(); got != tt.want {
			t.Errorf("Endpoint(%q) = %q, want %q", tt.base, got, tt.want)
		}
	}
}

// TestAvailable tests that availability requires a credential
func TestAvailable(t *testing.T) {
	if New(llmclient.ProviderCustom, "", "https://x", "m", nil).Available() {
		t.Error("client without API key must not be available")
	}
	if !New(llmclient.ProviderCustom, "key", "https://x", "m", nil).Available() {
		t.Error("client with API key must be available")
	}
}

// TestChat_Success tests a full request/response cycle against a local
// OpenAI-compatible server
func TestChat_Success(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    "chatcmpl-1",
			"model": "served-model",
			"choices": []map[string]any{
				{"index": 0, "message": map[string]any{"role": "assistant", "content": "  hello  "}},
			},
			"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	}))
	defer server.Close()

	c := New(llmclient.ProviderDeepSeek, "sk-test", server.URL+"/v1", "deepseek-chat",
		map[string]any{"top_p": 0.9})
	defer c.Close()

	resp, err := c.Chat(context.Background(), []llmclient.ChatMessage{
		llmclient.SystemMessage("sys"),
		llmclient.UserMessage("hi"),
	}, llmclient.ChatOptions{Temperature: 0.7, MaxTokens: 100, Extra: map[string]any{"stop": []string{"END"}}})
	if err != nil {
		t.Fatalf("error = %v", err)
	}

	if gotAuth != "Bearer sk-test" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if resp.Content != "hello" {
		t.Errorf("expected trimmed content 'hello', got %q", resp.Content)
	}
	if resp.Model != "served-model" {
		t.Errorf("expected served model echo, got %q", resp.Model)
	}
	if resp.Usage == nil || resp.Usage.TotalTokens != 15 {
		t.Errorf("unexpected usage: %+v", resp.Usage)
	}
	if len(resp.Raw) == 0 {
		t.Error("raw payload should be retained")
	}

	// Required keys present, extras merged
	if gotBody["model"] != "deepseek-chat" {
		t.Errorf("expected model in body, got %v", gotBody["model"])
	}
	if gotBody["temperature"] != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", gotBody["temperature"])
	}
	if gotBody["max_tokens"] != float64(100) {
		t.Errorf("expected max_tokens 100, got %v", gotBody["max_tokens"])
	}
	if gotBody["top_p"] != 0.9 {
		t.Errorf("construction extra top_p missing, got %v", gotBody["top_p"])
	}
	if gotBody["stop"] == nil {
		t.Error("call-time extra stop missing")
	}
}

// TestChat_ExtrasNeverOverwriteReservedKeys tests the merge precedence rule
func TestChat_ExtrasNeverOverwriteReservedKeys(t *testing.T) {
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "x"}},
			},
		})
	}))
	defer server.Close()

	c := New(llmclient.ProviderCustom, "key", server.URL, "real-model",
		map[string]any{"model": "sneaky-default"})
	defer c.Close()

	_, err := c.Chat(context.Background(), []llmclient.ChatMessage{llmclient.UserMessage("hi")},
		llmclient.ChatOptions{Temperature: 0.3, MaxTokens: 10, Extra: map[string]any{
			"model":       "sneaky-call",
			"temperature": 99,
			"max_tokens":  99,
		}})
	if err != nil {
		t.Fatalf("error = %v", err)
	}

	if gotBody["model"] != "real-model" {
		t.Errorf("model overwritten by extras: %v", gotBody["model"])
	}
	if gotBody["temperature"] != 0.3 {
		t.Errorf("temperature overwritten by extras: %v", gotBody["temperature"])
	}
	if gotBody["max_tokens"] != float64(10) {
		t.Errorf("max_tokens overwritten by extras: %v", gotBody["max_tokens"])
	}
}

// TestChat_ErrorStatusMapping tests non-2xx handling
func TestChat_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		status    int
		sentinel  error
		retryable bool
	}{
		{401, llmclient.ErrInvalidAPIKey, false},
		{403, llmclient.ErrInvalidAPIKey, false},
		{429, llmclient.ErrRateLimited, true},
		{500, llmclient.ErrProviderUnavailable, true},
		{404, llmclient.ErrProviderUnavailable, false},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			_, _ = w.Write([]byte(`{"error": {"message": "boom"}}`))
		}))

		c := New(llmclient.ProviderQwen, "key", server.URL, "m", nil)
		_, err := c.Chat(context.Background(), []llmclient.ChatMessage{llmclient.UserMessage("hi")},
			llmclient.ChatOptions{Temperature: 0.1, MaxTokens: 5})
		server.Close()
		_ = c.Close()

		if err == nil {
			t.Fatalf("status %d: expected error", tt.status)
		}
		if !errors.Is(err, tt.sentinel) {
			t.Errorf("status %d: expected sentinel %v in chain, got %v", tt.status, tt.sentinel, err)
		}

		var providerErr *llmclient.ProviderError
		if !errors.As(err, &providerErr) {
			t.Fatalf("status %d: expected *ProviderError, got %T", tt.status, err)
		}
		if providerErr.StatusCode != tt.status {
			t.Errorf("expected status %d, got %d", tt.status, providerErr.StatusCode)
		}
		if providerErr.Message != "boom" {
			t.Errorf("expected error body message, got %q", providerErr.Message)
		}
		if providerErr.Retryable != tt.retryable {
			t.Errorf("status %d: retryable = %v, want %v", tt.status, providerErr.Retryable, tt.retryable)
		}
	}
}

// TestChat_MissingChoices tests 2xx bodies without the expected shape
func TestChat_MissingChoices(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"choices": []}`,
		`not json`,
	}

	for _, body := range bodies {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		c := New(llmclient.ProviderCustom, "key", server.URL, "m", nil)
		_, err := c.Chat(context.Background(), []llmclient.ChatMessage{llmclient.UserMessage("hi")},
			llmclient.ChatOptions{Temperature: 0.1, MaxTokens: 5})
		server.Close()
		_ = c.Close()

		if err == nil {
			t.Fatalf("body %q: expected error", body)
		}
		if !errors.Is(err, llmclient.ErrMalformedResponse) {
			t.Errorf("body %q: expected ErrMalformedResponse, got %v", body, err)
		}
	}
}

// TestChat_ContextCancellation tests that the caller's context aborts the
// in-flight call
func TestChat_ContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server's background read can detect the
		// client disconnect and cancel r.Context(); otherwise Close hangs.
		_, _ = io.Copy(io.Discard, r.Body)
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	c := New(llmclient.ProviderCustom, "key", server.URL, "m", nil)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := c.Chat(ctx, []llmclient.ChatMessage{llmclient.UserMessage("hi")},
		llmclient.ChatOptions{Temperature: 0.1, MaxTokens: 5})
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
}

// TestChat_NotConfigured tests the missing-credential failure mode
func TestChat_NotConfigured(t *testing.T) {
	c := New(llmclient.ProviderCustom, "", "https://x", "m", nil)
	_, err := c.Chat(context.Background(), []llmclient.ChatMessage{llmclient.UserMessage("hi")},
		llmclient.ChatOptions{})
	if !errors.Is(err, llmclient.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

// TestNew_TimeoutExtra tests that the timeout extra configures the transport
// and is not forwarded as a body default
func TestNew_TimeoutExtra(t *testing.T) {
	c := New(llmclient.ProviderCustom, "key", "https://x", "m",
		map[string]any{"timeout": 30.0, "top_p": 0.5})

	if c.httpClient.Timeout.Seconds() != 30 {
		t.Errorf("expected 30s timeout, got %v", c.httpClient.Timeout)
	}
	if _, ok := c.defaults["timeout"]; ok {
		t.Error("timeout must not leak into body defaults")
	}
	if _, ok := c.defaults["top_p"]; !ok {
		t.Error("top_p should remain a body default")
	}
}
