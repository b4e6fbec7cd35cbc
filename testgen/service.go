package testgen

import (
	"context"
	"errors"
	"log/slog"

	llmclient "github.com/caseforge/caseforge-llm-go"
	"github.com/caseforge/caseforge-llm-go/providers"
)

// Per-use-case sampling policy: generation wants variety, review wants
// consistency; review budgets are larger because a batch returns one record
// per input case.
const (
	generationTemperature = 0.7
	generationMaxTokens   = 4000
	reviewTemperature     = 0.3
	reviewMaxTokens       = 8000
)

// Service runs the generation and review pipelines:
//
//	BuildPrompt -> InvokeProvider -> ExtractOutput -> (Success | FallbackTemplate)
//
// A nil or unavailable client skips straight to the template. No provider or
// extraction error ever propagates to the caller; failures are visible only
// through the logger. The one propagating error class is caller input
// validation.
//
// Each call is a single sequential pipeline with no shared mutable state;
// a Service is safe for concurrent use.
type Service struct {
	client   llmclient.Client
	provider llmclient.ProviderKind
	logger   *slog.Logger
}

// NewService builds a Service around an already-constructed client. client
// may be nil, which pins every call to the template path. The provider kind
// is used only for diagnostics.
func NewService(client llmclient.Client, provider llmclient.ProviderKind, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, provider: provider, logger: logger}
}

// NewServiceFromConfig resolves a provider configuration into a Service.
// The caller resolves which config applies (the active default, a specific
// record, or nil for "no provider"); this package never reaches into a
// process-wide registry. A config without an API key yields a template-only
// Service.
func NewServiceFromConfig(cfg *llmclient.ProviderConfig, logger *slog.Logger) *Service {
	if cfg == nil {
		return NewService(nil, "", logger)
	}
	if err := cfg.Validate(); err != nil {
		service := NewService(nil, cfg.Kind(), logger)
		service.logger.Warn("provider configuration unusable, output will come from templates",
			"provider", cfg.Kind().String(),
			"error", err)
		return service
	}
	return NewService(providers.NewFromConfig(cfg), cfg.Kind(), logger)
}

// Close releases the underlying client's transport.
func (s *Service) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Generate produces test cases for a requirement. The returned error is
// non-nil only for invalid input; every pipeline failure degrades to
// TemplateGenerate output.
func (s *Service) Generate(ctx context.Context, req *GenerateRequest) ([]GeneratedTestCase, error) {
	if req == nil || req.Requirement == nil {
		return nil, &llmclient.ValidationError{
			Field:  "requirement",
			Value:  nil,
			Reason: "a requirement is required for generation",
		}
	}
	opts := req.Options.withDefaults()

	if s.client == nil || !s.client.Available() {
		s.logger.Info("no usable LLM client configured, generating from template",
			"provider", s.provider.String())
		return TemplateGenerate(req.Requirement, opts), nil
	}

	cases, err := s.generateWithModel(ctx, req, opts)
	if err != nil {
		s.logPipelineFailure("test case generation", err)
		return TemplateGenerate(req.Requirement, opts), nil
	}
	return cases, nil
}

// generateWithModel is the provider-backed path. It returns an error for the
// orchestrator to match on; it never falls back itself.
func (s *Service) generateWithModel(ctx context.Context, req *GenerateRequest, opts GenerateOptions) ([]GeneratedTestCase, error) {
	messages := []llmclient.ChatMessage{
		llmclient.SystemMessage(BuildGenerationSystemPrompt(req.PromptOverride)),
		llmclient.UserMessage(BuildGenerationUserPrompt(req.Requirement, opts, req.KnowledgeExcerpts)),
	}

	resp, err := s.client.Chat(ctx, messages, llmclient.ChatOptions{
		Temperature: generationTemperature,
		MaxTokens:   generationMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	var cases []GeneratedTestCase
	if err := llmclient.ExtractArray(resp.Content, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// Review scores a batch of test cases. An empty batch is a caller-contract
// violation and fails fast before any network call; every pipeline failure
// degrades to TemplateReview output.
func (s *Service) Review(ctx context.Context, req *ReviewRequest) ([]ReviewResult, error) {
	if req == nil || len(req.Cases) == 0 {
		return nil, &llmclient.ValidationError{
			Field:  "testcases",
			Value:  0,
			Reason: "at least one test case is required for review",
		}
	}

	if s.client == nil || !s.client.Available() {
		s.logger.Info("no usable LLM client configured, reviewing from template",
			"provider", s.provider.String())
		return TemplateReview(req.Cases), nil
	}

	reviews, err := s.reviewWithModel(ctx, req)
	if err != nil {
		s.logPipelineFailure("test case review", err)
		return TemplateReview(req.Cases), nil
	}
	return reviews, nil
}

func (s *Service) reviewWithModel(ctx context.Context, req *ReviewRequest) ([]ReviewResult, error) {
	messages := []llmclient.ChatMessage{
		llmclient.SystemMessage(BuildReviewSystemPrompt(req.PromptOverride)),
		llmclient.UserMessage(BuildReviewUserPrompt(req.Cases, req.KnowledgeExcerpts)),
	}

	resp, err := s.client.Chat(ctx, messages, llmclient.ChatOptions{
		Temperature: reviewTemperature,
		MaxTokens:   reviewMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	var reviews []ReviewResult
	if err := llmclient.ExtractArray(resp.Content, &reviews); err != nil {
		return nil, err
	}
	for i := range reviews {
		reviews[i].sanitize()
	}
	return reviews, nil
}

// logPipelineFailure records why the template path was taken. Provider
// failures and malformed replies behave identically but are logged
// distinctly for diagnostics.
func (s *Service) logPipelineFailure(op string, err error) {
	var extractionErr *llmclient.ExtractionError
	if errors.As(err, &extractionErr) {
		s.logger.Error(op+": response extraction failed, falling back to template",
			"provider", s.provider.String(),
			"error", err)
		return
	}
	s.logger.Error(op+": provider call failed, falling back to template",
		"provider", s.provider.String(),
		"error", err)
}
