// Package testgen orchestrates AI-assisted test-case generation and review
// on top of the llmclient provider abstraction. When no provider is usable
// or the model reply cannot be trusted, both pipelines degrade to
// deterministic template output - callers always receive a usable list.
package testgen

// Test-case categories.
const (
	CaseTypeFunctional  = "functional"
	CaseTypeBoundary    = "boundary"
	CaseTypeException   = "exception"
	CaseTypePerformance = "performance"
)

// Priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Review statuses.
const (
	StatusApproved     = "approved"
	StatusRejected     = "rejected"
	StatusNeedRevision = "need_revision"
)

// DefaultCount is the number of cases generated when the caller does not ask
// for a specific count.
const DefaultCount = 5

// Requirement is the subject of a generation request. Two variants exist:
// StoredRequirement for records persisted by the surrounding system, and
// InlineRequirement for ad-hoc requirement text entered by hand. The
// pipeline only needs the three accessors.
type Requirement interface {
	Title() string
	Content() string
	Module() string
}

// StoredRequirement adapts a persisted requirement record.
type StoredRequirement struct {
	id      int64
	title   string
	content string
	module  string
}

// NewStoredRequirement wraps a persisted requirement's fields.
func NewStoredRequirement(id int64, title, content, module string) StoredRequirement {
	return StoredRequirement{id: id, title: title, content: content, module: module}
}

// ID returns the persisted record's identifier.
func (r StoredRequirement) ID() int64 { return r.id }

func (r StoredRequirement) Title() string   { return r.title }
func (r StoredRequirement) Content() string { return r.content }
func (r StoredRequirement) Module() string  { return r.module }

// InlineRequirement carries requirement text that was never persisted.
type InlineRequirement struct {
	title   string
	content string
	module  string
}

// NewInlineRequirement wraps manually entered requirement text.
func NewInlineRequirement(title, content, module string) InlineRequirement {
	if title == "" {
		title = "Untitled requirement"
	}
	return InlineRequirement{title: title, content: content, module: module}
}

func (r InlineRequirement) Title() string   { return r.title }
func (r InlineRequirement) Content() string { return r.content }
func (r InlineRequirement) Module() string  { return r.module }

// GenerateOptions controls how many cases are produced and which categories
// beyond functional are requested.
type GenerateOptions struct {
	IncludeBoundary    bool `json:"include_boundary"`
	IncludeException   bool `json:"include_exception"`
	IncludePerformance bool `json:"include_performance"`
	Count              int  `json:"count"`
}

// DefaultGenerateOptions mirrors the common request shape: boundary and
// exception coverage on, performance off, DefaultCount cases.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		IncludeBoundary:  true,
		IncludeException: true,
		Count:            DefaultCount,
	}
}

// withDefaults normalizes a non-positive count.
func (o GenerateOptions) withDefaults() GenerateOptions {
	if o.Count < 1 {
		o.Count = DefaultCount
	}
	return o
}

// GenerateRequest is the full input of one generation run. It is synthesized
// per call and never persisted.
type GenerateRequest struct {
	Requirement Requirement

	Options GenerateOptions

	// PromptOverride replaces the default system persona when non-empty.
	// The output-format postscript is appended regardless.
	PromptOverride string

	// KnowledgeExcerpts are reference texts injected into the user prompt
	// to ground the model in domain material.
	KnowledgeExcerpts []string
}

// GeneratedTestCase is one produced test case. Field tags match the external
// JSON contract.
type GeneratedTestCase struct {
	Title          string `json:"title"`
	Precondition   string `json:"precondition"`
	Steps          string `json:"steps"`
	ExpectedResult string `json:"expected_result"`
	CaseType       string `json:"case_type"`
	Priority       string `json:"priority"`
}

// ReviewCase is one test case submitted for review.
type ReviewCase struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Precondition   string `json:"precondition"`
	Steps          string `json:"steps"`
	ExpectedResult string `json:"expected_result"`
	CaseType       string `json:"case_type"`
	Priority       string `json:"priority"`
}

// ReviewRequest is the full input of one review run.
type ReviewRequest struct {
	Cases []ReviewCase

	// PromptOverride replaces the default reviewer persona when non-empty.
	PromptOverride string

	KnowledgeExcerpts []string
}

// ReviewResult is one review verdict. Every score and the overall rating are
// integers in [1,5] after sanitization.
type ReviewResult struct {
	TestcaseID             int64  `json:"testcase_id"`
	TestcaseTitle          string `json:"testcase_title"`
	Status                 string `json:"status"`
	OverallRating          int    `json:"overall_rating"`
	Comments               string `json:"comments"`
	ImprovementSuggestions string `json:"improvement_suggestions"`
	ClarityScore           int    `json:"clarity_score"`
	CompletenessScore      int    `json:"completeness_score"`
	FeasibilityScore       int    `json:"feasibility_score"`
	CoverageScore          int    `json:"coverage_score"`
}

// fallbackScore replaces any score a model reports outside [1,5].
const fallbackScore = 3

// sanitize enforces the score and status invariants on a model-produced
// review. Out-of-range scores are substituted, never clamped to the nearest
// bound, so a wild value cannot masquerade as a strong opinion.
func (r *ReviewResult) sanitize() {
	for _, score := range []*int{
		&r.OverallRating,
		&r.ClarityScore,
		&r.CompletenessScore,
		&r.FeasibilityScore,
		&r.CoverageScore,
	} {
		if *score < 1 || *score > 5 {
			*score = fallbackScore
		}
	}

	switch r.Status {
	case StatusApproved, StatusRejected, StatusNeedRevision:
	default:
		r.Status = StatusNeedRevision
	}
}
