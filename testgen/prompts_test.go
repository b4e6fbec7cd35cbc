package testgen

import (
	"strings"
	"testing"
)

// TestBuildGenerationSystemPrompt_Default tests the built-in persona
func TestBuildGenerationSystemPrompt_Default(t *testing.T) {
	prompt := BuildGenerationSystemPrompt("")

	if !strings.Contains(prompt, "professional software test engineer") {
		t.Error("default persona missing")
	}
	if !strings.Contains(prompt, "case_type") {
		t.Error("output-format postscript missing")
	}
	if !strings.Contains(prompt, "functional/boundary/exception/performance") {
		t.Error("case type enumeration missing from postscript")
	}
}

// TestBuildGenerationSystemPrompt_OverrideKeepsPostscript tests that a
// caller override never loses the output contract
func TestBuildGenerationSystemPrompt_OverrideKeepsPostscript(t *testing.T) {
	override := "You are our in-house payments test specialist."
	prompt := BuildGenerationSystemPrompt(override)

	if !strings.HasPrefix(prompt, override) {
		t.Error("override should lead the prompt verbatim")
	}
	if !strings.Contains(prompt, "expected_result") {
		t.Error("postscript must be appended to overrides")
	}
	if strings.Contains(prompt, "professional software test engineer") {
		t.Error("default persona should be replaced by the override")
	}
}

// TestBuildGenerationUserPrompt_Content tests requirement rendering
func TestBuildGenerationUserPrompt_Content(t *testing.T) {
	req := NewInlineRequirement("Bulk import", "Import users from XLSX.", "users")
	prompt := BuildGenerationUserPrompt(req, GenerateOptions{
		Count: 7, IncludeBoundary: true, IncludePerformance: true,
	}, nil)

	for _, want := range []string{
		"Generate 7 test cases",
		"Bulk import",
		"Import users from XLSX.",
		"**Module**: users",
		"functional tests",
		"boundary value tests",
		"performance tests",
		"JSON array",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "exception tests") {
		t.Error("exception category requested off but still present")
	}
}

// TestBuildGenerationUserPrompt_ModuleUnspecified tests the absent-module label
func TestBuildGenerationUserPrompt_ModuleUnspecified(t *testing.T) {
	req := NewInlineRequirement("X", "x", "")
	prompt := BuildGenerationUserPrompt(req, DefaultGenerateOptions(), nil)
	if !strings.Contains(prompt, "**Module**: unspecified") {
		t.Error("expected 'unspecified' for empty module")
	}
}

// TestBuildGenerationUserPrompt_KnowledgeSections tests the numbered
// reference-knowledge block
func TestBuildGenerationUserPrompt_KnowledgeSections(t *testing.T) {
	req := NewInlineRequirement("X", "x", "")
	prompt := BuildGenerationUserPrompt(req, DefaultGenerateOptions(),
		[]string{"excerpt one", "excerpt two"})

	if !strings.Contains(prompt, "**Reference knowledge**") {
		t.Error("knowledge section header missing")
	}
	if !strings.Contains(prompt, "--- Knowledge 1 ---\nexcerpt one") {
		t.Error("first excerpt not rendered under its heading")
	}
	if !strings.Contains(prompt, "--- Knowledge 2 ---\nexcerpt two") {
		t.Error("second excerpt not rendered under its heading")
	}

	without := BuildGenerationUserPrompt(req, DefaultGenerateOptions(), nil)
	if strings.Contains(without, "Reference knowledge") {
		t.Error("knowledge section must be absent without excerpts")
	}
}

// TestBuildReviewSystemPrompt tests persona and postscript for review
func TestBuildReviewSystemPrompt(t *testing.T) {
	prompt := BuildReviewSystemPrompt("")
	if !strings.Contains(prompt, "senior QA reviewer") {
		t.Error("default reviewer persona missing")
	}
	for _, field := range []string{
		"testcase_id", "overall_rating", "clarity_score",
		"completeness_score", "feasibility_score", "coverage_score",
	} {
		if !strings.Contains(prompt, field) {
			t.Errorf("postscript missing field %q", field)
		}
	}

	override := BuildReviewSystemPrompt("Our custom reviewer.")
	if !strings.HasPrefix(override, "Our custom reviewer.") {
		t.Error("override should lead the prompt")
	}
	if !strings.Contains(override, "need_revision") {
		t.Error("status enumeration missing from override postscript")
	}
}

// TestBuildReviewUserPrompt_BatchCap tests the 10-case context bound
func TestBuildReviewUserPrompt_BatchCap(t *testing.T) {
	cases := make([]ReviewCase, 14)
	for i := range cases {
		cases[i] = ReviewCase{ID: int64(i + 1), Title: "case", Steps: "steps here", ExpectedResult: "result"}
	}

	prompt := BuildReviewUserPrompt(cases, nil)
	if !strings.Contains(prompt, "Case 10:") {
		t.Error("tenth case should be rendered")
	}
	if strings.Contains(prompt, "Case 11:") {
		t.Error("cases past the batch limit must not be rendered")
	}
}

// TestBuildReviewUserPrompt_Rendering tests per-case field rendering and the
// rubric
func TestBuildReviewUserPrompt_Rendering(t *testing.T) {
	prompt := BuildReviewUserPrompt([]ReviewCase{{
		ID:             42,
		Title:          "Check timeout",
		Steps:          "1. wait",
		ExpectedResult: "times out",
		CaseType:       CaseTypeException,
		Priority:       PriorityLow,
	}}, []string{"timeouts are 30s"})

	for _, want := range []string{
		"- ID: 42",
		"- Title: Check timeout",
		"- Precondition: none",
		"- Type: exception",
		"- Priority: low",
		"Scoring scale (1-5)",
		"--- Knowledge 1 ---\ntimeouts are 30s",
		"JSON array",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
