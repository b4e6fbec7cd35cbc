package testgen

import (
	"fmt"
	"strings"
)

// Prompt building is pure: the same request always yields the same
// (system, user) pair. Every system prompt - default or caller override -
// ends with a fixed output-format postscript; the JSON extractor depends on
// the model having been told the contract, so the postscript is never
// omitted.

const generationFormatPostscript = `Return the test cases as a JSON array where every element has exactly these fields:
- title: test case title
- precondition: precondition
- steps: test steps
- expected_result: expected result
- case_type: one of functional/boundary/exception/performance
- priority: one of high/medium/low

Return only the JSON array, with no other content.`

const defaultGenerationPersona = `You are a professional software test engineer who writes high-quality test cases from requirement documents.`

const reviewFormatPostscript = `Return the review results as a JSON array where every element has exactly these fields:
- testcase_id: test case ID
- testcase_title: test case title
- status: one of approved/rejected/need_revision
- overall_rating: overall rating (1-5)
- comments: review comments
- improvement_suggestions: improvement suggestions
- clarity_score: clarity rating (1-5)
- completeness_score: completeness rating (1-5)
- feasibility_score: feasibility rating (1-5)
- coverage_score: coverage rating (1-5)

Return only the JSON array, with no other content.`

const defaultReviewPersona = `You are a senior QA reviewer and software testing expert with more than ten years of test design and review experience. You excel at:

1. Assessing the quality and completeness of test cases
2. Spotting latent problems in test cases
3. Giving professional, actionable improvement advice
4. Scoring objectively across clarity, completeness, feasibility and coverage

Your review standard:
- Clarity: are title, steps and expected result easy to understand
- Completeness: are all required elements present (title, precondition, steps, expected result)
- Feasibility: are the steps concrete and executable, is the expected result verifiable
- Coverage: are normal flows, error scenarios and boundary conditions covered

Review principles:
- Be objective and fact-based
- Criticize constructively, with actionable suggestions
- Focus on practical executability over theory`

const scoringRubric = `Scoring scale (1-5):
- 1: very poor quality, needs a complete rewrite
- 2: poor quality, needs substantial changes
- 3: acceptable quality, needs partial changes
- 4: good quality, needs minor polish
- 5: excellent quality, no changes needed`

// caseTypeDisplayNames maps requested categories to the names used in
// prompts.
var caseTypeDisplayNames = map[string]string{
	CaseTypeFunctional:  "functional tests",
	CaseTypeBoundary:    "boundary value tests",
	CaseTypeException:   "exception tests",
	CaseTypePerformance: "performance tests",
}

// BuildGenerationSystemPrompt returns the system prompt for test-case
// generation. A non-empty override is used verbatim as the persona, with the
// output-format postscript appended.
func BuildGenerationSystemPrompt(override string) string {
	persona := defaultGenerationPersona
	if override != "" {
		persona = override
	}
	return persona + "\n\n**Output format**:\n" + generationFormatPostscript
}

// BuildGenerationUserPrompt renders the requirement, requested categories
// and optional knowledge excerpts into the user prompt.
func BuildGenerationUserPrompt(req Requirement, opts GenerateOptions, knowledge []string) string {
	categories := []string{caseTypeDisplayNames[CaseTypeFunctional]}
	if opts.IncludeBoundary {
		categories = append(categories, caseTypeDisplayNames[CaseTypeBoundary])
	}
	if opts.IncludeException {
		categories = append(categories, caseTypeDisplayNames[CaseTypeException])
	}
	if opts.IncludePerformance {
		categories = append(categories, caseTypeDisplayNames[CaseTypePerformance])
	}

	module := req.Module()
	if module == "" {
		module = "unspecified"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate %d test cases from the following requirement document:\n\n", opts.Count)
	fmt.Fprintf(&sb, "**Requirement title**: %s\n\n", req.Title())
	fmt.Fprintf(&sb, "**Requirement content**:\n%s\n\n", req.Content())
	fmt.Fprintf(&sb, "**Module**: %s", module)
	sb.WriteString(knowledgeSection(knowledge))
	sb.WriteString("\n\n**Requirements**:\n")
	fmt.Fprintf(&sb, "1. Cover these test case categories: %s\n", strings.Join(categories, ", "))
	sb.WriteString("2. Test steps must be concrete and executable\n")
	sb.WriteString("3. Expected results must be explicit and verifiable\n")
	sb.WriteString("4. Cover both normal flows and error scenarios\n\n")
	sb.WriteString("Return the test cases directly as a JSON array.")

	return sb.String()
}

// ReviewBatchLimit caps how many cases one review call renders into the
// prompt; the model context budget bounds batch size.
const ReviewBatchLimit = 10

// BuildReviewSystemPrompt returns the system prompt for test-case review,
// with the output-format postscript always appended to overrides.
func BuildReviewSystemPrompt(override string) string {
	if override != "" {
		return override + "\n\n**Output format**:\n" + reviewFormatPostscript
	}
	return defaultReviewPersona + "\n\n**Output format**:\n" + reviewFormatPostscript
}

// BuildReviewUserPrompt renders up to ReviewBatchLimit cases, the scoring
// rubric and optional knowledge excerpts into the user prompt.
func BuildReviewUserPrompt(cases []ReviewCase, knowledge []string) string {
	if len(cases) > ReviewBatchLimit {
		cases = cases[:ReviewBatchLimit]
	}

	var sb strings.Builder
	sb.WriteString("Review the following test cases and give a detailed quality assessment with improvement advice:\n\n")
	sb.WriteString("**Test cases**:\n")
	for i, tc := range cases {
		precondition := tc.Precondition
		if precondition == "" {
			precondition = "none"
		}
		fmt.Fprintf(&sb, "\nCase %d:\n", i+1)
		fmt.Fprintf(&sb, "- ID: %d\n", tc.ID)
		fmt.Fprintf(&sb, "- Title: %s\n", tc.Title)
		fmt.Fprintf(&sb, "- Precondition: %s\n", precondition)
		fmt.Fprintf(&sb, "- Steps: %s\n", tc.Steps)
		fmt.Fprintf(&sb, "- Expected result: %s\n", tc.ExpectedResult)
		fmt.Fprintf(&sb, "- Type: %s\n", tc.CaseType)
		fmt.Fprintf(&sb, "- Priority: %s\n", tc.Priority)
	}
	sb.WriteString(knowledgeSection(knowledge))

	sb.WriteString("\n\n**Review instructions**:\n")
	sb.WriteString("1. Review every test case independently\n")
	sb.WriteString("2. Score each of these dimensions from 1 to 5:\n")
	sb.WriteString("   - clarity: is the description easy to understand\n")
	sb.WriteString("   - completeness: are all case elements present\n")
	sb.WriteString("   - feasibility: can the case be executed as written\n")
	sb.WriteString("   - coverage: is the covered scope sufficient\n")
	sb.WriteString("3. Give an overall rating and a review status\n")
	sb.WriteString("4. Provide concrete comments and improvement suggestions\n")
	sb.WriteString("5. Status is one of: approved, rejected, need_revision\n\n")
	sb.WriteString(scoringRubric)
	sb.WriteString("\n\nReturn the review results directly as a JSON array.")

	return sb.String()
}

// knowledgeSection renders the delimited reference-knowledge block, or ""
// when no excerpts were supplied.
func knowledgeSection(knowledge []string) string {
	if len(knowledge) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\n\n**Reference knowledge**:\n")
	for i, excerpt := range knowledge {
		fmt.Fprintf(&sb, "\n--- Knowledge %d ---\n%s\n", i+1, excerpt)
	}
	return sb.String()
}
