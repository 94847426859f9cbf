package ai

import "context"

// FrameworkTexts is the prose an LLM produces for one recommended framework.
// It never carries scores: ranking and percentages are computed
// deterministically and must not be altered by the enrichment step.
type FrameworkTexts struct {
	Description    string   `json:"description"`
	MatchReason    string   `json:"match_reason"`
	Pros           []string `json:"pros"`
	Cons           []string `json:"cons"`
	Recommendation string   `json:"recommendation"`
}

// FrameworkContext is the per-framework input handed to the enricher, in
// final ranking order.
type FrameworkContext struct {
	Framework          string   `json:"framework"`
	Snippets           []string `json:"snippets"`
	URL                string   `json:"url,omitempty"`
	Priorities         []string `json:"priorities"`
	AgentType          string   `json:"agent_type"`
	ExperienceLevel    string   `json:"experience_level,omitempty"`
	LearningPreference string   `json:"learning_preference,omitempty"`
}

// EnrichmentPayload is the full enrichment request.
type EnrichmentPayload struct {
	UseCaseText string             `json:"use_case_text"`
	Frameworks  []FrameworkContext `json:"frameworks"`
}

// Enricher produces descriptive texts for ranked frameworks, keyed by
// framework name.
type Enricher interface {
	Enrich(ctx context.Context, payload EnrichmentPayload) (map[string]FrameworkTexts, error)
}
