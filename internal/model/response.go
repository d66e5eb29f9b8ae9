package model

import "errors"

// ErrInvalidRequest marks the only failure class surfaced to callers:
// a blank company or designation. Everything else degrades into a
// successful response with an explanatory message.
var ErrInvalidRequest = errors.New("invalid request")

// SearchRequest is the input to the pipeline. Both fields are required.
type SearchRequest struct {
	Company     string `json:"company"`
	Designation string `json:"designation"`
}

// SearchResponse is the complete per-request answer. It is assembled
// once per request and never persisted.
type SearchResponse struct {
	Company     string `json:"company"`
	Designation string `json:"designation"`

	NormalizedDesignationAliases []string `json:"normalized_designation_aliases"`

	BestMatch  *PersonCandidate  `json:"best_match"` // nil when nothing was found
	Candidates []PersonCandidate `json:"candidates"`
	RawResults []RawSearchResult `json:"raw_results"`

	Message string `json:"message"`

	LLM *LLMSummary `json:"llm,omitempty"` // Optional, never affects scoring
}

// LLMSummary is an optional model-generated narration of the outcome.
// It is produced after scoring and can never change a confidence value.
type LLMSummary struct {
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	SummaryMD string `json:"summary_md"`
}
