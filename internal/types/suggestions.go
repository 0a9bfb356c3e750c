// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// MaxSuggestionItems bounds the recommendation and ATS keyword lists
const MaxSuggestionItems = 3

// SuggestionBundle holds the qualitative improvement suggestions for a resume.
// When the generator fails only Error is set.
type SuggestionBundle struct {
	Recommendations []string `json:"recommendations"`
	RewrittenBullet string   `json:"rewritten_bullet,omitempty"`
	SuggestedTitle  string   `json:"suggested_title,omitempty"`
	ATSKeywords     []string `json:"ats_keywords"`
	Error           string   `json:"error,omitempty"`
}

// DegradedBundle returns a bundle carrying only the failure reason
func DegradedBundle(reason string) SuggestionBundle {
	return SuggestionBundle{
		Recommendations: []string{},
		ATSKeywords:     []string{},
		Error:           reason,
	}
}

// Failed reports whether the bundle represents a generator failure
func (b SuggestionBundle) Failed() bool {
	return b.Error != ""
}
