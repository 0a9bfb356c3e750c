// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Category names used as keys of a ScoreBreakdown
const (
	CategoryExperience = "experience"
	CategorySkills     = "skills"
	CategoryEducation  = "education"
	CategoryFormat     = "format"
	CategoryKeywords   = "keywords"
)

// Category maxima. They sum to 100.
const (
	MaxExperienceScore = 30.0
	MaxSkillsScore     = 35.0
	MaxEducationScore  = 15.0
	MaxFormatScore     = 10.0
	MaxKeywordsScore   = 10.0
)

// AnalyzeRequest is the engine-facing input for a single analysis.
type AnalyzeRequest struct {
	DocumentText string `json:"document_text" validate:"required"`
	JobTitle     string `json:"job_title,omitempty" validate:"max=200"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ScoreBreakdown holds the per-category scores of an analysis
type ScoreBreakdown struct {
	Experience float64 `json:"experience"`
	Skills     float64 `json:"skills"`
	Education  float64 `json:"education"`
	Format     float64 `json:"format"`
	Keywords   float64 `json:"keywords"`
}

// Sum returns the plain sum of all category scores
func (b ScoreBreakdown) Sum() float64 {
	return b.Experience + b.Skills + b.Education + b.Format + b.Keywords
}

// AsMap returns the breakdown keyed by category name
func (b ScoreBreakdown) AsMap() map[string]float64 {
	return map[string]float64{
		CategoryExperience: b.Experience,
		CategorySkills:     b.Skills,
		CategoryEducation:  b.Education,
		CategoryFormat:     b.Format,
		CategoryKeywords:   b.Keywords,
	}
}

// AnalysisResult is the terminal aggregate returned for one analyzed resume
//
// OverallScore equals the sum of the Breakdown categories, each rounded to two
// decimals, rounded again to two decimals.
type AnalysisResult struct {
	ID              string           `json:"id"`
	OverallScore    float64          `json:"overall_score"`
	Breakdown       ScoreBreakdown   `json:"breakdown"`
	Skills          []string         `json:"skills"`
	YearsExperience int              `json:"years_experience"`
	EducationLevel  EducationTier    `json:"education_level"`
	Sections        []string         `json:"sections"`
	Suggestions     SuggestionBundle `json:"suggestions"`
	TextPreview     string           `json:"text_preview"`
	WordCount       int              `json:"word_count"`
	JobTitle        string           `json:"job_title,omitempty"`
	AnalyzedAt      time.Time        `json:"analyzed_at"`
}
