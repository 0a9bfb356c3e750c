package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
)

func sampleResult() *types.AnalysisResult {
	return &types.AnalysisResult{
		OverallScore: 72.5,
		Breakdown: types.ScoreBreakdown{
			Experience: 26, Skills: 20.5, Education: 12, Format: 8, Keywords: 6,
		},
		Skills:          []string{"go", "kubernetes"},
		YearsExperience: 6,
		EducationLevel:  types.EducationMaster,
		Sections:        []string{"experience", "education", "skills"},
		Suggestions: types.SuggestionBundle{
			Recommendations: []string{"Quantify impact", "Add a summary"},
			RewrittenBullet: "Cut p99 latency by 40%",
			SuggestedTitle:  "Senior Backend Engineer",
			ATSKeywords:     []string{"golang"},
		},
	}
}

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(sampleResult())
	output := buf.String()

	assert.Contains(t, output, "RESUME SCORE")
	assert.Contains(t, output, "Overall: 72.50 / 100")
	assert.Contains(t, output, "Experience: 6 years")
	assert.Contains(t, output, "Education:  master")
	assert.Contains(t, output, "Sections:   experience, education, skills")
	assert.Contains(t, output, "DETECTED SKILLS")
	assert.Contains(t, output, "• kubernetes")
	assert.Contains(t, output, "1. Quantify impact")
	assert.Contains(t, output, "Title: Senior Backend Engineer")
	assert.Contains(t, output, "ATS keywords: golang")
}

func TestPrintAnalysis_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAnalysis(nil)
	assert.Empty(t, buf.String())
}

func TestPrintSuggestions_Degraded(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSuggestions(types.DegradedBundle("suggestion generator not configured"))

	output := buf.String()
	assert.Contains(t, output, "SUGGESTIONS UNAVAILABLE")
	assert.Contains(t, output, "suggestion generator not configured")
}

func TestPrintSkills_Truncates(t *testing.T) {
	skills := make([]string, 13)
	for i := range skills {
		skills[i] = strings.Repeat("s", i+1)
	}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintSkills(skills)
	assert.Contains(t, buf.String(), "... and 3 more")

	buf.Reset()
	NewPrinter(&buf).PrintSkills(nil)
	assert.Contains(t, buf.String(), "No dictionary skills detected")
}

func TestPrintDocument(t *testing.T) {
	var buf bytes.Buffer
	meta := ingestion.NewMetadata("resume.pdf", ingestion.FormatPDF, []byte("data"))

	NewPrinter(&buf).PrintDocument(meta, 420)
	output := buf.String()

	assert.Contains(t, output, "resume.pdf")
	assert.Contains(t, output, "Format: pdf")
	assert.Contains(t, output, "Words:  420")
}

func TestBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("░", barWidth), bar(0, 10))
	assert.Equal(t, strings.Repeat("█", barWidth), bar(10, 10))
	assert.Equal(t, strings.Repeat("█", barWidth), bar(50, 10))
	assert.Equal(t, strings.Repeat("█", 10)+strings.Repeat("░", 10), bar(5, 10))
}

func TestPrintBox_LinesHaveEqualWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := sampleResult()
	result.Suggestions.RewrittenBullet = "Réduit la latence p99 de 40 % en réécrivant le service de facturation en Go"
	p.PrintAnalysis(result)

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
}

func TestSectionLines_Wraps(t *testing.T) {
	all := []string{"contact", "summary", "experience", "education", "skills", "projects"}
	lines := strings.Split(sectionLines(all), "\n")

	assert.Equal(t, []string{
		"Sections:   contact, summary, experience, education,",
		"            skills, projects",
	}, lines)
	for _, line := range lines {
		assert.LessOrEqual(t, utf8.RuneCountInString(line), boxWidth-4)
	}

	assert.Equal(t, "Sections:   none detected", sectionLines(nil))
}
