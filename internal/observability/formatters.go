// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
	// barWidth is the width of a category score bar
	barWidth = 20
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to exactly width runes
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		return string([]rune(s)[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

// PrintDocument outputs what was ingested
func (p *Printer) PrintDocument(meta *ingestion.Metadata, wordCount int) {
	if meta == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:   %s\n", meta.Filename))
	sb.WriteString(fmt.Sprintf("Format: %s\n", meta.Format))
	sb.WriteString(fmt.Sprintf("Size:   %d bytes\n", meta.SizeBytes))
	sb.WriteString(fmt.Sprintf("Words:  %d\n", wordCount))
	sb.WriteString(fmt.Sprintf("SHA256: %s", meta.Hash[:min(len(meta.Hash), 16)]))

	p.printBox("DOCUMENT", sb.String())
}

// sectionLines lists detected section names, wrapped to the box width
func sectionLines(sections []string) string {
	if len(sections) == 0 {
		return "Sections:   none detected"
	}

	var lines []string
	line := "Sections:   "
	for i, name := range sections {
		item := name
		if i < len(sections)-1 {
			item += ","
		}
		if utf8.RuneCountInString(line)+len(item) > boxWidth-4 {
			lines = append(lines, strings.TrimRight(line, " "))
			line = "            "
		}
		line += item + " "
	}
	lines = append(lines, strings.TrimRight(line, " "))
	return strings.Join(lines, "\n")
}

// PrintScore outputs the overall score with one bar per category
func (p *Printer) PrintScore(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	rows := []struct {
		name  string
		value float64
		max   float64
	}{
		{"Experience", result.Breakdown.Experience, types.MaxExperienceScore},
		{"Skills", result.Breakdown.Skills, types.MaxSkillsScore},
		{"Education", result.Breakdown.Education, types.MaxEducationScore},
		{"Format", result.Breakdown.Format, types.MaxFormatScore},
		{"Keywords", result.Breakdown.Keywords, types.MaxKeywordsScore},
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall: %.2f / 100\n\n", result.OverallScore))
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%-10s %s %5.2f/%-2.0f\n", row.name, bar(row.value, row.max), row.value, row.max))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Experience: %d years\n", result.YearsExperience))
	sb.WriteString(fmt.Sprintf("Education:  %s\n", result.EducationLevel))
	sb.WriteString(sectionLines(result.Sections))

	p.printBox("RESUME SCORE", sb.String())
}

func bar(value, maxValue float64) string {
	filled := 0
	if maxValue > 0 {
		filled = int(value / maxValue * barWidth)
	}
	filled = max(0, min(filled, barWidth))
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// PrintSkills outputs the detected skills
func (p *Printer) PrintSkills(skills []string) {
	if len(skills) == 0 {
		p.printBox("DETECTED SKILLS", "No dictionary skills detected")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Detected %d skills:\n\n", len(skills)))

	count := min(len(skills), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", skills[i]))
	}
	if len(skills) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(skills)-maxItemsToShow))
	}

	p.printBox("DETECTED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSuggestions outputs the suggestion bundle, or why it is missing
func (p *Printer) PrintSuggestions(bundle types.SuggestionBundle) {
	if bundle.Failed() {
		p.printBox("SUGGESTIONS UNAVAILABLE", bundle.Error)
		return
	}

	var sb strings.Builder
	for i, rec := range bundle.Recommendations {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
	}
	if bundle.RewrittenBullet != "" {
		sb.WriteString("\nRewritten bullet:\n")
		sb.WriteString(fmt.Sprintf("  %s\n", bundle.RewrittenBullet))
	}
	if bundle.SuggestedTitle != "" {
		sb.WriteString(fmt.Sprintf("\nTitle: %s\n", bundle.SuggestedTitle))
	}
	if len(bundle.ATSKeywords) > 0 {
		sb.WriteString(fmt.Sprintf("ATS keywords: %s\n", strings.Join(bundle.ATSKeywords, ", ")))
	}

	p.printBox("SUGGESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs the score, skills and suggestions of a result
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}
	p.PrintScore(result)
	p.PrintSkills(result.Skills)
	p.PrintSuggestions(result.Suggestions)
}
