package skills

import (
	"github.com/jonathan/resume-analyzer/internal/parsing"
)

// Extract returns the dictionary terms present in text, in dictionary order.
// A term matches only as whole tokens of the normalized text, so "java" never
// matches inside "javascript". Multi-word terms must appear as contiguous tokens.
// Presence is binary; empty text yields an empty, non-nil slice.
func (d *Dictionary) Extract(text parsing.ResumeText) []string {
	found := make([]string, 0)
	normalized := text.Normalized()
	if normalized == "" {
		return found
	}

	for _, term := range d.terms {
		if parsing.ContainsPhrase(normalized, term.normalized) {
			found = append(found, term.Name)
		}
	}
	return found
}
