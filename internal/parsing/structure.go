package parsing

import (
	"regexp"
	"strings"
)

// Section names returned by SplitSections
const (
	SectionContact    = "contact"
	SectionSummary    = "summary"
	SectionExperience = "experience"
	SectionEducation  = "education"
	SectionSkills     = "skills"
	SectionProjects   = "projects"
	SectionOther      = "other"
)

// SectionOrder is the canonical order of the named sections
var SectionOrder = []string{
	SectionContact, SectionSummary, SectionExperience,
	SectionEducation, SectionSkills, SectionProjects,
}

// maxHeaderLength bounds a header line; longer lines are treated as content
const maxHeaderLength = 50

// sectionHeaders are checked in order; a header must be the whole line
var sectionHeaders = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{SectionExperience, regexp.MustCompile(`(?i)^(?:(?:work|professional)\s+)?experience$|^employment\s+history$`)},
	{SectionEducation, regexp.MustCompile(`(?i)^(?:education|academic\s+background|qualifications)$`)},
	{SectionSkills, regexp.MustCompile(`(?i)^(?:(?:technical\s+)?skills|competencies|expertise)$`)},
	{SectionProjects, regexp.MustCompile(`(?i)^(?:projects|portfolio)$`)},
	{SectionSummary, regexp.MustCompile(`(?i)^(?:summary|profile|objective|about\s+me)$`)},
	{SectionContact, regexp.MustCompile(`(?i)^(?:contact|personal\s+information)$`)},
}

var bulletPrefixes = []string{"- ", "* ", "• ", "· ", "▪ ", "◦ ", "‣ ", "➢ ", "➤ ", "– ", "o "}

// bulletGlyphs may also be glued to the text, e.g. "•Led migration"
var bulletGlyphs = []string{"•", "▪", "◦", "‣", "➢", "➤"}

// IsBulletLine reports whether a trimmed line starts with a list marker
func IsBulletLine(trimmed string) bool {
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	for _, glyph := range bulletGlyphs {
		if strings.HasPrefix(trimmed, glyph) {
			return true
		}
	}
	return false
}

// Sections maps a section name to its content lines, joined with "\n".
// Sections without content are absent.
type Sections map[string]string

// SplitSections assigns each non-empty line of text to the section whose header
// last preceded it. Lines before the first header land in SectionOther. Header
// lines themselves are not content.
func SplitSections(text string) Sections {
	sections := make(Sections)
	current := SectionOther

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if name, ok := sectionHeader(trimmed); ok {
			current = name
			continue
		}
		sections[current] += line + "\n"
	}

	return sections
}

// Detected returns the named sections that have content, in SectionOrder
func (s Sections) Detected() []string {
	found := make([]string, 0, len(SectionOrder))
	for _, name := range SectionOrder {
		if strings.TrimSpace(s[name]) != "" {
			found = append(found, name)
		}
	}
	return found
}

// sectionHeader matches a trimmed line against the known headers. Markdown
// heading marks and a trailing colon are ignored, so "## Skills:" is a header.
func sectionHeader(trimmed string) (string, bool) {
	if len([]rune(trimmed)) >= maxHeaderLength {
		return "", false
	}
	candidate := strings.TrimLeft(trimmed, "# ")
	candidate = strings.TrimSpace(strings.TrimSuffix(candidate, ":"))

	for _, h := range sectionHeaders {
		if h.pattern.MatchString(candidate) {
			return h.name, true
		}
	}
	return "", false
}
