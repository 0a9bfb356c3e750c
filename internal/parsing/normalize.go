// Package parsing normalizes raw resume text for matching and defines the
// error types shared by the analysis pipeline.
package parsing

import (
	"regexp"
	"strings"
	"unicode"
)

var multiSpace = regexp.MustCompile(`\s+`)

// ResumeText is an immutable view of a resume's text. Original keeps the text as
// extracted; Normalized is the lowercase, punctuation-stripped, whitespace-collapsed
// copy used for token matching.
type ResumeText struct {
	original   string
	lower      string
	normalized string
	words      int
}

// NewResumeText builds the normalized views of raw once per request
func NewResumeText(raw string) ResumeText {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	return ResumeText{
		original:   raw,
		lower:      strings.ToLower(raw),
		normalized: Normalize(raw),
		words:      len(strings.Fields(raw)),
	}
}

// Original returns the text as extracted, with line endings normalized to LF
func (t ResumeText) Original() string { return t.original }

// Lower returns the original text lowercased, punctuation and line breaks intact
func (t ResumeText) Lower() string { return t.lower }

// Normalized returns the matching form of the text
func (t ResumeText) Normalized() string { return t.normalized }

// WordCount returns the number of whitespace-separated words in the original text
func (t ResumeText) WordCount() int { return t.words }

// IsBlank reports whether the text has no non-whitespace content
func (t ResumeText) IsBlank() bool { return strings.TrimSpace(t.original) == "" }

// ContainsPhrase reports whether phrase occurs in the normalized text as whole tokens.
// The phrase is normalized the same way as the text.
func (t ResumeText) ContainsPhrase(phrase string) bool {
	return ContainsPhrase(t.normalized, Normalize(phrase))
}

// CountPhrase counts whole-token occurrences of phrase in the normalized text
func (t ResumeText) CountPhrase(phrase string) int {
	return CountPhrase(t.normalized, Normalize(phrase))
}

// Normalize lowercases s, replaces every rune that is not a letter or digit with a
// space and collapses whitespace. "Node.js" and "node js" both become "node js".
// A run of '+' or '#' survives only as the tail of a token, so "C++", "C#" and "5+"
// keep their marks while "React+Redux" splits into "react redux".
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)
	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case isWordRune(r):
			sb.WriteRune(unicode.ToLower(r))
		case isMarkRune(r):
			end := i
			for end < len(runes) && isMarkRune(runes[end]) {
				end++
			}
			attached := i > 0 && isWordRune(runes[i-1])
			trailing := end == len(runes) || !isWordRune(runes[end])
			if attached && trailing {
				sb.WriteString(string(runes[i:end]))
			} else {
				sb.WriteByte(' ')
			}
			i = end - 1
		default:
			sb.WriteByte(' ')
		}
	}

	mapped := multiSpace.ReplaceAllString(sb.String(), " ")
	return strings.TrimSpace(mapped)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isMarkRune(r rune) bool {
	return r == '+' || r == '#'
}

// ContainsPhrase checks for an already-normalized phrase as whole tokens of an
// already-normalized text. "rest api" is found in "... rest api ..." but not in "... rest apis ...".
func ContainsPhrase(normalizedText, normalizedPhrase string) bool {
	if normalizedPhrase == "" || normalizedText == "" {
		return false
	}
	return strings.Contains(" "+normalizedText+" ", " "+normalizedPhrase+" ")
}

// CountPhrase counts non-overlapping whole-token occurrences of an already-normalized phrase
func CountPhrase(normalizedText, normalizedPhrase string) int {
	if normalizedPhrase == "" || normalizedText == "" {
		return 0
	}
	hay := " " + normalizedText + " "
	needle := " " + normalizedPhrase + " "

	count := 0
	for {
		idx := strings.Index(hay, needle)
		if idx < 0 {
			return count
		}
		count++
		// keep the trailing space so adjacent occurrences still have a leading boundary
		hay = hay[idx+len(needle)-1:]
	}
}
