package scoring

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/parsing"
)

// Format rubric weights. They sum to MaxFormatScore.
const (
	emailPoints  = 2.0
	phonePoints  = 2.0
	lengthPoints = 3.0
	bulletPoints = 3.0

	idealMinWords = 300
	idealMaxWords = 1500

	// minBulletDensity is the share of non-empty lines that must be bullets for full points
	minBulletDensity = 0.10
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	// phone-like: optional country code, then 3-3-4 style or 10+ digits.
	// Separators are horizontal only so a match never spans two lines.
	phonePattern = regexp.MustCompile(`(?:\+?\d{1,3}[ \t.\-]?)?(?:\(\d{2,4}\)|\d{2,4})[ \t.\-]?\d{3,4}[ \t.\-]?\d{3,4}`)

	// a phone candidate that is really "2012-2016" or "2012 - 2016"
	yearRangePattern = regexp.MustCompile(`(?:19|20)\d{2}\s*[-–]\s*(?:19|20)\d{2}`)
)

// FormatSignals are the structural observations behind a format score
type FormatSignals struct {
	HasEmail      bool
	HasPhone      bool
	WordCount     int
	BulletLines   int
	NonEmptyLines int
}

// InspectFormat collects structural signals from the raw text
func InspectFormat(text parsing.ResumeText) FormatSignals {
	original := text.Original()
	signals := FormatSignals{
		HasEmail:  emailPattern.MatchString(original),
		HasPhone:  hasPhone(original),
		WordCount: text.WordCount(),
	}

	for _, line := range strings.Split(original, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		signals.NonEmptyLines++
		if parsing.IsBulletLine(trimmed) {
			signals.BulletLines++
		}
	}

	return signals
}

// FormatScore scores the structure of text on [0, 10].
// Contact info, length and bullet usage are independent and additive.
func FormatScore(text parsing.ResumeText) float64 {
	return InspectFormat(text).Score()
}

// Score combines the signals into a format score on [0, 10]
func (s FormatSignals) Score() float64 {
	score := 0.0
	if s.HasEmail {
		score += emailPoints
	}
	if s.HasPhone {
		score += phonePoints
	}
	score += lengthPoints * lengthFactor(s.WordCount)

	if s.NonEmptyLines > 0 {
		density := float64(s.BulletLines) / float64(s.NonEmptyLines)
		score += bulletPoints * min(1.0, density/minBulletDensity)
	}

	return clamp(score, 0, 10)
}

// lengthFactor is 1 inside the ideal band and falls off proportionally outside it
func lengthFactor(words int) float64 {
	switch {
	case words <= 0:
		return 0
	case words < idealMinWords:
		return float64(words) / idealMinWords
	case words > idealMaxWords:
		return float64(idealMaxWords) / float64(words)
	default:
		return 1
	}
}

func hasPhone(text string) bool {
	for _, candidate := range phonePattern.FindAllString(text, -1) {
		// "2012-2016 2016" has enough digits but is two date ranges
		if yearRangePattern.MatchString(candidate) {
			continue
		}
		digits := 0
		for _, r := range candidate {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		// a single year range like "2018-2020" has 8 digits; phone numbers have at least 10
		if digits >= 10 {
			return true
		}
	}
	return false
}
