// Package experience estimates years of professional experience from resume text.
//
// The estimate is a heuristic approximation, not an exact parse: it looks at
// explicit year ranges and "N years of experience" phrases only, and it does not
// try to subtract gaps or overlapping roles.
package experience

import (
	"regexp"
	"strconv"
	"time"

	"github.com/jonathan/resume-analyzer/internal/parsing"
)

const (
	// earliestYear is the first start year accepted as a plausible career date
	earliestYear = 1950
	// maxStatedYears caps "N years of experience" phrases
	maxStatedYears = 50
)

const monthPrefix = `(?:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?,?\s+|\d{1,2}/)?`

var (
	dateRangePattern = regexp.MustCompile(
		`\b` + monthPrefix + `((?:19|20)\d{2})\s*(?:-|–|—|to|until|through)\s*` +
			monthPrefix + `((?:19|20)\d{2}|present|current|now|today)\b`)

	durationPattern = regexp.MustCompile(
		`\b(\d{1,2})\s*\+?\s*(?:years?|yrs?)\.?\s+(?:of\s+)?(?:professional\s+|relevant\s+|industry\s+|work\s+|hands-on\s+)?(?:experience|exp)\b`)
)

// DateRange is a start/end year pair found in resume text.
// Open ranges ("present", "current") carry the current year as End and Open set.
type DateRange struct {
	Start int
	End   int
	Open  bool
}

// Estimator derives years of experience. Now defaults to time.Now.
type Estimator struct {
	Now func() time.Time
}

// NewEstimator creates an estimator bound to the wall clock
func NewEstimator() *Estimator {
	return &Estimator{Now: time.Now}
}

// Estimate returns the estimated years of experience for text
func (e *Estimator) Estimate(text parsing.ResumeText) int {
	now := time.Now
	if e != nil && e.Now != nil {
		now = e.Now
	}
	return EstimateYears(text.Lower(), now().Year())
}

// EstimateYears estimates years of experience from lowercase text.
// Date ranges win over stated durations: the result is the longest span
// max(end) - min(start) across all valid ranges. Stated durations
// ("7+ years of experience") are used only when no valid range exists.
// Returns 0 when neither signal is present.
func EstimateYears(lowerText string, currentYear int) int {
	ranges := FindDateRanges(lowerText, currentYear)
	if len(ranges) > 0 {
		minStart, maxEnd := ranges[0].Start, ranges[0].End
		for _, r := range ranges[1:] {
			minStart = min(minStart, r.Start)
			maxEnd = max(maxEnd, r.End)
		}
		return maxEnd - minStart
	}

	return StatedYears(lowerText)
}

// FindDateRanges returns every plausible year range in lowercase text, in text order.
// Ranges ending before they start, starting before 1950, or reaching past next
// year are dropped as noise.
func FindDateRanges(lowerText string, currentYear int) []DateRange {
	matches := dateRangePattern.FindAllStringSubmatch(lowerText, -1)
	ranges := make([]DateRange, 0, len(matches))

	for _, m := range matches {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		r := DateRange{Start: start}
		switch m[2] {
		case "present", "current", "now", "today":
			r.End = currentYear
			r.Open = true
		default:
			end, err := strconv.Atoi(m[2])
			if err != nil {
				continue
			}
			r.End = end
		}

		if !plausible(r, currentYear) {
			continue
		}
		ranges = append(ranges, r)
	}

	return ranges
}

// StatedYears returns the largest "N years of experience" value in lowercase text, or 0
func StatedYears(lowerText string) int {
	best := 0
	for _, m := range durationPattern.FindAllStringSubmatch(lowerText, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		best = max(best, min(n, maxStatedYears))
	}
	return best
}

func plausible(r DateRange, currentYear int) bool {
	if r.End < r.Start {
		return false
	}
	if r.Start < earliestYear || r.Start > currentYear+1 {
		return false
	}
	return r.End <= currentYear+1
}
