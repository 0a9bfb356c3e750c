package scoring

import (
	"regexp"

	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// keywordSaturation is the occurrence count at which the keyword score stops growing
	keywordSaturation = 20
	pointsPerKeyword  = types.MaxKeywordsScore / keywordSaturation
)

// atsKeywords are action verbs and result-oriented phrases that ATS screens reward
var atsKeywords = []string{
	"achieved", "improved", "increased", "reduced", "decreased", "managed", "led",
	"developed", "implemented", "designed", "analyzed", "created", "delivered",
	"launched", "built", "optimized", "streamlined", "spearheaded", "mentored",
	"automated", "generated", "saved", "resulted in", "results", "metrics", "revenue",
}

var percentPattern = regexp.MustCompile(`\d+(?:\.\d+)?\s?%`)

// CountKeywords counts every whole-token occurrence of an ATS keyword plus every
// numeric percentage ("35%") in text
func CountKeywords(text parsing.ResumeText) int {
	normalized := text.Normalized()

	count := 0
	for _, kw := range atsKeywords {
		count += parsing.CountPhrase(normalized, kw)
	}
	count += len(percentPattern.FindAllString(text.Original(), -1))

	return count
}

// KeywordScore scores ATS keyword usage on [0, 10]. The score grows with the
// occurrence count and saturates, so stuffing past the threshold earns nothing.
func KeywordScore(text parsing.ResumeText) float64 {
	return keywordScoreForCount(CountKeywords(text))
}

func keywordScoreForCount(count int) float64 {
	return clamp(float64(min(count, keywordSaturation))*pointsPerKeyword, 0, types.MaxKeywordsScore)
}
