package scoring

import (
	"math"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Signals are the evaluator outputs consumed by Aggregate
type Signals struct {
	YearsExperience int
	SkillCount      int
	Education       types.EducationTier
	Format          float64
	Keywords        float64
}

// Aggregate combines the signals into a breakdown and an overall score.
// Each category is rounded to two decimals and the overall score is the sum of
// the rounded categories, so the breakdown always adds up to the reported total.
func Aggregate(s Signals) (types.ScoreBreakdown, float64) {
	breakdown := types.ScoreBreakdown{
		Experience: round2(ExperienceScore(s.YearsExperience)),
		Skills:     round2(SkillsScore(s.SkillCount)),
		Education:  round2(EducationScore(s.Education)),
		Format:     round2(clamp(s.Format, 0, types.MaxFormatScore)),
		Keywords:   round2(clamp(s.Keywords, 0, types.MaxKeywordsScore)),
	}
	return breakdown, round2(clamp(breakdown.Sum(), 0, 100))
}

// ExperienceScore maps years to [0, 30] in three bands:
//
//	0-2 years:  linear 0-15   (years * 7.5)
//	3-5 years:  16-25         (16 + (years-3) * 4.5)
//	6+ years:   26-30         (26 + (years-6), capped)
//
// A band's lower edge is inclusive: 2 years scores 15, 3 years scores 16.
func ExperienceScore(years int) float64 {
	switch {
	case years <= 0:
		return 0
	case years <= 2:
		return float64(years) * 7.5
	case years <= 5:
		return 16 + float64(years-3)*4.5
	default:
		return min(types.MaxExperienceScore, 26+float64(years-6))
	}
}

// SkillsScore maps the number of detected skills to [0, 35] in three bands:
//
//	0-5 skills:   linear 0-15  (count * 3)
//	6-10 skills:  16-25        (16 + (count-6) * 2.25)
//	11+ skills:   26-35        (26 + (count-11), capped)
//
// A band's lower edge is inclusive: 5 skills scores 15, 6 skills scores 16.
func SkillsScore(count int) float64 {
	switch {
	case count <= 0:
		return 0
	case count <= 5:
		return float64(count) * 3
	case count <= 10:
		return 16 + float64(count-6)*2.25
	default:
		return min(types.MaxSkillsScore, 26+float64(count-11))
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
