// Package scoring evaluates resume text against the fixed 100-point rubric:
// experience, skills, education, format and ATS keywords.
package scoring

import (
	"strings"

	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// degreeTerms maps each tier to the normalized phrases that indicate it.
// Phrases are matched as whole tokens, so "b s" is the normalized form of "B.S.".
// Bare "master" and "associate" are left out since they are common in job
// titles ("associate engineer"). The "master" phrases still skip a match that
// follows a title word, so "Scrum Master's" is not a degree. "ba" is a
// bachelor term even in "Led the BA team".
var degreeTerms = []struct {
	tier  types.EducationTier
	terms []string
}{
	{types.EducationDoctorate, []string{"phd", "ph d", "doctorate", "doctoral", "dphil", "d phil"}},
	{types.EducationMaster, []string{"master of", "master s", "masters", "master degree", "msc", "m sc", "m s", "mba", "m b a", "meng", "m eng", "mphil"}},
	{types.EducationBachelor, []string{"bachelor", "bachelors", "bsc", "b sc", "b s", "bs", "ba", "b a", "beng", "b eng", "btech", "b tech", "undergraduate degree"}},
	{types.EducationAssociate, []string{"associate degree", "associate s", "associates degree", "associate of", "diploma"}},
}

// educationPoints is the fixed point value of each tier
var educationPoints = map[types.EducationTier]float64{
	types.EducationDoctorate: 15,
	types.EducationMaster:    12,
	types.EducationBachelor:  10,
	types.EducationAssociate: 7,
	types.EducationNone:      0,
}

// DetectEducation returns the highest education tier signalled anywhere in text.
// Terms for several tiers may be present; the most senior one wins.
func DetectEducation(text parsing.ResumeText) types.EducationTier {
	normalized := text.Normalized()

	// degreeTerms is ordered most senior first, so the first hit is the answer
	for _, group := range degreeTerms {
		for _, term := range group.terms {
			if containsDegreeTerm(normalized, term) {
				return group.tier
			}
		}
	}
	return types.EducationNone
}

// titleQualifiers are words that turn a following "master" into a job title
var titleQualifiers = map[string]bool{
	"scrum":   true,
	"web":     true,
	"build":   true,
	"release": true,
	"quiz":    true,
}

// containsDegreeTerm reports whether term occurs as whole tokens in normalized
// text. For "master" phrases an occurrence right after a title qualifier does
// not count.
func containsDegreeTerm(normalized, term string) bool {
	if !strings.HasPrefix(term, "master") {
		return parsing.ContainsPhrase(normalized, term)
	}
	hay := " " + normalized + " "
	needle := " " + term + " "
	offset := 0
	for {
		idx := strings.Index(hay[offset:], needle)
		if idx < 0 {
			return false
		}
		start := offset + idx
		before := strings.Fields(hay[:start])
		if len(before) == 0 || !titleQualifiers[before[len(before)-1]] {
			return true
		}
		offset = start + 1
	}
}

// EducationScore maps a tier to its rubric points
func EducationScore(tier types.EducationTier) float64 {
	return educationPoints[tier]
}
