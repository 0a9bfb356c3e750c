package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEducationTier_Ordering(t *testing.T) {
	assert.Less(t, EducationNone, EducationAssociate)
	assert.Less(t, EducationAssociate, EducationBachelor)
	assert.Less(t, EducationBachelor, EducationMaster)
	assert.Less(t, EducationMaster, EducationDoctorate)
}

func TestEducationTier_String(t *testing.T) {
	assert.Equal(t, "none", EducationNone.String())
	assert.Equal(t, "doctorate", EducationDoctorate.String())
	assert.Equal(t, "EducationTier(42)", EducationTier(42).String())
}

func TestParseEducationTier(t *testing.T) {
	tier, err := ParseEducationTier(" Bachelor ")
	require.NoError(t, err)
	assert.Equal(t, EducationBachelor, tier)

	_, err = ParseEducationTier("kindergarten")
	assert.Error(t, err)
}

func TestEducationTier_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(EducationAssociate)
	require.NoError(t, err)
	assert.Equal(t, `"associate"`, string(data))

	var tier EducationTier
	require.NoError(t, json.Unmarshal([]byte(`"master"`), &tier))
	assert.Equal(t, EducationMaster, tier)

	assert.Error(t, json.Unmarshal([]byte(`"unknown"`), &tier))
	assert.Error(t, json.Unmarshal([]byte(`3`), &tier))
}

func TestDegradedBundle(t *testing.T) {
	b := DegradedBundle("timeout")

	assert.True(t, b.Failed())
	assert.Equal(t, "timeout", b.Error)
	assert.Empty(t, b.Recommendations)
	assert.Empty(t, b.ATSKeywords)
	assert.Empty(t, b.RewrittenBullet)
	assert.Empty(t, b.SuggestedTitle)
	assert.False(t, SuggestionBundle{}.Failed())
}
