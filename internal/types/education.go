// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EducationTier is the highest degree level detected in a resume.
// Values are ordered by seniority so tiers compare with < and >.
type EducationTier int

// Education tiers, lowest first
const (
	EducationNone EducationTier = iota
	EducationAssociate
	EducationBachelor
	EducationMaster
	EducationDoctorate
)

var educationTierNames = map[EducationTier]string{
	EducationNone:      "none",
	EducationAssociate: "associate",
	EducationBachelor:  "bachelor",
	EducationMaster:    "master",
	EducationDoctorate: "doctorate",
}

// String returns the lowercase tier name
func (t EducationTier) String() string {
	if name, ok := educationTierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EducationTier(%d)", int(t))
}

// ParseEducationTier parses a tier name as produced by String
func ParseEducationTier(s string) (EducationTier, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	for tier, name := range educationTierNames {
		if name == lower {
			return tier, nil
		}
	}
	return EducationNone, fmt.Errorf("unknown education tier: %q", s)
}

// MarshalJSON encodes the tier as its name
func (t EducationTier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a tier from its name
func (t *EducationTier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	tier, err := ParseEducationTier(s)
	if err != nil {
		return err
	}
	*t = tier
	return nil
}
