// Package skills provides the skill dictionary and the token-boundary skill extractor.
package skills

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-analyzer/internal/parsing"
)

//go:embed skills_db.json
var defaultSkillsJSON []byte

// Term is a single dictionary entry
type Term struct {
	Name       string // lowercase display form, e.g. "node.js"
	normalized string // matching form, e.g. "node js"
}

// Dictionary is an ordered, read-only catalog of skill terms.
// It is safe for concurrent use once built.
type Dictionary struct {
	terms []Term
}

var (
	defaultDict     *Dictionary
	defaultDictErr  error
	defaultDictOnce sync.Once
)

// Default returns the process-wide dictionary built from the embedded skills list.
// It panics if the embedded list is invalid, which is a build defect.
func Default() *Dictionary {
	defaultDictOnce.Do(func() {
		defaultDict, defaultDictErr = ParseJSON(defaultSkillsJSON)
	})
	if defaultDictErr != nil {
		panic(fmt.Sprintf("embedded skills dictionary is invalid: %v", defaultDictErr))
	}
	return defaultDict
}

// NewDictionary builds a dictionary from raw terms. Terms are lowercased and trimmed;
// blank terms and terms whose normalized form repeats an earlier entry are dropped,
// keeping the first occurrence so the order follows the source list.
func NewDictionary(rawTerms []string) *Dictionary {
	terms := make([]Term, 0, len(rawTerms))
	seen := make(map[string]bool, len(rawTerms))

	for _, raw := range rawTerms {
		name := strings.ToLower(strings.TrimSpace(raw))
		normalized := parsing.Normalize(name)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		terms = append(terms, Term{Name: name, normalized: normalized})
	}

	return &Dictionary{terms: terms}
}

// LoadDictionary reads a dictionary file. Files ending in .yaml or .yml are parsed as a
// YAML list of strings; anything else as a JSON array of strings.
func LoadDictionary(path string) (*Dictionary, error) {
	if path == "" {
		return nil, fmt.Errorf("skills dictionary path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read skills dictionary %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON builds a dictionary from a JSON array of strings
func ParseJSON(data []byte) (*Dictionary, error) {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse skills dictionary JSON: %w", err)
	}
	return NewDictionary(raw), nil
}

// ParseYAML builds a dictionary from a YAML sequence of strings
func ParseYAML(data []byte) (*Dictionary, error) {
	var raw []string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse skills dictionary YAML: %w", err)
	}
	return NewDictionary(raw), nil
}

// Len returns the number of terms
func (d *Dictionary) Len() int {
	return len(d.terms)
}

// Names returns a copy of the term names in dictionary order
func (d *Dictionary) Names() []string {
	names := make([]string, len(d.terms))
	for i, t := range d.terms {
		names[i] = t.Name
	}
	return names
}
