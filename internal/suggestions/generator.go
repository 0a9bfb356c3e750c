// Package suggestions produces qualitative improvement suggestions for an
// analyzed resume by way of a pluggable generator.
package suggestions

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/prompts"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// MaxPromptChars bounds the resume text sent to the generator
const MaxPromptChars = 3000

// Request is the prompt context for a single suggestion call
type Request struct {
	ResumeText      string
	JobTitle        string
	Score           float64
	Skills          []string
	YearsExperience int
}

// Generator turns a Request into a suggestion bundle. Implementations should
// honor ctx cancellation but are not required to.
type Generator interface {
	Suggest(ctx context.Context, req Request) (*types.SuggestionBundle, error)
}

// LLMGenerator implements Generator on top of an llm.Client
type LLMGenerator struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewLLMGenerator creates a generator that prompts the standard model tier
func NewLLMGenerator(client llm.Client) *LLMGenerator {
	return &LLMGenerator{client: client, tier: llm.TierStandard}
}

// Suggest sends one prompt and parses the reply. No retries.
func (g *LLMGenerator) Suggest(ctx context.Context, req Request) (*types.SuggestionBundle, error) {
	prompt, err := BuildPrompt(req)
	if err != nil {
		return nil, err
	}

	raw, err := g.client.GenerateJSON(ctx, prompt, g.tier)
	if err != nil {
		return nil, &parsing.APICallError{
			Message: fmt.Sprintf("%s request failed", g.client.GetModel(g.tier)),
			Cause:   err,
		}
	}

	return ParseReply(raw)
}

// BuildPrompt renders the review prompt for req
func BuildPrompt(req Request) (string, error) {
	skills := strings.Join(req.Skills, ", ")
	if skills == "" {
		skills = prompts.MustGet(prompts.SuggestionsFile, "no-skills")
	}

	jobContext, jobFocus := "", ""
	if title := strings.TrimSpace(req.JobTitle); title != "" {
		jobContext = fmt.Sprintf(" for a '%s' position", title)
		jobFocus = " for " + title
	}

	return prompts.Render(prompts.SuggestionsFile, "review-resume", map[string]string{
		"System":     prompts.MustGet(prompts.SuggestionsFile, "system"),
		"JobContext": jobContext,
		"ResumeText": TruncateText(req.ResumeText, MaxPromptChars),
		"Score":      strconv.FormatFloat(req.Score, 'f', -1, 64),
		"Skills":     skills,
		"Years":      strconv.Itoa(req.YearsExperience),
		"JobFocus":   jobFocus,
	})
}

// TruncateText cuts text to at most limit runes and appends the truncation
// marker when anything was dropped.
func TruncateText(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + prompts.MustGet(prompts.SuggestionsFile, "truncation-marker")
}

type reply struct {
	Suggestions     []string `json:"suggestions"`
	RewrittenBullet string   `json:"rewritten_bullet"`
	Title           string   `json:"title"`
	ATSKeywords     []string `json:"ats_keywords"`
}

// ParseReply validates a raw generator reply and converts it to a bundle.
// Any shape other than the reply schema is a ParseError.
func ParseReply(raw string) (*types.SuggestionBundle, error) {
	cleaned := llm.CleanJSONBlock(raw)
	if cleaned == "" {
		return nil, &parsing.ParseError{Message: "empty reply"}
	}

	if err := schemas.ValidateSuggestionReply(cleaned); err != nil {
		return nil, &parsing.ParseError{Message: "reply does not match schema", Cause: err}
	}

	var r reply
	if err := json.Unmarshal([]byte(cleaned), &r); err != nil {
		return nil, &parsing.ParseError{Message: "failed to decode reply", Cause: err}
	}

	bundle := Normalize(types.SuggestionBundle{
		Recommendations: r.Suggestions,
		RewrittenBullet: r.RewrittenBullet,
		SuggestedTitle:  r.Title,
		ATSKeywords:     r.ATSKeywords,
	})
	return &bundle, nil
}

// Normalize trims whitespace, drops blank list entries and caps both lists.
// A bundle carrying an error keeps only the error.
func Normalize(b types.SuggestionBundle) types.SuggestionBundle {
	if b.Failed() {
		return types.DegradedBundle(b.Error)
	}
	return types.SuggestionBundle{
		Recommendations: trimList(b.Recommendations),
		RewrittenBullet: strings.TrimSpace(b.RewrittenBullet),
		SuggestedTitle:  strings.TrimSpace(b.SuggestedTitle),
		ATSKeywords:     trimList(b.ATSKeywords),
	}
}

func trimList(items []string) []string {
	out := make([]string, 0, types.MaxSuggestionItems)
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
		if len(out) == types.MaxSuggestionItems {
			break
		}
	}
	return out
}
