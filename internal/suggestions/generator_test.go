package suggestions

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	reply      string
	err        error
	lastPrompt string
}

func (c *stubClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return c.GenerateJSON(ctx, prompt, tier)
}

func (c *stubClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	c.lastPrompt = prompt
	return c.reply, c.err
}

func (c *stubClient) GetModel(llm.ModelTier) string { return "stub-model" }

func (c *stubClient) Close() error { return nil }

const validReply = `{
  "suggestions": ["Quantify impact", "  ", "Lead with action verbs", "Add a summary", "Fourth"],
  "rewritten_bullet": " Cut p99 latency by 40% ",
  "title": "Senior Backend Engineer",
  "ats_keywords": ["golang", "kubernetes"]
}`

func TestLLMGenerator_Suggest(t *testing.T) {
	client := &stubClient{reply: "```json\n" + validReply + "\n```"}
	gen := NewLLMGenerator(client)

	bundle, err := gen.Suggest(context.Background(), Request{
		ResumeText:      "Jane Doe, Go developer",
		JobTitle:        "Backend Engineer",
		Score:           72.5,
		Skills:          []string{"go", "docker"},
		YearsExperience: 6,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Quantify impact", "Lead with action verbs", "Add a summary"}, bundle.Recommendations)
	assert.Equal(t, "Cut p99 latency by 40%", bundle.RewrittenBullet)
	assert.Equal(t, "Senior Backend Engineer", bundle.SuggestedTitle)
	assert.Equal(t, []string{"golang", "kubernetes"}, bundle.ATSKeywords)
	assert.Empty(t, bundle.Error)

	assert.Contains(t, client.lastPrompt, "for a 'Backend Engineer' position")
	assert.Contains(t, client.lastPrompt, "- Skills Found: go, docker")
	assert.Contains(t, client.lastPrompt, "- Score: 72.5/100")
	assert.Contains(t, client.lastPrompt, "- Years of Experience: 6")
}

func TestLLMGenerator_ClientError(t *testing.T) {
	gen := NewLLMGenerator(&stubClient{err: errors.New("quota exceeded")})

	_, err := gen.Suggest(context.Background(), Request{ResumeText: "x"})
	require.Error(t, err)

	var apiErr *parsing.APICallError
	require.True(t, errors.As(err, &apiErr))
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Contains(t, err.Error(), "stub-model")
}

func TestBuildPrompt_NoSkillsNoTitle(t *testing.T) {
	prompt, err := BuildPrompt(Request{ResumeText: "text"})
	require.NoError(t, err)

	assert.Contains(t, prompt, "Analyze the following resume.")
	assert.Contains(t, prompt, "- Skills Found: None detected")
	assert.Contains(t, prompt, "Highlighting relevant skills\n")
	assert.Contains(t, prompt, "valid JSON only")
}

func TestTruncateText(t *testing.T) {
	short := "short text"
	assert.Equal(t, short, TruncateText(short, MaxPromptChars))

	exact := strings.Repeat("a", MaxPromptChars)
	assert.Equal(t, exact, TruncateText(exact, MaxPromptChars))

	long := strings.Repeat("é", MaxPromptChars+10)
	got := TruncateText(long, MaxPromptChars)
	assert.True(t, strings.HasSuffix(got, "...[truncated]"))
	assert.Equal(t, strings.Repeat("é", MaxPromptChars), strings.TrimSuffix(got, "...[truncated]"))
}

func TestParseReply_Failures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"prose", "I think the resume is great."},
		{"truncated json", `{"suggestions": ["a"`},
		{"missing field", `{"suggestions": [], "title": "", "ats_keywords": []}`},
		{"wrong type", `{"suggestions": "a", "rewritten_bullet": "", "title": "", "ats_keywords": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle, err := ParseReply(tt.raw)
			assert.Nil(t, bundle)
			require.Error(t, err)

			var parseErr *parsing.ParseError
			assert.True(t, errors.As(err, &parseErr))
		})
	}
}

func TestParseReply_EmptyListsStayNonNil(t *testing.T) {
	bundle, err := ParseReply(`{"suggestions": [], "rewritten_bullet": "", "title": "", "ats_keywords": []}`)
	require.NoError(t, err)
	assert.NotNil(t, bundle.Recommendations)
	assert.NotNil(t, bundle.ATSKeywords)
	assert.Empty(t, bundle.Recommendations)
}

func TestNormalize_ErrorBundle(t *testing.T) {
	got := Normalize(types.SuggestionBundle{
		Recommendations: []string{"a"},
		SuggestedTitle:  "t",
		Error:           "boom",
	})
	assert.Equal(t, types.DegradedBundle("boom"), got)
}
