package analysis

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/suggestions"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
jane.doe@example.com | (555) 123-4567

Senior Software Engineer, Acme Corp, 2015 - Present
- Led migration of billing services to Go and Kubernetes, improving throughput by 35%
- Developed REST API endpoints backed by PostgreSQL and Redis
- Mentored four engineers and reduced on-call pages by 20%

Education
Master of Science in Computer Science, 2014
`

type stubGenerator struct {
	bundle *types.SuggestionBundle
	err    error
	got    suggestions.Request
	mu     sync.Mutex
}

func (s *stubGenerator) Suggest(_ context.Context, req suggestions.Request) (*types.SuggestionBundle, error) {
	s.mu.Lock()
	s.got = req
	s.mu.Unlock()
	return s.bundle, s.err
}

func fixedClock() time.Time {
	return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
}

func newTestEngine(gen suggestions.Generator) *Engine {
	return New(Options{
		Dictionary:  skills.NewDictionary([]string{"python", "go", "kubernetes", "postgresql", "redis", "rest api", "java"}),
		Suggestions: suggestions.NewAdapter(gen, time.Second),
		Now:         fixedClock,
		NewID:       func() string { return "analysis-1" },
	})
}

func TestAnalyze_EndToEnd(t *testing.T) {
	gen := &stubGenerator{bundle: &types.SuggestionBundle{
		Recommendations: []string{"Add a summary", "Quantify more bullets"},
		RewrittenBullet: "Led a 6-month migration of billing to Go, raising throughput 35%",
		SuggestedTitle:  "Senior Backend Engineer",
		ATSKeywords:     []string{"golang", "kubernetes", "postgresql", "redis"},
	}}
	engine := newTestEngine(gen)

	result, err := engine.Analyze(context.Background(), types.AnalyzeRequest{
		DocumentText: sampleResume,
		JobTitle:     "  Backend Engineer ",
	})
	require.NoError(t, err)

	assert.Equal(t, "analysis-1", result.ID)
	assert.Equal(t, []string{"go", "kubernetes", "postgresql", "redis", "rest api"}, result.Skills)
	assert.Equal(t, 9, result.YearsExperience)
	assert.Equal(t, types.EducationMaster, result.EducationLevel)
	assert.Equal(t, []string{parsing.SectionEducation}, result.Sections)
	assert.Equal(t, "Backend Engineer", result.JobTitle)
	assert.Equal(t, fixedClock().UTC(), result.AnalyzedAt)
	assert.Equal(t, parsing.NewResumeText(sampleResume).WordCount(), result.WordCount)
	assert.Equal(t, strings.TrimSpace(sampleResume), result.TextPreview)

	assert.Equal(t, 29.0, result.Breakdown.Experience)
	assert.Equal(t, 15.0, result.Breakdown.Skills)
	assert.Equal(t, 12.0, result.Breakdown.Education)
	assert.InDelta(t, result.OverallScore, result.Breakdown.Sum(), 0.011)

	assert.False(t, result.Suggestions.Failed())
	assert.Len(t, result.Suggestions.ATSKeywords, types.MaxSuggestionItems)
	assert.Equal(t, "Senior Backend Engineer", result.Suggestions.SuggestedTitle)

	assert.Equal(t, "Backend Engineer", gen.got.JobTitle)
	assert.Equal(t, result.OverallScore, gen.got.Score)
	assert.Equal(t, result.Skills, gen.got.Skills)
	assert.Equal(t, 9, gen.got.YearsExperience)
}

func TestAnalyze_GeneratorFailureKeepsScore(t *testing.T) {
	ok := newTestEngine(&stubGenerator{bundle: &types.SuggestionBundle{}})
	failing := newTestEngine(&stubGenerator{err: errors.New("quota exceeded")})
	req := types.AnalyzeRequest{DocumentText: sampleResume}

	want, err := ok.Analyze(context.Background(), req)
	require.NoError(t, err)
	got, err := failing.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, want.OverallScore, got.OverallScore)
	assert.Equal(t, want.Breakdown, got.Breakdown)
	assert.Equal(t, want.Skills, got.Skills)
	assert.True(t, got.Suggestions.Failed())
	assert.Contains(t, got.Suggestions.Error, "quota exceeded")
	assert.Empty(t, got.Suggestions.Recommendations)
}

func TestAnalyze_NoGenerator(t *testing.T) {
	engine := New(Options{Now: fixedClock})

	result, err := engine.Analyze(context.Background(), types.AnalyzeRequest{DocumentText: "Jane Doe, python developer"})
	require.NoError(t, err)

	assert.Equal(t, suggestions.ErrNotConfigured, result.Suggestions.Error)
	assert.NotEmpty(t, result.ID)
	assert.Contains(t, result.Skills, "python")
}

func TestAnalyze_InputErrors(t *testing.T) {
	engine := newTestEngine(nil)

	tests := []struct {
		name string
		req  types.AnalyzeRequest
	}{
		{"empty", types.AnalyzeRequest{}},
		{"whitespace only", types.AnalyzeRequest{DocumentText: " \n\t "}},
		{"job title too long", types.AnalyzeRequest{DocumentText: "text", JobTitle: strings.Repeat("x", 201)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Analyze(context.Background(), tt.req)
			assert.Nil(t, result)
			require.Error(t, err)
			assert.True(t, parsing.IsInputError(err))
		})
	}
}

func TestAnalyze_MinimalDocument(t *testing.T) {
	engine := newTestEngine(nil)

	result, err := engine.Analyze(context.Background(), types.AnalyzeRequest{DocumentText: "hello"})
	require.NoError(t, err)

	assert.Empty(t, result.Skills)
	assert.NotNil(t, result.Skills)
	assert.Equal(t, 0, result.YearsExperience)
	assert.Equal(t, types.EducationNone, result.EducationLevel)
	assert.NotNil(t, result.Sections)
	assert.Empty(t, result.Sections)
	assert.Equal(t, 0.0, result.Breakdown.Experience)
	assert.Equal(t, 0.0, result.Breakdown.Skills)
	assert.Equal(t, 0.0, result.Breakdown.Education)
	assert.GreaterOrEqual(t, result.OverallScore, 0.0)
	assert.LessOrEqual(t, result.OverallScore, 100.0)
}

func TestAnalyze_Deterministic(t *testing.T) {
	engine := newTestEngine(nil)
	req := types.AnalyzeRequest{DocumentText: sampleResume}

	first, err := engine.Analyze(context.Background(), req)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := engine.Analyze(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestAnalyze_Concurrent(t *testing.T) {
	engine := newTestEngine(nil)
	req := types.AnalyzeRequest{DocumentText: sampleResume}

	want, err := engine.Analyze(context.Background(), req)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*types.AnalysisResult, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = engine.Analyze(context.Background(), req)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		require.NotNil(t, got)
		assert.Equal(t, want.OverallScore, got.OverallScore)
	}
}

func TestAnalyze_ProgressEvents(t *testing.T) {
	var steps []string
	engine := New(Options{
		Now: fixedClock,
		OnProgress: func(event ProgressEvent) {
			steps = append(steps, event.Step)
		},
	})

	_, err := engine.Analyze(context.Background(), types.AnalyzeRequest{DocumentText: sampleResume})
	require.NoError(t, err)
	assert.Equal(t, []string{StepEvaluate, StepScore, StepSuggest, StepCompleted}, steps)
}

func TestAnalyze_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestEngine(nil).Analyze(ctx, types.AnalyzeRequest{DocumentText: sampleResume})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, parsing.IsInputError(err))
}

func TestEvaluate_MatchesAggregator(t *testing.T) {
	engine := newTestEngine(nil)
	text := parsing.NewResumeText(sampleResume)

	ev, err := engine.Evaluate(context.Background(), text)
	require.NoError(t, err)

	breakdown, overall := scoring.Aggregate(ev.Signals())
	assert.Equal(t, scoring.FormatScore(text), breakdown.Format)
	assert.Equal(t, len(ev.Skills), ev.Signals().SkillCount)
	assert.InDelta(t, overall, breakdown.Sum(), 0.011)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "abc", Preview("  abc  ", 10))
	assert.Equal(t, "ab", Preview("abc", 2))
	assert.Equal(t, "żó", Preview("żółw", 2))

	engine := New(Options{PreviewLength: 4, Now: fixedClock})
	result, err := engine.Analyze(context.Background(), types.AnalyzeRequest{DocumentText: "Jane Doe"})
	require.NoError(t, err)
	assert.Equal(t, "Jane", result.TextPreview)
}
