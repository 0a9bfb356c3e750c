// Package analysis provides the orchestration for analyzing a single resume:
// the evaluators run concurrently, their signals are aggregated into a score,
// and the suggestion adapter is consulted last.
package analysis

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-analyzer/internal/experience"
	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/suggestions"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultPreviewLength is the number of runes kept in AnalysisResult.TextPreview
const DefaultPreviewLength = 500

// Progress steps
const (
	StepEvaluate  = "evaluate"
	StepScore     = "score"
	StepSuggest   = "suggest"
	StepCompleted = "completed"
)

// ProgressEvent represents a progress update during an analysis
type ProgressEvent struct {
	Step       string `json:"step"`
	Message    string `json:"message"`
	AnalysisID string `json:"analysis_id,omitempty"`
	Content    any    `json:"content,omitempty"`
}

// ProgressCallback is called when analysis progress occurs
type ProgressCallback func(event ProgressEvent)

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	Dictionary    *skills.Dictionary
	Suggestions   *suggestions.Adapter
	PreviewLength int
	Now           func() time.Time
	NewID         func() string
	OnProgress    ProgressCallback
}

// Engine analyzes resumes. It is safe for concurrent use; requests share only
// the read-only dictionary.
type Engine struct {
	dict       *skills.Dictionary
	adapter    *suggestions.Adapter
	estimator  *experience.Estimator
	preview    int
	now        func() time.Time
	newID      func() string
	onProgress ProgressCallback
}

// New creates an Engine from opts
func New(opts Options) *Engine {
	e := &Engine{
		dict:       opts.Dictionary,
		adapter:    opts.Suggestions,
		preview:    opts.PreviewLength,
		now:        opts.Now,
		newID:      opts.NewID,
		onProgress: opts.OnProgress,
	}
	if e.dict == nil {
		e.dict = skills.Default()
	}
	if e.adapter == nil {
		e.adapter = suggestions.NewAdapter(nil, 0)
	}
	if e.preview <= 0 {
		e.preview = DefaultPreviewLength
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.newID == nil {
		e.newID = func() string { return uuid.New().String() }
	}
	e.estimator = &experience.Estimator{Now: e.now}
	return e
}

// Dictionary returns the skill dictionary the engine matches against
func (e *Engine) Dictionary() *skills.Dictionary {
	return e.dict
}

// Evaluation holds the raw evaluator outputs for one document
type Evaluation struct {
	Skills          []string
	YearsExperience int
	Education       types.EducationTier
	Format          float64
	Keywords        float64
	// Sections lists the resume sections found by their headers. It does not
	// feed the score.
	Sections []string
}

// Signals converts the evaluation into aggregator input
func (ev Evaluation) Signals() scoring.Signals {
	return scoring.Signals{
		YearsExperience: ev.YearsExperience,
		SkillCount:      len(ev.Skills),
		Education:       ev.Education,
		Format:          ev.Format,
		Keywords:        ev.Keywords,
	}
}

// Analyze runs the full analysis for one request. Input problems are reported
// as *parsing.InputError before any evaluator runs; suggestion failures never
// fail the analysis.
func (e *Engine) Analyze(ctx context.Context, req types.AnalyzeRequest) (*types.AnalysisResult, error) {
	req.JobTitle = strings.TrimSpace(req.JobTitle)
	if strings.TrimSpace(req.DocumentText) == "" {
		return nil, &parsing.InputError{Message: "document text is empty", Cause: parsing.ErrEmptyDocument}
	}
	if err := req.Validate(); err != nil {
		return nil, &parsing.InputError{Message: "invalid analyze request", Cause: err}
	}

	id := e.newID()
	text := parsing.NewResumeText(req.DocumentText)

	e.emit(StepEvaluate, id, "Running evaluators", nil)
	eval, err := e.Evaluate(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}

	breakdown, overall := scoring.Aggregate(eval.Signals())
	e.emit(StepScore, id, fmt.Sprintf("Scored %.2f/100", overall), breakdown)

	e.emit(StepSuggest, id, "Requesting suggestions", nil)
	bundle := e.adapter.Suggest(ctx, suggestions.Request{
		ResumeText:      text.Original(),
		JobTitle:        req.JobTitle,
		Score:           overall,
		Skills:          eval.Skills,
		YearsExperience: eval.YearsExperience,
	})
	if bundle.Failed() && e.adapter.Configured() {
		log.Printf("Analysis %s continuing without suggestions: %s", id, bundle.Error)
	}

	result := &types.AnalysisResult{
		ID:              id,
		OverallScore:    overall,
		Breakdown:       breakdown,
		Skills:          eval.Skills,
		YearsExperience: eval.YearsExperience,
		EducationLevel:  eval.Education,
		Sections:        eval.Sections,
		Suggestions:     bundle,
		TextPreview:     Preview(text.Original(), e.preview),
		WordCount:       text.WordCount(),
		JobTitle:        req.JobTitle,
		AnalyzedAt:      e.now().UTC(),
	}
	e.emit(StepCompleted, id, "Analysis complete", result)
	return result, nil
}

// Evaluate runs the evaluators concurrently and waits for all of them. Every
// evaluator reads the full text; section splitting is reported alongside.
func (e *Engine) Evaluate(ctx context.Context, text parsing.ResumeText) (*Evaluation, error) {
	var ev Evaluation
	g, gCtx := errgroup.WithContext(ctx)

	// each branch writes a distinct field
	g.Go(func() error {
		ev.Skills = e.dict.Extract(text)
		return gCtx.Err()
	})
	g.Go(func() error {
		ev.YearsExperience = e.estimator.Estimate(text)
		return gCtx.Err()
	})
	g.Go(func() error {
		ev.Education = scoring.DetectEducation(text)
		return gCtx.Err()
	})
	g.Go(func() error {
		ev.Format = scoring.FormatScore(text)
		return gCtx.Err()
	})
	g.Go(func() error {
		ev.Keywords = scoring.KeywordScore(text)
		return gCtx.Err()
	})
	g.Go(func() error {
		ev.Sections = parsing.SplitSections(text.Original()).Detected()
		return gCtx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ev, nil
}

// Preview returns at most limit runes of text with surrounding whitespace trimmed
func Preview(text string, limit int) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit])
}

func (e *Engine) emit(step, id, message string, content any) {
	if e.onProgress != nil {
		e.onProgress(ProgressEvent{
			Step:       step,
			Message:    message,
			AnalysisID: id,
			Content:    content,
		})
	}
}

// SuggestionsEnabled reports whether a suggestion generator is wired
func (e *Engine) SuggestionsEnabled() bool {
	return e.adapter.Configured()
}
