package suggestions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultTimeout bounds a single generator call
const DefaultTimeout = 20 * time.Second

// ErrNotConfigured is the bundle error when no generator is wired
const ErrNotConfigured = "suggestion generator not configured"

// Adapter isolates generator failures from the analysis. Suggest never
// returns an error: every failure becomes a degraded bundle.
type Adapter struct {
	gen     Generator
	timeout time.Duration
}

// NewAdapter wraps gen. A nil gen yields an adapter that always reports
// ErrNotConfigured; a non-positive timeout selects DefaultTimeout.
func NewAdapter(gen Generator, timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Adapter{gen: gen, timeout: timeout}
}

// Configured reports whether a generator is wired
func (a *Adapter) Configured() bool {
	return a != nil && a.gen != nil
}

// Timeout returns the per-call deadline
func (a *Adapter) Timeout() time.Duration {
	return a.timeout
}

type outcome struct {
	bundle *types.SuggestionBundle
	err    error
}

// Suggest makes one bounded call to the generator. A generator that ignores
// its context is abandoned when the deadline passes.
func (a *Adapter) Suggest(ctx context.Context, req Request) types.SuggestionBundle {
	if !a.Configured() {
		return types.DegradedBundle(ErrNotConfigured)
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	// buffered so an abandoned generator can still finish without blocking
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("suggestion generator panicked: %v", r)}
			}
		}()
		bundle, err := a.gen.Suggest(callCtx, req)
		done <- outcome{bundle: bundle, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			log.Printf("Suggestion generator failed: %v", out.err)
			return types.DegradedBundle(out.err.Error())
		}
		if out.bundle == nil {
			log.Printf("Suggestion generator returned no bundle")
			return types.DegradedBundle("suggestion generator returned no result")
		}
		return Normalize(*out.bundle)
	case <-callCtx.Done():
		reason := fmt.Sprintf("suggestion generator timed out after %s", a.timeout)
		if errors.Is(callCtx.Err(), context.Canceled) {
			reason = "suggestion request canceled"
		}
		log.Printf("Suggestion generator abandoned: %s", reason)
		return types.DegradedBundle(reason)
	}
}
