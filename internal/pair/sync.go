package pair

import (
	"context"

	"github.com/harborline/shipshape/internal/git"
	"github.com/harborline/shipshape/internal/output"
)

// SyncOutcome describes what Sync did for one pair.
type SyncOutcome struct {
	Pair     Pair    `json:"pair"`
	Before   Verdict `json:"before"`
	After    Verdict `json:"after"`
	Synced   bool    `json:"synced"`   // jupytext --sync was run
	Restaged bool    `json:"restaged"` // both sides were re-added
}

// Syncer repairs inconsistent pairs: it runs jupytext --sync on every
// pair with a violation verdict, restages both sides, and re-verifies.
// This is the repair path for the same table Verify reports on.
type Syncer struct {
	Verifier *Verifier
	// NoVerify skips the re-verification pass after repair; each
	// outcome's After then repeats its Before verdict.
	NoVerify bool
}

// Sync verifies all pairs, repairs violations, and returns per-pair
// outcomes from the second verification pass. Requires a Converter; a
// Syncer without jupytext cannot repair anything.
func (s *Syncer) Sync(ctx context.Context) ([]SyncOutcome, error) {
	if s.Verifier.Converter == nil {
		return nil, output.NewSystemError("pair sync requires jupytext: install it or set SHIPSHAPE_JUPYTEXT")
	}

	before, err := s.Verifier.Verify(ctx)
	if err != nil {
		return nil, err
	}

	outcomes := make([]SyncOutcome, 0, len(before))
	for _, result := range before {
		outcome, err := s.repair(ctx, result)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, outcome)
	}

	if s.NoVerify {
		return outcomes, nil
	}

	// Re-verify everything in one pass so After reflects the final
	// index state, including pairs repaired as a side effect of others.
	after, err := s.Verifier.Verify(ctx)
	if err != nil {
		return nil, err
	}
	afterByStem := make(map[string]Verdict, len(after))
	for _, result := range after {
		afterByStem[result.Pair.Stem()] = result.Verdict
	}
	for i := range outcomes {
		if verdict, ok := afterByStem[outcomes[i].Pair.Stem()]; ok {
			outcomes[i].After = verdict
		}
	}

	return outcomes, nil
}

// repair fixes a single pair according to its verdict.
func (s *Syncer) repair(ctx context.Context, result Result) (SyncOutcome, error) {
	outcome := SyncOutcome{
		Pair:   result.Pair,
		Before: result.Verdict,
		After:  result.Verdict,
	}
	if !result.Verdict.Violation() {
		return outcome, nil
	}

	// Regenerate from the side that still exists (the notebook when both
	// do), then stage both sides. Regenerating first matters: a clean but
	// outdated counterpart has nothing to stage until jupytext rewrites it.
	syncRoot := result.Pair.Notebook
	if !result.Notebook.Exists {
		syncRoot = result.Pair.Text
	}
	if err := s.Verifier.Converter.Sync(ctx, syncRoot); err != nil {
		return SyncOutcome{}, err
	}
	outcome.Synced = true

	if err := git.Add(result.Pair.Notebook, result.Pair.Text); err != nil {
		return SyncOutcome{}, err
	}
	outcome.Restaged = true

	return outcome, nil
}
