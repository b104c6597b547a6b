// Package engine assembles and runs the configured check suite.
package engine

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/harborline/shipshape/internal/finding"
)

// Check is one named check the runner can execute.
type Check struct {
	Name string
	Run  func(ctx context.Context) (*finding.Report, error)
}

// Runner executes checks concurrently and merges their findings.
type Runner struct {
	Checks []Check
}

// Run executes every check. Findings from all checks are merged into one
// sorted report. The first system error cancels the remaining checks and
// is returned as-is (it already carries an exit code).
func (r *Runner) Run(ctx context.Context) (*finding.Report, error) {
	merged := &finding.Report{}
	var mu sync.Mutex

	group, ctx := errgroup.WithContext(ctx)
	for _, check := range r.Checks {
		group.Go(func() error {
			report, err := check.Run(ctx)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			merged.Merge(report)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	merged.Sort()
	return merged, nil
}
