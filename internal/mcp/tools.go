package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harborline/shipshape/internal/commitlint"
	"github.com/harborline/shipshape/internal/engine"
	"github.com/harborline/shipshape/internal/finding"
	"github.com/harborline/shipshape/internal/links"
	"github.com/harborline/shipshape/internal/pair"
	"github.com/harborline/shipshape/internal/report"
	"github.com/harborline/shipshape/internal/secrets"
)

// CheckInput is the input for the check tool.
type CheckInput struct {
	Checks []string `json:"checks,omitempty" jsonschema:"checks to run; empty runs the configured suite"`
}

// FindingsOutput is the shared output shape for finding-producing tools.
type FindingsOutput struct {
	Errors   int               `json:"errors"   jsonschema:"number of error findings"`
	Warnings int               `json:"warnings" jsonschema:"number of warning findings"`
	Findings []finding.Finding `json:"findings" jsonschema:"individual findings"`
}

// toOutput converts a report to the shared tool output shape.
func toOutput(r *finding.Report) FindingsOutput {
	summary := report.NewSummary(r)
	return FindingsOutput{
		Errors:   summary.Errors,
		Warnings: summary.Warnings,
		Findings: summary.Findings,
	}
}

func (s *Server) handleCheck(ctx context.Context, _ *mcp.CallToolRequest, input CheckInput) (*mcp.CallToolResult, FindingsOutput, error) {
	cfg := *s.cfg
	if len(input.Checks) > 0 {
		cfg.Checks = input.Checks
	}

	checks, err := engine.BuildSuite(s.root, &cfg, s.converter)
	if err != nil {
		return nil, FindingsOutput{}, err
	}
	runner := &engine.Runner{Checks: checks}
	rep, err := runner.Run(ctx)
	if err != nil {
		return nil, FindingsOutput{}, err
	}
	return nil, toOutput(rep), nil
}

// PairVerifyInput is the input for the pair_verify tool.
type PairVerifyInput struct{}

// PairVerifyOutput is the output for the pair_verify tool.
type PairVerifyOutput struct {
	Violations int           `json:"violations" jsonschema:"number of pairs with a non-clean verdict"`
	Results    []pair.Result `json:"results"    jsonschema:"per-pair verdicts"`
}

func (s *Server) handlePairVerify(ctx context.Context, _ *mcp.CallToolRequest, _ PairVerifyInput) (*mcp.CallToolResult, PairVerifyOutput, error) {
	results, err := s.verifier().Verify(ctx)
	if err != nil {
		return nil, PairVerifyOutput{}, err
	}

	violations := 0
	for _, result := range results {
		if result.Verdict.Violation() {
			violations++
		}
	}
	if results == nil {
		results = []pair.Result{}
	}
	return nil, PairVerifyOutput{Violations: violations, Results: results}, nil
}

// PairSyncInput is the input for the pair_sync tool.
type PairSyncInput struct{}

// PairSyncOutput is the output for the pair_sync tool.
type PairSyncOutput struct {
	Outcomes []pair.SyncOutcome `json:"outcomes" jsonschema:"per-pair repair outcomes"`
}

func (s *Server) handlePairSync(ctx context.Context, _ *mcp.CallToolRequest, _ PairSyncInput) (*mcp.CallToolResult, PairSyncOutput, error) {
	syncer := &pair.Syncer{Verifier: s.verifier()}
	outcomes, err := syncer.Sync(ctx)
	if err != nil {
		return nil, PairSyncOutput{}, err
	}
	if outcomes == nil {
		outcomes = []pair.SyncOutcome{}
	}
	return nil, PairSyncOutput{Outcomes: outcomes}, nil
}

// LinksInput is the input for the links tool.
type LinksInput struct {
	External bool `json:"external,omitempty" jsonschema:"probe external URLs over HTTP"`
}

func (s *Server) handleLinks(ctx context.Context, _ *mcp.CallToolRequest, input LinksInput) (*mcp.CallToolResult, FindingsOutput, error) {
	cfg := s.cfg.Links
	cfg.External = cfg.External || input.External

	checker := &links.Checker{Root: s.root, Config: cfg}
	if cfg.External {
		checker.Prober = links.NewProber(cfg.ExternalTimeout(), cfg.Concurrency)
	}

	files, err := engine.MarkdownFiles(s.root, s.cfg.Exclude)
	if err != nil {
		return nil, FindingsOutput{}, err
	}
	rep, err := checker.Check(ctx, files)
	if err != nil {
		return nil, FindingsOutput{}, err
	}
	return nil, toOutput(rep), nil
}

// SecretsInput is the input for the secrets tool.
type SecretsInput struct {
	Staged bool `json:"staged,omitempty" jsonschema:"scan staged (index) contents instead of the worktree"`
}

func (s *Server) handleSecrets(ctx context.Context, _ *mcp.CallToolRequest, input SecretsInput) (*mcp.CallToolResult, FindingsOutput, error) {
	scanner, err := secrets.NewScanner(s.root, s.cfg.Secrets)
	if err != nil {
		return nil, FindingsOutput{}, err
	}

	var rep *finding.Report
	if input.Staged {
		rep, err = scanner.ScanStaged(ctx)
	} else {
		var files []string
		files, err = engine.TextFiles(s.root, s.cfg.Exclude)
		if err == nil {
			rep, err = scanner.ScanFiles(files)
		}
	}
	if err != nil {
		return nil, FindingsOutput{}, err
	}
	return nil, toOutput(rep), nil
}

// CommitsInput is the input for the commits tool.
type CommitsInput struct {
	Range string `json:"range,omitempty" jsonschema:"git range to lint (defaults to upstream..HEAD)"`
}

func (s *Server) handleCommits(_ context.Context, _ *mcp.CallToolRequest, input CommitsInput) (*mcp.CallToolResult, FindingsOutput, error) {
	linter := &commitlint.Linter{Config: s.cfg.Commits}
	rep, err := linter.LintRange(input.Range)
	if err != nil {
		return nil, FindingsOutput{}, err
	}
	return nil, toOutput(rep), nil
}

// verifier builds the pair verifier shared by the pair tools.
func (s *Server) verifier() *pair.Verifier {
	return &pair.Verifier{
		Root:      s.root,
		Config:    s.cfg.Pairs,
		Exclude:   s.cfg.Exclude,
		Converter: s.converter,
	}
}
