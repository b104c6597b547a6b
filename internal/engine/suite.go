package engine

import (
	"context"
	"fmt"

	"github.com/harborline/shipshape/internal/adr"
	"github.com/harborline/shipshape/internal/commitlint"
	"github.com/harborline/shipshape/internal/config"
	"github.com/harborline/shipshape/internal/finding"
	"github.com/harborline/shipshape/internal/links"
	"github.com/harborline/shipshape/internal/output"
	"github.com/harborline/shipshape/internal/pair"
	"github.com/harborline/shipshape/internal/secrets"
)

// BuildSuite turns the configured check names into runnable checks.
// Unknown names are a user error (config validation catches them first;
// this guards direct callers).
func BuildSuite(root string, cfg *config.Config, converter pair.Converter) ([]Check, error) {
	checks := make([]Check, 0, len(cfg.Checks))
	for _, name := range cfg.Checks {
		check, err := buildCheck(name, root, cfg, converter)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}
	return checks, nil
}

// buildCheck constructs one named check.
func buildCheck(name, root string, cfg *config.Config, converter pair.Converter) (Check, error) {
	switch name {
	case "pairs":
		verifier := &pair.Verifier{
			Root:      root,
			Config:    cfg.Pairs,
			Exclude:   cfg.Exclude,
			Converter: converter,
		}
		return Check{Name: name, Run: func(ctx context.Context) (*finding.Report, error) {
			results, err := verifier.Verify(ctx)
			if err != nil {
				return nil, err
			}
			return PairFindings(results), nil
		}}, nil

	case "links":
		checker := &links.Checker{Root: root, Config: cfg.Links}
		if cfg.Links.External {
			checker.Prober = links.NewProber(cfg.Links.ExternalTimeout(), cfg.Links.Concurrency)
		}
		return Check{Name: name, Run: func(ctx context.Context) (*finding.Report, error) {
			files, err := MarkdownFiles(root, cfg.Exclude)
			if err != nil {
				return nil, err
			}
			return checker.Check(ctx, files)
		}}, nil

	case "adr":
		checker := &adr.Checker{Root: root, Config: cfg.ADR}
		return Check{Name: name, Run: func(context.Context) (*finding.Report, error) {
			return checker.Check()
		}}, nil

	case "commits":
		linter := &commitlint.Linter{Config: cfg.Commits}
		return Check{Name: name, Run: func(context.Context) (*finding.Report, error) {
			return linter.LintRange("")
		}}, nil

	case "secrets":
		scanner, err := secrets.NewScanner(root, cfg.Secrets)
		if err != nil {
			return Check{}, err
		}
		return Check{Name: name, Run: func(context.Context) (*finding.Report, error) {
			files, err := TextFiles(root, cfg.Exclude)
			if err != nil {
				return nil, err
			}
			return scanner.ScanFiles(files)
		}}, nil

	default:
		return Check{}, output.NewUserError(fmt.Sprintf("unknown check %q", name))
	}
}

// PairFindings converts pair verification results to findings.
// Clean pairs produce nothing; each violation becomes one error finding
// located at the staged (or notebook) side.
func PairFindings(results []pair.Result) *finding.Report {
	report := &finding.Report{}
	for _, result := range results {
		if !result.Verdict.Violation() {
			continue
		}
		path := result.Pair.Notebook
		if result.Text.Staged && !result.Notebook.Staged {
			path = result.Pair.Text
		}
		report.Add(finding.Finding{
			Check:    pair.CheckName,
			Rule:     string(result.Verdict),
			Severity: finding.SeverityError,
			Path:     path,
			Message:  result.Detail,
			Hint:     "run 'shipshape pair sync' to repair",
		})
	}
	report.Sort()
	return report
}
