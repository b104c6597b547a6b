package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harborline/shipshape/internal/config"
	"github.com/harborline/shipshape/internal/finding"
	"github.com/harborline/shipshape/internal/git"
	"github.com/harborline/shipshape/internal/output"
	"github.com/harborline/shipshape/internal/pair"
	"github.com/harborline/shipshape/internal/report"
)

// newPrinter creates a printer honoring the --json flag and TTY detection.
func newPrinter(cmd *cobra.Command) *output.Printer {
	writer := cmd.OutOrStdout()
	return output.NewPrinter(writer, isJSONMode(cmd), output.IsTTY(writer))
}

// repoContext is the shared state every repo-scoped command needs: the
// repository root, the parsed config, and an optional jupytext bridge.
type repoContext struct {
	Root      string
	Config    *config.Config
	Converter pair.Converter
}

// loadRepo resolves the enclosing git repository, changes the working
// directory to its root, and loads .shipshape.yaml. Git paths are
// root-relative, so every check runs from the root regardless of where
// the command was invoked.
func loadRepo() (*repoContext, error) {
	if !git.IsRepo() {
		return nil, output.NewUserError("not a git repository. Run shipshape inside a git worktree")
	}
	root, err := git.RepoRoot()
	if err != nil {
		return nil, err
	}
	if err := os.Chdir(root); err != nil {
		return nil, output.NewSystemErrorWithCause("failed to enter repository root", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	return &repoContext{
		Root:      root,
		Config:    cfg,
		Converter: converterIfAvailable(),
	}, nil
}

// converterIfAvailable returns the jupytext bridge when the binary is on
// PATH, or nil. A nil converter disables the content drift comparison
// and makes pair sync fail with a clear message.
func converterIfAvailable() pair.Converter {
	jupytext := pair.NewJupytext()
	if !jupytext.Available() {
		return nil
	}
	return jupytext
}

// verifierFor builds a pair verifier over the loaded repo.
func (rc *repoContext) verifierFor() *pair.Verifier {
	return &pair.Verifier{
		Root:      rc.Root,
		Config:    rc.Config.Pairs,
		Exclude:   rc.Config.Exclude,
		Converter: rc.Converter,
	}
}

// renderReport prints a findings report and converts it to the process
// exit status: nil when the report passes, a findings error otherwise.
// Strict mode promotes warnings to failures without changing severities.
func renderReport(printer *output.Printer, rep *finding.Report, strict bool) error {
	if printer.IsJSON() {
		if err := report.WriteJSON(printer, rep); err != nil {
			return err
		}
		return findingsStatus(rep, strict)
	}

	printFindings(printer, rep)
	return findingsStatus(rep, strict)
}

// printFindings writes the human rendering: findings grouped by check,
// then a summary line.
func printFindings(printer *output.Printer, rep *finding.Report) {
	styles := printer.Styles()

	checks, groups := rep.ByCheck()
	for _, check := range checks {
		printer.Section(check)
		for _, f := range groups[check] {
			marker := styles.Error.Render("✗")
			if f.Severity == finding.SeverityWarning {
				marker = styles.Warning.Render("!")
			}
			if loc := f.Location(); loc != "" {
				printer.Print("  %s %s  %s\n", marker, styles.Bold.Render(loc), f.Message)
			} else {
				printer.Print("  %s %s\n", marker, f.Message)
			}
			if f.Hint != "" {
				printer.Print("      %s\n", styles.Muted.Render(f.Hint))
			}
		}
		printer.Println()
	}

	errors, warnings := rep.Errors(), rep.Warnings()
	switch {
	case errors == 0 && warnings == 0:
		printer.Print("%s all checks passed\n", styles.Success.Render("✓"))
	default:
		printer.Print("%d error(s), %d warning(s)\n", errors, warnings)
	}
}

// findingsStatus maps a report to the command's error return.
func findingsStatus(rep *finding.Report, strict bool) error {
	if !rep.Failed(strict) {
		return nil
	}
	return output.NewFindingsError(fmt.Sprintf("%d finding(s)", len(rep.Findings)))
}
