package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/harborline/shipshape/internal/commitlint"
	"github.com/harborline/shipshape/internal/engine"
	"github.com/harborline/shipshape/internal/finding"
	"github.com/harborline/shipshape/internal/output"
	"github.com/harborline/shipshape/internal/secrets"
)

// newHookCmd creates the hidden hook parent command for internal hook execution.
func newHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "hook",
		Short:  "Internal hook runner",
		Long:   `Internal command for running hook logic. Called by git hooks.`,
		Hidden: true,
	}

	cmd.AddCommand(newHookRunCmd())
	return cmd
}

// newHookRunCmd creates the hook run subcommand.
func newHookRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <hook-name> [args...]",
		Short: "Execute hook logic",
		Long:  `Execute the logic for the specified hook. Called by installed git hooks.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runHookRun,
	}
}

// runHookRun executes the hook run command.
func runHookRun(cmd *cobra.Command, args []string) error {
	switch args[0] {
	case "pre-commit":
		return runPreCommitHook(cmd)
	case "commit-msg":
		return runCommitMsgHook(cmd, args[1:])
	default:
		// Unknown hook, silently succeed to not block operations
		return nil
	}
}

// runPreCommitHook verifies notebook pairs and scans staged content for
// secrets. A setup problem (no repo, bad config) never blocks the
// commit; findings block it only when hooks.block is true.
func runPreCommitHook(cmd *cobra.Command) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), false, output.IsTTY(cmd.OutOrStdout()))

	rc, err := loadRepo()
	if err != nil {
		return nil //nolint:nilerr // hook must not block on setup problems
	}

	rep := &finding.Report{}

	results, err := rc.verifierFor().Verify(cmd.Context())
	if err == nil {
		rep.Merge(engine.PairFindings(results))
	}

	scanner, err := secrets.NewScanner(rc.Root, rc.Config.Secrets)
	if err == nil {
		staged, scanErr := scanner.ScanStaged(cmd.Context())
		if scanErr == nil {
			rep.Merge(staged)
		}
	}

	return hookVerdict(printer, rc, rep)
}

// runCommitMsgHook lints the commit message git wrote to the file given
// as the hook's first argument.
func runCommitMsgHook(cmd *cobra.Command, args []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), false, output.IsTTY(cmd.OutOrStdout()))

	if len(args) == 0 {
		return nil
	}

	rc, err := loadRepo()
	if err != nil {
		return nil //nolint:nilerr // hook must not block on setup problems
	}

	message, err := os.ReadFile(args[0])
	if err != nil {
		return nil //nolint:nilerr // hook must not block on setup problems
	}

	linter := &commitlint.Linter{Config: rc.Config.Commits}
	rep := &finding.Report{}
	rep.Add(linter.LintMessage("message", string(message))...)
	return hookVerdict(printer, rc, rep)
}

// hookVerdict prints findings and decides whether the git operation
// proceeds.
func hookVerdict(printer *output.Printer, rc *repoContext, rep *finding.Report) error {
	if len(rep.Findings) == 0 {
		return nil
	}

	rep.Sort()
	printer.Println()
	printFindings(printer, rep)

	if !rc.Config.Hooks.Blocking() {
		printer.Print("[shipshape] findings above are advisory (hooks.block: false)\n")
		return nil
	}
	if !rep.Failed(false) {
		// Warnings only never block.
		return nil
	}
	printer.Print("[shipshape] blocking: fix the findings or commit with --no-verify\n")
	return output.NewFindingsError("hook checks failed")
}
