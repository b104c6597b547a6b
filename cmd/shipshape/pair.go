package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harborline/shipshape/internal/engine"
	"github.com/harborline/shipshape/internal/output"
	"github.com/harborline/shipshape/internal/pair"
)

// newPairCmd creates the pair command group.
func newPairCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pair",
		Short: "Verify and repair jupytext notebook pairs",
		Long: `Notebook pairs are a .ipynb file and its jupytext text counterpart
(.md, .py, ...). When one side is staged and the other is missing,
stale, or unstaged, a commit would record the pair out of sync.

  pair verify   report pairs whose staged state is inconsistent
  pair sync     repair inconsistent pairs and restage both sides
  pair status   show the full index and worktree state of every pair`,
	}

	cmd.AddCommand(newPairVerifyCmd())
	cmd.AddCommand(newPairSyncCmd())
	cmd.AddCommand(newPairStatusCmd())

	return cmd
}

// newPairVerifyCmd creates the pair verify command.
func newPairVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [paths...]",
		Short: "Report pairs staged inconsistently",
		Long: `Verify that every notebook pair is staged consistently.

With paths, only pairs touching those files or directories are checked.
Exits 0 when every pair is clean and 1 when any pair would commit out
of sync. This is the check the pre-commit hook runs.`,
		Example: `  shipshape pair verify
  shipshape pair verify notebooks/
  shipshape pair verify --json`,
		Args: cobra.ArbitraryArgs,
		RunE: runPairVerify,
	}
}

func runPairVerify(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)

	rc, err := loadRepo()
	if err != nil {
		printer.Error(err)
		return err
	}

	results, err := rc.verifierFor().Verify(cmd.Context())
	if err != nil {
		printer.Error(err)
		return err
	}
	results = filterPairResults(results, args)

	rep := engine.PairFindings(results)
	return renderReport(printer, rep, false)
}

// filterPairResults keeps results whose pair touches one of the given
// paths. Paths are root-relative files or directory prefixes; an empty
// list keeps everything.
func filterPairResults(results []pair.Result, paths []string) []pair.Result {
	if len(paths) == 0 {
		return results
	}

	matches := func(side string) bool {
		for _, raw := range paths {
			p := strings.TrimSuffix(filepath.ToSlash(raw), "/")
			if side == p || strings.HasPrefix(side, p+"/") {
				return true
			}
		}
		return false
	}

	kept := results[:0]
	for _, result := range results {
		if matches(result.Pair.Notebook) || matches(result.Pair.Text) {
			kept = append(kept, result)
		}
	}
	return kept
}

// newPairSyncCmd creates the pair sync command.
func newPairSyncCmd() *cobra.Command {
	var noVerify bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Repair inconsistent pairs and restage them",
		Long: `Repair every inconsistent notebook pair.

Inconsistent pairs are regenerated with jupytext --sync, then both
sides are restaged and the pair is re-verified (skip the second pass
with --no-verify). Requires jupytext on PATH (or SHIPSHAPE_JUPYTEXT).`,
		Example: `  shipshape pair sync
  shipshape pair sync --no-verify
  shipshape pair sync --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPairSync(cmd, noVerify)
		},
	}

	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip re-verification after repair")

	return cmd
}

func runPairSync(cmd *cobra.Command, noVerify bool) error {
	printer := newPrinter(cmd)

	rc, err := loadRepo()
	if err != nil {
		printer.Error(err)
		return err
	}

	syncer := &pair.Syncer{Verifier: rc.verifierFor(), NoVerify: noVerify}
	outcomes, err := syncer.Sync(cmd.Context())
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		if outcomes == nil {
			outcomes = []pair.SyncOutcome{}
		}
		return printer.WriteJSON(map[string]any{"outcomes": outcomes})
	}

	styles := printer.Styles()
	repaired, unresolved := 0, 0
	for _, outcome := range outcomes {
		switch {
		case !outcome.Before.Violation():
			continue
		case noVerify:
			repaired++
			printer.Print("  %s %s: %s repaired (not re-verified)\n",
				styles.Success.Render("✓"), outcome.Pair.Stem(), outcome.Before)
		case outcome.After.Violation():
			unresolved++
			printer.Print("  %s %s: still %s\n",
				styles.Error.Render("✗"), outcome.Pair.Stem(), outcome.After)
		default:
			repaired++
			printer.Print("  %s %s: %s repaired\n",
				styles.Success.Render("✓"), outcome.Pair.Stem(), outcome.Before)
		}
	}

	switch {
	case repaired == 0 && unresolved == 0:
		printer.Print("%s all pairs already in sync\n", styles.Success.Render("✓"))
	case unresolved == 0:
		printer.Print("%s repaired %d pair(s)\n", styles.Success.Render("✓"), repaired)
	default:
		printer.Print("%d pair(s) could not be repaired\n", unresolved)
		return output.NewFindingsError("pairs remain out of sync after repair")
	}
	return nil
}

// newPairStatusCmd creates the pair status command.
func newPairStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show index and worktree state of every pair",
		Long: `Show the full state of every discovered notebook pair: whether each
side exists, is tracked, is staged, and has unstaged edits, along with
the resulting verdict. Informational; always exits 0.`,
		Example: `  shipshape pair status
  shipshape pair status --json`,
		Args: cobra.NoArgs,
		RunE: runPairStatus,
	}
}

func runPairStatus(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	rc, err := loadRepo()
	if err != nil {
		printer.Error(err)
		return err
	}

	results, err := rc.verifierFor().Verify(cmd.Context())
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		if results == nil {
			results = []pair.Result{}
		}
		return printer.WriteJSON(map[string]any{"pairs": results})
	}

	if len(results) == 0 {
		printer.Println("no notebook pairs found")
		return nil
	}

	rows := make([][]string, 0, len(results))
	for _, result := range results {
		rows = append(rows, []string{
			result.Pair.Stem(),
			describeState(result.Notebook),
			describeState(result.Text),
			string(result.Verdict),
		})
	}
	printer.Table([]string{"PAIR", "NOTEBOOK", "TEXT", "VERDICT"}, rows)
	return nil
}

// describeState renders one side's state as a compact word list.
func describeState(state pair.FileState) string {
	switch {
	case !state.Exists && state.Staged && state.Deleted:
		return "staged-delete"
	case !state.Exists:
		return "missing"
	case !state.Tracked:
		return "untracked"
	case state.Staged && state.Dirty:
		return "staged+dirty"
	case state.Staged:
		return "staged"
	case state.Dirty:
		return "dirty"
	default:
		return "tracked"
	}
}
