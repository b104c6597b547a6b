package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/harborline/shipshape/internal/commitlint"
	"github.com/harborline/shipshape/internal/finding"
	"github.com/harborline/shipshape/internal/output"
)

// newCommitsCmd creates the commits command.
func newCommitsCmd() *cobra.Command {
	var (
		rangeSpec   string
		messageFile string
		strict      bool
	)

	cmd := &cobra.Command{
		Use:   "commits [range]",
		Short: "Lint commit messages",
		Long: `Lint commit messages against the conventional format:

  type(scope): description

Without --range, lints upstream..HEAD when an upstream is configured,
otherwise the most recent commits. With --message-file, lints a single
message from a file instead of history; this is what the commit-msg
hook uses ("-" reads stdin).`,
		Example: `  shipshape commits
  shipshape commits main..HEAD
  shipshape commits --message-file .git/COMMIT_EDITMSG`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				if rangeSpec != "" {
					return output.NewUserError("pass the range as an argument or with --range, not both")
				}
				rangeSpec = args[0]
			}
			return runCommits(cmd, rangeSpec, messageFile, strict)
		},
	}

	cmd.Flags().StringVar(&rangeSpec, "range", "", "Git revision range to lint (e.g. main..HEAD)")
	cmd.Flags().StringVar(&messageFile, "message-file", "", "Lint a single message read from this file (- for stdin)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as failures")

	return cmd
}

func runCommits(cmd *cobra.Command, rangeSpec, messageFile string, strict bool) error {
	printer := newPrinter(cmd)

	rc, err := loadRepo()
	if err != nil {
		printer.Error(err)
		return err
	}

	linter := &commitlint.Linter{Config: rc.Config.Commits}

	if messageFile != "" {
		message, err := readMessage(cmd, messageFile)
		if err != nil {
			printer.Error(err)
			return err
		}
		rep := &finding.Report{}
		rep.Add(linter.LintMessage("message", message)...)
		rep.Sort()
		return renderReport(printer, rep, strict || rc.Config.Strict)
	}

	rep, err := linter.LintRange(rangeSpec)
	if err != nil {
		printer.Error(err)
		return err
	}
	return renderReport(printer, rep, strict || rc.Config.Strict)
}

// readMessage reads the commit message from a file or stdin.
func readMessage(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", output.NewSystemErrorWithCause("failed to read message from stdin", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", output.NewUserError("cannot read message file: " + path)
	}
	return string(data), nil
}
