package main

import (
	"github.com/spf13/cobra"

	"github.com/harborline/shipshape/internal/engine"
	"github.com/harborline/shipshape/internal/finding"
	"github.com/harborline/shipshape/internal/secrets"
)

// newSecretsCmd creates the secrets command.
func newSecretsCmd() *cobra.Command {
	var (
		staged bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "secrets [files...]",
		Short: "Scan for credential material",
		Long: `Scan file contents for credential material: cloud access keys, API
tokens, private key blocks, and high-entropy assignments.

By default scans the worktree. With --staged, scans the contents of
the git index instead; the pre-commit hook runs in that mode so a
secret never reaches a commit. Matched values are redacted in output.

False positives can be suppressed with a trailing "shipshape:allow"
comment on the line, or via secrets.allow_paths / allow_values in
config.`,
		Example: `  shipshape secrets
  shipshape secrets --staged
  shipshape secrets config/settings.py`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSecrets(cmd, args, staged, strict)
		},
	}

	cmd.Flags().BoolVar(&staged, "staged", false, "Scan staged (index) contents instead of the worktree")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as failures")

	return cmd
}

func runSecrets(cmd *cobra.Command, args []string, staged, strict bool) error {
	printer := newPrinter(cmd)

	rc, err := loadRepo()
	if err != nil {
		printer.Error(err)
		return err
	}

	scanner, err := secrets.NewScanner(rc.Root, rc.Config.Secrets)
	if err != nil {
		printer.Error(err)
		return err
	}

	var rep *finding.Report
	switch {
	case staged:
		rep, err = scanner.ScanStaged(cmd.Context())
	case len(args) > 0:
		rep, err = scanner.ScanFiles(args)
	default:
		var files []string
		files, err = engine.TextFiles(rc.Root, rc.Config.Exclude)
		if err == nil {
			rep, err = scanner.ScanFiles(files)
		}
	}
	if err != nil {
		printer.Error(err)
		return err
	}
	return renderReport(printer, rep, strict || rc.Config.Strict)
}
