package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harborline/shipshape/internal/engine"
	"github.com/harborline/shipshape/internal/finding"
	"github.com/harborline/shipshape/internal/output"
	"github.com/harborline/shipshape/internal/report"
)

// newCheckCmd creates the check command.
func newCheckCmd() *cobra.Command {
	var (
		strict bool
		format string
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "check [checks...]",
		Short: "Run the configured check suite",
		Long: `Run the hygiene check suite over the repository.

With no arguments, runs every check enabled in .shipshape.yaml. Name
checks to run a subset: pairs, links, adr, commits, secrets.

Exits 0 when clean, 1 when any check produced an error finding (or any
finding at all with --strict).`,
		Example: `  shipshape check
  shipshape check links secrets
  shipshape check --strict --format markdown
  shipshape check --watch`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, strict, format, watch)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as failures")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json, or markdown")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-run checks when files change")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, strict bool, format string, watch bool) error {
	printer := newPrinter(cmd)

	if format != "text" && format != "json" && format != "markdown" {
		err := output.NewUserError(fmt.Sprintf("unknown format %q. Use text, json, or markdown", format))
		printer.Error(err)
		return err
	}

	rc, err := loadRepo()
	if err != nil {
		printer.Error(err)
		return err
	}
	strict = strict || rc.Config.Strict

	if watch {
		return runCheckWatch(cmd, printer, rc, args)
	}

	rep, err := runSuite(cmd, rc, args)
	if err != nil {
		printer.Error(err)
		return err
	}

	if format == "markdown" && !printer.IsJSON() {
		printer.Print("%s", report.FormatMarkdown(rep))
		return findingsStatus(rep, strict)
	}
	if format == "json" && !printer.IsJSON() {
		if err := report.WriteJSON(printer, rep); err != nil {
			printer.Error(err)
			return err
		}
		return findingsStatus(rep, strict)
	}
	return renderReport(printer, rep, strict)
}

// runSuite builds and runs the suite, restricted to the named checks
// when any were given.
func runSuite(cmd *cobra.Command, rc *repoContext, names []string) (*finding.Report, error) {
	cfg := *rc.Config
	if len(names) > 0 {
		cfg.Checks = names
	}

	checks, err := engine.BuildSuite(rc.Root, &cfg, rc.Converter)
	if err != nil {
		return nil, err
	}
	runner := &engine.Runner{Checks: checks}
	return runner.Run(cmd.Context())
}
