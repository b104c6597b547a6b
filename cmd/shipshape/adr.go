package main

import (
	"github.com/spf13/cobra"

	"github.com/harborline/shipshape/internal/adr"
)

// newADRCmd creates the adr command.
func newADRCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "adr [dir]",
		Short: "Validate architecture decision records",
		Long: `Validate the ADR directory (docs/adr by default).

Each record must be named NNNN-kebab-title.md, carry YAML frontmatter
with a title, status, and date, use a known status, and contain the
Context, Decision, and Consequences sections. Superseded records must
reference an existing successor, and numbers must be unique.`,
		Example: `  shipshape adr
  shipshape adr doc/decisions
  shipshape adr --strict`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) > 0 {
				dir = args[0]
			}
			return runADR(cmd, dir, strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as failures")

	return cmd
}

func runADR(cmd *cobra.Command, dir string, strict bool) error {
	printer := newPrinter(cmd)

	rc, err := loadRepo()
	if err != nil {
		printer.Error(err)
		return err
	}

	cfg := rc.Config.ADR
	if dir != "" {
		cfg.Dir = dir
	}

	checker := &adr.Checker{Root: rc.Root, Config: cfg}
	rep, err := checker.Check()
	if err != nil {
		printer.Error(err)
		return err
	}
	return renderReport(printer, rep, strict || rc.Config.Strict)
}
