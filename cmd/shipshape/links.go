package main

import (
	"github.com/spf13/cobra"

	"github.com/harborline/shipshape/internal/engine"
	"github.com/harborline/shipshape/internal/links"
)

// newLinksCmd creates the links command.
func newLinksCmd() *cobra.Command {
	var (
		external bool
		strict   bool
	)

	cmd := &cobra.Command{
		Use:   "links [files...]",
		Short: "Check markdown links",
		Long: `Check links in markdown files.

Relative links must resolve to a file inside the repository, anchor
fragments must match a heading slug in the target document, and with
--external (or links.external in config) http(s) URLs are probed.`,
		Example: `  shipshape links
  shipshape links docs/README.md
  shipshape links --external`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLinks(cmd, args, external, strict)
		},
	}

	cmd.Flags().BoolVar(&external, "external", false, "Probe external URLs over HTTP")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as failures")

	return cmd
}

func runLinks(cmd *cobra.Command, args []string, external, strict bool) error {
	printer := newPrinter(cmd)

	rc, err := loadRepo()
	if err != nil {
		printer.Error(err)
		return err
	}

	cfg := rc.Config.Links
	cfg.External = cfg.External || external

	checker := &links.Checker{Root: rc.Root, Config: cfg}
	if cfg.External {
		checker.Prober = links.NewProber(cfg.ExternalTimeout(), cfg.Concurrency)
	}

	files := args
	if len(files) == 0 {
		files, err = engine.MarkdownFiles(rc.Root, rc.Config.Exclude)
		if err != nil {
			printer.Error(err)
			return err
		}
	}

	rep, err := checker.Check(cmd.Context(), files)
	if err != nil {
		printer.Error(err)
		return err
	}
	return renderReport(printer, rep, strict || rc.Config.Strict)
}
