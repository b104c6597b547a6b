package main

import (
	"github.com/spf13/cobra"

	"github.com/harborline/shipshape/internal/output"
)

// checkStatus is the outcome of one doctor probe.
type checkStatus string

const (
	statusPass checkStatus = "pass"
	statusWarn checkStatus = "warn"
	statusFail checkStatus = "fail"
)

// checkResult is one row of doctor output.
type checkResult struct {
	Name   string      `json:"name"`
	Status checkStatus `json:"status"`
	Detail string      `json:"detail,omitempty"`
}

// doctorSection groups related probes.
type doctorSection struct {
	Title   string        `json:"title"`
	Results []checkResult `json:"results"`
}

// newDoctorCmd creates the doctor command.
func newDoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the environment and repository setup",
		Long: `Check that shipshape can do its job here: git and jupytext on PATH,
a valid repository and config file, hooks installed, and the ADR
directory present.

Exits 0 when everything passes (warnings allowed) and 1 on any failure.`,
		Example: `  shipshape doctor
  shipshape doctor --quiet
  shipshape doctor --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, quiet)
		},
	}

	cmd.Flags().BoolVar(&quiet, "quiet", false, "Show only warnings and failures")

	return cmd
}

func runDoctor(cmd *cobra.Command, quiet bool) error {
	printer := newPrinter(cmd)

	sections := []doctorSection{
		environmentSection(cmd),
		repositorySection(),
	}

	failed := false
	for _, section := range sections {
		for _, result := range section.Results {
			if result.Status == statusFail {
				failed = true
			}
		}
	}

	if printer.IsJSON() {
		if err := printer.WriteJSON(map[string]any{
			"sections": sections,
			"healthy":  !failed,
		}); err != nil {
			return err
		}
	} else {
		printDoctor(printer, sections, failed, quiet)
	}

	if failed {
		return output.NewFindingsError("doctor found problems")
	}
	return nil
}

// printDoctor renders the human doctor report. With quiet, passing
// probes are omitted and clean sections collapse to their header.
func printDoctor(printer *output.Printer, sections []doctorSection, failed, quiet bool) {
	styles := printer.Styles()

	for _, section := range sections {
		printer.Section(section.Title)
		for _, result := range section.Results {
			if quiet && result.Status == statusPass {
				continue
			}
			var marker string
			switch result.Status {
			case statusPass:
				marker = styles.Success.Render("✓")
			case statusWarn:
				marker = styles.Warning.Render("!")
			default:
				marker = styles.Error.Render("✗")
			}
			if result.Detail != "" {
				printer.Print("  %s %s: %s\n", marker, result.Name, result.Detail)
			} else {
				printer.Print("  %s %s\n", marker, result.Name)
			}
		}
		printer.Println()
	}

	if failed {
		printer.Print("%s\n", styles.Error.Render("doctor found problems"))
	} else {
		printer.Print("%s everything looks shipshape\n", styles.Success.Render("✓"))
	}
}
