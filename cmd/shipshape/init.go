package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harborline/shipshape/internal/config"
	"github.com/harborline/shipshape/internal/output"
)

// configTemplate is the starter config written by init. It mirrors the
// defaults so a fresh file changes nothing until edited.
const configTemplate = `# shipshape configuration
# See 'shipshape --help' for what each check does.

checks:
  - pairs
  - links
  - adr
  - commits
  - secrets

# strict: true            # treat warnings as failures everywhere

exclude:
  - vendor/
  - node_modules/

pairs:
  formats: [ipynb, md]
  # include:              # limit pair discovery to these prefixes
  #   - notebooks/

links:
  external: false         # probe http(s) URLs when true
  timeout: 10s
  # exclude:
  #   - example.com
  #   - ^https://internal\.

adr:
  dir: docs/adr

commits:
  subject_max: 72
  body_max: 100

secrets:
  # allow_paths:
  #   - testdata/
  # allow_values:
  #   - EXAMPLE_KEY_

hooks:
  block: true             # hooks fail the commit on findings
`

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .shipshape.yaml",
		Long: `Write a commented starter .shipshape.yaml at the repository root.

The generated file matches the built-in defaults, so committing it
unchanged alters nothing; edit it to tune the checks.`,
		Example: `  shipshape init
  shipshape init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func runInit(cmd *cobra.Command, force bool) error {
	printer := newPrinter(cmd)

	rc, err := loadRepo()
	if err != nil {
		printer.Error(err)
		return err
	}

	path := filepath.Join(rc.Root, config.FileName)
	if _, statErr := os.Stat(path); statErr == nil && !force {
		uerr := output.NewUserError(config.FileName + " already exists. Use --force to overwrite")
		printer.Error(uerr)
		return uerr
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0o644); err != nil {
		werr := output.NewSystemErrorWithCause("failed to write config file", err)
		printer.Error(werr)
		return werr
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{"path": config.FileName})
	}
	printer.Print("%s wrote %s\n", printer.Styles().Success.Render("✓"), config.FileName)
	return nil
}
