package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harborline/shipshape/internal/output"
)

// newHooksInstallCmd creates the hooks install subcommand.
func newHooksInstallCmd() *cobra.Command {
	var chain bool
	var force bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install shipshape git hooks",
		Long: `Install the pre-commit and commit-msg hooks to .git/hooks/.

Existing hooks are not touched by default. Use --chain to back them up
and run them after shipshape; use --force to overwrite them without a
backup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooksInstall(cmd, chain, force, dryRun)
		},
	}

	cmd.Flags().BoolVar(&chain, "chain", false, "Preserve existing hooks, run them after shipshape")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing hooks without backup")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without doing it")

	return cmd
}

// runHooksInstall executes the hooks install command.
func runHooksInstall(cmd *cobra.Command, chain, force, dryRun bool) error {
	printer := newPrinter(cmd)

	root, err := requireRepoRoot()
	if err != nil {
		printer.Error(err)
		return err
	}

	if dryRun {
		return handleInstallDryRun(printer, root, chain, force)
	}

	installed := make([]map[string]any, 0, len(hookNames))
	for _, name := range hookNames {
		chained, err := installHook(root, name, chain, force)
		if err != nil {
			printer.Error(err)
			return err
		}
		installed = append(installed, map[string]any{"hook": name, "chained": chained})
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{"status": "ok", "hooks": installed})
	}
	for _, entry := range installed {
		suffix := ""
		if entry["chained"] == true {
			suffix = " (existing hook backed up and chained)"
		}
		printer.Print("%s installed %s hook%s\n",
			printer.Styles().Success.Render("✓"), entry["hook"], suffix)
	}
	return nil
}

// installHook writes one hook, handling existing files. Returns whether
// the new hook chains to a backup.
func installHook(root, name string, chain, force bool) (bool, error) {
	path := hookPath(root, name)
	existing := fileExists(path)

	// Reinstalling over our own hook is always fine.
	if existing && checkHookStatus(path).Installed {
		existing = false
	}

	if existing && !force {
		if !chain {
			return false, output.NewUserError(fmt.Sprintf(
				"%s hook already exists; use --chain to preserve or --force to overwrite", name))
		}
		if err := os.Rename(path, path+".backup"); err != nil {
			return false, output.NewSystemErrorWithCause("failed to backup existing hook", err)
		}
	}

	chained := chain && existing
	content := hookScript(name, chained)
	// #nosec G306 -- hook needs execute permission
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		return false, output.NewSystemErrorWithCause("failed to write hook", err)
	}
	return chained, nil
}

// hookScript generates the shell script for a named hook. The exit code
// of `hook run` propagates so blocking hooks abort the git operation
// before any chained original runs.
func hookScript(name string, withChain bool) string {
	script := fmt.Sprintf(`#!/bin/sh
# shipshape %[1]s hook

if command -v shipshape >/dev/null 2>&1; then
  shipshape hook run %[1]s "$@" || exit $?
fi
`, name)

	if withChain {
		script += fmt.Sprintf(`
# Chain to original hook if it exists
if [ -x ".git/hooks/%[1]s.backup" ]; then
  exec .git/hooks/%[1]s.backup "$@"
fi
`, name)
	}

	return script
}

// handleInstallDryRun handles dry-run output for install.
func handleInstallDryRun(printer *output.Printer, root string, chain, force bool) error {
	if printer.IsJSON() {
		hooks := make([]map[string]any, 0, len(hookNames))
		for _, name := range hookNames {
			exists := fileExists(hookPath(root, name)) && !checkHookStatus(hookPath(root, name)).Installed
			hooks = append(hooks, map[string]any{
				"hook":            name,
				"exists":          exists,
				"would_chain":     chain && exists,
				"would_overwrite": force && exists,
			})
		}
		return printer.Success(map[string]any{"status": "dry_run", "hooks": hooks})
	}

	printer.Section("Dry Run")
	for _, name := range hookNames {
		path := hookPath(root, name)
		exists := fileExists(path) && !checkHookStatus(path).Installed
		printer.KeyValue(name, describeInstallAction(exists, chain, force))
	}
	return nil
}

// describeInstallAction returns a description of what install would do.
func describeInstallAction(existingHook, chain, force bool) string {
	if !existingHook {
		return "would install"
	}
	switch {
	case force:
		return "would overwrite existing hook"
	case chain:
		return "would backup and chain existing hook"
	default:
		return "would fail (hook exists, use --chain or --force)"
	}
}

// newHooksUninstallCmd creates the hooks uninstall subcommand.
func newHooksUninstallCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove shipshape git hooks",
		Long:  `Remove the shipshape git hooks and restore any backups.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooksUninstall(cmd, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without doing it")

	return cmd
}

// runHooksUninstall executes the hooks uninstall command.
func runHooksUninstall(cmd *cobra.Command, dryRun bool) error {
	printer := newPrinter(cmd)

	root, err := requireRepoRoot()
	if err != nil {
		printer.Error(err)
		return err
	}

	removed := make([]map[string]any, 0, len(hookNames))
	for _, name := range hookNames {
		path := hookPath(root, name)
		status := checkHookStatus(path)
		hasBackup := fileExists(path + ".backup")

		action := describeUninstallAction(status.Installed, hasBackup)
		entry := map[string]any{"hook": name, "action": action}
		removed = append(removed, entry)

		if dryRun || !status.Installed {
			continue
		}
		if err := os.Remove(path); err != nil {
			sysErr := output.NewSystemErrorWithCause("failed to remove hook", err)
			printer.Error(sysErr)
			return sysErr
		}
		entry["action"] = "removed"
		if hasBackup {
			if err := os.Rename(path+".backup", path); err != nil {
				sysErr := output.NewSystemErrorWithCause("failed to restore hook backup", err)
				printer.Error(sysErr)
				return sysErr
			}
			entry["action"] = "removed, backup restored"
		}
	}

	if printer.IsJSON() {
		status := "ok"
		if dryRun {
			status = "dry_run"
		}
		return printer.Success(map[string]any{"status": status, "hooks": removed})
	}

	for _, entry := range removed {
		printer.KeyValue(entry["hook"].(string), entry["action"].(string))
	}
	return nil
}

// describeUninstallAction returns a description of what uninstall would do.
func describeUninstallAction(installed, hasBackup bool) string {
	switch {
	case !installed:
		return "no shipshape hook installed"
	case hasBackup:
		return "would remove and restore backup"
	default:
		return "would remove"
	}
}

// fileExists reports whether a file exists at path.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
