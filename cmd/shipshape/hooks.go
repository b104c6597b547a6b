package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harborline/shipshape/internal/git"
	"github.com/harborline/shipshape/internal/output"
)

// hookNames are the git hooks shipshape manages.
var hookNames = []string{"pre-commit", "commit-msg"}

// hookMarker identifies a hook file as ours.
const hookMarker = "shipshape hook run"

// hookStatus represents the status of a single hook.
type hookStatus struct {
	Installed bool `json:"installed"`
	Chained   bool `json:"chained"`
}

// hookPath returns the path of a named hook in the repo at root.
func hookPath(root, name string) string {
	return filepath.Join(root, ".git", "hooks", name)
}

// hookInstalled reports whether the named hook is a shipshape hook.
func hookInstalled(root, name string) bool {
	return checkHookStatus(hookPath(root, name)).Installed
}

// checkHookStatus checks whether a hook is ours and whether it chains
// to a backed-up original.
func checkHookStatus(path string) hookStatus {
	content, err := os.ReadFile(path)
	if err != nil {
		return hookStatus{}
	}
	text := string(content)
	if !strings.Contains(text, hookMarker) {
		return hookStatus{}
	}
	return hookStatus{
		Installed: true,
		Chained:   strings.Contains(text, ".backup"),
	}
}

// newHooksCmd creates the hooks parent command with subcommands.
func newHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage shipshape git hooks",
		Long: `Manage the git hooks that run shipshape automatically.

The pre-commit hook verifies notebook pairs and scans staged content
for secrets; the commit-msg hook lints the commit message. Findings
block the git operation unless hooks.block is false in config.

Subcommands:
  install    Install the hooks to .git/hooks/
  uninstall  Remove the hooks and restore backups
  list       Show status of each hook`,
		Example: `  shipshape hooks list
  shipshape hooks install
  shipshape hooks install --chain
  shipshape hooks uninstall`,
	}

	cmd.AddCommand(newHooksListCmd())
	cmd.AddCommand(newHooksInstallCmd())
	cmd.AddCommand(newHooksUninstallCmd())
	return cmd
}

// newHooksListCmd creates the hooks list subcommand.
func newHooksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show status of git hooks",
		Long:  `Show the installation status of each shipshape hook.`,
		Args:  cobra.NoArgs,
		RunE:  runHooksList,
	}
}

// runHooksList executes the hooks list command.
func runHooksList(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	root, err := requireRepoRoot()
	if err != nil {
		printer.Error(err)
		return err
	}

	statuses := make(map[string]hookStatus, len(hookNames))
	for _, name := range hookNames {
		statuses[name] = checkHookStatus(hookPath(root, name))
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"hooks": statuses})
	}

	printer.Section("Git Hooks")
	for _, name := range hookNames {
		status := statuses[name]
		text := "not installed"
		if status.Installed {
			text = "installed"
			if status.Chained {
				text += " (chained)"
			}
		}
		printer.KeyValue(name, text)
	}
	return nil
}

// requireRepoRoot resolves the repo root without loading config.
func requireRepoRoot() (string, error) {
	if !git.IsRepo() {
		return "", output.NewUserError("not a git repository. Run shipshape inside a git worktree")
	}
	return git.RepoRoot()
}
