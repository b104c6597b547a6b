package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harborline/shipshape/internal/config"
	"github.com/harborline/shipshape/internal/git"
	"github.com/harborline/shipshape/internal/pair"
)

// environmentSection probes the tools shipshape shells out to.
func environmentSection(cmd *cobra.Command) doctorSection {
	results := []checkResult{checkGit(), checkJupytext(cmd)}
	return doctorSection{Title: "Environment", Results: results}
}

// checkGit verifies git is on PATH.
func checkGit() checkResult {
	if _, err := exec.LookPath("git"); err != nil {
		return checkResult{
			Name:   "git",
			Status: statusFail,
			Detail: "not found on PATH",
		}
	}
	version, err := git.Run("version")
	if err != nil {
		return checkResult{Name: "git", Status: statusFail, Detail: err.Error()}
	}
	return checkResult{
		Name:   "git",
		Status: statusPass,
		Detail: strings.TrimPrefix(version, "git version "),
	}
}

// checkJupytext reports jupytext availability. Missing jupytext is a
// warning, not a failure: everything except pair sync and the content
// drift comparison works without it.
func checkJupytext(cmd *cobra.Command) checkResult {
	jupytext := pair.NewJupytext()
	if !jupytext.Available() {
		return checkResult{
			Name:   "jupytext",
			Status: statusWarn,
			Detail: "not found; pair sync and drift detection disabled",
		}
	}
	version, err := jupytext.Version(cmd.Context())
	if err != nil {
		return checkResult{Name: "jupytext", Status: statusWarn, Detail: err.Error()}
	}
	return checkResult{Name: "jupytext", Status: statusPass, Detail: version}
}

// repositorySection probes the current repository's setup.
func repositorySection() doctorSection {
	section := doctorSection{Title: "Repository"}

	if !git.IsRepo() {
		section.Results = append(section.Results, checkResult{
			Name:   "git repository",
			Status: statusFail,
			Detail: "not inside a git worktree",
		})
		return section
	}

	root, err := git.RepoRoot()
	if err != nil {
		section.Results = append(section.Results, checkResult{
			Name:   "git repository",
			Status: statusFail,
			Detail: err.Error(),
		})
		return section
	}
	section.Results = append(section.Results, checkResult{
		Name:   "git repository",
		Status: statusPass,
		Detail: root,
	})

	section.Results = append(section.Results,
		checkCommits(),
		checkConfig(root),
		checkHooks(root),
	)
	if cfg, cfgErr := config.Load(root); cfgErr == nil {
		section.Results = append(section.Results, checkADRDir(root, cfg))
	}
	return section
}

// checkCommits warns on an unborn branch; range-based checks need history.
func checkCommits() checkResult {
	if !git.HasCommits() {
		return checkResult{
			Name:   "history",
			Status: statusWarn,
			Detail: "no commits yet; commit linting has nothing to check",
		}
	}
	return checkResult{Name: "history", Status: statusPass}
}

// checkConfig verifies the config file parses.
func checkConfig(root string) checkResult {
	path := filepath.Join(root, config.FileName)
	if _, err := os.Stat(path); err != nil {
		return checkResult{
			Name:   "config",
			Status: statusWarn,
			Detail: config.FileName + " not found; using defaults (run 'shipshape init')",
		}
	}
	if _, err := config.Load(root); err != nil {
		return checkResult{Name: "config", Status: statusFail, Detail: err.Error()}
	}
	return checkResult{Name: "config", Status: statusPass, Detail: config.FileName}
}

// checkHooks reports which shipshape hooks are installed.
func checkHooks(root string) checkResult {
	var installed []string
	for _, name := range hookNames {
		if hookInstalled(root, name) {
			installed = append(installed, name)
		}
	}
	switch len(installed) {
	case 0:
		return checkResult{
			Name:   "hooks",
			Status: statusWarn,
			Detail: "not installed (run 'shipshape hooks install')",
		}
	case len(hookNames):
		return checkResult{
			Name:   "hooks",
			Status: statusPass,
			Detail: strings.Join(installed, ", "),
		}
	default:
		return checkResult{
			Name:   "hooks",
			Status: statusWarn,
			Detail: fmt.Sprintf("partial: %s", strings.Join(installed, ", ")),
		}
	}
}

// checkADRDir verifies the configured ADR directory exists when the adr
// check is enabled.
func checkADRDir(root string, cfg *config.Config) checkResult {
	enabled := false
	for _, name := range cfg.Checks {
		if name == "adr" {
			enabled = true
		}
	}
	if !enabled {
		return checkResult{Name: "adr directory", Status: statusPass, Detail: "check disabled"}
	}

	dir := filepath.Join(root, cfg.ADR.Dir)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return checkResult{
			Name:   "adr directory",
			Status: statusWarn,
			Detail: cfg.ADR.Dir + " does not exist",
		}
	}
	return checkResult{Name: "adr directory", Status: statusPass, Detail: cfg.ADR.Dir}
}
