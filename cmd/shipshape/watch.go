package main

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/harborline/shipshape/internal/output"
)

// debounceWindow batches bursts of filesystem events (editor saves,
// jupytext writes) into a single re-run.
const debounceWindow = 300 * time.Millisecond

// runCheckWatch runs the suite, then re-runs it whenever a file under
// the repository changes. Watch mode never exits with a findings code;
// it runs until interrupted.
func runCheckWatch(cmd *cobra.Command, printer *output.Printer, rc *repoContext, names []string) error {
	if printer.IsJSON() {
		err := output.NewUserError("--watch is interactive and cannot be combined with --json")
		printer.Error(err)
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		werr := output.NewSystemErrorWithCause("failed to start file watcher", err)
		printer.Error(werr)
		return werr
	}
	defer watcher.Close()

	if err := watchTree(watcher, rc.Root, rc.Config.Exclude); err != nil {
		werr := output.NewSystemErrorWithCause("failed to watch repository", err)
		printer.Error(werr)
		return werr
	}

	runOnce := func() {
		rep, err := runSuite(cmd, rc, names)
		if err != nil {
			printer.Error(err)
			return
		}
		printFindings(printer, rep)
	}

	runOnce()
	printer.Print("\nwatching for changes (ctrl-c to stop)\n")

	ctx := cmd.Context()
	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ignoredEvent(rc.Root, rc.Config.Exclude, event) {
				continue
			}
			// New directories need watches of their own.
			if event.Op.Has(fsnotify.Create) {
				_ = watchTree(watcher, event.Name, rc.Config.Exclude)
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case <-pending:
			printer.Println()
			runOnce()
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printer.Warn("watch error: %v", werr)
		}
	}
}

// watchTree adds watches for path and every directory below it,
// skipping .git and excluded prefixes. Non-directory paths are ignored.
func watchTree(watcher *fsnotify.Watcher, path string, exclude []string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(path, p)
		if relErr == nil && skipDir(rel, exclude) {
			return filepath.SkipDir
		}
		_ = watcher.Add(p)
		return nil
	})
}

// skipDir reports whether a root-relative directory should not be
// watched.
func skipDir(rel string, exclude []string) bool {
	if rel == "." {
		return false
	}
	slashed := filepath.ToSlash(rel)
	if slashed == ".git" || strings.HasPrefix(slashed, ".git/") {
		return true
	}
	for _, prefix := range exclude {
		prefix = strings.TrimSuffix(filepath.ToSlash(prefix), "/")
		if slashed == prefix || strings.HasPrefix(slashed, prefix+"/") {
			return true
		}
	}
	return false
}

// ignoredEvent filters events from .git and excluded paths so index
// churn from our own git commands does not retrigger the suite.
func ignoredEvent(root string, exclude []string, event fsnotify.Event) bool {
	rel, err := filepath.Rel(root, event.Name)
	if err != nil {
		return false
	}
	return skipDir(rel, exclude) || skipDir(filepath.Dir(rel), exclude)
}
