package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harborline/shipshape/internal/output"
)

func TestCheckLinksSubset(t *testing.T) {
	t.Run("clean repository", func(t *testing.T) {
		repo := initGitRepo(t)
		writeRepoFile(t, repo, "README.md", "# Project\n\nSee [the guide](docs/guide.md).\n")
		writeRepoFile(t, repo, "docs/guide.md", "# Guide\n")

		runInDir(t, repo, func() {
			out, err := execRoot(t, "check", "links")
			if err != nil {
				t.Fatalf("command failed: %v\n%s", err, out)
			}
			if !strings.Contains(out, "all checks passed") {
				t.Errorf("output = %q", out)
			}
		})
	})

	t.Run("broken link fails", func(t *testing.T) {
		repo := initGitRepo(t)
		writeRepoFile(t, repo, "README.md", "See [missing](docs/nope.md).\n")

		runInDir(t, repo, func() {
			out, err := execRoot(t, "check", "links", "--json")
			if err == nil {
				t.Fatalf("expected findings for the broken link\n%s", out)
			}
			if output.GetExitCode(err) != output.ExitFindings {
				t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitFindings)
			}

			var result map[string]any
			if jsonErr := json.Unmarshal([]byte(out), &result); jsonErr != nil {
				t.Fatalf("invalid JSON: %v\n%s", jsonErr, out)
			}
			if result["errors"] == float64(0) {
				t.Errorf("report should carry errors:\n%s", out)
			}
		})
	})

	t.Run("markdown format", func(t *testing.T) {
		repo := initGitRepo(t)
		writeRepoFile(t, repo, "README.md", "See [missing](docs/nope.md).\n")

		runInDir(t, repo, func() {
			out, err := execRoot(t, "check", "links", "--format", "markdown")
			if err == nil {
				t.Fatal("expected findings exit status")
			}
			if !strings.Contains(out, "# shipshape report") || !strings.Contains(out, "## links") {
				t.Errorf("markdown output malformed:\n%s", out)
			}
		})
	})
}

func TestCheckBadArguments(t *testing.T) {
	repo := initGitRepo(t)

	t.Run("unknown format", func(t *testing.T) {
		runInDir(t, repo, func() {
			_, err := execRoot(t, "check", "--format", "xml")
			if err == nil {
				t.Fatal("expected error for unknown format")
			}
			if output.GetExitCode(err) != output.ExitUserError {
				t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
			}
		})
	})

	t.Run("unknown check name", func(t *testing.T) {
		runInDir(t, repo, func() {
			_, err := execRoot(t, "check", "linting")
			if err == nil {
				t.Fatal("expected error for unknown check")
			}
			if output.GetExitCode(err) != output.ExitUserError {
				t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
			}
		})
	})
}

// writeRepoFile writes a file under the repo root, creating parents.
func writeRepoFile(t *testing.T, repo, rel, content string) {
	t.Helper()
	path := filepath.Join(repo, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
