package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harborline/shipshape/internal/output"
)

func TestHooksList(t *testing.T) {
	repo := initGitRepo(t)

	t.Run("nothing installed JSON", func(t *testing.T) {
		runInDir(t, repo, func() {
			out, err := execRoot(t, "hooks", "list", "--json")
			if err != nil {
				t.Fatalf("command failed: %v\n%s", err, out)
			}

			var result struct {
				Hooks map[string]hookStatus `json:"hooks"`
			}
			if err := json.Unmarshal([]byte(out), &result); err != nil {
				t.Fatalf("invalid JSON: %v\n%s", err, out)
			}
			for _, name := range hookNames {
				status, ok := result.Hooks[name]
				if !ok {
					t.Errorf("missing %s in output", name)
					continue
				}
				if status.Installed || status.Chained {
					t.Errorf("%s = %+v, want not installed", name, status)
				}
			}
		})
	})

	t.Run("nothing installed human", func(t *testing.T) {
		runInDir(t, repo, func() {
			out, err := execRoot(t, "hooks", "list")
			if err != nil {
				t.Fatalf("command failed: %v\n%s", err, out)
			}
			for _, want := range []string{"Git Hooks", "pre-commit", "commit-msg", "not installed"} {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	})
}

func TestHooksInstall(t *testing.T) {
	t.Run("fresh install", func(t *testing.T) {
		repo := initGitRepo(t)
		runInDir(t, repo, func() {
			out, err := execRoot(t, "hooks", "install", "--json")
			if err != nil {
				t.Fatalf("command failed: %v\n%s", err, out)
			}

			var result map[string]any
			if err := json.Unmarshal([]byte(out), &result); err != nil {
				t.Fatalf("invalid JSON: %v\n%s", err, out)
			}
			if result["status"] != "ok" {
				t.Errorf("status = %v, want ok", result["status"])
			}
		})

		for _, name := range hookNames {
			path := hookPath(repo, name)
			content, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("hook %s not created: %v", name, err)
			}
			if !strings.Contains(string(content), "shipshape hook run "+name) {
				t.Errorf("%s hook missing run command:\n%s", name, content)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if info.Mode()&0o100 == 0 {
				t.Errorf("%s hook is not executable: %v", name, info.Mode())
			}
		}
	})

	t.Run("reinstall over our own hook succeeds", func(t *testing.T) {
		repo := initGitRepo(t)
		runInDir(t, repo, func() {
			if out, err := execRoot(t, "hooks", "install"); err != nil {
				t.Fatalf("first install failed: %v\n%s", err, out)
			}
			if out, err := execRoot(t, "hooks", "install"); err != nil {
				t.Fatalf("reinstall should be idempotent: %v\n%s", err, out)
			}
		})
	})

	t.Run("existing foreign hook is a conflict", func(t *testing.T) {
		repo := initGitRepo(t)
		writeForeignHook(t, repo, "pre-commit")

		runInDir(t, repo, func() {
			out, err := execRoot(t, "hooks", "install", "--json")
			if err == nil {
				t.Fatalf("expected error for existing hook\n%s", out)
			}
			if output.GetExitCode(err) != output.ExitUserError {
				t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
			}
		})
	})

	t.Run("dry-run touches nothing", func(t *testing.T) {
		repo := initGitRepo(t)
		runInDir(t, repo, func() {
			out, err := execRoot(t, "hooks", "install", "--dry-run", "--json")
			if err != nil {
				t.Fatalf("command failed: %v\n%s", err, out)
			}
			var result map[string]any
			if err := json.Unmarshal([]byte(out), &result); err != nil {
				t.Fatalf("invalid JSON: %v\n%s", err, out)
			}
			if result["status"] != "dry_run" {
				t.Errorf("status = %v, want dry_run", result["status"])
			}
		})
		if fileExists(hookPath(repo, "pre-commit")) {
			t.Error("dry-run must not create hook files")
		}
	})
}

func TestHooksInstallChain(t *testing.T) {
	repo := initGitRepo(t)
	original := writeForeignHook(t, repo, "pre-commit")

	runInDir(t, repo, func() {
		if out, err := execRoot(t, "hooks", "install", "--chain"); err != nil {
			t.Fatalf("command failed: %v\n%s", err, out)
		}
	})

	backup, err := os.ReadFile(hookPath(repo, "pre-commit") + ".backup")
	if err != nil {
		t.Fatalf("backup not created: %v", err)
	}
	if string(backup) != original {
		t.Errorf("backup content = %q, want the original hook", backup)
	}

	content, err := os.ReadFile(hookPath(repo, "pre-commit"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "pre-commit.backup") {
		t.Errorf("installed hook does not chain to the backup:\n%s", content)
	}

	// commit-msg had no existing hook, so it must not chain.
	msgHook, err := os.ReadFile(hookPath(repo, "commit-msg"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(msgHook), ".backup") {
		t.Errorf("commit-msg hook should not chain without an original:\n%s", msgHook)
	}
}

func TestHooksInstallForce(t *testing.T) {
	repo := initGitRepo(t)
	writeForeignHook(t, repo, "pre-commit")

	runInDir(t, repo, func() {
		if out, err := execRoot(t, "hooks", "install", "--force"); err != nil {
			t.Fatalf("command failed: %v\n%s", err, out)
		}
	})

	if fileExists(hookPath(repo, "pre-commit") + ".backup") {
		t.Error("--force should not create a backup")
	}
	content, err := os.ReadFile(hookPath(repo, "pre-commit"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), hookMarker) {
		t.Errorf("hook was not overwritten:\n%s", content)
	}
}

func TestHooksUninstall(t *testing.T) {
	t.Run("removes installed hooks", func(t *testing.T) {
		repo := initGitRepo(t)
		runInDir(t, repo, func() {
			if out, err := execRoot(t, "hooks", "install"); err != nil {
				t.Fatalf("install failed: %v\n%s", err, out)
			}
			out, err := execRoot(t, "hooks", "uninstall", "--json")
			if err != nil {
				t.Fatalf("uninstall failed: %v\n%s", err, out)
			}
			var result map[string]any
			if err := json.Unmarshal([]byte(out), &result); err != nil {
				t.Fatalf("invalid JSON: %v\n%s", err, out)
			}
			if result["status"] != "ok" {
				t.Errorf("status = %v, want ok", result["status"])
			}
		})
		for _, name := range hookNames {
			if fileExists(hookPath(repo, name)) {
				t.Errorf("%s hook was not removed", name)
			}
		}
	})

	t.Run("restores chained backup", func(t *testing.T) {
		repo := initGitRepo(t)
		original := writeForeignHook(t, repo, "pre-commit")

		runInDir(t, repo, func() {
			if out, err := execRoot(t, "hooks", "install", "--chain"); err != nil {
				t.Fatalf("install failed: %v\n%s", err, out)
			}
			if out, err := execRoot(t, "hooks", "uninstall"); err != nil {
				t.Fatalf("uninstall failed: %v\n%s", err, out)
			}
		})

		content, err := os.ReadFile(hookPath(repo, "pre-commit"))
		if err != nil {
			t.Fatalf("original hook not restored: %v", err)
		}
		if string(content) != original {
			t.Errorf("restored hook = %q, want the original", content)
		}
		if fileExists(hookPath(repo, "pre-commit") + ".backup") {
			t.Error("backup file should be gone after restore")
		}
	})

	t.Run("leaves foreign hooks alone", func(t *testing.T) {
		repo := initGitRepo(t)
		original := writeForeignHook(t, repo, "pre-commit")

		runInDir(t, repo, func() {
			if out, err := execRoot(t, "hooks", "uninstall"); err != nil {
				t.Fatalf("uninstall failed: %v\n%s", err, out)
			}
		})

		content, err := os.ReadFile(hookPath(repo, "pre-commit"))
		if err != nil {
			t.Fatalf("foreign hook was removed: %v", err)
		}
		if string(content) != original {
			t.Errorf("foreign hook changed: %q", content)
		}
	})
}

func TestHooksOutsideRepo(t *testing.T) {
	dir := t.TempDir()

	for _, subcmd := range []string{"list", "install", "uninstall"} {
		t.Run(subcmd, func(t *testing.T) {
			runInDir(t, dir, func() {
				out, err := execRoot(t, "hooks", subcmd, "--json")
				if err == nil {
					t.Fatalf("expected error outside a repo\n%s", out)
				}
				if output.GetExitCode(err) != output.ExitUserError {
					t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
				}

				var result map[string]any
				if jsonErr := json.Unmarshal([]byte(out), &result); jsonErr != nil {
					t.Fatalf("error output should be JSON: %v\n%s", jsonErr, out)
				}
				if result["code"] != float64(output.ExitUserError) {
					t.Errorf("code = %v, want %d", result["code"], output.ExitUserError)
				}
			})
		})
	}
}

// writeForeignHook creates a non-shipshape hook and returns its content.
func writeForeignHook(t *testing.T, repo, name string) string {
	t.Helper()
	content := "#!/bin/sh\necho original hook\n"
	hooksDir := filepath.Join(repo, ".git", "hooks")
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		t.Fatal(err)
	}
	// #nosec G306 -- test hook needs execute permission
	if err := os.WriteFile(filepath.Join(hooksDir, name), []byte(content), 0o755); err != nil {
		t.Fatal(err)
	}
	return content
}
