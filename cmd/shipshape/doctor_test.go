package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/harborline/shipshape/internal/output"
)

func TestDoctorInRepo(t *testing.T) {
	repo := initGitRepo(t)

	runInDir(t, repo, func() {
		out, err := execRoot(t, "doctor", "--json")
		if err != nil {
			t.Fatalf("doctor should pass in a fresh repo (warnings allowed): %v\n%s", err, out)
		}

		var result struct {
			Sections []doctorSection `json:"sections"`
			Healthy  bool            `json:"healthy"`
		}
		if jsonErr := json.Unmarshal([]byte(out), &result); jsonErr != nil {
			t.Fatalf("invalid JSON: %v\n%s", jsonErr, out)
		}
		if !result.Healthy {
			t.Errorf("healthy = false:\n%s", out)
		}
		if len(result.Sections) != 2 {
			t.Fatalf("got %d sections, want environment and repository", len(result.Sections))
		}

		for _, section := range result.Sections {
			for _, probe := range section.Results {
				if probe.Status == statusFail {
					t.Errorf("probe %s failed: %s", probe.Name, probe.Detail)
				}
			}
		}
	})
}

func TestDoctorOutsideRepo(t *testing.T) {
	runInDir(t, t.TempDir(), func() {
		out, err := execRoot(t, "doctor")
		if err == nil {
			t.Fatalf("doctor should fail outside a repo\n%s", out)
		}
		if output.GetExitCode(err) != output.ExitFindings {
			t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitFindings)
		}
		if !strings.Contains(out, "doctor found problems") {
			t.Errorf("output = %q", out)
		}
	})
}

func TestDoctorHumanOutput(t *testing.T) {
	repo := initGitRepo(t)

	runInDir(t, repo, func() {
		out, err := execRoot(t, "doctor")
		if err != nil {
			t.Fatalf("command failed: %v\n%s", err, out)
		}
		for _, want := range []string{"Environment", "Repository", "everything looks shipshape"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})
}
