package git

import "testing"

func TestParseStatusZ(t *testing.T) {
	t.Run("mixed states", func(t *testing.T) {
		data := []byte("M  staged.md\x00 M dirty.md\x00MM both.md\x00?? new.md\x00D  gone.md\x00")
		statuses := parseStatusZ(data)

		if len(statuses) != 5 {
			t.Fatalf("parsed %d entries, want 5: %+v", len(statuses), statuses)
		}

		tests := []struct {
			path     string
			staged   bool
			dirty    bool
			untrackd bool
		}{
			{"staged.md", true, false, false},
			{"dirty.md", false, true, false},
			{"both.md", true, true, false},
			{"new.md", false, false, true},
			{"gone.md", true, false, false},
		}
		for _, testCase := range tests {
			entry, ok := statuses[testCase.path]
			if !ok {
				t.Errorf("missing entry for %s", testCase.path)
				continue
			}
			if entry.StagedChange() != testCase.staged {
				t.Errorf("%s StagedChange() = %v, want %v", testCase.path, entry.StagedChange(), testCase.staged)
			}
			if entry.WorktreeChange() != testCase.dirty {
				t.Errorf("%s WorktreeChange() = %v, want %v", testCase.path, entry.WorktreeChange(), testCase.dirty)
			}
			if entry.Untracked() != testCase.untrackd {
				t.Errorf("%s Untracked() = %v, want %v", testCase.path, entry.Untracked(), testCase.untrackd)
			}
		}

		if statuses["gone.md"].Index != StatusDeleted {
			t.Errorf("gone.md Index = %c, want D", statuses["gone.md"].Index)
		}
	})

	t.Run("rename consumes source field", func(t *testing.T) {
		data := []byte("R  new-name.md\x00old-name.md\x00M  after.md\x00")
		statuses := parseStatusZ(data)

		entry, ok := statuses["new-name.md"]
		if !ok {
			t.Fatalf("missing renamed entry: %+v", statuses)
		}
		if entry.Orig != "old-name.md" {
			t.Errorf("Orig = %q, want old-name.md", entry.Orig)
		}
		if _, ok := statuses["after.md"]; !ok {
			t.Errorf("entry after a rename was lost: %+v", statuses)
		}
		if _, ok := statuses["old-name.md"]; ok {
			t.Error("rename source must not appear as its own entry")
		}
	})

	t.Run("paths with spaces", func(t *testing.T) {
		data := []byte("M  my notes.md\x00")
		statuses := parseStatusZ(data)
		if _, ok := statuses["my notes.md"]; !ok {
			t.Errorf("path with spaces not parsed: %+v", statuses)
		}
	})

	t.Run("empty output", func(t *testing.T) {
		if statuses := parseStatusZ(nil); len(statuses) != 0 {
			t.Errorf("expected empty map, got %+v", statuses)
		}
	})
}
