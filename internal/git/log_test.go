package git

import (
	"strings"
	"testing"
)

// fakeLogEntry assembles one commit in the custom log format.
func fakeLogEntry(sha, short, subject, body, author, email, timestamp string) string {
	return strings.Join([]string{sha, short, subject, body, author, email, timestamp}, fieldSeparator) + commitSeparator
}

func TestParseCommits(t *testing.T) {
	t.Run("two commits", func(t *testing.T) {
		out := fakeLogEntry(
			"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "aaaaaaa",
			"feat: add pair check", "Longer explanation.", "Dev One", "one@example.com", "1700000000",
		) + "\n" + fakeLogEntry(
			"bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", "bbbbbbb",
			"fix: typo", "", "Dev Two", "two@example.com", "1700000100",
		)

		commits := parseCommits(out)
		if len(commits) != 2 {
			t.Fatalf("parsed %d commits, want 2", len(commits))
		}

		first := commits[0]
		if first.Short != "aaaaaaa" || first.Subject != "feat: add pair check" {
			t.Errorf("first commit parsed wrong: %+v", first)
		}
		if first.Body != "Longer explanation." {
			t.Errorf("Body = %q", first.Body)
		}
		if first.Author != "Dev One" || first.AuthorEmail != "one@example.com" {
			t.Errorf("author fields wrong: %+v", first)
		}
		if first.Date.Unix() != 1700000000 {
			t.Errorf("Date = %v, want unix 1700000000", first.Date)
		}
	})

	t.Run("empty output", func(t *testing.T) {
		if commits := parseCommits(""); commits != nil {
			t.Errorf("expected nil, got %+v", commits)
		}
	})

	t.Run("malformed entry skipped", func(t *testing.T) {
		commits := parseCommits("garbage" + commitSeparator)
		if len(commits) != 0 {
			t.Errorf("expected malformed entry to be skipped, got %+v", commits)
		}
	})
}

func TestCommitMessage(t *testing.T) {
	withBody := Commit{Subject: "feat: add thing", Body: "Details here."}
	if got := withBody.Message(); got != "feat: add thing\n\nDetails here." {
		t.Errorf("Message() = %q", got)
	}

	subjectOnly := Commit{Subject: "fix: typo"}
	if got := subjectOnly.Message(); got != "fix: typo" {
		t.Errorf("Message() = %q", got)
	}
}
