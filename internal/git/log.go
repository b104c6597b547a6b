// Package git provides Git operations via exec for the shipshape CLI.
package git

import (
	"strconv"
	"strings"
	"time"

	"github.com/harborline/shipshape/internal/output"
)

// Commit represents a git commit with its metadata.
type Commit struct {
	SHA         string    // Full 40-character SHA
	Short       string    // Abbreviated SHA (typically 7 chars)
	Subject     string    // First line of commit message
	Body        string    // Rest of commit message (may be empty)
	Author      string    // Author name
	AuthorEmail string    // Author email
	Date        time.Time // Commit date
}

// Message reassembles the full commit message (subject, blank line, body).
func (c Commit) Message() string {
	if c.Body == "" {
		return c.Subject
	}
	return c.Subject + "\n\n" + c.Body
}

// commitSeparator is used to delimit commits in log output.
const commitSeparator = "---COMMIT-BOUNDARY---"

// fieldSeparator is used to delimit fields within a commit.
const fieldSeparator = "---FIELD---"

// logFormat is the --pretty format used for reliable commit parsing.
// Fields: SHA, Short, Subject, Body, Author, AuthorEmail, Unix timestamp.
var logFormat = strings.Join([]string{
	"%H", "%h", "%s", "%b", "%an", "%ae", "%at",
}, fieldSeparator) + commitSeparator

// Log returns commits in the given range spec (e.g. "origin/main..HEAD").
// Commits are returned newest first.
func Log(rangeSpec string) ([]Commit, error) {
	out, err := Run("log", "--no-merges", "--pretty=format:"+logFormat, rangeSpec)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to get git log for range "+rangeSpec, err)
	}
	return parseCommits(out), nil
}

// RecentCommits returns the last n commits reachable from HEAD.
func RecentCommits(n int) ([]Commit, error) {
	out, err := Run("log", "--no-merges", "--pretty=format:"+logFormat, "-n", strconv.Itoa(n), "HEAD")
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to get recent commits", err)
	}
	return parseCommits(out), nil
}

// parseCommits parses the custom formatted git log output into Commit structs.
func parseCommits(out string) []Commit {
	if out == "" {
		return nil
	}

	var commits []Commit
	for _, commitStr := range strings.Split(out, commitSeparator) {
		commitStr = strings.TrimSpace(commitStr)
		if commitStr == "" {
			continue
		}
		if commit, ok := parseCommitFields(commitStr); ok {
			commits = append(commits, commit)
		}
	}
	return commits
}

// parseCommitFields parses a single commit string into a Commit struct.
// Returns the commit and true if successful, zero value and false otherwise.
func parseCommitFields(commitStr string) (Commit, bool) {
	fields := strings.Split(commitStr, fieldSeparator)
	if len(fields) < 7 {
		return Commit{}, false
	}

	timestamp, err := strconv.ParseInt(strings.TrimSpace(fields[6]), 10, 64)
	if err != nil {
		timestamp = 0
	}

	return Commit{
		SHA:         strings.TrimSpace(fields[0]),
		Short:       strings.TrimSpace(fields[1]),
		Subject:     strings.TrimSpace(fields[2]),
		Body:        strings.TrimSpace(fields[3]),
		Author:      strings.TrimSpace(fields[4]),
		AuthorEmail: strings.TrimSpace(fields[5]),
		Date:        time.Unix(timestamp, 0),
	}, true
}
