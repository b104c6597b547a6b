// Package git provides Git operations via exec for the shipshape CLI.
package git

import (
	"bytes"
	"context"
)

// Status codes from git status --porcelain=v1. X is the index (staged)
// state, Y the worktree state. Untracked files report '?' in both.
const (
	StatusUnmodified = ' '
	StatusModified   = 'M'
	StatusAdded      = 'A'
	StatusDeleted    = 'D'
	StatusRenamed    = 'R'
	StatusCopied     = 'C'
	StatusUnmerged   = 'U'
	StatusUntracked  = '?'
)

// FileStatus is one entry of git status --porcelain=v1 -z output.
type FileStatus struct {
	Path     string
	Index    byte // X: state of the path in the index
	Worktree byte // Y: state of the path in the worktree
	Orig     string // rename/copy source, when Index is R or C
}

// StagedChange reports whether the index holds a change for this path.
func (s FileStatus) StagedChange() bool {
	switch s.Index {
	case StatusModified, StatusAdded, StatusDeleted, StatusRenamed, StatusCopied:
		return true
	}
	return false
}

// WorktreeChange reports whether the worktree differs from the index.
func (s FileStatus) WorktreeChange() bool {
	switch s.Worktree {
	case StatusModified, StatusDeleted:
		return true
	}
	return false
}

// Untracked reports whether the path is not known to git at all.
func (s FileStatus) Untracked() bool {
	return s.Index == StatusUntracked && s.Worktree == StatusUntracked
}

// StatusMap indexes FileStatus entries by repo-relative path.
// Paths absent from the map are tracked and unmodified (or ignored).
type StatusMap map[string]FileStatus

// Status returns the porcelain status of the repository, keyed by path.
// Untracked files are listed individually (--untracked-files=all) so that
// an untracked notebook inside an untracked directory still gets an entry.
func Status(ctx context.Context) (StatusMap, error) {
	out, err := RunRaw(ctx, "status", "--porcelain=v1", "-z", "--untracked-files=all")
	if err != nil {
		return nil, err
	}
	return parseStatusZ(out), nil
}

// parseStatusZ parses NUL-separated porcelain v1 output.
// Entries are "XY path\0"; rename and copy entries carry a second
// NUL-terminated field with the original path.
func parseStatusZ(data []byte) StatusMap {
	statuses := make(StatusMap)
	fields := bytes.Split(data, []byte{0})

	for i := 0; i < len(fields); i++ {
		field := fields[i]
		if len(field) < 4 {
			continue
		}

		entry := FileStatus{
			Index:    field[0],
			Worktree: field[1],
			Path:     string(field[3:]),
		}

		if entry.Index == StatusRenamed || entry.Index == StatusCopied {
			if i+1 < len(fields) {
				i++
				entry.Orig = string(fields[i])
			}
		}

		statuses[entry.Path] = entry
	}

	return statuses
}

// IsTracked reports whether a path is in the git index.
func IsTracked(path string) bool {
	_, err := Run("ls-files", "--error-unmatch", "--", path)
	return err == nil
}
