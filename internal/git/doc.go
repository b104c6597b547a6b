// Package git provides Git operations via exec for the shipshape CLI.
//
// All operations shell out to the git binary rather than linking a git
// implementation. The checks only need porcelain-level data (status, log,
// staged blob contents) and exec keeps behavior identical to whatever git
// the user runs, including their config for renames and ignore rules.
//
// Three surfaces matter to the checkers:
//
//   - Status parses `git status --porcelain=v1 -z` into per-path index and
//     worktree states. This is the raw input to the pair consistency
//     verdicts: whether each side of a notebook pair is staged, dirty, or
//     untracked comes straight from these two bytes.
//
//   - Log parses commit ranges with a delimiter-based pretty format, used
//     by the commit message linter.
//
//   - StagedContent reads blob contents out of the index (`git show :path`)
//     so the secrets scanner can scan exactly what a commit would publish,
//     not what happens to be in the worktree.
//
// Failures map to *output.ExitError with the system error code, keeping
// "git broke" distinct from "your repo has findings" at the exit-code level.
package git
