package pair

// FileState captures everything the verdict table needs to know about one
// side of a pair: whether the file is in the worktree, whether git tracks
// it, whether the index holds a staged change for it, and whether the
// worktree has unstaged modifications on top of the index.
type FileState struct {
	Path    string `json:"path"`
	Exists  bool   `json:"exists"`
	Tracked bool   `json:"tracked"`
	Staged  bool   `json:"staged"`
	Dirty   bool   `json:"dirty"`
	Deleted bool   `json:"deleted"` // staged change is a deletion
}

// Verdict is the outcome of evaluating a pair's git state.
type Verdict string

const (
	// VerdictClean means the pair is consistent for the commit being
	// staged: either neither side participates, or both sides do and
	// their staged contents agree.
	VerdictClean Verdict = "clean"

	// VerdictUnstagedCounterpart means one side is staged while the
	// other has no staged change, so the commit would carry a
	// half-updated pair.
	VerdictUnstagedCounterpart Verdict = "unstaged-counterpart"

	// VerdictStaleCounterpart means one side is staged while the other
	// has unstaged modifications: the counterpart was touched but its
	// changes would not make it into the commit.
	VerdictStaleCounterpart Verdict = "stale-counterpart"

	// VerdictMissingCounterpart means one side is staged while the
	// other is absent from the worktree.
	VerdictMissingCounterpart Verdict = "missing-counterpart"

	// VerdictUntrackedCounterpart means one side is staged while the
	// other exists but has never been added to git.
	VerdictUntrackedCounterpart Verdict = "untracked-counterpart"

	// VerdictContentDrift means both sides are staged but their staged
	// contents do not represent the same notebook.
	VerdictContentDrift Verdict = "content-drift"
)

// Violation reports whether the verdict should fail verification.
func (v Verdict) Violation() bool {
	return v != VerdictClean
}

// Evaluate runs the staging consistency table for a pair of file states.
//
// The table enumerates the staged/dirty combinations of the two sides:
//
//	a.Staged  b.Staged  counterpart state        verdict
//	--------  --------  -----------------------  ------------------------
//	no        no        -                        clean (pair not in play)
//	yes       yes       -                        clean, content check applies
//	yes       no        absent from worktree     missing-counterpart
//	yes       no        present, untracked       untracked-counterpart
//	yes       no        tracked, dirty worktree  stale-counterpart
//	yes       no        tracked, clean worktree  unstaged-counterpart
//
// The "yes/no" rows are symmetric in the two sides. Content drift is not
// decided here: when both sides are staged the caller compares staged
// contents and reports VerdictContentDrift itself, because that requires
// running jupytext rather than reading git status bits.
func Evaluate(a, b FileState) Verdict {
	if !a.Staged && !b.Staged {
		return VerdictClean
	}
	if a.Staged && b.Staged {
		// Deleting one side while updating the other commits half a pair.
		// Deleting both together is a legitimate pair removal.
		if a.Deleted != b.Deleted {
			return VerdictMissingCounterpart
		}
		return VerdictClean
	}

	// Exactly one side staged; classify the counterpart.
	counterpart := b
	if b.Staged {
		counterpart = a
	}

	switch {
	case !counterpart.Exists:
		return VerdictMissingCounterpart
	case !counterpart.Tracked:
		return VerdictUntrackedCounterpart
	case counterpart.Dirty:
		return VerdictStaleCounterpart
	default:
		return VerdictUnstagedCounterpart
	}
}
