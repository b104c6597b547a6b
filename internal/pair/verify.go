package pair

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/harborline/shipshape/internal/config"
	"github.com/harborline/shipshape/internal/git"
)

// Result is the evaluated state of one pair.
type Result struct {
	Pair     Pair      `json:"pair"`
	Notebook FileState `json:"notebook"`
	Text     FileState `json:"text"`
	Verdict  Verdict   `json:"verdict"`
	Detail   string    `json:"detail,omitempty"`
}

// Verifier evaluates pair staging consistency for a repository.
// Git commands are run relative to the current working directory, which
// callers position at the repository root.
type Verifier struct {
	Root    string
	Config  config.PairsConfig
	Exclude []string
	// Converter enables the staged content drift check. When nil (no
	// jupytext available), both-sides-staged pairs pass on git state
	// alone.
	Converter Converter
}

// Verify discovers all pairs and evaluates each against the verdict table.
// Results are ordered by notebook path. Only system failures return an
// error; violations are reported through the verdicts.
func (v *Verifier) Verify(ctx context.Context) ([]Result, error) {
	statuses, err := git.Status(ctx)
	if err != nil {
		return nil, err
	}

	pairs, err := Discover(ctx, v.Root, v.Config, statuses, v.Exclude)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(pairs))
	for _, p := range pairs {
		result, err := v.evaluate(ctx, p, statuses)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// evaluate classifies one pair: git state first, then the staged content
// comparison when both sides are staged.
func (v *Verifier) evaluate(ctx context.Context, p Pair, statuses git.StatusMap) (Result, error) {
	result := Result{
		Pair:     p,
		Notebook: v.fileState(p.Notebook, statuses),
		Text:     v.fileState(p.Text, statuses),
	}

	result.Verdict = Evaluate(result.Notebook, result.Text)
	result.Detail = verdictDetail(result)

	if result.Verdict == VerdictClean && bothStagedContent(result) {
		drift, detail, err := v.contentDrift(ctx, p)
		if err != nil {
			return Result{}, err
		}
		if drift {
			result.Verdict = VerdictContentDrift
			result.Detail = detail
		}
	}

	return result, nil
}

// fileState derives the FileState of one side from the worktree and the
// porcelain status map.
func (v *Verifier) fileState(path string, statuses git.StatusMap) FileState {
	state := FileState{Path: path}

	_, statErr := os.Stat(filepath.Join(v.Root, filepath.FromSlash(path)))
	state.Exists = statErr == nil

	entry, ok := statuses[path]
	if !ok {
		// No status entry: tracked-and-clean, ignored, or absent.
		state.Tracked = state.Exists && git.IsTracked(path)
		return state
	}
	if entry.Untracked() {
		return state
	}

	state.Tracked = true
	state.Staged = entry.StagedChange()
	state.Dirty = entry.WorktreeChange()
	state.Deleted = entry.Index == git.StatusDeleted
	return state
}

// bothStagedContent reports whether both sides carry staged content that
// can be compared (neither staged change is a deletion).
func bothStagedContent(r Result) bool {
	return r.Notebook.Staged && r.Text.Staged && !r.Notebook.Deleted && !r.Text.Deleted
}

// contentDrift compares the staged text side against the staged notebook
// converted to the same format.
func (v *Verifier) contentDrift(ctx context.Context, p Pair) (bool, string, error) {
	if v.Converter == nil {
		return false, "", nil
	}

	notebook, err := git.StagedContent(ctx, p.Notebook)
	if err != nil {
		return false, "", err
	}
	text, err := git.StagedContent(ctx, p.Text)
	if err != nil {
		return false, "", err
	}

	format := strings.TrimPrefix(filepath.Ext(p.Text), ".")
	rendered, err := v.Converter.ToText(ctx, notebook, format)
	if err != nil {
		return false, "", err
	}

	if normalizeText(format, rendered) == normalizeText(format, text) {
		return false, "", nil
	}
	return true, "staged " + p.Text + " does not match staged " + p.Notebook, nil
}

// verdictDetail renders a human-oriented explanation for a verdict.
func verdictDetail(r Result) string {
	staged, counterpart := r.Notebook, r.Text
	if r.Text.Staged && !r.Notebook.Staged {
		staged, counterpart = r.Text, r.Notebook
	}

	switch r.Verdict {
	case VerdictUnstagedCounterpart:
		return staged.Path + " is staged but " + counterpart.Path + " is not"
	case VerdictStaleCounterpart:
		return counterpart.Path + " has unstaged changes that will not be committed with " + staged.Path
	case VerdictMissingCounterpart:
		if staged.Staged && counterpart.Staged {
			deleted := r.Notebook.Path
			if r.Text.Deleted {
				deleted = r.Text.Path
			}
			return deleted + " is staged for deletion while its counterpart is not"
		}
		return counterpart.Path + " is missing from the worktree"
	case VerdictUntrackedCounterpart:
		return counterpart.Path + " exists but is not tracked by git"
	default:
		return ""
	}
}

// normalizeText prepares converted and committed text for comparison by
// stripping the jupytext header, which carries version and timestamp
// noise that differs between conversions of identical content.
func normalizeText(format string, data []byte) string {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	switch format {
	case "md", "markdown", "Rmd":
		text = stripYAMLHeader(text)
	default:
		text = stripCommentHeader(text)
	}

	return strings.TrimSpace(text)
}

// stripYAMLHeader removes a leading "---" delimited frontmatter block.
func stripYAMLHeader(text string) string {
	if !strings.HasPrefix(text, "---\n") {
		return text
	}
	rest := text[len("---\n"):]
	idx := strings.Index(rest, "\n---\n")
	if idx < 0 {
		return text
	}
	return rest[idx+len("\n---\n"):]
}

// stripCommentHeader removes a leading "# ---" delimited header block, as
// written by jupytext's script formats.
func stripCommentHeader(text string) string {
	if !strings.HasPrefix(text, "# ---\n") {
		return text
	}
	rest := text[len("# ---\n"):]
	idx := strings.Index(rest, "\n# ---\n")
	if idx < 0 {
		return text
	}
	return rest[idx+len("\n# ---\n"):]
}
