// Package pair implements the notebook pair staging consistency check.
//
// A jupytext pair is a notebook (.ipynb) and a text representation (.md,
// .py) of the same document, kept in sync by the jupytext tool. The two
// files live in the same directory under the same basename. Committing one
// side without the other publishes a half-updated pair, which is the
// failure mode this package exists to catch: it classifies the git index
// and worktree state of both sides and evaluates an explicit verdict
// table (see Evaluate in state.go).
package pair

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harborline/shipshape/internal/config"
	"github.com/harborline/shipshape/internal/git"
)

// CheckName is the finding check identifier.
const CheckName = "pairs"

// Pair is one notebook/text file pair, identified by repo-relative paths.
type Pair struct {
	Notebook string `json:"notebook"`
	Text     string `json:"text"`
}

// Stem returns the shared path-without-extension identifying the pair.
func (p Pair) Stem() string {
	return strings.TrimSuffix(p.Notebook, filepath.Ext(p.Notebook))
}

// Discover finds pairs in the repository rooted at root.
//
// Candidates come from two sources: files present in the worktree, and
// paths appearing in git status (which covers a tracked side deleted from
// the worktree). Two candidates form a pair when they share a directory
// and basename and their extensions both appear in cfg.Formats, the first
// configured format being the notebook side.
//
// A lone notebook still forms a pair when its metadata declares jupytext
// pairing: the expected text path is derived from the declared formats.
// A lone text file never forms a pair on its own; without the notebook
// there is no pairing declaration to trust, and treating every stray
// markdown file as half a pair would flag ordinary docs.
func Discover(ctx context.Context, root string, cfg config.PairsConfig, statuses git.StatusMap, exclude []string) ([]Pair, error) {
	formats := normalizeFormats(cfg.Formats)
	if len(formats) < 2 {
		return nil, nil
	}
	notebookExt := "." + formats[0]
	textExts := make(map[string]bool, len(formats)-1)
	for _, f := range formats[1:] {
		textExts["."+f] = true
	}

	candidates, err := collectCandidates(root, statuses, notebookExt, textExts, cfg.Include, exclude)
	if err != nil {
		return nil, err
	}

	return assemblePairs(ctx, root, candidates, notebookExt, textExts), nil
}

// candidate groups the files sharing one stem.
type candidate struct {
	notebook string
	texts    []string
}

// collectCandidates walks the worktree and merges in git status paths,
// grouping files with pair extensions by stem.
func collectCandidates(root string, statuses git.StatusMap, notebookExt string, textExts map[string]bool, include, exclude []string) (map[string]*candidate, error) {
	candidates := make(map[string]*candidate)

	record := func(rel string) {
		ext := filepath.Ext(rel)
		if ext != notebookExt && !textExts[ext] {
			return
		}
		if !underAny(rel, include) || excludedBy(rel, exclude) {
			return
		}
		stem := strings.TrimSuffix(rel, ext)
		cand := candidates[stem]
		if cand == nil {
			cand = &candidate{}
			candidates[stem] = cand
		}
		if ext == notebookExt {
			cand.notebook = rel
		} else {
			cand.texts = append(cand.texts, rel)
		}
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if d.Name() == ".git" || excludedBy(rel, exclude) {
				return fs.SkipDir
			}
			return nil
		}
		record(rel)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	// Tracked files deleted from the worktree only show up in status.
	for path := range statuses {
		record(path)
	}

	return candidates, nil
}

// assemblePairs turns grouped candidates into pairs. Lone notebooks are
// paired against their declared text format when metadata names one.
func assemblePairs(ctx context.Context, root string, candidates map[string]*candidate, notebookExt string, textExts map[string]bool) []Pair {
	var pairs []Pair
	for stem, cand := range candidates {
		if cand.notebook == "" {
			continue
		}
		if len(cand.texts) > 0 {
			sort.Strings(cand.texts)
			for _, text := range cand.texts {
				pairs = append(pairs, Pair{Notebook: cand.notebook, Text: text})
			}
			continue
		}

		// Lone notebook: trust its own pairing declaration.
		if ext := declaredTextExt(ctx, root, cand.notebook, notebookExt); ext != "" && textExts[ext] {
			pairs = append(pairs, Pair{Notebook: cand.notebook, Text: stem + ext})
		}
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Notebook < pairs[j].Notebook })
	return pairs
}

// declaredTextExt reads the notebook's jupytext formats declaration and
// returns the first non-notebook extension (with dot), or "".
// The worktree copy is preferred; if the notebook was deleted from the
// worktree but is staged, the index copy is consulted.
func declaredTextExt(ctx context.Context, root, notebook, notebookExt string) string {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(notebook)))
	if err != nil {
		data, err = git.StagedContent(ctx, notebook)
		if err != nil {
			return ""
		}
	}

	for _, format := range ParseFormats(notebookFormats(data)) {
		if "."+format.Extension != notebookExt {
			return "." + format.Extension
		}
	}
	return ""
}

// normalizeFormats strips dots and empty entries from configured formats.
func normalizeFormats(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.TrimPrefix(strings.TrimSpace(f), ".")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// underAny reports whether rel is under any of the given path prefixes.
// An empty prefix list means "everywhere".
func underAny(rel string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	return excludedBy(rel, prefixes)
}

// excludedBy reports whether rel is under any of the given path prefixes.
// An empty prefix list matches nothing.
func excludedBy(rel string, prefixes []string) bool {
	for _, prefix := range prefixes {
		prefix = strings.TrimSuffix(filepath.ToSlash(prefix), "/")
		if prefix != "" && (rel == prefix || strings.HasPrefix(rel, prefix+"/")) {
			return true
		}
	}
	return false
}
