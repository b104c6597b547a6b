package engine

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harborline/shipshape/internal/output"
)

// MarkdownFiles returns all repo-relative markdown paths under root,
// honoring the configured exclude prefixes.
func MarkdownFiles(root string, exclude []string) ([]string, error) {
	return walkFiles(root, exclude, func(path string) bool {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".markdown", ".mdown":
			return true
		}
		return false
	})
}

// TextFiles returns all repo-relative paths under root, excluding the
// configured prefixes. Binary detection happens at scan time, so this
// filter only prunes by path.
func TextFiles(root string, exclude []string) ([]string, error) {
	return walkFiles(root, exclude, func(string) bool { return true })
}

// walkFiles walks root collecting files that pass the filter.
// The .git directory is always skipped.
func walkFiles(root string, exclude []string, want func(string) bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if d.Name() == ".git" || excluded(rel, exclude) {
				return fs.SkipDir
			}
			return nil
		}
		if excluded(rel, exclude) || !want(rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to walk "+root, err)
	}

	sort.Strings(files)
	return files, nil
}

// excluded reports whether rel falls under an exclude prefix.
func excluded(rel string, exclude []string) bool {
	if rel == "." {
		return false
	}
	for _, prefix := range exclude {
		prefix = strings.TrimSuffix(filepath.ToSlash(prefix), "/")
		if prefix != "" && (rel == prefix || strings.HasPrefix(rel, prefix+"/")) {
			return true
		}
	}
	return false
}
