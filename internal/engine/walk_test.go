package engine

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// populate creates files under a temp root and returns the root.
func populate(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, rel := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte("x\n"), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
	return root
}

func TestMarkdownFiles(t *testing.T) {
	root := populate(t,
		"README.md",
		"docs/guide.markdown",
		"docs/notes.txt",
		"src/main.go",
		".git/config.md",
		"vendor/pkg/doc.md",
	)

	files, err := MarkdownFiles(root, []string{"vendor"})
	if err != nil {
		t.Fatalf("MarkdownFiles() error = %v", err)
	}

	want := []string{"README.md", "docs/guide.markdown"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("MarkdownFiles() = %v, want %v", files, want)
	}
}

func TestTextFiles(t *testing.T) {
	root := populate(t,
		"README.md",
		"src/main.go",
		".git/HEAD",
		"node_modules/pkg/index.js",
	)

	files, err := TextFiles(root, []string{"node_modules"})
	if err != nil {
		t.Fatalf("TextFiles() error = %v", err)
	}

	want := []string{"README.md", "src/main.go"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("TextFiles() = %v, want %v", files, want)
	}
}

func TestExcluded(t *testing.T) {
	tests := []struct {
		name    string
		rel     string
		exclude []string
		want    bool
	}{
		{"under prefix", "vendor/pkg/a.go", []string{"vendor"}, true},
		{"exact prefix", "vendor", []string{"vendor"}, true},
		{"trailing slash config", "vendor/a.go", []string{"vendor/"}, true},
		{"similar name not excluded", "vendored/a.go", []string{"vendor"}, false},
		{"root never excluded", ".", []string{"."}, false},
		{"no excludes", "anything", nil, false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got := excluded(testCase.rel, testCase.exclude)
			if got != testCase.want {
				t.Errorf("excluded(%q, %v) = %v, want %v", testCase.rel, testCase.exclude, got, testCase.want)
			}
		})
	}
}
