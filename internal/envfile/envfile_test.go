package envfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantKey   string
		wantValue string
		wantOK    bool
	}{
		{"simple", "KEY=value", "KEY", "value", true},
		{"export prefix", "export KEY=value", "KEY", "value", true},
		{"double quotes", `KEY="quoted value"`, "KEY", "quoted value", true},
		{"single quotes", "KEY='quoted'", "KEY", "quoted", true},
		{"spaces around equals", "KEY = value", "KEY", "value", true},
		{"value with equals", "KEY=a=b", "KEY", "a=b", true},
		{"empty value", "KEY=", "KEY", "", true},
		{"comment", "# KEY=value", "", "", false},
		{"blank", "   ", "", "", false},
		{"no equals", "just words", "", "", false},
		{"empty key", "=value", "", "", false},
		{"mismatched quotes kept", `KEY="half`, "KEY", `"half`, true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			key, value, ok := parseLine(testCase.line)
			if ok != testCase.wantOK {
				t.Fatalf("parseLine(%q) ok = %v, want %v", testCase.line, ok, testCase.wantOK)
			}
			if key != testCase.wantKey || value != testCase.wantValue {
				t.Errorf("parseLine(%q) = (%q, %q), want (%q, %q)",
					testCase.line, key, value, testCase.wantKey, testCase.wantValue)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("sets unset variables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		content := "SHIPSHAPE_TEST_UNSET=from-file\n# comment\n\nexport SHIPSHAPE_TEST_EXPORT=exported\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("SHIPSHAPE_TEST_UNSET", "")
		t.Setenv("SHIPSHAPE_TEST_EXPORT", "")
		os.Unsetenv("SHIPSHAPE_TEST_UNSET")
		os.Unsetenv("SHIPSHAPE_TEST_EXPORT")

		if err := Load(path); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got := os.Getenv("SHIPSHAPE_TEST_UNSET"); got != "from-file" {
			t.Errorf("SHIPSHAPE_TEST_UNSET = %q, want from-file", got)
		}
		if got := os.Getenv("SHIPSHAPE_TEST_EXPORT"); got != "exported" {
			t.Errorf("SHIPSHAPE_TEST_EXPORT = %q, want exported", got)
		}
	})

	t.Run("environment wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(path, []byte("SHIPSHAPE_TEST_SET=from-file\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("SHIPSHAPE_TEST_SET", "from-env")

		if err := Load(path); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got := os.Getenv("SHIPSHAPE_TEST_SET"); got != "from-env" {
			t.Errorf("SHIPSHAPE_TEST_SET = %q, existing value should win", got)
		}
	})

	t.Run("missing file is fine", func(t *testing.T) {
		if err := Load(filepath.Join(t.TempDir(), "nope.env")); err != nil {
			t.Errorf("Load() on missing file error = %v, want nil", err)
		}
	})
}
