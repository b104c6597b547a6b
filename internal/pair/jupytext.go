package pair

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/harborline/shipshape/internal/output"
)

// Converter turns notebooks into their text representation and syncs
// pairs on disk. The production implementation shells out to jupytext;
// tests substitute fakes.
type Converter interface {
	// ToText converts raw notebook JSON to the given text format.
	ToText(ctx context.Context, notebook []byte, format string) ([]byte, error)
	// Sync runs a pair synchronization rooted at the given path.
	Sync(ctx context.Context, path string) error
}

// Jupytext is a Converter backed by the jupytext executable.
type Jupytext struct {
	bin string
}

// NewJupytext creates a Jupytext converter. The binary defaults to
// "jupytext" and can be overridden with SHIPSHAPE_JUPYTEXT.
func NewJupytext() *Jupytext {
	bin := os.Getenv("SHIPSHAPE_JUPYTEXT")
	if bin == "" {
		bin = "jupytext"
	}
	return &Jupytext{bin: bin}
}

// Available reports whether the jupytext executable can be found.
func (j *Jupytext) Available() bool {
	_, err := exec.LookPath(j.bin)
	return err == nil
}

// Version returns the jupytext version string.
func (j *Jupytext) Version(ctx context.Context) (string, error) {
	out, err := j.run(ctx, nil, "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ToText converts notebook JSON (on stdin) to the given text format.
func (j *Jupytext) ToText(ctx context.Context, notebook []byte, format string) ([]byte, error) {
	return j.run(ctx, notebook, "--from", "ipynb", "--to", format, "--output", "-", "-")
}

// Sync runs `jupytext --sync` on the given path, updating every file of
// the pair from the most recent one.
func (j *Jupytext) Sync(ctx context.Context, path string) error {
	_, err := j.run(ctx, nil, "--sync", "--quiet", path)
	return err
}

// run executes jupytext with the given stdin and arguments.
func (j *Jupytext) run(ctx context.Context, stdin []byte, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, j.bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return nil, output.NewSystemError("jupytext not found: install it or set SHIPSHAPE_JUPYTEXT")
		}
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return nil, output.NewSystemErrorWithCause("jupytext failed: "+errMsg, err)
	}

	return stdout.Bytes(), nil
}
