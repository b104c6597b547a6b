// Package output provides structured output and error handling for the
// shipshape CLI.
//
// Every command routes its output through a Printer, which renders either
// human-readable text (lipgloss-styled when attached to a TTY) or JSON when
// the --json flag is set. The same Printer also formats errors, so the
// JSON protocol stays consistent: errors become {"error": "...", "code": N}
// on stdout instead of unstructured text on stderr.
//
// Exit codes are carried by ExitError:
//
//	0  clean      all checks passed
//	1  findings   one or more checks reported violations
//	2  user       bad arguments or malformed config
//	3  system     git, jupytext, or I/O failure
//
// Findings (code 1) are deliberately distinct from user and system errors
// so hook scripts and CI pipelines can tell "the repo is dirty" apart from
// "the tool could not run".
package output
