// Package secrets scans file contents for credential material: known
// token shapes plus an entropy-gated generic assignment detector.
package secrets

import "regexp"

// Detector is one credential pattern.
type Detector struct {
	Name    string
	Pattern *regexp.Regexp
	// Group is the capture group holding the candidate value; 0 means
	// the whole match.
	Group int
	// Entropy gates the match on the candidate's Shannon entropy,
	// filtering placeholder strings out of the generic detector.
	Entropy bool
}

// builtinDetectors are the always-on credential shapes. Specific vendor
// prefixes first; the generic assignment detector is last and is the only
// entropy-gated one.
var builtinDetectors = []Detector{
	{
		Name:    "aws-access-key-id",
		Pattern: regexp.MustCompile(`\b(?:A3T[A-Z0-9]|AKIA|ASIA|ABIA|ACCA)[A-Z0-9]{16}\b`),
	},
	{
		Name:    "github-token",
		Pattern: regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{36,255}\b`),
	},
	{
		Name:    "slack-token",
		Pattern: regexp.MustCompile(`\bxox[baprs]-[A-Za-z0-9-]{10,}\b`),
	},
	{
		Name:    "stripe-live-key",
		Pattern: regexp.MustCompile(`\b[sr]k_live_[A-Za-z0-9]{16,}\b`),
	},
	{
		Name:    "google-api-key",
		Pattern: regexp.MustCompile(`\bAIza[0-9A-Za-z_\-]{35}\b`),
	},
	{
		Name:    "private-key",
		Pattern: regexp.MustCompile(`-----BEGIN (?:RSA |EC |DSA |OPENSSH |PGP )?PRIVATE KEY`),
	},
	{
		Name: "generic-secret",
		Pattern: regexp.MustCompile(
			`(?i)\b(?:secret|token|password|passwd|api[_-]?key)["']?\s*[:=]\s*["']([A-Za-z0-9+/_\-=.]{16,})["']`),
		Group:   1,
		Entropy: true,
	},
}
