package pair

import (
	"encoding/json"
	"strings"
)

// Format is one entry of a jupytext formats declaration.
// "notebooks//ipynb,scripts//py:percent" yields two entries: prefix
// "notebooks" extension "ipynb", and prefix "scripts" extension "py" with
// implementation "percent".
type Format struct {
	Prefix         string
	Extension      string
	Implementation string
}

// ParseFormats parses a jupytext formats specification string.
// Empty and malformed entries are dropped.
func ParseFormats(spec string) []Format {
	var formats []Format
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		var format Format
		if prefix, rest, ok := cutLast(entry, "//"); ok {
			format.Prefix = strings.TrimSuffix(prefix, "/")
			entry = rest
		}
		if ext, impl, ok := strings.Cut(entry, ":"); ok {
			format.Implementation = impl
			entry = ext
		}
		format.Extension = strings.TrimPrefix(entry, ".")
		if format.Extension == "" {
			continue
		}
		formats = append(formats, format)
	}
	return formats
}

// cutLast splits s around the last occurrence of sep.
func cutLast(s, sep string) (before, after string, found bool) {
	idx := strings.LastIndex(s, sep)
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+len(sep):], true
}

// notebookMeta is the subset of the .ipynb JSON schema the pairing check
// reads: metadata.jupytext.formats.
type notebookMeta struct {
	Metadata struct {
		Jupytext struct {
			Formats string `json:"formats"`
		} `json:"jupytext"`
	} `json:"metadata"`
}

// notebookFormats extracts the jupytext formats declaration from raw
// notebook JSON. Returns "" for unparseable input or undeclared pairing.
func notebookFormats(data []byte) string {
	var meta notebookMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return ""
	}
	return meta.Metadata.Jupytext.Formats
}
