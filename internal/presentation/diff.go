package presentation

import (
	"encoding/json"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffJSON renders the line diff between the indented JSON forms of from and to.
// Each line is prefixed with "-", "+" or " ". changed is false when both render the same.
func DiffJSON(from, to any) (diff string, changed bool, err error) {
	a, err := json.MarshalIndent(from, "", "  ")
	if err != nil {
		return "", false, err
	}
	b, err := json.MarshalIndent(to, "", "  ")
	if err != nil {
		return "", false, err
	}
	diff, changed = DiffLines(string(a)+"\n", string(b)+"\n")
	return diff, changed, nil
}

// DiffLines computes a line-level diff of two texts.
func DiffLines(from, to string) (string, bool) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	changed := false
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
			changed = true
		case diffmatchpatch.DiffInsert:
			prefix = "+"
			changed = true
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
		}
	}
	return out.String(), changed
}
