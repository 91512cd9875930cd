// Package domain implements scoresheet reconciliation and the grading
// workflow over a section's handin tree.
package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	m "tagrade.dev/pkg/tagrade/internal/model"
)

// ScoreLabel marks the line(s) holding a scoresheet's total.
const ScoreLabel = "Score:"

// pointPattern matches a digit run wrapped in underscores. The runs on either
// side may differ in length.
var pointPattern = regexp.MustCompile(`_+(\d+)_+`)

// ParseLedger extracts every point token from a scoresheet, left to right and
// without overlap. The first token is the stated total.
func ParseLedger(text string) (m.Ledger, error) {
	matches := pointPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return m.Ledger{}, fmt.Errorf("%w: no point tokens found", ErrMalformedScoresheet)
	}

	entries := make([]int, 0, len(matches))

	for _, match := range matches {
		value, err := strconv.Atoi(match[1])
		if err != nil {
			return m.Ledger{}, fmt.Errorf("%w: point token %q: %v", ErrMalformedScoresheet, match[0], err)
		}

		entries = append(entries, value)
	}

	return m.Ledger{
		StatedTotal: entries[0],
		Items:       entries[1:],
	}, nil
}

// RewriteTotal replaces "__<old as %02d>__" with "__<new>__" on every line that
// carries the score label and a point token. Lines whose padding does not
// match the old total are left untouched.
func RewriteTotal(text string, oldTotal, newTotal int) string {
	oldToken := fmt.Sprintf("__%02d__", oldTotal)
	newToken := fmt.Sprintf("__%d__", newTotal)

	lines := strings.SplitAfter(text, "\n")
	for i, line := range lines {
		if strings.Contains(line, ScoreLabel) && pointPattern.MatchString(line) {
			lines[i] = strings.ReplaceAll(line, oldToken, newToken)
		}
	}

	return strings.Join(lines, "")
}

// ScoresheetDiff renders a unified diff between two versions of a scoresheet.
func ScoresheetDiff(name, before, after string) (string, error) {
	if before == after {
		return "", nil
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: name,
		ToFile:   name + " (updated)",
		Context:  0,
	})
}
