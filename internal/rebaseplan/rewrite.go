package rebaseplan

import (
	"fmt"
	"strings"

	"release-audit/internal/issuekey"
	"release-audit/internal/model"
	"release-audit/internal/reconcile"
)

// HeaderLines is the number of comment lines Rewrite prepends.
const HeaderLines = 2

// Header describes the expected keys and which of them no commit line references.
func Header(expected, missing model.KeySet) []string {
	lines := []string{"# Expected issues: " + expected.String()}
	if missing.Len() > 0 {
		lines = append(lines, "# Missing issues: "+missing.String())
	} else {
		lines = append(lines, "# All expected issues found.")
	}
	return lines
}

// Rewrite marks every commit line of text as pick or drop depending on its
// first issue key and prepends a header. Non-commit lines are untouched.
func Rewrite(text string, expected model.KeySet) (string, model.Stats) {
	plan := Parse(text)

	var found, extra model.KeySet
	for _, l := range plan.Commits() {
		key, ok := issuekey.First(l.Message)
		if !ok {
			continue
		}
		if expected.Has(key) {
			found.Add(key)
		} else {
			extra.Add(key)
		}
	}
	missing := reconcile.Reconcile(expected, found).Missing

	var stats model.Stats
	for i, l := range plan.Lines {
		if l.Kind != CommitLine {
			continue
		}
		disp := reconcile.Classify(l.Message, expected, extra).Disposition()
		plan.Lines[i] = l.WithAction(disp.Action())
		if disp == model.Keep {
			stats.Kept++
		} else {
			stats.Dropped++
		}
	}

	header := strings.Join(Header(expected, missing), "\n")
	return header + "\n" + plan.String(), stats
}

// Generate builds a todo for commits given newest first, the order git log
// reports them. The todo lists them oldest first, as git rebase does.
func Generate(commits []model.Commit) string {
	var b strings.Builder
	for i := len(commits) - 1; i >= 0; i-- {
		c := commits[i]
		fmt.Fprintf(&b, "pick %s %s\n", c.ShortSHA(), c.Title)
	}
	return b.String()
}
