// Package reconcile compares the issues promised by release notes with the
// issues actually referenced by commits, and decides what happens to each commit.
package reconcile

import (
	"release-audit/internal/issuekey"
	"release-audit/internal/model"
)

// Reconcile splits expected and observed into matched, missing and extra keys.
// Matched and Missing follow expected order; Extra follows observed order.
func Reconcile(expected, observed model.KeySet) model.Reconciliation {
	var res model.Reconciliation
	for _, k := range expected.Keys() {
		if observed.Has(k) {
			res.Matched.Add(k)
		} else {
			res.Missing.Add(k)
		}
	}
	for _, k := range observed.Keys() {
		if !expected.Has(k) {
			res.Extra.Add(k)
		}
	}
	return res
}

// Classify looks at the first issue key of message only.
//
// A key that is not in expected is unexpected even when extra does not list
// it, so a stale extra set can never turn a commit into a keeper.
func Classify(message string, expected, extra model.KeySet) model.Classification {
	key, ok := issuekey.First(message)
	if !ok {
		return model.NoIssue
	}
	if extra.Has(key) {
		return model.UnexpectedIssue
	}
	if !expected.Has(key) {
		return model.UnexpectedIssue
	}
	return model.ExpectedIssue
}

// CommitResult pairs a commit with its classification.
type CommitResult struct {
	Commit         model.Commit
	Classification model.Classification
}

// Report is the outcome of checking a commit range against release notes.
type Report struct {
	Expected       model.KeySet
	Observed       model.KeySet
	Reconciliation model.Reconciliation
	Commits        []CommitResult
	Stats          model.Stats
}

// Commits runs the full comparison of release notes against a list of commits.
func Commits(expected model.KeySet, commits []model.Commit) Report {
	messages := make([]string, 0, len(commits))
	for _, c := range commits {
		messages = append(messages, c.Title)
	}
	observed := issuekey.FromMessages(messages)
	rec := Reconcile(expected, observed)

	report := Report{
		Expected:       expected,
		Observed:       observed,
		Reconciliation: rec,
	}
	for _, c := range commits {
		class := Classify(c.Title, expected, rec.Extra)
		report.Commits = append(report.Commits, CommitResult{Commit: c, Classification: class})
		if class.Disposition() == model.Keep {
			report.Stats.Kept++
		} else {
			report.Stats.Dropped++
		}
	}
	return report
}
