package report

import (
	"bytes"
	"strings"
	"testing"

	"release-audit/internal/model"
	"release-audit/internal/reconcile"
)

func TestComparisonIncludesKeySections(t *testing.T) {
	commits := []model.Commit{
		{SHA: "aaa111122223333", Title: "ABC-1 fix"},
		{SHA: "bbb222233334444", Title: "unrelated change"},
		{SHA: "ccc333344445555", Title: "OPS-4 hotfix"},
	}
	r := reconcile.Commits(model.NewKeySet("ABC-1", "ABC-9"), commits)

	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Expected(r.Expected)
	p.Comparison(r)
	out := buf.String()

	for _, snippet := range []string{
		"Extracted issues: ABC-1, ABC-9",
		"✅ Found in commits: ABC-1",
		"❌ Missing in commits: ABC-9",
		"🚨 Extra in commits: OPS-4",
		"✅ pick aaa1111 ABC-1 fix",
		"⚪ drop bbb2222 unrelated change",
		"🚨 drop ccc3333 OPS-4 hotfix",
		"Kept 1 commit, dropped 2 commits.",
	} {
		if !strings.Contains(out, snippet) {
			t.Fatalf("report missing expected content %q:\n%s", snippet, out)
		}
	}
}

func TestComparisonWithoutCommits(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Comparison(reconcile.Commits(model.KeySet{}, nil))
	out := buf.String()

	if !strings.Contains(out, "Missing in commits: (none)") {
		t.Fatalf("expected empty sets rendered as (none):\n%s", out)
	}
	if strings.Contains(out, "Commits:") {
		t.Fatalf("commit section should be omitted:\n%s", out)
	}
}
