package gitlog

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
	t.Setenv("GIT_AUTHOR_NAME", "alice")
	t.Setenv("GIT_AUTHOR_EMAIL", "alice@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "alice")
	t.Setenv("GIT_COMMITTER_EMAIL", "alice@example.com")
}

func TestInteractiveRebaseAppliesSequenceEditor(t *testing.T) {
	requireGit(t)
	dir := setupRepo(t)
	c := Collector{RepoPath: dir}

	dropChore := `sh -c 'sed "s/^pick \([0-9a-f]* chore\)/drop \1/" "$1" > "$1.tmp" && mv "$1.tmp" "$1"' sh`

	var out bytes.Buffer
	err := c.InteractiveRebase(context.Background(), "production", dropChore, Streams{
		In:  strings.NewReader(""),
		Out: &out,
		Err: &out,
	})
	require.NoError(t, err, out.String())

	commits, err := c.CommitsBetween("production", "HEAD")
	require.NoError(t, err)
	assert.Equal(t, []string{"ABC-1 add login"}, Titles(commits))
}

func TestInteractiveRebaseReportsFailure(t *testing.T) {
	requireGit(t)
	dir := setupRepo(t)

	var out bytes.Buffer
	err := Collector{RepoPath: dir}.InteractiveRebase(context.Background(), "no-such-branch", "true", Streams{
		In:  strings.NewReader(""),
		Out: &out,
		Err: &out,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git rebase -i no-such-branch")
}
