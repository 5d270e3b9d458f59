package gitlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRepo creates a repository with a "production" branch and two
// feature commits on top of it on master.
func setupRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	base := commitFile(t, repo, dir, "initial import")
	require.NoError(t, repo.Storer.SetReference(
		plumbing.NewHashReference(plumbing.NewBranchReferenceName("production"), base),
	))

	commitFile(t, repo, dir, "ABC-1 add login\n\nLonger body mentioning OPS-9.")
	commitFile(t, repo, dir, "chore: bump deps")
	return dir
}

func commitFile(t *testing.T, repo *git.Repository, dir, msg string) plumbing.Hash {
	t.Helper()

	path := filepath.Join(dir, "notes.txt")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(msg + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("notes.txt")
	require.NoError(t, err)

	hash, err := wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: "alice", Email: "alice@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return hash
}

func TestCommitsBetween(t *testing.T) {
	dir := setupRepo(t)
	c := Collector{RepoPath: dir}

	commits, err := c.CommitsBetween("production", "master")
	require.NoError(t, err)
	require.Len(t, commits, 2)

	assert.Equal(t, "chore: bump deps", commits[0].Title)
	assert.Equal(t, "ABC-1 add login", commits[1].Title)
	assert.Equal(t, "ABC-1 add login\n\nLonger body mentioning OPS-9.", commits[1].Message)
	assert.Equal(t, "alice", commits[1].Author)
	assert.Len(t, commits[1].SHA, 40)

	assert.Equal(t, []string{"chore: bump deps", "ABC-1 add login"}, Titles(commits))
}

func TestCommitsBetweenReversedRangeIsEmpty(t *testing.T) {
	dir := setupRepo(t)
	c := Collector{RepoPath: dir}

	commits, err := c.CommitsBetween("master", "production")
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestCommitsBetweenUnknownRef(t *testing.T) {
	dir := setupRepo(t)
	c := Collector{RepoPath: dir}

	_, err := c.CommitsBetween("does-not-exist", "master")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve does-not-exist")
}

func TestCurrentBranch(t *testing.T) {
	dir := setupRepo(t)

	branch, err := Collector{RepoPath: dir}.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "master", branch)
}

func TestOpenFailsOutsideRepository(t *testing.T) {
	_, err := Collector{RepoPath: t.TempDir()}.CurrentBranch()
	require.Error(t, err)
}
