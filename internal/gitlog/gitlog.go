package gitlog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"release-audit/internal/model"
)

// ErrNoCommits is returned when a range holds no commits.
var ErrNoCommits = errors.New("no commits found in the specified range")

// Collector reads commit data straight from the repository.
type Collector struct {
	RepoPath string
}

func (c Collector) open() (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(c.RepoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", c.RepoPath, err)
	}
	return repo, nil
}

// CurrentBranch returns the short name of the checked out branch, or "HEAD" when detached.
func (c Collector) CurrentBranch() (string, error) {
	repo, err := c.open()
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "HEAD", nil
	}
	return head.Name().Short(), nil
}

// CommitsBetween lists commits reachable from toRef but not from fromRef,
// newest first, like `git log fromRef..toRef`.
func (c Collector) CommitsBetween(fromRef, toRef string) ([]model.Commit, error) {
	repo, err := c.open()
	if err != nil {
		return nil, err
	}
	from, err := resolve(repo, fromRef)
	if err != nil {
		return nil, err
	}
	to, err := resolve(repo, toRef)
	if err != nil {
		return nil, err
	}

	excluded := make(map[plumbing.Hash]struct{})
	err = walk(repo, from, func(cm *object.Commit) error {
		excluded[cm.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("git log %s: %w", fromRef, err)
	}

	var commits []model.Commit
	err = walk(repo, to, func(cm *object.Commit) error {
		if _, ok := excluded[cm.Hash]; ok {
			return nil
		}
		commits = append(commits, toModel(cm))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("git log %s..%s: %w", fromRef, toRef, err)
	}
	return commits, nil
}

// Titles returns the subject line of each commit.
func Titles(commits []model.Commit) []string {
	titles := make([]string, len(commits))
	for i, cm := range commits {
		titles[i] = cm.Title
	}
	return titles
}

func resolve(repo *git.Repository, ref string) (plumbing.Hash, error) {
	h, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolve %s: %w", ref, err)
	}
	return *h, nil
}

func walk(repo *git.Repository, from plumbing.Hash, fn func(*object.Commit) error) error {
	iter, err := repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return err
	}
	defer iter.Close()
	return iter.ForEach(fn)
}

func toModel(cm *object.Commit) model.Commit {
	title, _, _ := strings.Cut(cm.Message, "\n")
	return model.Commit{
		SHA:     cm.Hash.String(),
		Title:   strings.TrimSpace(title),
		Author:  cm.Author.Name,
		Message: strings.TrimSpace(cm.Message),
	}
}
