package gitlog

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Streams are the terminal handles handed to interactive git commands.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// InteractiveRebase runs `git rebase -i onto` with sequenceEditor editing
// the todo. go-git has no rebase support.
func (c Collector) InteractiveRebase(ctx context.Context, onto, sequenceEditor string, s Streams) error {
	cmd := exec.CommandContext(ctx, "git", "-C", c.RepoPath, "rebase", "-i", onto)
	cmd.Env = append(os.Environ(), "GIT_SEQUENCE_EDITOR="+sequenceEditor)
	cmd.Stdin = s.In
	cmd.Stdout = s.Out
	cmd.Stderr = s.Err
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git rebase -i %s: %w", onto, err)
	}
	return nil
}
