package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
)

const fallbackEditor = "vi"

// Resolve picks the editor command: the configured one first, then
// GIT_EDITOR, VISUAL and EDITOR, then vi.
func Resolve(configured string, getenv func(string) string) string {
	if configured != "" {
		return configured
	}
	for _, key := range []string{"GIT_EDITOR", "VISUAL", "EDITOR"} {
		if v := getenv(key); v != "" {
			return v
		}
	}
	return fallbackEditor
}

// Command builds the process that opens path in the editor. The editor
// string may carry arguments and shell quoting, e.g. `code --wait`.
func Command(ctx context.Context, editorCmd, path string) (*exec.Cmd, error) {
	words, err := shellquote.Split(editorCmd)
	if err != nil {
		return nil, fmt.Errorf("parse editor command %q: %w", editorCmd, err)
	}
	if len(words) == 0 {
		return nil, errors.New("editor command is empty")
	}
	args := append(words[1:], path)
	return exec.CommandContext(ctx, words[0], args...), nil
}

// Open runs the editor on path attached to the current terminal and waits for it to exit.
func Open(ctx context.Context, editorCmd, path string) error {
	cmd, err := Command(ctx, editorCmd, path)
	if err != nil {
		return err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run editor %s: %w", cmd.Path, err)
	}
	return nil
}

// SequenceEditor renders argv as a command line git can run through its shell.
func SequenceEditor(argv ...string) string {
	return shellquote.Join(argv...)
}
