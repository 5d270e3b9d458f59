package editor

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kballard/go-shellquote"
)

func TestResolve(t *testing.T) {
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}

	tests := []struct {
		name       string
		configured string
		env        map[string]string
		want       string
	}{
		{"configured wins", "nano", map[string]string{"EDITOR": "vim"}, "nano"},
		{"git editor before visual", "", map[string]string{"GIT_EDITOR": "emacs", "VISUAL": "code --wait"}, "emacs"},
		{"visual before editor", "", map[string]string{"VISUAL": "code --wait", "EDITOR": "vim"}, "code --wait"},
		{"editor", "", map[string]string{"EDITOR": "vim"}, "vim"},
		{"fallback", "", nil, "vi"},
	}
	for _, tc := range tests {
		if got := Resolve(tc.configured, env(tc.env)); got != tc.want {
			t.Fatalf("%s: Resolve = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestCommand(t *testing.T) {
	cmd, err := Command(context.Background(), `code --wait --profile "Release Work"`, "/tmp/git-rebase-todo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"code", "--wait", "--profile", "Release Work", "/tmp/git-rebase-todo"}
	if diff := cmp.Diff(want, cmd.Args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandRejectsBadInput(t *testing.T) {
	for _, in := range []string{"", "   ", `vim "unterminated`} {
		if _, err := Command(context.Background(), in, "todo"); err == nil {
			t.Fatalf("Command(%q): expected error", in)
		}
	}
}

func TestSequenceEditorRoundTrips(t *testing.T) {
	argv := []string{"/opt/release tools/release-audit", "edit-todo", "--notes", "/tmp/notes 1.txt"}
	line := SequenceEditor(argv...)

	got, err := shellquote.Split(line)
	if err != nil {
		t.Fatalf("split %q: %v", line, err)
	}
	if diff := cmp.Diff(argv, got); diff != "" {
		t.Fatalf("argv mismatch (-want +got):\n%s", diff)
	}
}
