package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"release-audit/internal/config"
	"release-audit/internal/editor"
	"release-audit/internal/gitlog"
	"release-audit/internal/issuekey"
	"release-audit/internal/model"
	"release-audit/internal/prompt"
	"release-audit/internal/rebaseplan"
	"release-audit/internal/reconcile"
	"release-audit/internal/report"
)

// DefaultConfigName is looked up in the repository root when --config is not given.
const DefaultConfigName = ".release-audit.yaml"

// Env is everything Run needs from the process around it.
type Env struct {
	Config config.Config
	Logger *zap.Logger

	In  io.Reader
	Out io.Writer
	Err io.Writer

	Getenv     func(string) string
	// Executable is this binary, used as git's sequence editor.
	Executable string
	// OpenEditor defaults to editor.Open.
	OpenEditor func(ctx context.Context, editorCmd, path string) error
}

// Run dispatches to the workflow selected by opts.Mode.
func Run(ctx context.Context, opts Options, env Env) error {
	if env.Logger == nil {
		env.Logger = zap.NewNop()
	}
	if env.Getenv == nil {
		env.Getenv = os.Getenv
	}
	if env.OpenEditor == nil {
		env.OpenEditor = editor.Open
	}

	switch opts.Mode {
	case ModeCompare:
		return runCompare(ctx, opts, env)
	case ModePlan:
		return runPlan(ctx, opts, env)
	case ModeEditTodo:
		return runEditTodo(ctx, opts, env)
	}
	return fmt.Errorf("unknown mode %q", opts.Mode)
}

// runCompare checks the release notes against the commits of a branch.
func runCompare(ctx context.Context, opts Options, env Env) error {
	expected, err := expectedIssues(ctx, opts, env)
	if err != nil {
		return err
	}

	collector := gitlog.Collector{RepoPath: opts.RepoPath}
	branch, err := pickBranch(opts, env, collector)
	if err != nil {
		return err
	}
	base := baseBranch(opts, env.Config)

	fromRef, toRef := base, branch
	if opts.Reverse {
		fromRef, toRef = branch, base
	}
	commits, err := collector.CommitsBetween(fromRef, toRef)
	if err != nil {
		return err
	}
	env.Logger.Debug("collected commits",
		zap.String("range", fromRef+".."+toRef),
		zap.Int("count", len(commits)),
		zap.Strings("subjects", gitlog.Titles(commits)),
	)

	result := reconcile.Commits(expected, commits)
	if result.Reconciliation.Missing.Len() > 0 {
		env.Logger.Warn("release notes mention issues with no commit",
			zap.Strings("missing", result.Reconciliation.Missing.Strings()),
		)
	}
	report.NewPrinter(env.Out).Comparison(result)
	return nil
}

// runPlan starts an interactive rebase whose todo is rewritten by edit-todo,
// or prints the rewritten todo with --dry-run.
func runPlan(ctx context.Context, opts Options, env Env) error {
	notes, err := readNotes(ctx, opts, env)
	if err != nil {
		return err
	}
	expected := issuekey.Extract(notes)
	printer := report.NewPrinter(env.Out)
	printer.Expected(expected)

	base := baseBranch(opts, env.Config)
	collector := gitlog.Collector{RepoPath: opts.RepoPath}

	if opts.DryRun {
		commits, err := collector.CommitsBetween(base, "HEAD")
		if err != nil {
			return err
		}
		if len(commits) == 0 {
			return gitlog.ErrNoCommits
		}
		updated, stats := rebaseplan.Rewrite(rebaseplan.Generate(commits), expected)
		fmt.Fprint(env.Out, updated)
		printer.Stats(stats)
		return nil
	}

	notesFile, err := os.CreateTemp("", "release-audit-notes-*.txt")
	if err != nil {
		return fmt.Errorf("stash release notes: %w", err)
	}
	defer os.Remove(notesFile.Name())
	if _, err := notesFile.WriteString(notes); err != nil {
		notesFile.Close()
		return fmt.Errorf("stash release notes: %w", err)
	}
	if err := notesFile.Close(); err != nil {
		return fmt.Errorf("stash release notes: %w", err)
	}

	seq := editor.SequenceEditor(sequenceEditorArgs(opts, env, notesFile.Name())...)
	env.Logger.Debug("starting interactive rebase", zap.String("onto", base), zap.String("sequence_editor", seq))

	return collector.InteractiveRebase(ctx, base, seq, gitlog.Streams{In: env.In, Out: env.Out, Err: env.Err})
}

func sequenceEditorArgs(opts Options, env Env, notesPath string) []string {
	args := []string{env.Executable, string(ModeEditTodo), "--notes", notesPath}
	if opts.ConfigPath != "" {
		args = append(args, "--config", opts.ConfigPath)
	}
	if opts.NoReview {
		args = append(args, "--no-review")
	}
	if opts.Verbose {
		args = append(args, "--verbose")
	}
	return args
}

// runEditTodo is what git calls as its sequence editor.
func runEditTodo(ctx context.Context, opts Options, env Env) error {
	notes, err := readNotes(ctx, opts, env)
	if err != nil {
		return err
	}
	expected := issuekey.Extract(notes)

	info, err := os.Stat(opts.TodoPath)
	if err != nil {
		return fmt.Errorf("read rebase todo: %w", err)
	}
	raw, err := os.ReadFile(opts.TodoPath)
	if err != nil {
		return fmt.Errorf("read rebase todo: %w", err)
	}

	updated, stats := rebaseplan.Rewrite(string(raw), expected)
	if err := os.WriteFile(opts.TodoPath, []byte(updated), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write rebase todo: %w", err)
	}
	env.Logger.Info("rewrote rebase todo",
		zap.String("path", opts.TodoPath),
		zap.Strings("expected", expected.Strings()),
		zap.Int("kept", stats.Kept),
		zap.Int("dropped", stats.Dropped),
	)
	report.NewPrinter(env.Out).Stats(stats)

	if opts.NoReview || !env.Config.ReviewEnabled() {
		return nil
	}
	return env.OpenEditor(ctx, editor.Resolve(env.Config.Editor, env.Getenv), opts.TodoPath)
}

func expectedIssues(ctx context.Context, opts Options, env Env) (model.KeySet, error) {
	notes, err := readNotes(ctx, opts, env)
	if err != nil {
		return model.KeySet{}, err
	}
	expected := issuekey.Extract(notes)
	report.NewPrinter(env.Out).Expected(expected)
	return expected, nil
}

func readNotes(ctx context.Context, opts Options, env Env) (string, error) {
	switch opts.NotesPath {
	case "":
		return prompt.ReadNotes(ctx, env.In, env.Out)
	case StdinPath:
		raw, err := io.ReadAll(env.In)
		if err != nil {
			return "", fmt.Errorf("read release notes: %w", err)
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(opts.NotesPath)
	if err != nil {
		return "", fmt.Errorf("read release notes: %w", err)
	}
	return string(raw), nil
}

func pickBranch(opts Options, env Env, collector gitlog.Collector) (string, error) {
	if opts.Branch != "" {
		return opts.Branch, nil
	}
	current, err := collector.CurrentBranch()
	if err != nil {
		return "", err
	}
	asker := prompt.NewAsker(env.In, env.Out)
	ok, err := asker.Confirm(fmt.Sprintf("Detected branch %q. Use this branch?", current))
	if err != nil {
		return "", err
	}
	if ok {
		return current, nil
	}
	return asker.Ask("Enter branch name: ", current)
}

func baseBranch(opts Options, cfg config.Config) string {
	if opts.Base != "" {
		return opts.Base
	}
	return cfg.BaseBranch
}
