package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"release-audit/internal/app"
	"release-audit/internal/config"
	"release-audit/internal/logging"
	"release-audit/internal/prompt"
)

var (
	flags  app.FlagValues
	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "release-audit",
	Short: "Check release notes against commits and build a rebase plan",
	Long: `release-audit reads pasted release notes, pulls out issue keys such as ABC-123,
and compares them with the issue keys referenced by commit subjects.

It can report the difference between two branches, or drive an interactive
rebase whose todo keeps commits for expected issues and drops the rest.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := flags.ConfigPath
		if path == "" {
			path = filepath.Join(flags.RepoPath, app.DefaultConfigName)
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.LogLevel, flags.Verbose)
		if err != nil {
			return err
		}
		logger.Debug("loaded config", zap.String("path", path), zap.String("base_branch", cfg.BaseBranch))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare release-note issues with the commits of a branch",
	Long: `Lists commits reachable from the branch but not from the base branch and
reports which issue keys from the release notes were found, which are
missing and which commits reference issues nobody asked for.

Examples:
  release-audit compare                          # paste notes, confirm current branch
  release-audit compare --notes notes.md --branch release/2.4
  pbpaste | release-audit compare --notes - --base main`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags.Mode = app.ModeCompare
		return run(cmd)
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Start an interactive rebase that keeps only commits for expected issues",
	Long: `Runs git rebase -i onto the base branch with this tool as the sequence
editor. The todo is rewritten so that commits for issues in the release notes
are picked and every other commit is dropped, then opened in your editor for
review before git applies it.

With --dry-run the todo is generated from base..HEAD and printed instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags.Mode = app.ModePlan
		return run(cmd)
	},
}

var editTodoCmd = &cobra.Command{
	Use:   "edit-todo <todo-file>",
	Short: "Rewrite a git rebase todo in place (used as GIT_SEQUENCE_EDITOR)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags.Mode = app.ModeEditTodo
		flags.TodoPath = args[0]
		return run(cmd)
	},
}

func run(cmd *cobra.Command) error {
	opts, err := app.OptionsFromFlags(flags)
	if err != nil {
		return err
	}

	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}

	return app.Run(cmd.Context(), opts, app.Env{
		Config:     cfg,
		Logger:     logger,
		In:         os.Stdin,
		Out:        os.Stdout,
		Err:        os.Stderr,
		Getenv:     os.Getenv,
		Executable: self,
	})
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flags.RepoPath, "repo", ".", "path to the git repository")
	rootCmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "config file (default <repo>/"+app.DefaultConfigName+")")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logging")

	for _, c := range []*cobra.Command{compareCmd, planCmd, editTodoCmd} {
		c.Flags().StringVar(&flags.NotesPath, "notes", "", `release notes file ("-" for stdin); prompts when empty`)
	}

	compareCmd.Flags().StringVar(&flags.Branch, "branch", "", "branch to check (default: ask, offering the current branch)")
	compareCmd.Flags().StringVar(&flags.Base, "base", "", "branch the release is compared against (default from config)")
	compareCmd.Flags().BoolVar(&flags.Reverse, "reverse", false, "list branch..base instead of base..branch")

	planCmd.Flags().StringVar(&flags.Base, "base", "", "branch to rebase onto (default from config)")
	planCmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "print the rewritten todo instead of rebasing")
	planCmd.Flags().BoolVar(&flags.NoReview, "no-review", false, "do not open the rewritten todo in an editor")

	editTodoCmd.Flags().BoolVar(&flags.NoReview, "no-review", false, "do not open the rewritten todo in an editor")

	rootCmd.AddCommand(compareCmd, planCmd, editTodoCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
