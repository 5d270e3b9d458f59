package app

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Mode selects the workflow to run.
type Mode string

const (
	ModeCompare  Mode = "compare"
	ModePlan     Mode = "plan"
	ModeEditTodo Mode = "edit-todo"
)

// StdinPath as a notes path means "read the notes from standard input".
const StdinPath = "-"

// Options collect validated inputs for running the CLI.
type Options struct {
	Mode       Mode
	RepoPath   string
	ConfigPath string
	NotesPath  string
	TodoPath   string

	Branch  string
	Base    string
	Reverse bool

	DryRun   bool
	NoReview bool
	Verbose  bool
}

// FlagValues mirrors the command-line flags so we can keep parsing/validation in one place.
type FlagValues struct {
	Mode       Mode
	RepoPath   string
	ConfigPath string
	NotesPath  string
	TodoPath   string
	Branch     string
	Base       string
	Reverse    bool
	DryRun     bool
	NoReview   bool
	Verbose    bool
}

// OptionsFromFlags validates user input and resolves default values.
func OptionsFromFlags(f FlagValues) (Options, error) {
	switch f.Mode {
	case ModeCompare, ModePlan, ModeEditTodo:
	default:
		return Options{}, fmt.Errorf("unknown mode %q", f.Mode)
	}

	if f.Mode == ModeEditTodo {
		if f.TodoPath == "" {
			return Options{}, errors.New("edit-todo needs the path of the rebase todo file")
		}
		if f.NotesPath == "" || f.NotesPath == StdinPath {
			return Options{}, errors.New("edit-todo needs --notes pointing at a release-notes file")
		}
	}

	if f.DryRun && f.Mode != ModePlan {
		return Options{}, errors.New("--dry-run only applies to plan")
	}
	if f.Reverse && f.Mode != ModeCompare {
		return Options{}, errors.New("--reverse only applies to compare")
	}

	if f.Branch != "" && f.Branch == f.Base {
		return Options{}, fmt.Errorf("branch and base are both %q; nothing to compare", f.Branch)
	}

	if f.RepoPath == "" {
		f.RepoPath = "."
	}

	return Options{
		Mode:       f.Mode,
		RepoPath:   filepath.Clean(f.RepoPath),
		ConfigPath: cleanOptional(f.ConfigPath),
		NotesPath:  cleanNotes(f.NotesPath),
		TodoPath:   cleanOptional(f.TodoPath),
		Branch:     f.Branch,
		Base:       f.Base,
		Reverse:    f.Reverse,
		DryRun:     f.DryRun,
		NoReview:   f.NoReview,
		Verbose:    f.Verbose,
	}, nil
}

func cleanOptional(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Clean(path)
}

func cleanNotes(path string) string {
	if path == StdinPath {
		return path
	}
	return cleanOptional(path)
}
