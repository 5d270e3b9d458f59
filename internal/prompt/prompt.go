package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ErrAborted is returned when the user cancels the release-notes editor.
var ErrAborted = errors.New("input aborted")

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// IsTerminal reports whether r is an interactive terminal.
func IsTerminal(r any) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ReadNotes collects pasted release notes. On a terminal it opens a small
// editor finished with Ctrl+D; otherwise it reads in until EOF.
func ReadNotes(ctx context.Context, in io.Reader, out io.Writer) (string, error) {
	if !IsTerminal(in) {
		raw, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("read release notes: %w", err)
		}
		return string(raw), nil
	}

	p := tea.NewProgram(newNotesModel(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("release notes editor: %w", err)
	}
	m := final.(notesModel)
	if m.aborted {
		return "", ErrAborted
	}
	return m.input.Value(), nil
}

type notesModel struct {
	input   textarea.Model
	done    bool
	aborted bool
}

func newNotesModel() notesModel {
	ta := textarea.New()
	ta.Placeholder = "Paste release notes here..."
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(100)
	ta.SetHeight(12)
	ta.Focus()
	return notesModel{input: ta}
}

func (m notesModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m notesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlD:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.input.SetWidth(max(20, msg.Width-2))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m notesModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Paste your release notes below"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("ctrl+d finish • esc cancel"))
	b.WriteString("\n")
	return b.String()
}

// Asker asks single-line questions over a reader/writer pair.
type Asker struct {
	in  *bufio.Reader
	out io.Writer
}

func NewAsker(in io.Reader, out io.Writer) *Asker {
	return &Asker{in: bufio.NewReader(in), out: out}
}

// Ask prints question and returns the trimmed answer, or fallback when the
// answer is empty or input is exhausted.
func (a *Asker) Ask(question, fallback string) (string, error) {
	fmt.Fprint(a.out, question)
	line, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read answer: %w", err)
	}
	answer := strings.TrimSpace(line)
	if answer == "" {
		return fallback, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question; an empty answer means yes.
func (a *Asker) Confirm(question string) (bool, error) {
	answer, err := a.Ask(question+" (y/n): ", "y")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
