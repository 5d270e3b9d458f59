// Package report renders comparison results for the terminal.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"release-audit/internal/model"
	"release-audit/internal/reconcile"
)

// Printer writes styled output. Colors are dropped automatically when w is not a terminal.
type Printer struct {
	w       io.Writer
	heading lipgloss.Style
	good    lipgloss.Style
	bad     lipgloss.Style
	warn    lipgloss.Style
	faint   lipgloss.Style
}

func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		heading: r.NewStyle().Bold(true),
		good:    r.NewStyle().Foreground(lipgloss.Color("10")),
		bad:     r.NewStyle().Foreground(lipgloss.Color("9")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("11")),
		faint:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Expected echoes the issues pulled out of the release notes.
func (p *Printer) Expected(keys model.KeySet) {
	fmt.Fprintf(p.w, "\nExtracted issues: %s\n\n", orNone(keys))
}

// Comparison prints found/missing/extra keys followed by every commit and its marker.
func (p *Printer) Comparison(r reconcile.Report) {
	rec := r.Reconciliation
	fmt.Fprintln(p.w, p.heading.Render("Results:"))
	fmt.Fprintf(p.w, "%s %s\n", p.good.Render("✅ Found in commits:"), orNone(rec.Matched))
	fmt.Fprintf(p.w, "%s %s\n", p.bad.Render("❌ Missing in commits:"), orNone(rec.Missing))
	fmt.Fprintf(p.w, "%s %s\n", p.warn.Render("🚨 Extra in commits:"), orNone(rec.Extra))

	if len(r.Commits) == 0 {
		return
	}
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.heading.Render("Commits:"))
	for _, c := range r.Commits {
		action := c.Classification.Disposition().Action()
		line := fmt.Sprintf("%s %s %s %s", c.Classification.Marker(), action, c.Commit.ShortSHA(), c.Commit.Title)
		if action == "drop" {
			line = p.faint.Render(line)
		}
		fmt.Fprintln(p.w, line)
	}
	fmt.Fprintln(p.w)
	p.Stats(r.Stats)
}

// Stats prints the kept/dropped summary.
func (p *Printer) Stats(s model.Stats) {
	fmt.Fprintf(p.w, "Kept %s, dropped %s.\n",
		p.good.Render(plural(s.Kept, "commit")),
		p.bad.Render(plural(s.Dropped, "commit")),
	)
}

func orNone(keys model.KeySet) string {
	if keys.Len() == 0 {
		return "(none)"
	}
	return keys.String()
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %s", n, noun+"s")
}
