// Package rebaseplan reads and rewrites git rebase todo lists.
//
// Only "pick" and "drop" lines are treated as commits. Every other line is
// kept byte for byte, so a rewrite never loses comments or exec lines that
// git or the user put into the file.
package rebaseplan

import (
	"strings"
)

// LineKind tags a parsed todo line.
type LineKind int

const (
	PassthroughLine LineKind = iota
	CommitLine
)

// Line is one line of a todo. For passthrough lines only Raw is set.
type Line struct {
	Kind LineKind
	Raw  string

	Indent  string
	Action  string
	Ref     string
	Message string

	// rest is everything after the action keyword, reproduced verbatim.
	rest string
}

// WithAction returns the line with its keyword replaced. Passthrough lines are returned as is.
func (l Line) WithAction(action string) Line {
	if l.Kind != CommitLine {
		return l
	}
	l.Action = action
	l.Raw = l.Indent + action + l.rest
	return l
}

// Plan is a parsed todo.
type Plan struct {
	Lines []Line
}

// Parse splits text on "\n" and tokenizes each line. A trailing newline
// produces a final empty passthrough line so String gives back the input.
func Parse(text string) Plan {
	raw := strings.Split(text, "\n")
	p := Plan{Lines: make([]Line, 0, len(raw))}
	for _, r := range raw {
		p.Lines = append(p.Lines, ParseLine(r))
	}
	return p
}

// String joins the lines back together.
func (p Plan) String() string {
	raw := make([]string, len(p.Lines))
	for i, l := range p.Lines {
		raw[i] = l.Raw
	}
	return strings.Join(raw, "\n")
}

// Commits returns only the commit lines.
func (p Plan) Commits() []Line {
	var out []Line
	for _, l := range p.Lines {
		if l.Kind == CommitLine {
			out = append(out, l)
		}
	}
	return out
}

// ParseLine recognises `[ws]pick|drop<ws><ref><ws><message>`.
func ParseLine(raw string) Line {
	pass := Line{Kind: PassthroughLine, Raw: raw}

	i := skipBlanks(raw, 0)
	indent := raw[:i]

	var action string
	switch {
	case strings.HasPrefix(raw[i:], "pick"):
		action = "pick"
	case strings.HasPrefix(raw[i:], "drop"):
		action = "drop"
	default:
		return pass
	}
	afterAction := i + len(action)

	refStart := skipBlanks(raw, afterAction)
	if refStart == afterAction {
		// "picked", "dropbox" and a bare keyword are not commit lines.
		return pass
	}
	refEnd := refStart
	for refEnd < len(raw) && isWordByte(raw[refEnd]) {
		refEnd++
	}
	if refEnd == refStart {
		return pass
	}
	msgStart := skipBlanks(raw, refEnd)
	if msgStart == refEnd {
		return pass
	}

	return Line{
		Kind:    CommitLine,
		Raw:     raw,
		Indent:  indent,
		Action:  action,
		Ref:     raw[refStart:refEnd],
		Message: raw[msgStart:],
		rest:    raw[afterAction:],
	}
}

func skipBlanks(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

func isWordByte(b byte) bool {
	return b == '_' ||
		('0' <= b && b <= '9') ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z')
}
