package model

import "strings"

// IssueKey is an issue-tracker identifier such as "ABC-123". Comparison is exact.
type IssueKey string

// KeySet is an ordered set of issue keys. Order is first insertion.
type KeySet struct {
	keys  []IssueKey
	index map[IssueKey]struct{}
}

// NewKeySet builds a set from keys, dropping repeats.
func NewKeySet(keys ...IssueKey) KeySet {
	var s KeySet
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add appends k unless it is already present. It reports whether k was new.
func (s *KeySet) Add(k IssueKey) bool {
	if s.index == nil {
		s.index = make(map[IssueKey]struct{})
	}
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = struct{}{}
	s.keys = append(s.keys, k)
	return true
}

func (s KeySet) Has(k IssueKey) bool {
	_, ok := s.index[k]
	return ok
}

func (s KeySet) Len() int {
	return len(s.keys)
}

// Keys returns a copy of the keys in insertion order.
func (s KeySet) Keys() []IssueKey {
	out := make([]IssueKey, len(s.keys))
	copy(out, s.keys)
	return out
}

// Strings is Keys as plain strings, handy for logging fields.
func (s KeySet) Strings() []string {
	out := make([]string, len(s.keys))
	for i, k := range s.keys {
		out[i] = string(k)
	}
	return out
}

// String joins the keys with ", ".
func (s KeySet) String() string {
	return strings.Join(s.Strings(), ", ")
}

// Classification says how a commit message relates to the expected issues.
type Classification int

const (
	NoIssue Classification = iota
	ExpectedIssue
	UnexpectedIssue
)

func (c Classification) String() string {
	switch c {
	case NoIssue:
		return "no-issue"
	case ExpectedIssue:
		return "expected"
	case UnexpectedIssue:
		return "unexpected"
	}
	return "unknown"
}

// Marker is the symbol shown next to a commit in reports.
func (c Classification) Marker() string {
	switch c {
	case ExpectedIssue:
		return "✅"
	case UnexpectedIssue:
		return "🚨"
	}
	return "⚪"
}

// Disposition maps a classification onto the rebase action.
func (c Classification) Disposition() Disposition {
	if c == ExpectedIssue {
		return Keep
	}
	return Drop
}

// Disposition is the fate of a commit in the rebase plan.
type Disposition int

const (
	Drop Disposition = iota
	Keep
)

// Action is the todo keyword for the disposition.
func (d Disposition) Action() string {
	if d == Keep {
		return "pick"
	}
	return "drop"
}

func (d Disposition) String() string {
	if d == Keep {
		return "keep"
	}
	return "drop"
}

// Reconciliation is the diff between the expected keys and the keys seen in commits.
type Reconciliation struct {
	Matched KeySet
	Missing KeySet
	Extra   KeySet
}

// Stats counts commit lines by disposition.
type Stats struct {
	Kept    int
	Dropped int
}

// Commit represents a git commit read from the repository.
type Commit struct {
	SHA     string
	Title   string
	Author  string
	Message string
}

// ShortSHA is the abbreviated hash used in rebase todos.
func (c Commit) ShortSHA() string {
	if len(c.SHA) > 7 {
		return c.SHA[:7]
	}
	return c.SHA
}
