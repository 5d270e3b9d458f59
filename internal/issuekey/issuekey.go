package issuekey

import (
	"regexp"

	"release-audit/internal/model"
)

var keyPattern = regexp.MustCompile(`[A-Z]+-[0-9]+`)

// Extract returns every issue key in text, deduplicated, in order of first appearance.
func Extract(text string) model.KeySet {
	var keys model.KeySet
	for _, match := range keyPattern.FindAllString(text, -1) {
		keys.Add(model.IssueKey(match))
	}
	return keys
}

// First returns the leftmost issue key in text.
func First(text string) (model.IssueKey, bool) {
	match := keyPattern.FindString(text)
	if match == "" {
		return "", false
	}
	return model.IssueKey(match), true
}

// FromMessages extracts the keys observed across a batch of commit messages.
func FromMessages(messages []string) model.KeySet {
	var keys model.KeySet
	for _, msg := range messages {
		for _, k := range Extract(msg).Keys() {
			keys.Add(k)
		}
	}
	return keys
}
