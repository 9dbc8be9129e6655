// Package titles resolves the actor and counterparty of an activity from its
// free-text title. Facebook phrases titles from a small set of UI templates
// ("X wrote on Y's timeline.", "X likes Y's photo.", ...); each template is
// one ordered rule with two capture groups, and the first matching rule wins.
package titles

import (
	"regexp"
	"strings"
)

// rules mirror the export's title templates in priority order. Group 1 is the
// acting person, group 2 the targeted person or content owner.
var rules = []*regexp.Regexp{
	regexp.MustCompile(`(.+) wrote on (.+) timeline.`),
	regexp.MustCompile(`(.+) like[ds] (.+)'s .*`),
	regexp.MustCompile(`(.+) like[ds] (.+ own .+)`),
	regexp.MustCompile(`(.+) reacted to (.+)'s .*`),
	regexp.MustCompile(`(.+) reacted to (.+ own .+)`),
	regexp.MustCompile(`(.+) shared a link to (.+) timeline.`),
	regexp.MustCompile(`(.+) shared a photo to (.+) timeline.`),
	regexp.MustCompile(`(.+) shared an album to (.+) timeline.`),
	regexp.MustCompile(`(.+) shared a post to (.+) timeline.`),
	regexp.MustCompile(`(.+) posted in (.+)`),
	regexp.MustCompile(`(.+) added a new photo to (.+) timeline.`),
	regexp.MustCompile(`(.+) commented on (.+)'s .*`),
	regexp.MustCompile(`(.+) replied to (.+)`),
}

// Resolver maps titles to (person, with) pairs. The self name is the account
// owner's display name; titles about the owner's own content resolve their
// counterparty to it.
type Resolver struct {
	self string
}

// New creates a Resolver for the given account owner display name.
func New(selfName string) *Resolver {
	return &Resolver{self: selfName}
}

// Self returns the configured account owner display name.
func (r *Resolver) Self() string {
	return r.self
}

// Resolve applies the rules in order to title. On a match it returns the
// acting person and the cleaned counterparty. If no rule matches but the
// title begins with the self name, it resolves to (self, ""). Otherwise ok is
// false and callers must leave any previously set fields unchanged.
func (r *Resolver) Resolve(title string) (person, with string, ok bool) {
	for _, rule := range rules {
		m := rule.FindStringSubmatch(title)
		if m == nil {
			continue
		}
		return m[1], r.cleanCounterparty(m[2]), true
	}
	if strings.HasPrefix(title, r.self) {
		return r.self, "", true
	}
	return "", "", false
}

// cleanCounterparty normalizes the second capture group. The export writes
// "your" (or a phrase containing " own ") when the target is the account
// owner; anything else carries a trailing possessive that is cut at the
// first apostrophe ("John Smith's" -> "John Smith"). Comparisons are
// case-sensitive: a name that merely looks like the own-content phrasing
// must not be rewritten.
func (r *Resolver) cleanCounterparty(s string) string {
	if s == "your" || strings.Contains(s, " own ") {
		return r.self
	}
	cut, _, _ := strings.Cut(s, "'")
	return cut
}
