// Package request holds the domain vocabulary of tracked requests:
// categories, their status enumerations, and title derivation. A record
// belongs to exactly one category for its lifetime; the category decides
// which backing collection and which status set applies.
package request

import "strings"

type Category string

const (
	Feature Category = "feature"
	BizDev  Category = "business-development"
)

var statusSets = map[Category][]string{
	Feature: {"New", "In Progress", "Pending Review", "Completed", "Rejected"},
	BizDev:  {"Not in CRM yet", "Added to CRM"},
}

var labels = map[Category]string{
	Feature: "Feature",
	BizDev:  "BD",
}

// Detect resolves the category of a mention text. Matching is
// substring-based and unanchored, so a feature title that happens to
// contain "bd" files as business-development. That is the documented
// behavior, not something to special-case away.
func Detect(text string) Category {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "bd") || strings.Contains(lower, "business development") {
		return BizDev
	}
	return Feature
}

// Label is the short human name used in titles and headers.
func (c Category) Label() string {
	return labels[c]
}

// Statuses returns the category's status enumeration in display order.
func (c Category) Statuses() []string {
	return statusSets[c]
}

// Initial is the status assigned at record creation.
func (c Category) Initial() string {
	return statusSets[c][0]
}

// Terminal is the category's "done" status, hidden from default listings.
func (c Category) Terminal() string {
	switch c {
	case BizDev:
		return "Added to CRM"
	default:
		return "Completed"
	}
}

// Canonical matches a candidate status case-insensitively against the
// category's enumeration and returns the canonically cased value.
func (c Category) Canonical(status string) (string, bool) {
	for _, s := range statusSets[c] {
		if strings.EqualFold(s, strings.TrimSpace(status)) {
			return s, true
		}
	}
	return "", false
}
