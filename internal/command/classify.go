// Package command turns raw mention text into one of a fixed set of
// structured commands. Classification is a deliberately simple ordered
// rule table over case-insensitive substring predicates; no parser. The
// checks are unanchored, so a create-request title that happens to
// contain a keyword like "status" will misclassify. Accepted limitation.
package command

import (
	"strings"

	"github.com/davidahmann/intake/internal/request"
)

type Kind int

const (
	Help Kind = iota
	Status
	Update
	Create
)

func (k Kind) String() string {
	switch k {
	case Help:
		return "help"
	case Status:
		return "status"
	case Update:
		return "update"
	default:
		return "create"
	}
}

// Command is the classified intent of a mention. Category is always
// set. Query and NewStatus are populated for Update, IncludeDone for
// Status.
type Command struct {
	Kind        Kind
	Category    request.Category
	IncludeDone bool
	Query       string
	NewStatus   string
}

// Classify applies the rule table in priority order: help, then update,
// then status, with create as the default for any mention carrying no
// recognized command keyword. Category detection runs first and tags
// every command.
func Classify(text string) Command {
	lower := strings.ToLower(text)
	category := request.Detect(text)

	if strings.Contains(lower, "help") || strings.Contains(lower, "commands") {
		return Command{Kind: Help, Category: category}
	}

	if strings.Contains(lower, "update") && strings.Contains(lower, " to ") {
		if query, status, ok := splitUpdate(text, lower); ok {
			return Command{Kind: Update, Category: category, Query: query, NewStatus: status}
		}
	}

	if strings.Contains(lower, "status") {
		includeDone := strings.Contains(lower, "all") ||
			strings.Contains(lower, strings.ToLower(category.Terminal()))
		return Command{Kind: Status, Category: category, IncludeDone: includeDone}
	}

	return Command{Kind: Create, Category: category}
}

// splitUpdate splits the text on the first "update " and the remainder
// on the first " to ". Both parts are trimmed and quote-stripped; fewer
// than two non-empty parts reports !ok so classification falls through.
func splitUpdate(text, lower string) (query, status string, ok bool) {
	i := strings.Index(lower, "update ")
	if i < 0 {
		return "", "", false
	}
	rest := text[i+len("update "):]
	restLower := lower[i+len("update "):]

	j := strings.Index(restLower, " to ")
	if j < 0 {
		return "", "", false
	}

	query = stripQuotes(rest[:j])
	status = stripQuotes(rest[j+len(" to "):])
	if query == "" || status == "" {
		return "", "", false
	}
	return query, status, true
}

func stripQuotes(s string) string {
	return strings.Trim(strings.TrimSpace(s), "\"'“”")
}
