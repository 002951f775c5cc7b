package track

import (
	"fmt"
	"strings"

	"github.com/davidahmann/intake/internal/request"
	"github.com/davidahmann/intake/pkg/types"
)

// RenderRecords renders a record listing as chat text: a header, one
// bullet per record, and an optional trailing hint when finished
// records were filtered out. Pure; any per-record enrichment is the
// caller's problem.
func RenderRecords(header string, records []types.Record, hint string) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	if len(records) == 0 {
		b.WriteString("No requests found.")
	} else {
		for i, r := range records {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString("• " + r.Title + " - " + r.Status)
		}
	}
	if hint != "" {
		b.WriteString("\n" + hint)
	}
	return b.String()
}

// Header is the listing header for a category.
func Header(c request.Category) string {
	return "*" + c.Label() + " requests*"
}

// HiddenHint names the command that reveals terminal-status records.
func HiddenHint(c request.Category) string {
	return fmt.Sprintf("_%s requests are hidden. Mention me with \"status all\" to see them._", c.Terminal())
}

// RenderHelp renders the static command summary, including the active
// category's valid statuses.
func RenderHelp(c request.Category) string {
	lines := []string{
		"*Here's what I can do:*",
		"• mention me in a thread to archive it as a new tracked request",
		"• `status` lists open requests; `status all` includes finished ones",
		"• `update <request> to <new status>` changes a request's status",
		"Valid " + c.Label() + " statuses: " + strings.Join(c.Statuses(), ", "),
	}
	return strings.Join(lines, "\n")
}

func invalidStatusText(c request.Category, got string) string {
	return fmt.Sprintf("❌ %q is not a valid %s status. Valid statuses: %s",
		got, c.Label(), strings.Join(c.Statuses(), ", "))
}

func noMatchText(query string) string {
	return fmt.Sprintf("❓ No request matching %q was found. Try more of the title, or paste the record id.", query)
}

func ambiguousText(records []types.Record) string {
	var b strings.Builder
	b.WriteString("Found several matching requests. Please refine your query:")
	for _, r := range records {
		b.WriteString("\n• " + r.Title)
	}
	return b.String()
}
