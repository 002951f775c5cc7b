package request

import "strings"

// titleMaxRunes bounds the derived title length before the category
// label is prefixed.
const titleMaxRunes = 80

// Title derives a record title from the first line of the thread's root
// message: truncated, category-label-prefixed when the label is not
// already present, with BD-specific normalization of the common
// "add X to bd" phrasing.
func Title(c Category, rootText string) string {
	line := rootText
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)

	if c == BizDev {
		if normalized, ok := normalizeBizDev(line); ok {
			line = normalized
		}
	}

	if runes := []rune(line); len(runes) > titleMaxRunes {
		line = string(runes[:titleMaxRunes])
	}

	label := c.Label()
	if !strings.Contains(strings.ToLower(line), strings.ToLower(label)) {
		line = "[" + label + "] " + line
	}
	return line
}

// normalizeBizDev rewrites "add <company> to bd" (or "... to business
// development") as "Add <company>".
func normalizeBizDev(line string) (string, bool) {
	lower := strings.ToLower(line)
	if !strings.HasPrefix(lower, "add ") {
		return "", false
	}
	for _, marker := range []string{" to business development", " to bd"} {
		if i := strings.Index(lower, marker); i > len("add ") {
			return "Add " + strings.TrimSpace(line[len("add "):i]), true
		}
	}
	return "", false
}
